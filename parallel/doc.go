// Package parallel implements the Parallel Unit (C3) and Parallel Dual
// Module (C4): a thin per-unit wrapper around a dual.Unit plus tree
// bookkeeping, and a top-level orchestrator that routes the primal
// module's operations to the correct active unit, fans out global
// operations across a worker pool, and performs fusion.
//
// Module is the package's entry point; NewModule is the only supported way
// to obtain one. Unit is exported only so callers can inspect tree shape
// (IsActive, IsFused, Index) between decodes; it cannot be constructed
// directly from a global initializer.
package parallel
