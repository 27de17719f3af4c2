package parallel

import "errors"

// Usage errors per spec.md §7.2: the caller violated a documented
// precondition.
var (
	// ErrFusionNotAUnit indicates Fuse was called with an index that is
	// not an internal (fusion) unit.
	ErrFusionNotAUnit = errors.New("parallel: unit is not a fusion unit")

	// ErrFusionPrecondition indicates Fuse was called while one of the
	// two children was not active, or already fused.
	ErrFusionPrecondition = errors.New("parallel: fusion requires both children active and unfused")

	// ErrUnknownUnit indicates an operation referenced a unit index outside
	// the module's tree.
	ErrUnknownUnit = errors.New("parallel: unknown unit index")
)
