// Package partition implements the partition planner (spec.md §4.1,
// component C1): turning a partition/fusion configuration plus a global
// decoding-graph initializer into a tree of partition units with assigned
// vertex ranges, mirror sets, and per-unit edge lists.
//
// Plan is the package's only entry point; everything else is either an
// input type (SolverInitializer, Config) or an output type (Unit,
// PartitionInfo, and dual.PartitionedInitializer values ready to hand to
// dual.NewPartitioned).
package partition
