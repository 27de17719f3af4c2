// Package dualmatch is a partitioned, progressively-fused dual module for
// minimum-weight perfect matching decoders.
//
// It implements the dual half of a primal/dual blossom-style MWPM solver:
// given a decoding graph split into disjoint vertex ranges, it runs the
// slack/growth/conflict computation independently per partition and merges
// partitions together on demand, so a primal module driving it through a
// single narrow interface cannot tell a parallel decode from a serial one.
//
// Four subpackages carry the work:
//
//	config/    — JSON-shaped configuration (thread pool size, partitions,
//	             fusions, edge-placement policy)
//	partition/ — builds the partition tree and per-unit initializers from a
//	             global graph and a fusion schedule
//	dual/      — the serial dual unit: local graph, dual nodes, slack and
//	             growth, fusion's boundary-merge step
//	parallel/  — the parallel unit and the top-level module: routes every
//	             operation to the right active unit and fans out module-wide
//	             operations across a bounded worker pool
//
// dual.Interface is the contract both a bare *dual.Unit and a full
// *parallel.Module satisfy, so a caller can hold either behind the same
// interface value.
package dualmatch
