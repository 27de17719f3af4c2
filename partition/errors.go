package partition

import "errors"

// All of these are configuration errors per spec.md §7.1: fatal,
// detected once at planning time, never recoverable by retry.
var (
	ErrNoPartitions          = errors.New("partition: at least one partition must be given")
	ErrPartitionOutOfRange   = errors.New("partition: partition range exceeds vertex_num")
	ErrPartitionOverlap      = errors.New("partition: partition ranges overlap")
	ErrInvalidFusionIndex    = errors.New("partition: fusion references a unit index not yet built")
	ErrDoubleFusion          = errors.New("partition: unit fused twice")
	ErrRootNotCovering       = errors.New("partition: final unit does not cover the whole vertex range")
	ErrUnfusedUnit           = errors.New("partition: unit was never fused into the root")
	ErrSelfLoopEdge          = errors.New("partition: self-loop edges are not allowed")
	ErrEdgeVertexOutOfRange  = errors.New("partition: edge endpoint exceeds vertex_num")
	ErrCrossPartitionEdge    = errors.New("partition: edge crosses two independent partitions")
	ErrHardwareFaithfulSplit = errors.New("partition: hardware-faithful split found a leaf containing exactly one edge endpoint")
)
