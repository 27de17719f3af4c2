// Package dual implements the serial dual module of a partitioned
// minimum-weight-perfect-matching decoder: a single-threaded shard of the
// decoding graph that grows and shrinks dual variables on dual nodes
// (syndrome vertices or blossoms) and reports the next blocking event.
//
// A Unit owns a contiguous slice of the global vertex range plus whatever
// interface (mirrored) vertices its ancestors have declared. It never talks
// to sibling units directly; partitioning and fusion are the parallel
// package's job. Apart from AbsorbChild (the boundary-merge step of fusion),
// Unit's exported surface is the Interface defined in this package, so the
// parallel package can route operations to either a *Unit or a higher-level
// wrapper uniformly.
//
// Dual nodes themselves are owned by the primal module (external to this
// module); Unit only ever receives a *Node by pointer and never creates one
// on its own initiative.
package dual
