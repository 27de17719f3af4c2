package dual

import "fmt"

// ConflictKind classifies a blocking event reported by the dual module.
// Per spec.md §4.2, MaxUpdateLength is a sum type of a growth bound or one
// of these four conflict kinds.
type ConflictKind int

const (
	// ConflictNone marks a MaxUpdateLength that carries a growth bound
	// rather than a conflict.
	ConflictNone ConflictKind = iota
	// ConflictTouchingVirtual: the node's growth reached a virtual
	// (boundary) vertex not covered by any node.
	ConflictTouchingVirtual
	// ConflictTouchingSameNode: the node's growth reached another vertex
	// it already covers, via an edge whose slack has reached zero — a
	// candidate for blossom formation around this node alone.
	ConflictTouchingSameNode
	// ConflictTouchingDifferentNode: the node's growth reached a vertex
	// covered by a different node (or an uncovered real vertex — see
	// DESIGN.md "Node touching an uncovered real vertex").
	ConflictTouchingDifferentNode
	// ConflictBlossomNeedsExpansion: a sub-blossom's dual variable has
	// reached zero and the blossom must be expanded before further growth.
	// This module's flat vertex-set Node representation has no nested
	// sub-blossom state, so this kind is defined for contract completeness
	// but never produced (see DESIGN.md "ConflictBlossomNeedsExpansion is
	// never produced").
	ConflictBlossomNeedsExpansion
)

func (k ConflictKind) String() string {
	switch k {
	case ConflictTouchingVirtual:
		return "touching-virtual"
	case ConflictTouchingSameNode:
		return "touching-same-node"
	case ConflictTouchingDifferentNode:
		return "touching-different-node"
	case ConflictBlossomNeedsExpansion:
		return "blossom-needs-expansion"
	default:
		return "none"
	}
}

// unboundedGrowth marks a MaxUpdateLength bound with no constraining edge
// in this unit (growth is only limited elsewhere, or not at all).
const unboundedGrowth Weight = -1

// MaxUpdateLength is the next blocking event for a single dual node: either
// a non-negative growth bound (or unbounded) or a concrete conflict.
type MaxUpdateLength struct {
	Conflict ConflictKind

	// Bound is valid only when Conflict == ConflictNone. A value of
	// unboundedGrowth means no local edge constrains this node's growth.
	Bound Weight

	// Node1 is always the node whose growth produced this event. Node2 is
	// the other node involved (nil for ConflictTouchingVirtual, and for a
	// touching-different-node event against an uncovered real vertex).
	Node1, Node2 *Node

	// Vertex1, Vertex2 are the two endpoints of the triggering edge.
	Vertex1, Vertex2 VertexIndex

	// Edge is the global index of the triggering edge (its position in the
	// original edge list), or -1 if this value carries only a bound.
	Edge EdgeIndex
}

// IsConflict reports whether this value carries a conflict rather than a
// bound.
func (m MaxUpdateLength) IsConflict() bool { return m.Conflict != ConflictNone }

func boundedUpdate(bound Weight) MaxUpdateLength {
	return MaxUpdateLength{Conflict: ConflictNone, Bound: bound, Edge: -1}
}

func unboundedUpdate() MaxUpdateLength {
	return boundedUpdate(unboundedGrowth)
}

func (m MaxUpdateLength) String() string {
	if !m.IsConflict() {
		if m.Bound == unboundedGrowth {
			return "bound(unbounded)"
		}
		return fmt.Sprintf("bound(%d)", m.Bound)
	}
	return fmt.Sprintf("conflict(%s, v1=%d, v2=%d, edge=%d)", m.Conflict, m.Vertex1, m.Vertex2, m.Edge)
}

// GroupMaxUpdateLength aggregates the local dual-module result across a set
// of active growing nodes (spec.md §4.2). It holds either the set of
// conflicts encountered, or the minimum growth bound when no conflicts
// exist. Extend is commutative and associative (spec.md §8 "Merge
// commutativity"): it concatenates conflicts and takes the pointwise
// minimum bound, both of which are comm./assoc. operations.
type GroupMaxUpdateLength struct {
	conflicts []MaxUpdateLength
	hasBound  bool
	bound     Weight
}

// NewGroupMaxUpdateLength returns an empty group (no active nodes).
func NewGroupMaxUpdateLength() GroupMaxUpdateLength {
	return GroupMaxUpdateLength{}
}

// AddConflict appends a conflict to the group.
func (g *GroupMaxUpdateLength) AddConflict(m MaxUpdateLength) {
	g.conflicts = append(g.conflicts, m)
}

// AddBound folds a bound into the group, keeping the minimum seen so far.
// Unbounded (-1) bounds are ignored unless it is the only contribution.
func (g *GroupMaxUpdateLength) AddBound(bound Weight) {
	if bound == unboundedGrowth {
		if !g.hasBound {
			g.hasBound = true
			g.bound = unboundedGrowth
		}
		return
	}
	if !g.hasBound || g.bound == unboundedGrowth || bound < g.bound {
		g.hasBound = true
		g.bound = bound
	}
}

// Extend merges other into g in place, per the commutative/associative
// contract described above.
func (g *GroupMaxUpdateLength) Extend(other GroupMaxUpdateLength) {
	g.conflicts = append(g.conflicts, other.conflicts...)
	if other.hasBound {
		g.AddBound(other.bound)
	}
}

// IsEmpty reports whether this group carries neither conflicts nor a bound
// — i.e. no unit contributed anything, meaning there is nothing left to
// grow or resolve (decode complete).
func (g GroupMaxUpdateLength) IsEmpty() bool {
	return len(g.conflicts) == 0 && !g.hasBound
}

// GetConflicts returns the conflicts collected in this group, in the order
// they were added.
func (g GroupMaxUpdateLength) GetConflicts() []MaxUpdateLength {
	return g.conflicts
}

// GetNonZeroGrowth returns the group's growth bound when it is safe to grow
// (no conflicts outstanding, and some unit reported a positive finite
// bound). When conflicts are present or the only contributions were
// unbounded/zero, ok is false and the primal module must resolve conflicts
// instead.
func (g GroupMaxUpdateLength) GetNonZeroGrowth() (Weight, bool) {
	if len(g.conflicts) != 0 || !g.hasBound {
		return 0, false
	}
	if g.bound == unboundedGrowth || g.bound <= 0 {
		return 0, false
	}
	return g.bound, true
}
