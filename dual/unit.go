package dual

import (
	"fmt"
	"sort"
)

// Unit is the serial dual module over one shard of the decoding graph
// (spec.md §4.2, component C2). It owns its local graph, the dual nodes
// registered with it, and answers every operation in Interface directly —
// it never routes to another unit; that is the parallel package's job.
//
// Unit is not safe for concurrent use on its own; the parallel package
// guards each Unit with a sync.RWMutex (spec.md §5).
type Unit struct {
	graph *localGraph

	// nodes is every dual node currently registered with this unit, keyed
	// by pointer identity.
	nodes map[*Node]struct{}

	// lastBound records the most recent slack bound reported for a node,
	// so GrowDualNode can reject a delta exceeding it (spec.md §7.2).
	lastBound map[*Node]Weight
}

// NewPartitioned builds a Unit from a planner-produced PartitionedInitializer
// (spec.md §4.2 "new_partitioned"). It is the only constructor; the
// parallel package uses it for every unit, leaf or fusion.
func NewPartitioned(init PartitionedInitializer) *Unit {
	return &Unit{
		graph:     newLocalGraph(init),
		nodes:     make(map[*Node]struct{}),
		lastBound: make(map[*Node]Weight),
	}
}

// Clear resets all dual node state, growth, and pending events; the graph
// itself (vertices, edges, interfaces) is preserved. Applying Clear twice
// is equivalent to applying it once (spec.md §8 "Clear idempotence"):
// the second call finds an already-empty nodes/lastBound map and an
// already-reset graph.
func (u *Unit) Clear() {
	u.graph.reset()
	u.nodes = make(map[*Node]struct{})
	u.lastBound = make(map[*Node]Weight)
}

// AddDualNode registers a dual node whose representative vertex (and every
// vertex in node.Vertices) must be known to this unit's local graph: its
// OwningRange, its mirrored interface vertices, or vertices absorbed from
// fused children. Any other vertex is rejected with ErrVertexOutOfRange.
func (u *Unit) AddDualNode(node *Node) error {
	if !u.graph.knowsVertex(node.RepresentativeVertex) {
		return fmt.Errorf("%w: vertex %d", ErrVertexOutOfRange, node.RepresentativeVertex)
	}
	if len(node.Vertices) == 0 {
		return fmt.Errorf("dual: node %d has no covered vertices", node.ID)
	}
	for _, v := range node.Vertices {
		lv, ok := u.graph.vertices[v]
		if !ok {
			return fmt.Errorf("%w: vertex %d", ErrVertexOutOfRange, v)
		}
		lv.node = node
	}
	u.nodes[node] = struct{}{}
	return nil
}

// RemoveBlossom unregisters a dual node, freeing the vertices it covered.
func (u *Unit) RemoveBlossom(node *Node) error {
	if _, ok := u.nodes[node]; !ok {
		return ErrNodeNotFound
	}
	for _, v := range node.Vertices {
		if lv, ok := u.graph.vertices[v]; ok && lv.node == node {
			lv.node = nil
		}
	}
	delete(u.nodes, node)
	delete(u.lastBound, node)
	return nil
}

// SetGrowState sets a registered node's per-node mode.
func (u *Unit) SetGrowState(node *Node, state GrowState) error {
	if _, ok := u.nodes[node]; !ok {
		return ErrNodeNotFound
	}
	node.GrowState = state
	return nil
}

// ComputeMaximumUpdateLengthDualNode computes the local slack bound or
// conflict for a single node, probing the hypothetical direction isGrow
// rather than node's stored GrowState. When simultaneousUpdate is true,
// other registered nodes are assumed to move at their own stored
// GrowState at the same time; when false, they are held fixed.
func (u *Unit) ComputeMaximumUpdateLengthDualNode(node *Node, isGrow, simultaneousUpdate bool) (MaxUpdateLength, error) {
	if _, ok := u.nodes[node]; !ok {
		return MaxUpdateLength{}, ErrNodeNotFound
	}
	rateA := int64(1)
	if !isGrow {
		rateA = -1
	}
	result := u.slackEvent(node, rateA, simultaneousUpdate)
	u.lastBound[node] = boundOf(result)
	return result, nil
}

// ComputeMaximumUpdateLength computes the local slack bound or set of
// conflicts across all of this unit's active (non-Stay) registered nodes.
func (u *Unit) ComputeMaximumUpdateLength() GroupMaxUpdateLength {
	group := NewGroupMaxUpdateLength()
	// Deterministic order keeps snapshots and conflict lists reproducible.
	active := make([]*Node, 0, len(u.nodes))
	for n := range u.nodes {
		if n.GrowState != Stay {
			active = append(active, n)
		}
	}
	sort.Slice(active, func(i, j int) bool { return active[i].RepresentativeVertex < active[j].RepresentativeVertex })
	// Two registered nodes meeting on an edge are found once from each side;
	// the conflict is reported once per edge.
	reported := make(map[EdgeIndex]struct{})
	for _, n := range active {
		result := u.slackEvent(n, n.GrowState.rate(), true)
		u.lastBound[n] = boundOf(result)
		if result.IsConflict() {
			if result.Conflict == ConflictTouchingDifferentNode && result.Node2 != nil {
				if _, seen := reported[result.Edge]; seen {
					continue
				}
				reported[result.Edge] = struct{}{}
			}
			group.AddConflict(result)
		} else {
			group.AddBound(result.Bound)
		}
	}
	return group
}

func boundOf(m MaxUpdateLength) Weight {
	if m.IsConflict() {
		return 0
	}
	return m.Bound
}

// slackEvent is the shared slack-scan used by both single-node and
// group-level computation: it walks every edge incident to node's covered
// vertices and returns the tightest event.
func (u *Unit) slackEvent(node *Node, rateA int64, simultaneousUpdate bool) MaxUpdateLength {
	best := unboundedUpdate()
	haveBest := false
	covered := make(map[VertexIndex]struct{}, len(node.Vertices))
	for _, v := range node.Vertices {
		covered[v] = struct{}{}
	}
	for _, v := range node.Vertices {
		for _, ei := range u.graph.adjacency[v] {
			e := u.graph.edges[ei]
			other := e.otherEndpoint(v)
			if _, isSelf := covered[other]; isSelf {
				// Both endpoints covered by this node: the slack is the
				// weight minus twice the node's dual. A tight edge is a
				// conflict in either direction; otherwise the edge bounds
				// growth only, since shrinking widens its slack.
				slack := e.Weight - 2*node.Dual
				if slack <= 0 {
					c := MaxUpdateLength{Conflict: ConflictTouchingSameNode, Node1: node, Node2: node, Vertex1: v, Vertex2: other, Edge: e.GlobalIndex}
					return c
				}
				if rateA <= 0 {
					continue
				}
				bound := slack / (2 * rateA)
				if !haveBest || bound < best.Bound {
					best = boundedUpdate(bound)
					haveBest = true
				}
				continue
			}
			otherNode := u.graph.vertices[other].node
			rateB := int64(0)
			if simultaneousUpdate && otherNode != nil {
				rateB = otherNode.GrowState.rate()
			}
			combinedRate := rateA + rateB
			dualA := node.Dual
			dualB := int64(0)
			if otherNode != nil {
				dualB = otherNode.Dual
			}
			slack := e.Weight - dualA - dualB
			if combinedRate <= 0 {
				// This edge's slack does not shrink as node moves in the
				// queried direction; it imposes no bound on it.
				continue
			}
			if slack <= 0 {
				kind := ConflictTouchingDifferentNode
				if u.graph.vertices[other].isVirtual && otherNode == nil {
					kind = ConflictTouchingVirtual
				}
				c := MaxUpdateLength{Conflict: kind, Node1: node, Node2: otherNode, Vertex1: v, Vertex2: other, Edge: e.GlobalIndex}
				return c
			}
			bound := slack / combinedRate
			if !haveBest || bound < best.Bound {
				best = boundedUpdate(bound)
				haveBest = true
			}
		}
	}
	if !haveBest {
		return unboundedUpdate()
	}
	return best
}

// GrowDualNode advances a single node's dual variable by delta (signed,
// bounded by the last bound reported for it).
func (u *Unit) GrowDualNode(node *Node, delta Weight) error {
	if _, ok := u.nodes[node]; !ok {
		return ErrNodeNotFound
	}
	if bound, ok := u.lastBound[node]; ok && bound != unboundedGrowth {
		if abs64(delta) > bound {
			return ErrGrowExceedsBound
		}
	}
	node.Dual += delta
	if node.Dual < 0 {
		node.Dual = 0
	}
	return nil
}

// Grow advances every registered non-Stay node's dual variable by delta in
// its own GrowState direction. delta is not checked against the bounds last
// computed, and no error is reported for an over-long step; a dual variable
// that would drop below zero is clamped at zero. GrowDualNode is the
// single-node path that rejects a delta above the last reported bound.
func (u *Unit) Grow(delta Weight) {
	for n := range u.nodes {
		rate := n.GrowState.rate()
		if rate == 0 {
			continue
		}
		n.Dual += rate * delta
		if n.Dual < 0 {
			n.Dual = 0
		}
	}
}

// LoadEdgeModifier adjusts the weight of every local edge whose global
// index matches one in modifiers.
func (u *Unit) LoadEdgeModifier(modifiers []EdgeModifier) {
	if len(modifiers) == 0 {
		return
	}
	byIndex := make(map[EdgeIndex]Weight, len(modifiers))
	for _, m := range modifiers {
		byIndex[m.EdgeGlobalIndex] += m.DeltaW
	}
	for i := range u.graph.edges {
		if d, ok := byIndex[u.graph.edges[i].GlobalIndex]; ok {
			u.graph.edges[i].Weight += d
		}
	}
}

func abs64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
