package dual

// Interface is the narrow operation set the primal module drives a dual
// module through (spec.md §4.2, §9 "Dynamic dispatch over dual module
// implementations"). Both *Unit (serial) and *parallel.Module implement it
// uniformly so the primal module never needs to know which one it holds.
type Interface interface {
	Clear()
	AddDualNode(node *Node) error
	RemoveBlossom(node *Node) error
	SetGrowState(node *Node, state GrowState) error
	ComputeMaximumUpdateLengthDualNode(node *Node, isGrow, simultaneousUpdate bool) (MaxUpdateLength, error)
	ComputeMaximumUpdateLength() GroupMaxUpdateLength
	GrowDualNode(node *Node, delta Weight) error
	Grow(delta Weight)
	LoadEdgeModifier(modifiers []EdgeModifier)
	Snapshot(abbrev bool) map[string]any
}

// EdgeModifier adjusts the weight of an edge, identified by its global
// index into the original SolverInitializer.WeightedEdges list, before
// decoding (spec.md §4.2 "load_edge_modifier"). A unit that does not carry
// the edge locally ignores the modifier — the same edge may legitimately
// be duplicated across several units under hardware-faithful partitioning.
type EdgeModifier struct {
	EdgeGlobalIndex EdgeIndex
	DeltaW          Weight
}
