package partition

import (
	"fmt"

	"github.com/katalvlaran/dualmatch/dual"
)

// Plan builds the partition tree and the per-unit partitioned initializers
// described by cfg over initializer (spec.md §4.1). All failures returned
// are configuration errors (spec.md §7.1): fatal, detected once, with no
// partial progress to recover.
func Plan(initializer SolverInitializer, cfg Config) (*PartitionInfo, []dual.PartitionedInitializer, error) {
	partitions := cfg.Partitions
	if len(partitions) == 0 {
		partitions = []dual.Range{{Start: 0, End: initializer.VertexNum}}
	}
	if err := validatePartitions(partitions, initializer.VertexNum); err != nil {
		return nil, nil, err
	}

	total := len(partitions) + len(cfg.Fusions)
	wholeRanges := make([]dual.Range, total)
	owningRanges := make([]dual.Range, total)
	parents := make([]*int, total)
	for i, p := range partitions {
		wholeRanges[i] = p
		owningRanges[i] = p
	}
	for fi, pair := range cfg.Fusions {
		unitIdx := len(partitions) + fi
		l, r := pair[0], pair[1]
		if l >= unitIdx || r >= unitIdx {
			return nil, nil, fmt.Errorf("%w: fusion %d depends on {%d,%d}", ErrInvalidFusionIndex, unitIdx, l, r)
		}
		if parents[l] != nil {
			return nil, nil, fmt.Errorf("%w: unit %d", ErrDoubleFusion, l)
		}
		if parents[r] != nil {
			return nil, nil, fmt.Errorf("%w: unit %d", ErrDoubleFusion, r)
		}
		parents[l] = intPtr(unitIdx)
		parents[r] = intPtr(unitIdx)
		whole, owning, err := fuseRanges(wholeRanges[l], wholeRanges[r])
		if err != nil {
			return nil, nil, err
		}
		wholeRanges[unitIdx] = whole
		owningRanges[unitIdx] = owning
	}

	if total == 0 {
		return nil, nil, ErrNoPartitions
	}
	for i := 0; i < total-1; i++ {
		if parents[i] == nil {
			return nil, nil, fmt.Errorf("%w: unit %d", ErrUnfusedUnit, i)
		}
	}
	last := total - 1
	if wholeRanges[last].Start != 0 || wholeRanges[last].End != initializer.VertexNum {
		return nil, nil, fmt.Errorf("%w: got [%d,%d), want [0,%d)", ErrRootNotCovering, wholeRanges[last].Start, wholeRanges[last].End, initializer.VertexNum)
	}

	units := make([]Unit, total)
	for i := 0; i < len(partitions); i++ {
		units[i] = Unit{
			WholeRange:  wholeRanges[i],
			OwningRange: owningRanges[i],
			Parent:      parents[i],
			Leaves:      []int{i},
			Descendants: map[int]struct{}{},
		}
	}
	for fi, pair := range cfg.Fusions {
		unitIdx := len(partitions) + fi
		l, r := pair[0], pair[1]
		leaves := append(append([]int{}, units[l].Leaves...), units[r].Leaves...)
		descendants := map[int]struct{}{l: {}, r: {}}
		for d := range units[l].Descendants {
			descendants[d] = struct{}{}
		}
		for d := range units[r].Descendants {
			descendants[d] = struct{}{}
		}
		units[unitIdx] = Unit{
			WholeRange:  wholeRanges[unitIdx],
			OwningRange: owningRanges[unitIdx],
			Children:    &[2]int{l, r},
			Parent:      parents[unitIdx],
			Leaves:      leaves,
			Descendants: descendants,
		}
	}

	vertexToOwningUnit := make([]int, initializer.VertexNum)
	for i := range vertexToOwningUnit {
		vertexToOwningUnit[i] = -1
	}
	for i, u := range units {
		for v := u.OwningRange.Start; v < u.OwningRange.End; v++ {
			vertexToOwningUnit[v] = i
		}
	}

	info := &PartitionInfo{Units: units, VertexToOwningUnit: vertexToOwningUnit}

	isVirtual := make([]bool, initializer.VertexNum)
	for _, v := range initializer.VirtualVertices {
		isVirtual[v] = true
	}
	adjacency := buildAdjacency(initializer)

	partitioned := make([]dual.PartitionedInitializer, total)
	contained := make([]map[int]struct{}, total)
	for i := range units {
		ifaces, containedSet := buildInterfaces(i, units, adjacency, isVirtual, cfg.EdgesInFusionUnit)
		contained[i] = containedSet
		own := units[i].OwningRange
		virts := make([]dual.VertexIndex, 0)
		for v := own.Start; v < own.End; v++ {
			if isVirtual[v] {
				virts = append(virts, v)
			}
		}
		partitioned[i] = dual.PartitionedInitializer{
			VertexNum:       initializer.VertexNum,
			OwningRange:     own,
			Interfaces:      ifaces,
			VirtualVertices: virts,
		}
	}

	if err := assignEdges(initializer, info, cfg.EdgesInFusionUnit, contained, partitioned); err != nil {
		return nil, nil, err
	}

	return info, partitioned, nil
}

func intPtr(v int) *int { return &v }

func validatePartitions(partitions []dual.Range, vertexNum int) error {
	if len(partitions) == 0 {
		return ErrNoPartitions
	}
	for i, p := range partitions {
		if p.Start < 0 || p.End > vertexNum || p.Start > p.End {
			return fmt.Errorf("%w: partition %d = [%d,%d)", ErrPartitionOutOfRange, i, p.Start, p.End)
		}
		for j := i + 1; j < len(partitions); j++ {
			if p.Overlaps(partitions[j]) {
				return fmt.Errorf("%w: partitions %d and %d", ErrPartitionOverlap, i, j)
			}
		}
	}
	return nil
}

// fuseRanges computes the parent's whole range (the convex hull of l and r)
// and owning range (the gap between them, reserved for the fusion unit's
// interface vertices), per spec.md §3 "owning_range... non-leaf: the
// interface vertices between its two children".
func fuseRanges(l, r dual.Range) (whole, owning dual.Range, err error) {
	if l.Overlaps(r) {
		return dual.Range{}, dual.Range{}, fmt.Errorf("%w: [%d,%d) and [%d,%d)", ErrPartitionOverlap, l.Start, l.End, r.Start, r.End)
	}
	lo, hi := l.Start, l.End
	if r.Start < lo {
		lo = r.Start
	}
	if r.End > hi {
		hi = r.End
	}
	whole = dual.Range{Start: lo, End: hi}
	if l.End <= r.Start {
		owning = dual.Range{Start: l.End, End: r.Start}
	} else {
		owning = dual.Range{Start: r.End, End: l.Start}
	}
	return whole, owning, nil
}

func buildAdjacency(initializer SolverInitializer) map[int][]int {
	adjacency := make(map[int][]int, initializer.VertexNum)
	for _, e := range initializer.WeightedEdges {
		adjacency[e.From] = append(adjacency[e.From], e.To)
		adjacency[e.To] = append(adjacency[e.To], e.From)
	}
	return adjacency
}

// buildInterfaces walks unitIndex's ancestors, discovering which of each
// ancestor's owning vertices are incident to this unit (spec.md §4.1
// "Interface-vertex discovery"). It returns the interfaces in ancestor-walk
// order and the full set of vertices this unit contains (its own owning
// range plus every mirrored vertex absorbed along the walk).
func buildInterfaces(unitIndex int, units []Unit, adjacency map[int][]int, isVirtual []bool, edgesInFusionUnit bool) ([]dual.UnitInterface, map[int]struct{}) {
	own := units[unitIndex].OwningRange
	contained := make(map[int]struct{})
	for v := own.Start; v < own.End; v++ {
		contained[v] = struct{}{}
	}

	var interfaces []dual.UnitInterface
	current := unitIndex
	for units[current].Parent != nil {
		parentIdx := *units[current].Parent
		parentOwning := units[parentIdx].OwningRange
		var mirrored []dual.InterfaceVertex

		if edgesInFusionUnit {
			for v := parentOwning.Start; v < parentOwning.End; v++ {
				if anyNeighborIn(adjacency[v], own) {
					mirrored = append(mirrored, dual.InterfaceVertex{Vertex: v, IsVirtual: isVirtual[v]})
					contained[v] = struct{}{}
				}
			}
		} else {
			hasIncident := false
			for v := parentOwning.Start; v < parentOwning.End && !hasIncident; v++ {
				if anyNeighborInSet(adjacency[v], contained) {
					hasIncident = true
				}
			}
			if hasIncident {
				for v := parentOwning.Start; v < parentOwning.End; v++ {
					mirrored = append(mirrored, dual.InterfaceVertex{Vertex: v, IsVirtual: isVirtual[v]})
					contained[v] = struct{}{}
				}
			}
		}

		if len(mirrored) > 0 {
			interfaces = append(interfaces, dual.UnitInterface{AncestorUnit: parentIdx, Vertices: mirrored})
		}
		current = parentIdx
	}
	return interfaces, contained
}

func anyNeighborIn(neighbors []int, r dual.Range) bool {
	for _, n := range neighbors {
		if r.Contains(n) {
			return true
		}
	}
	return false
}

func anyNeighborInSet(neighbors []int, set map[int]struct{}) bool {
	for _, n := range neighbors {
		if _, ok := set[n]; ok {
			return true
		}
	}
	return false
}

func assignEdges(initializer SolverInitializer, info *PartitionInfo, edgesInFusionUnit bool, contained []map[int]struct{}, partitioned []dual.PartitionedInitializer) error {
	numLeaves := 0
	for _, u := range info.Units {
		if u.IsLeaf() {
			numLeaves++
		}
	}
	for gi, e := range initializer.WeightedEdges {
		if e.From == e.To {
			return fmt.Errorf("%w: vertex %d", ErrSelfLoopEdge, e.From)
		}
		if e.From >= initializer.VertexNum || e.To >= initializer.VertexNum || e.From < 0 || e.To < 0 {
			return fmt.Errorf("%w: edge (%d,%d)", ErrEdgeVertexOutOfRange, e.From, e.To)
		}
		iUnit := info.VertexToOwningUnit[e.From]
		jUnit := info.VertexToOwningUnit[e.To]

		var ancestor, descendant int
		switch {
		case iUnit == jUnit:
			ancestor, descendant = iUnit, iUnit
		case info.IsAncestor(iUnit, jUnit):
			ancestor, descendant = iUnit, jUnit
		case info.IsAncestor(jUnit, iUnit):
			ancestor, descendant = jUnit, iUnit
		default:
			return fmt.Errorf("%w: edge (%d,%d) between units %d and %d", ErrCrossPartitionEdge, e.From, e.To, iUnit, jUnit)
		}

		edge := dual.WeightedEdge{From: e.From, To: e.To, Weight: e.Weight, GlobalIndex: gi}
		if edgesInFusionUnit {
			// Software-friendly placement: the edge is assigned solely to
			// the descendant (spec.md §4.1). buildInterfaces has already
			// mirrored the ancestor's endpoint into the descendant's own
			// interface, so the descendant's local graph sees both
			// endpoints directly and growth stops at the mirrored vertex
			// before fusion, exactly as an interface vertex is meant to.
			partitioned[descendant].WeightedEdges = append(partitioned[descendant].WeightedEdges, edge)
			continue
		}
		if ancestor < numLeaves {
			// ancestor is itself a leaf, so ancestor == descendant.
			partitioned[descendant].WeightedEdges = append(partitioned[descendant].WeightedEdges, edge)
			continue
		}
		if err := assignHardwareFaithful(descendant, e.From, e.To, edge, info.Units, contained, partitioned); err != nil {
			return err
		}
	}
	return nil
}

func assignHardwareFaithful(unitIdx, i, j int, edge dual.WeightedEdge, units []Unit, contained []map[int]struct{}, partitioned []dual.PartitionedInitializer) error {
	u := units[unitIdx]
	if u.IsLeaf() {
		_, ci := contained[unitIdx][i]
		_, cj := contained[unitIdx][j]
		if ci != cj {
			panic(fmt.Errorf("%w: edge (%d,%d) leaf %d", ErrHardwareFaithfulSplit, i, j, unitIdx))
		}
		if ci {
			partitioned[unitIdx].WeightedEdges = append(partitioned[unitIdx].WeightedEdges, edge)
		}
		return nil
	}
	l, r := u.Children[0], u.Children[1]
	if err := assignHardwareFaithful(l, i, j, edge, units, contained, partitioned); err != nil {
		return err
	}
	return assignHardwareFaithful(r, i, j, edge, units, contained, partitioned)
}
