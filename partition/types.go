package partition

import (
	"github.com/katalvlaran/dualmatch/config"
	"github.com/katalvlaran/dualmatch/dual"
)

// WeightedEdge is a single global edge tuple (i, j, w). GlobalIndex is its
// position in the original WeightedEdges slice, preserved through
// partitioning so dual.EdgeModifier can address it later.
type WeightedEdge struct {
	From, To    dual.VertexIndex
	Weight      dual.Weight
	GlobalIndex int
}

// SolverInitializer is the global decoding-graph input (spec.md §6).
type SolverInitializer struct {
	VertexNum       int
	WeightedEdges   []WeightedEdge
	VirtualVertices []dual.VertexIndex
}

// Config is the planner's own configuration shape, translated from
// config.Config by FromJSONConfig. An empty Partitions list is valid here:
// Plan turns it into a single partition spanning the whole graph.
type Config struct {
	Partitions        []dual.Range
	Fusions           [][2]int
	EdgesInFusionUnit bool
}

// Unit is one node of the partition tree (spec.md §3 "Partition Unit").
type Unit struct {
	WholeRange  dual.Range
	OwningRange dual.Range

	// Children is nil for leaves, or the (left, right) unit indices for an
	// internal (fusion) unit.
	Children *[2]int

	// Parent is nil only for the root.
	Parent *int

	// Leaves lists, in construction order, every leaf unit index under this
	// unit (this unit itself if it is a leaf).
	Leaves []int

	// Descendants is the transitive closure of Children, used by
	// IsAncestor in edge assignment's ancestor test.
	Descendants map[int]struct{}
}

// IsLeaf reports whether this unit has no children.
func (u Unit) IsLeaf() bool { return u.Children == nil }

// PartitionInfo is the planner's top-level output (spec.md §4.1, "Contract").
type PartitionInfo struct {
	Units []Unit

	// VertexToOwningUnit maps a global vertex index to the unit that
	// exclusively owns it.
	VertexToOwningUnit []int
}

// IsAncestor reports whether unit `ancestor` is a strict ancestor of unit
// `descendant` in the partition tree.
func (p *PartitionInfo) IsAncestor(ancestor, descendant int) bool {
	_, ok := p.Units[ancestor].Descendants[descendant]
	return ok
}

// FromJSONConfig translates the JSON-facing config.Config into the
// planner's own Config shape. It carries no defaulting logic of its own
// beyond EdgesInFusionUnitOrDefault: the empty-Partitions default is
// applied by Plan, once VertexNum is known.
func FromJSONConfig(c *config.Config) Config {
	partitions := make([]dual.Range, len(c.Partitions))
	for i, r := range c.Partitions {
		partitions[i] = dual.Range{Start: r[0], End: r[1]}
	}
	fusions := make([][2]int, len(c.Fusions))
	for i, f := range c.Fusions {
		fusions[i] = [2]int{f[0], f[1]}
	}
	return Config{
		Partitions:        partitions,
		Fusions:           fusions,
		EdgesInFusionUnit: c.EdgesInFusionUnitOrDefault(),
	}
}
