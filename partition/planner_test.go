package partition_test

import (
	"testing"

	"github.com/katalvlaran/dualmatch/dual"
	"github.com/katalvlaran/dualmatch/partition"
	"github.com/stretchr/testify/require"
)

func chainInitializer(vertexNum int) partition.SolverInitializer {
	edges := make([]partition.WeightedEdge, 0, vertexNum-1)
	for v := 0; v < vertexNum-1; v++ {
		edges = append(edges, partition.WeightedEdge{From: v, To: v + 1, Weight: 10})
	}
	return partition.SolverInitializer{VertexNum: vertexNum, WeightedEdges: edges}
}

func edgeEndpoints(edges []dual.WeightedEdge) [][2]int {
	out := make([][2]int, len(edges))
	for i, e := range edges {
		out[i] = [2]int{e.From, e.To}
	}
	return out
}

func TestPlan_SinglePartitionDefault(t *testing.T) {
	info, initializers, err := partition.Plan(chainInitializer(10), partition.Config{EdgesInFusionUnit: true})
	require.NoError(t, err)
	require.Len(t, info.Units, 1)
	require.Equal(t, dual.Range{Start: 0, End: 10}, info.Units[0].WholeRange)
	require.Equal(t, dual.Range{Start: 0, End: 10}, info.Units[0].OwningRange)
	require.True(t, info.Units[0].IsLeaf())
	require.Len(t, initializers, 1)
	require.Len(t, initializers[0].WeightedEdges, 9)
	require.Empty(t, initializers[0].Interfaces)
}

func TestPlan_TwoLeavesWithGapAndFusion(t *testing.T) {
	init := chainInitializer(12)
	cfg := partition.Config{
		Partitions:        []dual.Range{{Start: 0, End: 5}, {Start: 7, End: 12}},
		Fusions:           [][2]int{{0, 1}},
		EdgesInFusionUnit: true,
	}
	info, initializers, err := partition.Plan(init, cfg)
	require.NoError(t, err)
	require.Len(t, info.Units, 3)

	// Leaves keep their own ranges.
	require.Equal(t, dual.Range{Start: 0, End: 5}, info.Units[0].OwningRange)
	require.Equal(t, dual.Range{Start: 7, End: 12}, info.Units[1].OwningRange)

	// The fusion unit's owning_range is exactly the gap, and its
	// whole_range is the convex hull.
	root := info.Units[2]
	require.Equal(t, dual.Range{Start: 5, End: 7}, root.OwningRange)
	require.Equal(t, dual.Range{Start: 0, End: 12}, root.WholeRange)
	require.False(t, root.IsLeaf())
	require.True(t, info.IsAncestor(2, 0))
	require.True(t, info.IsAncestor(2, 1))
	require.False(t, info.IsAncestor(0, 1))

	// Every vertex belongs to exactly one owning unit.
	for v := 0; v < 12; v++ {
		require.GreaterOrEqual(t, info.VertexToOwningUnit[v], 0)
	}

	// Edges crossing the gap (4-5, 6-7) are assigned solely to the
	// descendant leaf under edges_in_fusion_unit=true (spec.md §4.1);
	// only the edge entirely within the gap itself (5-6) belongs to the
	// fusion unit.
	require.Contains(t, edgeEndpoints(initializers[0].WeightedEdges), [2]int{4, 5})
	require.Contains(t, edgeEndpoints(initializers[1].WeightedEdges), [2]int{6, 7})
	require.Equal(t, []dual.WeightedEdge{{From: 5, To: 6, Weight: 10, GlobalIndex: 5}}, initializers[2].WeightedEdges)

	// Units on either side of the gap see each other as an interface.
	require.NotEmpty(t, initializers[0].Interfaces)
	require.NotEmpty(t, initializers[1].Interfaces)
}

func TestPlan_HardwareFaithfulDuplicatesBoundaryEdges(t *testing.T) {
	init := chainInitializer(12)
	cfg := partition.Config{
		Partitions:        []dual.Range{{Start: 0, End: 5}, {Start: 7, End: 12}},
		Fusions:           [][2]int{{0, 1}},
		EdgesInFusionUnit: false,
	}
	info, initializers, err := partition.Plan(init, cfg)
	require.NoError(t, err)
	require.Len(t, info.Units, 3)

	totalEdges := 0
	for _, pi := range initializers {
		totalEdges += len(pi.WeightedEdges)
	}
	// Under hardware-faithful splitting, edges touching the gap are
	// mirrored down to leaves rather than kept at the fusion unit, so the
	// fusion unit itself carries none of the original 11 chain edges. Both
	// leaves contain the gap vertices 5 and 6, so the gap edge 5-6 lands in
	// each of them: 11 edges plus one duplicate.
	require.Empty(t, initializers[2].WeightedEdges)
	require.Equal(t, 12, totalEdges)
}

func TestPlan_RejectsOverlappingPartitions(t *testing.T) {
	_, _, err := partition.Plan(chainInitializer(10), partition.Config{
		Partitions: []dual.Range{{Start: 0, End: 5}, {Start: 4, End: 10}},
	})
	require.ErrorIs(t, err, partition.ErrPartitionOverlap)
}

func TestPlan_RejectsOutOfRangePartition(t *testing.T) {
	_, _, err := partition.Plan(chainInitializer(10), partition.Config{
		Partitions: []dual.Range{{Start: 0, End: 20}},
	})
	require.ErrorIs(t, err, partition.ErrPartitionOutOfRange)
}

func TestPlan_RejectsUnfusedUnit(t *testing.T) {
	_, _, err := partition.Plan(chainInitializer(10), partition.Config{
		Partitions: []dual.Range{{Start: 0, End: 5}, {Start: 5, End: 10}},
	})
	require.ErrorIs(t, err, partition.ErrUnfusedUnit)
}

func TestPlan_RejectsNonCoveringRoot(t *testing.T) {
	_, _, err := partition.Plan(chainInitializer(10), partition.Config{
		Partitions: []dual.Range{{Start: 0, End: 4}, {Start: 4, End: 8}},
		Fusions:    [][2]int{{0, 1}},
	})
	require.ErrorIs(t, err, partition.ErrRootNotCovering)
}

func TestPlan_RejectsSelfLoop(t *testing.T) {
	init := partition.SolverInitializer{
		VertexNum:     3,
		WeightedEdges: []partition.WeightedEdge{{From: 1, To: 1, Weight: 5}},
	}
	_, _, err := partition.Plan(init, partition.Config{})
	require.ErrorIs(t, err, partition.ErrSelfLoopEdge)
}

func TestPlan_RejectsDoubleFusion(t *testing.T) {
	_, _, err := partition.Plan(chainInitializer(12), partition.Config{
		Partitions: []dual.Range{{Start: 0, End: 4}, {Start: 4, End: 8}, {Start: 8, End: 12}},
		Fusions:    [][2]int{{0, 1}, {0, 2}},
	})
	require.ErrorIs(t, err, partition.ErrDoubleFusion)
}
