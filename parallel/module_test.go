package parallel_test

import (
	"testing"

	"github.com/katalvlaran/dualmatch/dual"
	"github.com/katalvlaran/dualmatch/parallel"
	"github.com/katalvlaran/dualmatch/partition"
	"github.com/stretchr/testify/require"
)

func twoLeafInitializer() partition.SolverInitializer {
	return partition.SolverInitializer{
		VertexNum: 5,
		WeightedEdges: []partition.WeightedEdge{
			{From: 0, To: 1, Weight: 6},
			{From: 1, To: 2, Weight: 6},
			{From: 2, To: 3, Weight: 6},
			{From: 3, To: 4, Weight: 6},
		},
	}
}

func twoLeafConfig() partition.Config {
	return partition.Config{
		Partitions:        []dual.Range{{Start: 0, End: 2}, {Start: 3, End: 5}},
		Fusions:           [][2]int{{0, 1}},
		EdgesInFusionUnit: true,
	}
}

func TestModule_LifecycleDefaults(t *testing.T) {
	m, err := parallel.NewModule(twoLeafInitializer(), twoLeafConfig(), 2)
	require.NoError(t, err)
	units := m.Units()
	require.Len(t, units, 3)
	require.True(t, units[0].IsActive())
	require.True(t, units[1].IsActive())
	require.False(t, units[2].IsActive())
	require.False(t, units[0].IsFused())
	require.False(t, units[1].IsFused())
}

func TestModule_RoutesToActiveAncestorBeforeAndAfterFusion(t *testing.T) {
	m, err := parallel.NewModule(twoLeafInitializer(), twoLeafConfig(), 2)
	require.NoError(t, err)

	node := &dual.Node{ID: 1, RepresentativeVertex: 0, GrowState: dual.Grow, Vertices: []dual.VertexIndex{0}}
	require.NoError(t, m.AddDualNode(node))

	bound, err := m.ComputeMaximumUpdateLengthDualNode(node, true, false)
	require.NoError(t, err)
	require.False(t, bound.IsConflict())
	require.Equal(t, int64(6), bound.Bound)

	require.NoError(t, m.GrowDualNode(node, 3))
	require.Equal(t, int64(3), node.Dual)

	require.NoError(t, m.Fuse(2))
	require.True(t, m.Units()[0].IsFused())
	require.True(t, m.Units()[2].IsActive())

	// The same node pointer, registered with leaf 0 before fusion, is now
	// served by the parent unit: growing it again must still succeed and
	// must still be bounded by the unit's own last-reported slack.
	require.NoError(t, m.GrowDualNode(node, 1))
	require.Equal(t, int64(4), node.Dual)
}

func TestModule_FuseRejectsAlreadyFusedChildren(t *testing.T) {
	m, err := parallel.NewModule(twoLeafInitializer(), twoLeafConfig(), 2)
	require.NoError(t, err)
	require.NoError(t, m.Fuse(2))
	require.ErrorIs(t, m.Fuse(2), parallel.ErrFusionPrecondition)
}

func TestModule_FuseRejectsNonFusionUnit(t *testing.T) {
	m, err := parallel.NewModule(twoLeafInitializer(), twoLeafConfig(), 2)
	require.NoError(t, err)
	require.ErrorIs(t, m.Fuse(0), parallel.ErrFusionNotAUnit)
}

func TestModule_ClearResetsLifecycleAndIsIdempotent(t *testing.T) {
	m, err := parallel.NewModule(twoLeafInitializer(), twoLeafConfig(), 2)
	require.NoError(t, err)
	require.NoError(t, m.Fuse(2))

	m.Clear()
	units := m.Units()
	require.True(t, units[0].IsActive())
	require.True(t, units[1].IsActive())
	require.False(t, units[2].IsActive())
	require.False(t, units[0].IsFused())

	m.Clear()
	units = m.Units()
	require.True(t, units[0].IsActive())
	require.False(t, units[2].IsActive())
}

func TestModule_SnapshotMergesAllUnits(t *testing.T) {
	m, err := parallel.NewModule(twoLeafInitializer(), twoLeafConfig(), 2)
	require.NoError(t, err)

	node := &dual.Node{ID: 1, RepresentativeVertex: 0, GrowState: dual.Stay, Vertices: []dual.VertexIndex{0}}
	require.NoError(t, m.AddDualNode(node))

	doc := m.Snapshot(false)
	units, ok := doc["units"].([]map[string]any)
	require.True(t, ok)
	require.Len(t, units, 3)

	nodes, ok := doc["nodes"].([]map[string]any)
	require.True(t, ok)
	require.Len(t, nodes, 1)
	require.Equal(t, 0, nodes[0]["unit_index"])
}

func TestModule_SinglePartitionSkipsPool(t *testing.T) {
	init := twoLeafInitializer()
	m, err := parallel.NewModule(init, partition.Config{EdgesInFusionUnit: true}, 1)
	require.NoError(t, err)
	require.Len(t, m.Units(), 1)
	require.True(t, m.Units()[0].IsActive())
}
