package dual_test

import (
	"testing"

	"github.com/katalvlaran/dualmatch/dual"
	"github.com/stretchr/testify/require"
)

func TestGroupMaxUpdateLength_ExtendIsCommutativeAndAssociative(t *testing.T) {
	a := dual.NewGroupMaxUpdateLength()
	a.AddBound(5)
	b := dual.NewGroupMaxUpdateLength()
	b.AddBound(2)
	c := dual.NewGroupMaxUpdateLength()
	c.AddConflict(dual.MaxUpdateLength{Conflict: dual.ConflictTouchingVirtual, Vertex1: 1})

	ab := a
	ab.Extend(b)
	ba := b
	ba.Extend(a)
	requireSameShape(t, ab, ba)

	abc := ab
	abc.Extend(c)
	bc := b
	bc.Extend(c)
	abc2 := a
	abc2.Extend(bc)
	requireSameShape(t, abc, abc2)
}

func requireSameShape(t *testing.T, x, y dual.GroupMaxUpdateLength) {
	t.Helper()
	require.Equal(t, len(x.GetConflicts()), len(y.GetConflicts()))
	xb, xok := x.GetNonZeroGrowth()
	yb, yok := y.GetNonZeroGrowth()
	require.Equal(t, xok, yok)
	if xok {
		require.Equal(t, xb, yb)
	}
}

func TestGroupMaxUpdateLength_EmptyMeansNothingToDo(t *testing.T) {
	g := dual.NewGroupMaxUpdateLength()
	require.True(t, g.IsEmpty())

	g.AddBound(7)
	require.False(t, g.IsEmpty())
	bound, ok := g.GetNonZeroGrowth()
	require.True(t, ok)
	require.Equal(t, dual.Weight(7), bound)
}

func TestGroupMaxUpdateLength_ConflictBlocksGrowth(t *testing.T) {
	g := dual.NewGroupMaxUpdateLength()
	g.AddBound(7)
	g.AddConflict(dual.MaxUpdateLength{Conflict: dual.ConflictTouchingSameNode})

	_, ok := g.GetNonZeroGrowth()
	require.False(t, ok)
	require.Len(t, g.GetConflicts(), 1)
}
