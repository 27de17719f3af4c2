package parallel

import (
	"sync"

	"github.com/katalvlaran/dualmatch/dual"
	"github.com/katalvlaran/dualmatch/partition"
)

// Unit is the runtime Parallel Unit (spec.md §3 "Parallel Unit (runtime)",
// component C3): one dual.Unit plus tree bookkeeping. All state mutation
// goes through muUnit; read-only tree queries (the ancestor walk, snapshot)
// take the read lock, everything else takes the write lock.
//
// There is no exported constructor: units are only ever built by
// NewModule from planner output (spec.md §4.3 "Constructing C3 directly
// from a global initializer is forbidden").
type Unit struct {
	muUnit sync.RWMutex

	index       int
	wholeRange  dual.Range
	owningRange dual.Range
	isLeafUnit  bool
	children    *[2]int
	parent      *int

	isActive bool
	isFused  bool

	dualUnit *dual.Unit
}

func newUnit(index int, pu partition.Unit, init dual.PartitionedInitializer) *Unit {
	return &Unit{
		index:       index,
		wholeRange:  pu.WholeRange,
		owningRange: pu.OwningRange,
		isLeafUnit:  pu.IsLeaf(),
		children:    pu.Children,
		parent:      pu.Parent,
		isActive:    pu.IsLeaf(),
		dualUnit:    dual.NewPartitioned(init),
	}
}

// Index returns this unit's position in the module's tree-order slice.
func (u *Unit) Index() int { return u.index }

// IsActive reports whether this unit currently answers operations on its
// range (spec.md §3 "Parallel Unit (runtime)").
func (u *Unit) IsActive() bool {
	u.muUnit.RLock()
	defer u.muUnit.RUnlock()
	return u.isActive
}

// IsFused reports whether this unit has been merged up into its parent.
func (u *Unit) IsFused() bool {
	u.muUnit.RLock()
	defer u.muUnit.RUnlock()
	return u.isFused
}

func (u *Unit) resetLifecycle() {
	u.muUnit.Lock()
	defer u.muUnit.Unlock()
	u.isActive = u.isLeafUnit
	u.isFused = false
	u.dualUnit.Clear()
}
