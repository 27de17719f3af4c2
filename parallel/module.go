package parallel

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/katalvlaran/dualmatch/dual"
	"github.com/katalvlaran/dualmatch/partition"
	"github.com/sourcegraph/conc/pool"
)

// Module is the Parallel Dual Module (spec.md §4.4, component C4): the
// top-level orchestrator the primal module drives through dual.Interface.
// It owns every Unit in tree order (leaves first, fusions appended), the
// planner's PartitionInfo, and a worker-pool size used to bound every
// fan-out operation.
//
// Module implements dual.Interface, so the primal module can hold either
// a *dual.Unit or a *Module behind the same narrow operation set
// (spec.md §9 "Dynamic dispatch over dual module implementations").
type Module struct {
	units    []*Unit
	info     *partition.PartitionInfo
	poolSize int
}

// NewModule builds the partition tree via partition.Plan and constructs
// one Unit per partition unit. When the plan has exactly one unit, the
// worker pool is skipped entirely (spec.md §4.4 "Construction"): all
// fan-out helpers below degenerate to a direct call.
func NewModule(initializer partition.SolverInitializer, cfg partition.Config, threadPoolSize int) (*Module, error) {
	info, initializers, err := partition.Plan(initializer, cfg)
	if err != nil {
		return nil, err
	}

	poolSize := threadPoolSize
	if poolSize == 0 {
		poolSize = runtime.GOMAXPROCS(0)
	}

	m := &Module{info: info, poolSize: poolSize}
	units := make([]*Unit, len(info.Units))
	build := func(i int) {
		units[i] = newUnit(i, info.Units[i], initializers[i])
	}
	if len(info.Units) == 1 {
		build(0)
	} else {
		p := pool.New().WithMaxGoroutines(poolSize)
		for i := range info.Units {
			i := i
			p.Go(func() { build(i) })
		}
		p.Wait()
	}
	m.units = units
	return m, nil
}

func (m *Module) newPool() *pool.Pool {
	return pool.New().WithMaxGoroutines(m.poolSize)
}

// fanOut runs f over every unit, skipping the pool entirely when there is
// only one (spec.md §4.4 "Construction").
func (m *Module) fanOut(f func(*Unit)) {
	if len(m.units) == 1 {
		f(m.units[0])
		return
	}
	p := m.newPool()
	for _, u := range m.units {
		u := u
		p.Go(func() { f(u) })
	}
	p.Wait()
}

// Clear resets every unit's dual state and restores the initial lifecycle
// (all leaves active, all internal units inactive and unfused), per
// spec.md §3 "Lifecycle".
func (m *Module) Clear() {
	m.fanOut(func(u *Unit) { u.resetLifecycle() })
}

func (m *Module) findActiveAncestor(repVertex dual.VertexIndex) (*Unit, error) {
	idx := m.info.VertexToOwningUnit[repVertex]
	if idx < 0 || idx >= len(m.units) {
		return nil, fmt.Errorf("%w: vertex %d", ErrUnknownUnit, repVertex)
	}
	for {
		u := m.units[idx]
		u.muUnit.RLock()
		active := u.isActive
		parent := u.parent
		u.muUnit.RUnlock()
		if active {
			return u, nil
		}
		idx = *parent
	}
}

// AddDualNode routes to the unique active ancestor of node's representative
// vertex and delegates (spec.md §4.4 "Per-node operations").
func (m *Module) AddDualNode(node *dual.Node) error {
	u, err := m.findActiveAncestor(node.RepresentativeVertex)
	if err != nil {
		return err
	}
	u.muUnit.Lock()
	defer u.muUnit.Unlock()
	return u.dualUnit.AddDualNode(node)
}

// RemoveBlossom routes to node's active ancestor and delegates.
func (m *Module) RemoveBlossom(node *dual.Node) error {
	u, err := m.findActiveAncestor(node.RepresentativeVertex)
	if err != nil {
		return err
	}
	u.muUnit.Lock()
	defer u.muUnit.Unlock()
	return u.dualUnit.RemoveBlossom(node)
}

// SetGrowState routes to node's active ancestor and delegates.
func (m *Module) SetGrowState(node *dual.Node, state dual.GrowState) error {
	u, err := m.findActiveAncestor(node.RepresentativeVertex)
	if err != nil {
		return err
	}
	u.muUnit.Lock()
	defer u.muUnit.Unlock()
	return u.dualUnit.SetGrowState(node, state)
}

// ComputeMaximumUpdateLengthDualNode routes to node's active ancestor and
// delegates.
func (m *Module) ComputeMaximumUpdateLengthDualNode(node *dual.Node, isGrow, simultaneousUpdate bool) (dual.MaxUpdateLength, error) {
	u, err := m.findActiveAncestor(node.RepresentativeVertex)
	if err != nil {
		return dual.MaxUpdateLength{}, err
	}
	u.muUnit.Lock()
	defer u.muUnit.Unlock()
	return u.dualUnit.ComputeMaximumUpdateLengthDualNode(node, isGrow, simultaneousUpdate)
}

// GrowDualNode routes to node's active ancestor and delegates.
func (m *Module) GrowDualNode(node *dual.Node, delta dual.Weight) error {
	u, err := m.findActiveAncestor(node.RepresentativeVertex)
	if err != nil {
		return err
	}
	u.muUnit.Lock()
	defer u.muUnit.Unlock()
	return u.dualUnit.GrowDualNode(node, delta)
}

// ComputeMaximumUpdateLength fans out across every active unit and merges
// the results via GroupMaxUpdateLength.Extend, which is commutative and
// associative (spec.md §4.4 "Global compute_maximum_update_length").
func (m *Module) ComputeMaximumUpdateLength() dual.GroupMaxUpdateLength {
	var mergeMu sync.Mutex
	group := dual.NewGroupMaxUpdateLength()
	m.fanOut(func(u *Unit) {
		u.muUnit.Lock()
		active := u.isActive
		var local dual.GroupMaxUpdateLength
		if active {
			local = u.dualUnit.ComputeMaximumUpdateLength()
		}
		u.muUnit.Unlock()
		if !active {
			return
		}
		mergeMu.Lock()
		group.Extend(local)
		mergeMu.Unlock()
	})
	return group
}

// Grow fans out to every active unit in parallel (spec.md §4.4 "Global
// grow(δ)").
func (m *Module) Grow(delta dual.Weight) {
	m.fanOut(func(u *Unit) {
		u.muUnit.Lock()
		if u.isActive {
			u.dualUnit.Grow(delta)
		}
		u.muUnit.Unlock()
	})
}

// LoadEdgeModifier fans out to every active unit in parallel; a unit that
// does not carry a given edge locally ignores the modifiers addressing it.
func (m *Module) LoadEdgeModifier(modifiers []dual.EdgeModifier) {
	m.fanOut(func(u *Unit) {
		u.muUnit.Lock()
		if u.isActive {
			u.dualUnit.LoadEdgeModifier(modifiers)
		}
		u.muUnit.Unlock()
	})
}

// Units returns the module's units in tree order (leaves first, fusions
// appended), for inspection between decodes.
func (m *Module) Units() []*Unit {
	return append([]*Unit(nil), m.units...)
}
