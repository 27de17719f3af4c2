package parallel

import "fmt"

// Fuse promotes the fusion unit at parentIndex: its two children must both
// be active and unfused (spec.md §4.4 "Fusion"). It locks the children in
// ascending index order, then the parent last, matching the fixed tree
// order the concurrency model requires to avoid deadlock against
// ancestor-walk reads that lock child-first (spec.md §5 "Shared
// resources").
func (m *Module) Fuse(parentIndex int) error {
	if parentIndex < 0 || parentIndex >= len(m.units) {
		return fmt.Errorf("%w: %d", ErrUnknownUnit, parentIndex)
	}
	p := m.units[parentIndex]
	if p.children == nil {
		return fmt.Errorf("%w: %d", ErrFusionNotAUnit, parentIndex)
	}
	leftIdx, rightIdx := p.children[0], p.children[1]
	first, second := m.units[leftIdx], m.units[rightIdx]
	if rightIdx < leftIdx {
		first, second = second, first
	}

	first.muUnit.Lock()
	defer first.muUnit.Unlock()
	second.muUnit.Lock()
	defer second.muUnit.Unlock()
	p.muUnit.Lock()
	defer p.muUnit.Unlock()

	left, right := m.units[leftIdx], m.units[rightIdx]
	if !left.isActive || !right.isActive || left.isFused || right.isFused {
		return fmt.Errorf("%w: unit %d", ErrFusionPrecondition, parentIndex)
	}

	p.dualUnit.AbsorbChild(left.dualUnit)
	p.dualUnit.AbsorbChild(right.dualUnit)

	left.isFused = true
	right.isFused = true
	left.isActive = false
	right.isActive = false
	p.isActive = true
	return nil
}
