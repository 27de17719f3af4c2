package parallel

// Snapshot walks every unit and merges their per-unit dual.Unit.Snapshot
// documents into one JSON-shaped document (spec.md §4.4 "Snapshot": "a
// deep structural merge keyed by field name; arrays concatenate, maps
// union"). Each unit's "nodes" entries are tagged with unit_index so the
// visualizer can still tell which unit a node came from after the merge,
// and a "units" array carries each unit's lifecycle flags and ranges.
func (m *Module) Snapshot(abbrev bool) map[string]any {
	merged := map[string]any{}
	for _, u := range m.units {
		u.muUnit.RLock()
		doc := u.dualUnit.Snapshot(abbrev)
		active, fused := u.isActive, u.isFused
		whole, owning := u.wholeRange, u.owningRange
		u.muUnit.RUnlock()

		if nodes, ok := doc["nodes"].([]map[string]any); ok {
			for _, n := range nodes {
				n["unit_index"] = u.index
			}
		}
		doc["units"] = []map[string]any{{
			"unit_index":   u.index,
			"is_active":    active,
			"is_fused":     fused,
			"whole_range":  [2]int{whole.Start, whole.End},
			"owning_range": [2]int{owning.Start, owning.End},
		}}

		mergeSnapshotDoc(merged, doc)
	}
	return merged
}

func mergeSnapshotDoc(dst, src map[string]any) {
	for k, v := range src {
		existing, ok := dst[k]
		if !ok {
			dst[k] = v
			continue
		}
		switch e := existing.(type) {
		case []map[string]any:
			if sv, ok := v.([]map[string]any); ok {
				dst[k] = append(e, sv...)
				continue
			}
		case map[string]any:
			if sv, ok := v.(map[string]any); ok {
				mergeSnapshotDoc(e, sv)
				continue
			}
		}
		// Scalars (e.g. vertex_num) are the same value on every unit; last
		// write is as good as any.
		dst[k] = v
	}
}
