package dual

import "sort"

// Snapshot produces an observational JSON-shaped document describing this
// unit's current state (spec.md §4.2 "snapshot"). Snapshot failures never
// corrupt unit state (spec.md §7): this function only reads.
func (u *Unit) Snapshot(abbrev bool) map[string]any {
	nodes := make([]map[string]any, 0, len(u.nodes))
	reps := make([]*Node, 0, len(u.nodes))
	for n := range u.nodes {
		reps = append(reps, n)
	}
	sort.Slice(reps, func(i, j int) bool { return reps[i].RepresentativeVertex < reps[j].RepresentativeVertex })
	for _, n := range reps {
		entry := map[string]any{
			"representative_vertex": n.RepresentativeVertex,
			"grow_state":            n.GrowState.String(),
			"dual_variable":         n.Dual,
		}
		if !abbrev {
			entry["vertices"] = append([]VertexIndex(nil), n.Vertices...)
		}
		nodes = append(nodes, entry)
	}
	doc := map[string]any{
		"vertex_num": u.graph.vertexNum,
		"nodes":      nodes,
	}
	if !abbrev {
		edges := make([]map[string]any, len(u.graph.edges))
		for i, e := range u.graph.edges {
			edges[i] = map[string]any{
				"from":         e.From,
				"to":           e.To,
				"weight":       e.Weight,
				"global_index": e.GlobalIndex,
			}
		}
		doc["edges"] = edges
	}
	return doc
}
