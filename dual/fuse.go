package dual

// AbsorbChild merges child's local graph — vertices, edges, and registered
// dual nodes — into u. This is the boundary-merge step of fusion (spec.md
// §4.4 point 2): once a parent absorbs both of its children, every vertex
// the children used to own or mirror becomes known to and reachable from u,
// so a dual node that used to span a former boundary can be manipulated as
// a single entity through u alone.
//
// Vertices already known to u keep u's own virtual/real status unless
// child knows the vertex as real, in which case u's copy is upgraded to
// real too — a vertex never regresses from real to virtual by absorption.
// Edges are deduplicated by GlobalIndex, since the hardware-faithful
// partitioning policy may have duplicated a boundary edge into both
// children before fusion.
func (u *Unit) AbsorbChild(child *Unit) {
	for v, clv := range child.graph.vertices {
		if ulv, ok := u.graph.vertices[v]; ok {
			if !clv.isVirtual {
				ulv.isVirtual = false
			}
		} else {
			u.graph.vertices[v] = &localVertex{isVirtual: clv.isVirtual}
		}
	}
	for _, e := range child.graph.edges {
		if u.graph.hasEdge(e.GlobalIndex) {
			continue
		}
		u.graph.addEdge(e.From, e.To, e.Weight, e.GlobalIndex)
	}
	for n := range child.nodes {
		for _, v := range n.Vertices {
			if lv, ok := u.graph.vertices[v]; ok {
				lv.node = n
			}
		}
		u.nodes[n] = struct{}{}
		if bound, ok := child.lastBound[n]; ok {
			u.lastBound[n] = bound
		}
	}
}
