package dual

// localVertex is this unit's bookkeeping for one vertex it can see — either
// one it owns, or a mirrored interface image of an ancestor's vertex.
type localVertex struct {
	isVirtual bool
	// node is the dual node currently covering this vertex, or nil.
	node *Node
}

// localGraph is the adjacency structure a Unit holds over the vertices it
// can see: its own OwningRange plus every mirrored interface vertex, and
// after fusion everything absorbed from its children. Vertex indices
// are global (dense in [0, VertexNum)); only entries this unit actually
// knows about are populated.
type localGraph struct {
	vertexNum int
	vertices  map[VertexIndex]*localVertex
	edges     []Edge
	// adjacency[v] lists indices into edges incident to v.
	adjacency map[VertexIndex][]EdgeIndex
	// knownEdges tracks which GlobalIndex values are already present, so
	// absorbing two children that both duplicated a boundary edge (the
	// hardware-faithful policy) does not double-count it.
	knownEdges map[EdgeIndex]struct{}
}

func newLocalGraph(init PartitionedInitializer) *localGraph {
	g := &localGraph{
		vertexNum:  init.VertexNum,
		vertices:   make(map[VertexIndex]*localVertex),
		adjacency:  make(map[VertexIndex][]EdgeIndex),
		knownEdges: make(map[EdgeIndex]struct{}),
	}
	for v := init.OwningRange.Start; v < init.OwningRange.End; v++ {
		g.vertices[v] = &localVertex{}
	}
	for _, v := range init.VirtualVertices {
		if lv, ok := g.vertices[v]; ok {
			lv.isVirtual = true
		}
	}
	for _, iface := range init.Interfaces {
		for _, iv := range iface.Vertices {
			if _, ok := g.vertices[iv.Vertex]; !ok {
				g.vertices[iv.Vertex] = &localVertex{isVirtual: iv.IsVirtual}
			}
		}
	}
	for _, e := range init.WeightedEdges {
		g.addEdge(e.From, e.To, e.Weight, e.GlobalIndex)
	}
	return g
}

func (g *localGraph) addEdge(from, to VertexIndex, w Weight, globalIndex EdgeIndex) {
	idx := len(g.edges)
	g.edges = append(g.edges, Edge{From: from, To: to, Weight: w, GlobalIndex: globalIndex})
	g.adjacency[from] = append(g.adjacency[from], idx)
	g.adjacency[to] = append(g.adjacency[to], idx)
	g.knownEdges[globalIndex] = struct{}{}
}

func (g *localGraph) hasEdge(globalIndex EdgeIndex) bool {
	_, ok := g.knownEdges[globalIndex]
	return ok
}

// otherEndpoint returns the endpoint of edge e other than v.
func (e Edge) otherEndpoint(v VertexIndex) VertexIndex {
	if e.From == v {
		return e.To
	}
	return e.From
}

func (g *localGraph) knowsVertex(v VertexIndex) bool {
	_, ok := g.vertices[v]
	return ok
}

// reset clears per-node coverage but preserves the graph (clear()).
func (g *localGraph) reset() {
	for _, lv := range g.vertices {
		lv.node = nil
	}
}
