package mesh

// Adjacency maps an original vertex index to the triangles incident on it.
// It is a snapshot: build one at the start of a phase and drop it afterwards.
type Adjacency [][]int

// BuildAdjacency indexes every triangle under the original vertex of each corner.
func (m *Mesh) BuildAdjacency() Adjacency {
	adj := make(Adjacency, m.origCount)
	for i := range m.Triangles {
		for _, c := range m.Triangles[i].Corners {
			adj[c.Orig] = append(adj[c.Orig], i)
		}
	}
	return adj
}

// At returns the triangles incident on original vertex v.
func (adj Adjacency) At(v int) []int {
	if v < 0 || v >= len(adj) {
		return nil
	}
	return adj[v]
}

// EdgeTriangles returns the triangles having the edge a-b in either direction.
func (adj Adjacency) EdgeTriangles(m *Mesh, a, b int) []int {
	var out []int
	e := MakeEdge(a, b)
	for _, ti := range adj.At(a) {
		t := &m.Triangles[ti]
		for i := 0; i < 3; i++ {
			if t.OrigEdge(i) == e {
				out = append(out, ti)
				break
			}
		}
	}
	return out
}

// ForwardTriangles returns the triangles walking a -> b along one of their sides.
func (adj Adjacency) ForwardTriangles(m *Mesh, a, b int) []int {
	var out []int
	for _, ti := range adj.At(a) {
		if m.Triangles[ti].HasDirectedEdge(a, b) {
			out = append(out, ti)
		}
	}
	return out
}

// Across returns the triangle on the other side of edge e from triangle ti when
// exactly two triangles share e.
func (adj Adjacency) Across(m *Mesh, ti int, e Edge) (int, bool) {
	tris := adj.EdgeTriangles(m, e.Lo, e.Hi)
	if len(tris) != 2 {
		return -1, false
	}
	switch ti {
	case tris[0]:
		return tris[1], true
	case tris[1]:
		return tris[0], true
	}
	return -1, false
}
