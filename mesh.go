package unwrap

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/gogpu/unwrap/internal/mesh"
)

// Mesh is the read-only view of a polygon mesh that Unwrap consumes.
type Mesh interface {
	NumVertices() int
	Vertex(i int) r3.Vec

	NumFaces() int
	// Face returns the ordered vertex indices of face i.
	Face(i int) []int

	NumEdges() int
	// Edge returns the two vertex indices joined by edge i. Seams are given as
	// edge indices.
	Edge(i int) (v0, v1 int)
}

// UVLayers receives the computed UVs.
type UVLayers interface {
	NumUVLayers() int
	// AppendUVLayer adds an empty layer and returns its index.
	AppendUVLayer() int
	// SetFaceUV stores the UV of one face corner.
	SetFaceUV(layer, face, corner int, uv UV)
}

// FaceSelection is implemented by meshes that can restrict an unwrap to a
// subset of their faces. See WithSelectedFacesOnly.
type FaceSelection interface {
	FaceActive(i int) bool
}

// UV is a texture coordinate.
type UV struct {
	U, V float64
}

// PolyMesh is an in-memory polygon mesh implementing Mesh, UVLayers and
// FaceSelection.
type PolyMesh struct {
	Positions []r3.Vec
	Faces     [][]int

	// Edges holds the unique undirected edges in first-seen face order.
	Edges [][2]int

	// UVs holds one UV per face corner, indexed by layer, face and corner.
	UVs [][][]UV

	// Selected marks active faces. Faces past its end are inactive.
	Selected []bool

	edgeIndex map[mesh.Edge]int
}

// NewPolyMesh creates a mesh and derives its edge list from the faces.
func NewPolyMesh(positions []r3.Vec, faces [][]int) *PolyMesh {
	m := &PolyMesh{Positions: positions, Faces: faces}
	m.BuildEdges()
	return m
}

// BuildEdges rebuilds Edges from Faces. Edge ids follow the order in which the
// faces first walk each edge.
func (m *PolyMesh) BuildEdges() {
	m.Edges = m.Edges[:0]
	m.edgeIndex = make(map[mesh.Edge]int)
	for _, f := range m.Faces {
		for k := range f {
			a, b := f[k], f[(k+1)%len(f)]
			if a == b || len(f) < 2 {
				continue
			}
			e := mesh.MakeEdge(a, b)
			if _, ok := m.edgeIndex[e]; ok {
				continue
			}
			m.edgeIndex[e] = len(m.Edges)
			m.Edges = append(m.Edges, [2]int{e.Lo, e.Hi})
		}
	}
}

// EdgeID returns the id of the edge joining a and b.
func (m *PolyMesh) EdgeID(a, b int) (int, bool) {
	if m.edgeIndex == nil {
		m.BuildEdges()
	}
	id, ok := m.edgeIndex[mesh.MakeEdge(a, b)]
	return id, ok
}

// FaceUV returns the UV of a face corner in the given layer.
func (m *PolyMesh) FaceUV(layer, face, corner int) UV {
	return m.UVs[layer][face][corner]
}

func (m *PolyMesh) NumVertices() int      { return len(m.Positions) }
func (m *PolyMesh) Vertex(i int) r3.Vec   { return m.Positions[i] }
func (m *PolyMesh) NumFaces() int         { return len(m.Faces) }
func (m *PolyMesh) Face(i int) []int      { return m.Faces[i] }
func (m *PolyMesh) NumEdges() int         { return len(m.Edges) }
func (m *PolyMesh) NumUVLayers() int      { return len(m.UVs) }
func (m *PolyMesh) FaceActive(i int) bool { return i < len(m.Selected) && m.Selected[i] }

func (m *PolyMesh) Edge(i int) (v0, v1 int) {
	return m.Edges[i][0], m.Edges[i][1]
}

func (m *PolyMesh) AppendUVLayer() int {
	layer := make([][]UV, len(m.Faces))
	for i, f := range m.Faces {
		layer[i] = make([]UV, len(f))
	}
	m.UVs = append(m.UVs, layer)
	return len(m.UVs) - 1
}

func (m *PolyMesh) SetFaceUV(layer, face, corner int, uv UV) {
	m.UVs[layer][face][corner] = uv
}
