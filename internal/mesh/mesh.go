// Package mesh is the working copy of a shape used by the unwrap pipeline.
//
// Vertices live in an append-only arena and triangle corners refer to them by
// index, so duplicating a vertex never invalidates an existing index. Every corner
// also remembers the vertex it referenced when the mesh was ingested; topology
// questions (adjacency, seam membership) are always answered on those original
// indices, never on the duplicates created while splitting.
package mesh

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/gogpu/unwrap/internal/geom"
)

// Vertex is one entry of the vertex arena.
type Vertex struct {
	Pos    r3.Vec
	UV     geom.Vec2
	Locked bool // excluded from the solve's unknowns
}

// Corner is one corner of a triangle.
type Corner struct {
	V        int // current vertex index, rewritten by splitting
	FaceSlot int // position of the corner in its source face
	Orig     int // vertex index at ingestion time
}

// Triangle is a piece of exactly one source face.
type Triangle struct {
	Corners [3]Corner
	Face    int
	Chart   int // -1 until segmented
}

// Mesh holds the vertex arena, the triangles and the source face loops.
type Mesh struct {
	Vertices  []Vertex
	Triangles []Triangle

	// Faces holds the original vertex loop of every ingested source face,
	// indexed by source face. Skipped faces stay nil.
	Faces [][]int

	origCount int
}

// New creates a mesh whose arena starts with one vertex per position.
// faceCount sizes the source face table.
func New(positions []r3.Vec, faceCount int) *Mesh {
	m := &Mesh{
		Vertices:  make([]Vertex, len(positions)),
		Faces:     make([][]int, faceCount),
		origCount: len(positions),
	}
	for i, p := range positions {
		m.Vertices[i] = Vertex{Pos: p}
	}
	return m
}

// OrigCount returns the number of vertices present before any split.
func (m *Mesh) OrigCount() int {
	return m.origCount
}

// AddFace records a source face and appends the triangles cut from it.
// tris holds face-local slot triples into indices. Triangles that touch the same
// vertex twice are dropped. AddFace returns the number of triangles kept.
func (m *Mesh) AddFace(face int, indices []int, tris [][3]int) int {
	kept := 0
	for _, tri := range tris {
		a, b, c := indices[tri[0]], indices[tri[1]], indices[tri[2]]
		if a == b || b == c || a == c {
			continue
		}
		t := Triangle{Face: face, Chart: -1}
		for k, slot := range tri {
			v := indices[slot]
			t.Corners[k] = Corner{V: v, FaceSlot: slot, Orig: v}
		}
		m.Triangles = append(m.Triangles, t)
		kept++
	}
	if kept > 0 {
		m.Faces[face] = append([]int(nil), indices...)
	}
	return kept
}

// Duplicate appends a copy of vertex v and returns the new index.
func (m *Mesh) Duplicate(v int) int {
	m.Vertices = append(m.Vertices, m.Vertices[v])
	return len(m.Vertices) - 1
}

// HasOrig reports whether the triangle has a corner on original vertex v.
func (t *Triangle) HasOrig(v int) bool {
	return t.Corners[0].Orig == v || t.Corners[1].Orig == v || t.Corners[2].Orig == v
}

// OrigEdge returns the canonical original edge running from corner i to corner i+1.
func (t *Triangle) OrigEdge(i int) Edge {
	return MakeEdge(t.Corners[i].Orig, t.Corners[(i+1)%3].Orig)
}

// HasDirectedEdge reports whether the triangle walks a -> b along one of its sides.
func (t *Triangle) HasDirectedEdge(a, b int) bool {
	for i := 0; i < 3; i++ {
		if t.Corners[i].Orig == a && t.Corners[(i+1)%3].Orig == b {
			return true
		}
	}
	return false
}

// SharedEdge returns the first original edge of t that o also has.
func (t *Triangle) SharedEdge(o *Triangle) (Edge, bool) {
	for i := 0; i < 3; i++ {
		e := t.OrigEdge(i)
		for j := 0; j < 3; j++ {
			if e == o.OrigEdge(j) {
				return e, true
			}
		}
	}
	return Edge{}, false
}

// ChartVertices lists, per chart, the distinct vertex indices its corners use,
// in first-seen order. Triangles without a chart are ignored.
func (m *Mesh) ChartVertices(chartCount int) [][]int {
	out := make([][]int, chartCount)
	seen := make(map[[2]int]struct{})
	for i := range m.Triangles {
		t := &m.Triangles[i]
		if t.Chart < 0 || t.Chart >= chartCount {
			continue
		}
		for _, c := range t.Corners {
			key := [2]int{t.Chart, c.V}
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			out[t.Chart] = append(out[t.Chart], c.V)
		}
	}
	return out
}
