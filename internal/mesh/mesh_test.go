package mesh

import (
	"slices"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

// quadStrip returns two unit quads sharing the edge 1-4:
//
//	3---4---5
//	|   |   |
//	0---1---2
func quadStrip() *Mesh {
	pos := []r3.Vec{
		{X: 0}, {X: 1}, {X: 2},
		{X: 0, Y: 1}, {X: 1, Y: 1}, {X: 2, Y: 1},
	}
	m := New(pos, 2)
	m.AddFace(0, []int{0, 1, 4, 3}, [][3]int{{3, 0, 1}, {1, 2, 3}})
	m.AddFace(1, []int{1, 2, 5, 4}, [][3]int{{3, 0, 1}, {1, 2, 3}})
	return m
}

func TestEdge(t *testing.T) {
	e := MakeEdge(7, 3)
	if e != (Edge{Lo: 3, Hi: 7}) {
		t.Errorf("MakeEdge(7, 3) = %+v", e)
	}
	if MakeEdge(3, 7) != e {
		t.Error("MakeEdge is not symmetric")
	}
	if !e.Has(3) || !e.Has(7) || e.Has(5) {
		t.Error("Has mismatch")
	}
	if e.Other(3) != 7 || e.Other(7) != 3 {
		t.Error("Other mismatch")
	}
}

func TestAddFace(t *testing.T) {
	m := New(make([]r3.Vec, 4), 3)
	if n := m.AddFace(0, []int{0, 1, 2}, [][3]int{{0, 1, 2}}); n != 1 {
		t.Errorf("AddFace(triangle) = %d, want 1", n)
	}
	// A quad folded onto a repeated vertex keeps only its valid half.
	if n := m.AddFace(1, []int{0, 2, 2, 3}, [][3]int{{0, 1, 2}, {0, 2, 3}}); n != 1 {
		t.Errorf("AddFace(repeated vertex) = %d, want 1", n)
	}
	if n := m.AddFace(2, []int{1, 1, 1}, [][3]int{{0, 1, 2}}); n != 0 {
		t.Errorf("AddFace(collapsed) = %d, want 0", n)
	}
	if len(m.Triangles) != 2 {
		t.Fatalf("len(Triangles) = %d, want 2", len(m.Triangles))
	}
	if m.Faces[2] != nil {
		t.Errorf("Faces[2] = %v, want nil for a skipped face", m.Faces[2])
	}

	tri := m.Triangles[1]
	if tri.Face != 1 || tri.Chart != -1 {
		t.Errorf("triangle = %+v", tri)
	}
	want := [3]Corner{{V: 0, FaceSlot: 0, Orig: 0}, {V: 2, FaceSlot: 2, Orig: 2}, {V: 3, FaceSlot: 3, Orig: 3}}
	if tri.Corners != want {
		t.Errorf("corners = %+v, want %+v", tri.Corners, want)
	}
}

func TestDuplicate(t *testing.T) {
	m := New([]r3.Vec{{X: 1, Y: 2, Z: 3}}, 0)
	m.Vertices[0].Locked = true
	d := m.Duplicate(0)
	if d != 1 || len(m.Vertices) != 2 {
		t.Fatalf("Duplicate() = %d, len = %d", d, len(m.Vertices))
	}
	if m.Vertices[1] != m.Vertices[0] {
		t.Errorf("copy = %+v, want %+v", m.Vertices[1], m.Vertices[0])
	}
	if m.OrigCount() != 1 {
		t.Errorf("OrigCount() = %d, want 1", m.OrigCount())
	}
}

func TestTriangleEdges(t *testing.T) {
	m := quadStrip()
	a, b := &m.Triangles[1], &m.Triangles[2]
	if !a.HasDirectedEdge(1, 4) || a.HasDirectedEdge(4, 1) {
		t.Error("HasDirectedEdge mismatch on triangle 1")
	}
	if !b.HasDirectedEdge(4, 1) {
		t.Error("HasDirectedEdge(4, 1) = false on triangle 2")
	}
	e, ok := a.SharedEdge(b)
	if !ok || e != MakeEdge(1, 4) {
		t.Errorf("SharedEdge() = %+v, %v", e, ok)
	}
	if _, ok := m.Triangles[0].SharedEdge(&m.Triangles[3]); ok {
		t.Error("far triangles share an edge")
	}
	if !a.HasOrig(4) || a.HasOrig(2) {
		t.Error("HasOrig mismatch")
	}
}

func TestAdjacency(t *testing.T) {
	m := quadStrip()
	adj := m.BuildAdjacency()

	if got := adj.At(1); !slices.Equal(got, []int{0, 1, 2}) {
		t.Errorf("At(1) = %v", got)
	}
	if adj.At(-1) != nil || adj.At(99) != nil {
		t.Error("At out of range should be nil")
	}
	if got := adj.EdgeTriangles(m, 4, 1); !slices.Equal(got, []int{1, 2}) {
		t.Errorf("EdgeTriangles(4, 1) = %v", got)
	}
	if got := adj.ForwardTriangles(m, 1, 4); !slices.Equal(got, []int{1}) {
		t.Errorf("ForwardTriangles(1, 4) = %v", got)
	}

	if n, ok := adj.Across(m, 1, MakeEdge(1, 4)); !ok || n != 2 {
		t.Errorf("Across(1) = %d, %v; want 2, true", n, ok)
	}
	if n, ok := adj.Across(m, 2, MakeEdge(1, 4)); !ok || n != 1 {
		t.Errorf("Across(2) = %d, %v; want 1, true", n, ok)
	}
	if _, ok := adj.Across(m, 0, MakeEdge(0, 1)); ok {
		t.Error("Across a border edge succeeded")
	}
}

func TestAdjacencyUsesOriginalIndices(t *testing.T) {
	m := quadStrip()
	d := m.Duplicate(4)
	m.Triangles[2].Corners[0].V = d

	adj := m.BuildAdjacency()
	if got := adj.EdgeTriangles(m, 1, 4); !slices.Equal(got, []int{1, 2}) {
		t.Errorf("EdgeTriangles after split = %v", got)
	}
}

func TestChartVertices(t *testing.T) {
	m := quadStrip()
	for i := range m.Triangles {
		m.Triangles[i].Chart = i / 2
	}
	got := m.ChartVertices(2)
	want := [][]int{{3, 0, 1, 4}, {4, 1, 2, 5}}
	for c := range want {
		if !slices.Equal(got[c], want[c]) {
			t.Errorf("chart %d = %v, want %v", c, got[c], want[c])
		}
	}
}
