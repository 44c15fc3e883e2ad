package lscm

import (
	"github.com/gogpu/unwrap/internal/mesh"
)

// entry is one non-zero coefficient of a row.
type entry struct {
	col int
	val float64
}

// System is the sparse row-major least squares system A x ~ 0.
type System struct {
	Cols int
	rows [][]entry
}

// NewSystem creates an empty system with cols unknowns.
func NewSystem(cols int) *System {
	return &System{Cols: cols}
}

// Rows returns the number of rows added so far.
func (s *System) Rows() int {
	return len(s.rows)
}

// Coefficients returns row i as a dense slice. Intended for inspection and tests.
func (s *System) Coefficients(i int) []float64 {
	out := make([]float64, s.Cols)
	for _, e := range s.rows[i] {
		out[e.col] += e.val
	}
	return out
}

func (s *System) addRow(r []entry) {
	s.rows = append(s.rows, r)
}

// AddTriangle appends the two conformal rows of the triangle (v0, v1, v2).
// Degenerate triangles add nothing and report false.
func (s *System) AddTriangle(m *mesh.Mesh, v0, v1, v2 int) bool {
	_, z1, z2, ok := ProjectTriangle(m.Vertices[v0].Pos, m.Vertices[v1].Pos, m.Vertices[v2].Pos)
	if !ok {
		return false
	}
	a := z1.X
	c := z2.X
	d := z2.Y

	u0, w0 := 2*v0, 2*v0+1
	u1, w1 := 2*v1, 2*v1+1
	u2, w2 := 2*v2, 2*v2+1

	// Real part.
	s.addRow([]entry{
		{u0, -a + c},
		{w0, -d},
		{u1, -c},
		{w1, d},
		{u2, a},
	})
	// Imaginary part.
	s.addRow([]entry{
		{u0, d},
		{w0, -a + c},
		{u1, -d},
		{w1, -c},
		{w2, a},
	})
	return true
}

// Build assembles the system of every triangle of m.
// It returns the system and the number of degenerate triangles left out.
func Build(m *mesh.Mesh) (*System, int) {
	s := NewSystem(2 * len(m.Vertices))
	skipped := 0
	for i := range m.Triangles {
		c := m.Triangles[i].Corners
		if !s.AddTriangle(m, c[0].V, c[1].V, c[2].V) {
			skipped++
		}
	}
	return s, skipped
}
