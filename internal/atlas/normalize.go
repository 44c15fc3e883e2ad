package atlas

import (
	"github.com/gogpu/unwrap/internal/geom"
	"github.com/gogpu/unwrap/internal/mesh"
)

// Normalize translates and uniformly scales the UVs of every vertex used by a
// triangle so their bounding box starts at the origin and its longer side is 1.
// A box without extent is left alone. Normalize returns the box before scaling.
func Normalize(m *mesh.Mesh) geom.Box {
	used := make([]bool, len(m.Vertices))
	box := geom.EmptyBox()
	for i := range m.Triangles {
		for _, c := range m.Triangles[i].Corners {
			used[c.V] = true
			box = box.Extend(m.Vertices[c.V].UV)
		}
	}
	if box.IsEmpty() {
		return box
	}
	l := max(box.Width(), box.Height())
	if l < zeroEpsilon {
		return box
	}
	for i := range m.Vertices {
		if used[i] {
			m.Vertices[i].UV = m.Vertices[i].UV.Sub(box.Min).Mul(1 / l)
		}
	}
	return box
}
