package lscm

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/gogpu/unwrap/internal/geom"
	"github.com/gogpu/unwrap/internal/mesh"
)

// Pin seeds every chart with its projection onto the chart's dominant plane and
// locks two vertices per chart: the ones with the smallest and the largest u.
// charts lists the vertex indices of each chart, see mesh.ChartVertices.
// Pin returns the number of locked vertices.
func Pin(m *mesh.Mesh, charts [][]int) int {
	for i := range m.Vertices {
		m.Vertices[i].Locked = false
	}
	locked := 0
	for _, verts := range charts {
		if len(verts) == 0 {
			continue
		}
		u, v := projectionAxes(m, verts)

		vMin, vMax := verts[0], verts[0]
		uMin, uMax := 0.0, 0.0
		for k, vi := range verts {
			p := m.Vertices[vi].Pos
			uv := geom.V2(r3.Dot(p, u), r3.Dot(p, v))
			m.Vertices[vi].UV = uv
			if k == 0 || uv.X < uMin {
				uMin, vMin = uv.X, vi
			}
			if k == 0 || uv.X > uMax {
				uMax, vMax = uv.X, vi
			}
		}
		if vMax == vMin && len(verts) > 1 {
			for _, vi := range verts {
				if vi != vMin {
					vMax = vi
					break
				}
			}
		}

		m.Vertices[vMin].Locked = true
		locked++
		if vMax != vMin {
			m.Vertices[vMax].Locked = true
			locked++
		}
	}
	return locked
}

// projectionAxes picks the plane spanned by the two largest bounding box extents
// of the chart. u runs along the larger of the two.
func projectionAxes(m *mesh.Mesh, verts []int) (u, v r3.Vec) {
	lo := m.Vertices[verts[0]].Pos
	hi := lo
	for _, vi := range verts[1:] {
		p := m.Vertices[vi].Pos
		lo = r3.Vec{X: min(lo.X, p.X), Y: min(lo.Y, p.Y), Z: min(lo.Z, p.Z)}
		hi = r3.Vec{X: max(hi.X, p.X), Y: max(hi.Y, p.Y), Z: max(hi.Z, p.Z)}
	}
	d := r3.Sub(hi, lo)

	ex := r3.Vec{X: 1}
	ey := r3.Vec{Y: 1}
	ez := r3.Vec{Z: 1}

	switch {
	case d.X < d.Y && d.X < d.Z:
		if d.Y > d.Z {
			return ey, ez
		}
		return ez, ey
	case d.Y < d.X && d.Y < d.Z:
		if d.X > d.Z {
			return ex, ez
		}
		return ez, ex
	default:
		if d.X > d.Y {
			return ex, ey
		}
		return ey, ex
	}
}
