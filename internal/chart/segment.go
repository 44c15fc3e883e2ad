package chart

import (
	"github.com/gogpu/unwrap/internal/mesh"
	"github.com/gogpu/unwrap/internal/seam"
)

// Segment assigns a chart id to every triangle of m and returns the chart count.
// Triangles are connected when they share an original edge that is not a seam.
func Segment(m *mesh.Mesh, seams *seam.Set) int {
	for i := range m.Triangles {
		m.Triangles[i].Chart = -1
	}
	adj := m.BuildAdjacency()

	chartID := 0
	var stack []int
	for i := range m.Triangles {
		if m.Triangles[i].Chart >= 0 {
			continue
		}
		m.Triangles[i].Chart = chartID
		stack = append(stack[:0], i)

		for len(stack) > 0 {
			ti := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			t := &m.Triangles[ti]

			for _, c := range t.Corners {
				for _, ni := range adj.At(c.Orig) {
					n := &m.Triangles[ni]
					if ni == ti || n.Chart >= 0 {
						continue
					}
					if !connected(t, n, seams) {
						continue
					}
					n.Chart = chartID
					stack = append(stack, ni)
				}
			}
		}
		chartID++
	}
	return chartID
}

// connected reports whether t and n share an original edge that is not a seam.
func connected(t, n *mesh.Triangle, seams *seam.Set) bool {
	for i := 0; i < 3; i++ {
		e := t.OrigEdge(i)
		for j := 0; j < 3; j++ {
			if e == n.OrigEdge(j) && !seams.Has(e) {
				return true
			}
		}
	}
	return false
}
