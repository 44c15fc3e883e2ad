// Package atlas arranges solved charts side by side in UV space and normalizes
// the result into the unit square.
//
// Placement is a bottom-left heuristic over a list of candidate points. Charts
// are placed largest first; each placed box contributes its lower-right and
// upper-left corners as new candidates. Every chart box is grown by a margin
// before placement so neighbouring charts never touch.
package atlas

import (
	"math"
	"sort"

	"github.com/gogpu/unwrap/internal/geom"
	"github.com/gogpu/unwrap/internal/mesh"
)

// Layout constants, all relative to the estimated atlas width.
const (
	// WidthAreaFactor scales the square root of the total chart area.
	WidthAreaFactor = 1.5

	// WidthChartFactor scales the widest chart.
	WidthChartFactor = 1.2

	// MarginFactor is the gap kept around every chart.
	MarginFactor = 0.01

	// RowToleranceFactor is the distance below which two candidate heights
	// count as the same row.
	RowToleranceFactor = 0.05
)

const zeroEpsilon = 1e-12

// Stats describes one packing run.
type Stats struct {
	Width   float64 // estimated atlas width
	Margin  float64
	Placed  int
	Skipped int // charts with an empty box

	// Boxes holds the placed box of every chart, margin included, indexed by
	// chart id. Skipped charts have an empty box.
	Boxes []geom.Box
}

// chartBox is the solved extent of one chart.
type chartBox struct {
	id   int
	box  geom.Box
	size geom.Vec2
	area float64
}

// Bounds returns the UV bounding box of every chart.
func Bounds(m *mesh.Mesh, chartCount int) []geom.Box {
	boxes := make([]geom.Box, chartCount)
	for i := range boxes {
		boxes[i] = geom.EmptyBox()
	}
	for i := range m.Triangles {
		t := &m.Triangles[i]
		if t.Chart < 0 || t.Chart >= chartCount {
			continue
		}
		for _, c := range t.Corners {
			boxes[t.Chart] = boxes[t.Chart].Extend(m.Vertices[c.V].UV)
		}
	}
	return boxes
}

// Pack moves every chart of m to its own place in UV space.
// Nothing happens for fewer than two charts or when all charts have zero area.
func Pack(m *mesh.Mesh, chartCount int) Stats {
	var st Stats
	if chartCount <= 1 {
		return st
	}

	charts := make([]chartBox, chartCount)
	total, widest := 0.0, 0.0
	for id, b := range Bounds(m, chartCount) {
		cb := chartBox{id: id}
		if !b.IsEmpty() {
			cb.box = b
			cb.size = b.Size()
			cb.area = cb.size.X * cb.size.Y
		}
		charts[id] = cb
		total += cb.area
		widest = math.Max(widest, cb.size.X)
	}
	if math.Abs(total) < zeroEpsilon {
		return st
	}

	sort.SliceStable(charts, func(i, j int) bool {
		return charts[i].area > charts[j].area
	})

	st.Width = math.Max(WidthAreaFactor*math.Sqrt(total), WidthChartFactor*widest)
	st.Margin = MarginFactor * st.Width
	rowTol := RowToleranceFactor * st.Width
	st.Boxes = make([]geom.Box, chartCount)
	for i := range st.Boxes {
		st.Boxes[i] = geom.EmptyBox()
	}

	p := packer{width: st.Width, rowTol: rowTol, points: []geom.Vec2{{}}}
	offsets := make([]geom.Vec2, chartCount)
	for _, cb := range charts {
		if math.Abs(cb.size.X) < zeroEpsilon && math.Abs(cb.size.Y) < zeroEpsilon {
			st.Skipped++
			continue
		}
		size := cb.size.Add(geom.V2(st.Margin, st.Margin))
		placed := p.place(size)
		st.Boxes[cb.id] = placed
		offsets[cb.id] = placed.Min.Sub(cb.box.Min)
		st.Placed++
	}

	moved := make([]bool, len(m.Vertices))
	for i := range m.Triangles {
		t := &m.Triangles[i]
		if t.Chart < 0 || t.Chart >= chartCount {
			continue
		}
		for _, c := range t.Corners {
			if moved[c.V] {
				continue
			}
			moved[c.V] = true
			m.Vertices[c.V].UV = m.Vertices[c.V].UV.Add(offsets[t.Chart])
		}
	}
	return st
}

// packer holds the bottom-left placement state.
type packer struct {
	width  float64
	rowTol float64
	points []geom.Vec2
	boxes  []geom.Box
	maxY   float64
}

// place puts a box of the given size at the lowest, then leftmost, free
// candidate point and returns the placed box.
func (p *packer) place(size geom.Vec2) geom.Box {
	best := -1
	for i, pt := range p.points {
		if !p.fits(pt, size) {
			continue
		}
		if best < 0 || p.better(pt, p.points[best]) {
			best = i
		}
	}
	if best < 0 {
		p.points = append(p.points, geom.V2(0, p.maxY))
		best = len(p.points) - 1
	}

	at := p.points[best]
	box := geom.Box{Min: at, Max: at.Add(size)}
	p.points = append(p.points[:best], p.points[best+1:]...)
	p.points = append(p.points, geom.V2(box.Max.X, box.Min.Y), geom.V2(box.Min.X, box.Max.Y))
	p.boxes = append(p.boxes, box)
	p.maxY = math.Max(p.maxY, box.Max.Y)
	return box
}

// fits reports whether a box of size placed at pt stays inside the width and
// clears every placed box.
func (p *packer) fits(pt, size geom.Vec2) bool {
	if pt.X+size.X > p.width {
		return false
	}
	box := geom.Box{Min: pt, Max: pt.Add(size)}
	for _, b := range p.boxes {
		if box.Overlaps(b) {
			return false
		}
	}
	return true
}

// better reports whether candidate a beats the current choice b: clearly lower,
// or on the same row and further left.
func (p *packer) better(a, b geom.Vec2) bool {
	if a.Y+p.rowTol < b.Y {
		return true
	}
	return math.Abs(a.Y-b.Y) <= p.rowTol && a.X < b.X
}
