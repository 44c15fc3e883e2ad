// Package triangulate splits polygon faces into triangles that reference the
// face-local vertex slots they were built from.
//
// Faces are projected onto the plane of their dominant normal axis and cut with
// earcut. Triangles keep the winding of the face. Whenever earcut cannot cover
// the polygon with n-2 triangles (collinear, coincident or non-finite input) the
// face is closed with a fan from its first slot instead, so an n-gon always
// yields n-2 triangles.
package triangulate

import (
	"math"

	"github.com/rclancey/earcut"
	"gonum.org/v1/gonum/spatial/r3"
)

// Polygon triangulates one face given its ordered vertex positions.
// Each returned triple holds face-local slot indices in the face's winding order.
// Faces with fewer than three vertices produce no triangles.
func Polygon(points []r3.Vec) [][3]int {
	n := len(points)
	if n < 3 {
		return nil
	}
	if n == 3 {
		return [][3]int{{0, 1, 2}}
	}

	pts := project(points)
	area := signedArea(pts)
	if area == 0 || !isFinite(area) {
		return fan(n)
	}

	coords := make([]float64, 0, 2*n)
	for _, p := range pts {
		coords = append(coords, p.x, p.y)
	}
	idx, err := earcut.Earcut(coords, nil, 2)
	if err != nil || len(idx) != 3*(n-2) {
		return fan(n)
	}

	tris := make([][3]int, n-2)
	for i := range tris {
		a, b, c := idx[3*i], idx[3*i+1], idx[3*i+2]
		if a < 0 || a >= n || b < 0 || b >= n || c < 0 || c >= n {
			return fan(n)
		}
		// earcut emits every triangle in its own ring orientation.
		if cross(pts[a], pts[b], pts[c])*area < 0 {
			b, c = c, b
		}
		tris[i] = [3]int{a, b, c}
	}
	return tris
}

// fan covers an n-gon with triangles sharing slot 0.
func fan(n int) [][3]int {
	tris := make([][3]int, 0, n-2)
	for i := 1; i+1 < n; i++ {
		tris = append(tris, [3]int{0, i, i + 1})
	}
	return tris
}

type point struct {
	x, y float64
}

// project drops the dominant axis of the Newell normal.
func project(points []r3.Vec) []point {
	var normal r3.Vec
	n := len(points)
	for i := 0; i < n; i++ {
		cur := points[i]
		next := points[(i+1)%n]
		normal.X += (cur.Y - next.Y) * (cur.Z + next.Z)
		normal.Y += (cur.Z - next.Z) * (cur.X + next.X)
		normal.Z += (cur.X - next.X) * (cur.Y + next.Y)
	}
	ax, ay, az := math.Abs(normal.X), math.Abs(normal.Y), math.Abs(normal.Z)

	pts := make([]point, n)
	for i, p := range points {
		switch {
		case ax >= ay && ax >= az:
			// Keep a right-handed view so the winding sign follows the normal.
			if normal.X >= 0 {
				pts[i] = point{p.Y, p.Z}
			} else {
				pts[i] = point{p.Z, p.Y}
			}
		case ay >= az:
			if normal.Y >= 0 {
				pts[i] = point{p.Z, p.X}
			} else {
				pts[i] = point{p.X, p.Z}
			}
		default:
			if normal.Z >= 0 {
				pts[i] = point{p.X, p.Y}
			} else {
				pts[i] = point{p.Y, p.X}
			}
		}
	}
	return pts
}

// signedArea returns twice the signed area of the projected polygon.
func signedArea(pts []point) float64 {
	var sum float64
	n := len(pts)
	for i := 0; i < n; i++ {
		a, b := pts[i], pts[(i+1)%n]
		sum += a.x*b.y - b.x*a.y
	}
	return sum
}

func cross(a, b, c point) float64 {
	return (b.x-a.x)*(c.y-a.y) - (b.y-a.y)*(c.x-a.x)
}

func isFinite(x float64) bool {
	return !math.IsInf(x, 0) && !math.IsNaN(x)
}
