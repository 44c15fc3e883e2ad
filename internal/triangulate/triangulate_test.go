package triangulate

import (
	"math"
	"slices"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

// area3 returns the unsigned area of the triangle abc.
func area3(a, b, c r3.Vec) float64 {
	return r3.Norm(r3.Cross(r3.Sub(b, a), r3.Sub(c, a))) / 2
}

func TestPolygonSmall(t *testing.T) {
	if got := Polygon(nil); got != nil {
		t.Errorf("Polygon(nil) = %v, want nil", got)
	}
	if got := Polygon([]r3.Vec{{}, {X: 1}}); got != nil {
		t.Errorf("Polygon(2 points) = %v, want nil", got)
	}
	got := Polygon([]r3.Vec{{}, {X: 1}, {Y: 1}})
	if !slices.Equal(got, [][3]int{{0, 1, 2}}) {
		t.Errorf("Polygon(triangle) = %v", got)
	}
}

func TestPolygon(t *testing.T) {
	tests := []struct {
		name   string
		points []r3.Vec
		area   float64
	}{
		{
			name:   "square",
			points: []r3.Vec{{}, {X: 1}, {X: 1, Y: 1}, {Y: 1}},
			area:   1,
		},
		{
			name:   "square clockwise",
			points: []r3.Vec{{}, {Y: 1}, {X: 1, Y: 1}, {X: 1}},
			area:   1,
		},
		{
			name:   "L shape",
			points: []r3.Vec{{}, {X: 2}, {X: 2, Y: 1}, {X: 1, Y: 1}, {X: 1, Y: 2}, {Y: 2}},
			area:   3,
		},
		{
			name: "concave in xz plane",
			points: []r3.Vec{
				{X: 0, Z: 0}, {X: 4, Z: 0}, {X: 4, Z: 4}, {X: 2, Z: 1}, {X: 0, Z: 4},
			},
			area: 10,
		},
		{
			name: "tilted pentagon",
			points: func() []r3.Vec {
				var pts []r3.Vec
				for i := 0; i < 5; i++ {
					a := 2 * math.Pi * float64(i) / 5
					pts = append(pts, r3.Vec{X: math.Cos(a), Y: math.Sin(a), Z: math.Cos(a)})
				}
				return pts
			}(),
			area: math.Sqrt2 * 5 / 2 * math.Sin(2*math.Pi/5),
		},
		{
			name:   "square with collinear midpoint",
			points: []r3.Vec{{}, {X: 0.5}, {X: 1}, {X: 1, Y: 1}, {Y: 1}},
			area:   1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tris := Polygon(tt.points)
			if len(tris) != len(tt.points)-2 {
				t.Fatalf("got %d triangles, want %d", len(tris), len(tt.points)-2)
			}
			sum := 0.0
			for _, tri := range tris {
				for _, s := range tri {
					if s < 0 || s >= len(tt.points) {
						t.Fatalf("slot %d out of range", s)
					}
				}
				sum += area3(tt.points[tri[0]], tt.points[tri[1]], tt.points[tri[2]])
			}
			if math.Abs(sum-tt.area) > 1e-9 {
				t.Errorf("triangle area sum = %g, want %g", sum, tt.area)
			}
			if again := Polygon(tt.points); !slices.Equal(again, tris) {
				t.Errorf("second run = %v, want %v", again, tris)
			}
		})
	}
}

// newell returns the unnormalized Newell normal of a polygon.
func newell(points []r3.Vec) r3.Vec {
	var n r3.Vec
	for i, cur := range points {
		next := points[(i+1)%len(points)]
		n.X += (cur.Y - next.Y) * (cur.Z + next.Z)
		n.Y += (cur.Z - next.Z) * (cur.X + next.X)
		n.Z += (cur.X - next.X) * (cur.Y + next.Y)
	}
	return n
}

func TestPolygonKeepsWinding(t *testing.T) {
	tests := []struct {
		name   string
		points []r3.Vec
	}{
		{"L shape", []r3.Vec{{}, {X: 2}, {X: 2, Y: 1}, {X: 1, Y: 1}, {X: 1, Y: 2}, {Y: 2}}},
		{"square clockwise", []r3.Vec{{}, {Y: 1}, {X: 1, Y: 1}, {X: 1}}},
		{"quad facing -x", []r3.Vec{{}, {Y: 1}, {Y: 1, Z: 1}, {Z: 1}}},
		{"concave facing -y", []r3.Vec{{}, {X: 4}, {X: 4, Z: 4}, {X: 2, Z: 1}, {Z: 4}}},
		{"hexagon", []r3.Vec{{X: 2}, {X: 1, Y: 2}, {X: -1, Y: 2}, {X: -2}, {X: -1, Y: -2}, {X: 1, Y: -2}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			face := newell(tt.points)
			for _, tri := range Polygon(tt.points) {
				a, b, c := tt.points[tri[0]], tt.points[tri[1]], tt.points[tri[2]]
				if n := r3.Cross(r3.Sub(b, a), r3.Sub(c, a)); r3.Dot(n, face) <= 0 {
					t.Errorf("triangle %v is flipped against the face", tri)
				}
			}
		})
	}
}

func TestPolygonSlotsCoverFace(t *testing.T) {
	points := []r3.Vec{{}, {X: 2}, {X: 2, Y: 1}, {X: 1, Y: 1}, {X: 1, Y: 2}, {Y: 2}}
	used := make([]bool, len(points))
	for _, tri := range Polygon(points) {
		for _, s := range tri {
			used[s] = true
		}
	}
	for slot, ok := range used {
		if !ok {
			t.Errorf("slot %d is not used by any triangle", slot)
		}
	}
}

func TestFan(t *testing.T) {
	want := [][3]int{{0, 1, 2}, {0, 2, 3}, {0, 3, 4}}
	if got := fan(5); !slices.Equal(got, want) {
		t.Errorf("fan(5) = %v, want %v", got, want)
	}
}

func TestPolygonDegenerate(t *testing.T) {
	tests := []struct {
		name   string
		points []r3.Vec
	}{
		{"collinear", []r3.Vec{{}, {X: 1}, {X: 2}, {X: 3}}},
		{"coincident", []r3.Vec{{}, {}, {}, {}, {}}},
		{"nan", []r3.Vec{{}, {X: math.NaN()}, {X: 1, Y: 1}, {Y: 1}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Polygon(tt.points); len(got) != len(tt.points)-2 {
				t.Errorf("got %d triangles, want %d", len(got), len(tt.points)-2)
			}
		})
	}
}

func BenchmarkPolygon(b *testing.B) {
	var pts []r3.Vec
	for i := 0; i < 64; i++ {
		a := 2 * math.Pi * float64(i) / 64
		r := 1.0 + 0.3*float64(i%2)
		pts = append(pts, r3.Vec{X: r * math.Cos(a), Y: r * math.Sin(a)})
	}
	for i := 0; i < b.N; i++ {
		Polygon(pts)
	}
}
