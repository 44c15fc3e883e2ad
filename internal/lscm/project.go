package lscm

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/gogpu/unwrap/internal/geom"
)

// ProjectTriangle maps a 3D triangle isometrically into its own plane.
// p0 lands on the origin and p1 on the positive X axis. ok is false for
// degenerate triangles whose frame cannot be built.
func ProjectTriangle(p0, p1, p2 r3.Vec) (z0, z1, z2 geom.Vec2, ok bool) {
	e1 := r3.Sub(p1, p0)
	e2 := r3.Sub(p2, p0)

	x := r3.Unit(e1)
	z := r3.Unit(r3.Cross(x, e2))
	y := r3.Cross(z, x)

	z1 = geom.V2(r3.Norm(e1), 0)
	z2 = geom.V2(r3.Dot(e2, x), r3.Dot(e2, y))
	ok = z1.IsFinite() && z2.IsFinite() && z1.X != 0 && z2.Y != 0
	return geom.Vec2{}, z1, z2, ok
}
