// Package geom holds the small 2D value types shared by the unwrap pipeline:
// UV coordinates and axis-aligned UV-space boxes.
package geom

import "math"

// Vec2 represents a UV coordinate or a displacement in UV space.
type Vec2 struct {
	X, Y float64
}

// V2 is a convenience function to create a Vec2.
func V2(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// Add returns the sum of two vectors.
func (v Vec2) Add(w Vec2) Vec2 {
	return Vec2{X: v.X + w.X, Y: v.Y + w.Y}
}

// Sub returns the difference of two vectors.
func (v Vec2) Sub(w Vec2) Vec2 {
	return Vec2{X: v.X - w.X, Y: v.Y - w.Y}
}

// Mul returns the vector scaled by a scalar.
func (v Vec2) Mul(s float64) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

// Min returns the component-wise minimum of two vectors.
func (v Vec2) Min(w Vec2) Vec2 {
	return Vec2{X: math.Min(v.X, w.X), Y: math.Min(v.Y, w.Y)}
}

// Max returns the component-wise maximum of two vectors.
func (v Vec2) Max(w Vec2) Vec2 {
	return Vec2{X: math.Max(v.X, w.X), Y: math.Max(v.Y, w.Y)}
}

// IsZero returns true if the vector is the zero vector.
func (v Vec2) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

// IsFinite reports whether both components are neither NaN nor infinite.
func (v Vec2) IsFinite() bool {
	return IsFinite(v.X) && IsFinite(v.Y)
}

// Approx returns true if two vectors are approximately equal within epsilon.
func (v Vec2) Approx(w Vec2, epsilon float64) bool {
	return math.Abs(v.X-w.X) < epsilon && math.Abs(v.Y-w.Y) < epsilon
}

// IsFinite returns true if x is neither infinite nor NaN.
func IsFinite(x float64) bool {
	return !math.IsInf(x, 0) && !math.IsNaN(x)
}
