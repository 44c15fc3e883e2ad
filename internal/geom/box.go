package geom

import "math"

// Box is an axis-aligned rectangle in UV space.
// Min holds the minimum coordinates, Max the maximum ones.
type Box struct {
	Min, Max Vec2
}

// EmptyBox returns a box that any call to Extend replaces.
func EmptyBox() Box {
	inf := math.Inf(1)
	return Box{Min: Vec2{X: inf, Y: inf}, Max: Vec2{X: -inf, Y: -inf}}
}

// IsEmpty reports whether the box has never been extended.
func (b Box) IsEmpty() bool {
	return b.Min.X > b.Max.X || b.Min.Y > b.Max.Y
}

// Extend returns the smallest box containing b and p.
func (b Box) Extend(p Vec2) Box {
	return Box{Min: b.Min.Min(p), Max: b.Max.Max(p)}
}

// Size returns the width and height of the box as a vector.
func (b Box) Size() Vec2 {
	return b.Max.Sub(b.Min)
}

// Width returns the width of the box.
func (b Box) Width() float64 {
	return b.Max.X - b.Min.X
}

// Height returns the height of the box.
func (b Box) Height() float64 {
	return b.Max.Y - b.Min.Y
}

// Area returns Width*Height.
func (b Box) Area() float64 {
	return b.Width() * b.Height()
}

// Overlaps reports whether the interiors of two boxes intersect.
// Boxes that only touch along an edge do not overlap.
func (b Box) Overlaps(o Box) bool {
	return !(b.Max.X <= o.Min.X || b.Max.Y <= o.Min.Y || b.Min.X >= o.Max.X || b.Min.Y >= o.Max.Y)
}
