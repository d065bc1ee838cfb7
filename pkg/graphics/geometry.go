package graphics

import "math"

// epsilon is the tolerance used for float comparisons.
const epsilon = 0.0001

// Offset is a 2D point or translation vector in logical pixels.
type Offset struct {
	X, Y float64
}

// Add returns the component-wise sum of two offsets.
func (o Offset) Add(other Offset) Offset {
	return Offset{X: o.X + other.X, Y: o.Y + other.Y}
}

// Sub returns the component-wise difference of two offsets.
func (o Offset) Sub(other Offset) Offset {
	return Offset{X: o.X - other.X, Y: o.Y - other.Y}
}

// Scale returns the offset multiplied by a scalar factor.
func (o Offset) Scale(factor float64) Offset {
	return Offset{X: o.X * factor, Y: o.Y * factor}
}

// Distance returns the Euclidean length of the offset.
func (o Offset) Distance() float64 {
	return math.Hypot(o.X, o.Y)
}

// Equals reports whether two offsets are equal within epsilon.
func (o Offset) Equals(other Offset) bool {
	return floatEqual(o.X, other.X) && floatEqual(o.Y, other.Y)
}

// Size holds a width and height in logical pixels.
type Size struct {
	Width, Height float64
}

// IsEmpty reports whether the size has no area.
func (s Size) IsEmpty() bool {
	return s.Width <= 0 || s.Height <= 0
}

// Equals reports whether two sizes are equal within epsilon.
func (s Size) Equals(other Size) bool {
	return floatEqual(s.Width, other.Width) && floatEqual(s.Height, other.Height)
}

// Rect is an axis-aligned rectangle described by its edge coordinates.
type Rect struct {
	Left, Top, Right, Bottom float64
}

// RectFromLTWH builds a Rect from a top-left corner plus width and height.
func RectFromLTWH(left, top, width, height float64) Rect {
	return Rect{Left: left, Top: top, Right: left + width, Bottom: top + height}
}

// Width returns the horizontal extent of the rect.
func (r Rect) Width() float64 { return r.Right - r.Left }

// Height returns the vertical extent of the rect.
func (r Rect) Height() float64 { return r.Bottom - r.Top }

// Size returns the rect's dimensions.
func (r Rect) Size() Size {
	return Size{Width: r.Width(), Height: r.Height()}
}

// IsEmpty reports whether the rect encloses no area.
func (r Rect) IsEmpty() bool {
	return r.Right <= r.Left || r.Bottom <= r.Top
}

// Contains reports whether the point lies inside the rect. Points on the
// left and top edges are inside; points on the right and bottom edges are not.
func (r Rect) Contains(p Offset) bool {
	return p.X >= r.Left && p.X < r.Right && p.Y >= r.Top && p.Y < r.Bottom
}

// Translate returns the rect shifted by dx and dy.
func (r Rect) Translate(dx, dy float64) Rect {
	return Rect{Left: r.Left + dx, Top: r.Top + dy, Right: r.Right + dx, Bottom: r.Bottom + dy}
}

func floatEqual(a, b float64) bool {
	return math.Abs(a-b) < epsilon
}
