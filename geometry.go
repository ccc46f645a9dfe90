package atlas

import "math"

// Point represents a 2D point or vector.
type Point struct {
	X, Y float64
}

// Pt is a convenience function to create a Point.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Add returns the sum of two points (vector addition).
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns the difference of two points (vector subtraction).
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Size represents a 2D extent in floating-point units.
type Size struct {
	Width, Height float64
}

// ISize represents a 2D extent in whole pixels.
type ISize struct {
	Width, Height int
}

// IsEmpty returns true if either dimension is zero or negative.
func (s ISize) IsEmpty() bool {
	return s.Width <= 0 || s.Height <= 0
}

// Rect represents an axis-aligned rectangle.
// Min is the top-left corner (minimum coordinates).
// Max is the bottom-right corner (maximum coordinates).
type Rect struct {
	Min, Max Point
}

// RectXYWH creates a rectangle from an origin and a size.
func RectXYWH(x, y, w, h float64) Rect {
	return Rect{
		Min: Point{X: x, Y: y},
		Max: Point{X: x + w, Y: y + h},
	}
}

// RectFromSize creates a rectangle with its origin at (0, 0).
func RectFromSize(s Size) Rect {
	return Rect{Max: Point{X: s.Width, Y: s.Height}}
}

// RectFromISize creates a rectangle with its origin at (0, 0).
func RectFromISize(s ISize) Rect {
	return Rect{Max: Point{X: float64(s.Width), Y: float64(s.Height)}}
}

// Width returns the width of the rectangle.
func (r Rect) Width() float64 {
	return r.Max.X - r.Min.X
}

// Height returns the height of the rectangle.
func (r Rect) Height() float64 {
	return r.Max.Y - r.Min.Y
}

// Size returns the extent of the rectangle.
func (r Rect) Size() Size {
	return Size{Width: r.Width(), Height: r.Height()}
}

// IsEmpty returns true if the rectangle encloses no area.
func (r Rect) IsEmpty() bool {
	return r.Max.X <= r.Min.X || r.Max.Y <= r.Min.Y
}

// Union returns the smallest rectangle containing both r and other.
func (r Rect) Union(other Rect) Rect {
	return Rect{
		Min: Point{X: math.Min(r.Min.X, other.Min.X), Y: math.Min(r.Min.Y, other.Min.Y)},
		Max: Point{X: math.Max(r.Max.X, other.Max.X), Y: math.Max(r.Max.Y, other.Max.Y)},
	}
}

// Intersects returns true if r and other overlap in both axes.
func (r Rect) Intersects(other Rect) bool {
	return r.Min.X < other.Max.X && other.Min.X < r.Max.X &&
		r.Min.Y < other.Max.Y && other.Min.Y < r.Max.Y
}

// Contains returns true if the point is inside the rectangle.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

// ContainsRect returns true if other lies entirely within r.
func (r Rect) ContainsRect(other Rect) bool {
	return other.Min.X >= r.Min.X && other.Max.X <= r.Max.X &&
		other.Min.Y >= r.Min.Y && other.Max.Y <= r.Max.Y
}

// Corners returns the four corners in the order top-left, top-right,
// bottom-left, bottom-right. Quad vertex streams index into this order
// with the fixed pattern {0, 1, 2, 1, 2, 3}.
func (r Rect) Corners() [4]Point {
	return [4]Point{
		{X: r.Min.X, Y: r.Min.Y},
		{X: r.Max.X, Y: r.Min.Y},
		{X: r.Min.X, Y: r.Max.Y},
		{X: r.Max.X, Y: r.Max.Y},
	}
}

// TransformedCorners returns the four corners mapped through m, in the
// same order as Corners.
func (r Rect) TransformedCorners(m Matrix) [4]Point {
	c := r.Corners()
	for i := range c {
		c[i] = m.TransformPoint(c[i])
	}
	return c
}

// TransformBounds returns the axis-aligned bounding box of the rectangle
// mapped through m.
func (r Rect) TransformBounds(m Matrix) Rect {
	c := r.TransformedCorners(m)
	out := Rect{Min: c[0], Max: c[0]}
	for _, p := range c[1:] {
		out.Min.X = math.Min(out.Min.X, p.X)
		out.Min.Y = math.Min(out.Min.Y, p.Y)
		out.Max.X = math.Max(out.Max.X, p.X)
		out.Max.Y = math.Max(out.Max.Y, p.Y)
	}
	return out
}
