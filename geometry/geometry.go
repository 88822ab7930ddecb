// Package geometry contains the 2D primitives used throughout the graphol
// diagram editor: points, rectangles, grid snapping, segment hit areas and
// the placement search used by axiom composition.
package geometry

// Point represents a 2D coordinate in diagram space.
type Point struct {
	X, Y float64
}

// Add returns the translation of p by q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns the translation of p by the negation of q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Size represents the extent of a rectangular area.
type Size struct {
	W, H float64
}

// Rect represents an axis-aligned rectangle.
type Rect struct {
	Min, Max Point
}

// RectAround builds the rectangle of the given size centered at c.
func RectAround(c Point, s Size) Rect {
	return Rect{
		Min: Point{X: c.X - s.W/2, Y: c.Y - s.H/2},
		Max: Point{X: c.X + s.W/2, Y: c.Y + s.H/2},
	}
}

// Width returns the width of the rectangle.
func (r Rect) Width() float64 {
	return r.Max.X - r.Min.X
}

// Height returns the height of the rectangle.
func (r Rect) Height() float64 {
	return r.Max.Y - r.Min.Y
}

// Center returns the center point of the rectangle.
func (r Rect) Center() Point {
	return Point{X: (r.Min.X + r.Max.X) / 2, Y: (r.Min.Y + r.Max.Y) / 2}
}

// Contains checks if a point is inside the rectangle.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X &&
		p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

// Intersects checks if two rectangles overlap.
func (r Rect) Intersects(o Rect) bool {
	return r.Min.X <= o.Max.X && o.Min.X <= r.Max.X &&
		r.Min.Y <= o.Max.Y && o.Min.Y <= r.Max.Y
}

// Union returns the smallest rectangle containing both r and o.
func (r Rect) Union(o Rect) Rect {
	return Rect{
		Min: Point{X: Min(r.Min.X, o.Min.X), Y: Min(r.Min.Y, o.Min.Y)},
		Max: Point{X: Max(r.Max.X, o.Max.X), Y: Max(r.Max.Y, o.Max.Y)},
	}
}

// Adjusted returns the rectangle grown by the given margin on every side.
func (r Rect) Adjusted(margin float64) Rect {
	return Rect{
		Min: Point{X: r.Min.X - margin, Y: r.Min.Y - margin},
		Max: Point{X: r.Max.X + margin, Y: r.Max.Y + margin},
	}
}

// BoundsOf returns the bounding rectangle of the given points.
// Returns the zero rectangle when the slice is empty.
func BoundsOf(points []Point) Rect {
	if len(points) == 0 {
		return Rect{}
	}
	r := Rect{Min: points[0], Max: points[0]}
	for _, p := range points[1:] {
		r.Min.X = Min(r.Min.X, p.X)
		r.Min.Y = Min(r.Min.Y, p.Y)
		r.Max.X = Max(r.Max.X, p.X)
		r.Max.Y = Max(r.Max.Y, p.Y)
	}
	return r
}
