package geometry

import "math"

// Polygon is an ordered sequence of vertices describing a closed shape.
type Polygon []Point

// Contains checks if a point lies inside the polygon using ray casting.
// Points exactly on an edge may fall on either side.
func (pg Polygon) Contains(p Point) bool {
	inside := false
	n := len(pg)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		a, b := pg[i], pg[j]
		if (a.Y > p.Y) != (b.Y > p.Y) &&
			p.X < (b.X-a.X)*(p.Y-a.Y)/(b.Y-a.Y)+a.X {
			inside = !inside
		}
	}
	return inside
}

// Bounds returns the bounding rectangle of the polygon.
func (pg Polygon) Bounds() Rect {
	return BoundsOf(pg)
}

// SegmentArea builds the selection hit-test polygon around the straight
// segment from p1 to p2: a rectangle of the given width rotated by the
// given angle. Every edge path segment uses the same construction.
func SegmentArea(p1, p2 Point, angle, width float64) Polygon {
	dx := width / 2 * math.Sin(angle)
	dy := width / 2 * math.Cos(angle)
	return Polygon{
		{X: p1.X + dx, Y: p1.Y - dy},
		{X: p2.X + dx, Y: p2.Y - dy},
		{X: p2.X - dx, Y: p2.Y + dy},
		{X: p1.X - dx, Y: p1.Y + dy},
	}
}
