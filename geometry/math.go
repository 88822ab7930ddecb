package geometry

import "math"

// Abs returns the absolute value of a coordinate.
func Abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

// Min returns the minimum of two coordinates.
func Min(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

// Max returns the maximum of two coordinates.
func Max(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

// Distance calculates the Euclidean distance between two points.
func Distance(p, q Point) float64 {
	return math.Hypot(q.X-p.X, q.Y-p.Y)
}

// Angle returns the angle of the segment from p to q, in radians.
func Angle(p, q Point) float64 {
	return math.Atan2(q.Y-p.Y, q.X-p.X)
}

// Snap rounds a coordinate to the nearest multiple of the grid size.
// When snapping is disabled the value is returned unchanged.
func Snap(value, gridSize float64, enabled bool) float64 {
	if !enabled || gridSize <= 0 {
		return value
	}
	return math.Round(value/gridSize) * gridSize
}

// SnapPoint applies Snap to both axes of a point independently.
func SnapPoint(p Point, gridSize float64, enabled bool) Point {
	return Point{
		X: Snap(p.X, gridSize, enabled),
		Y: Snap(p.Y, gridSize, enabled),
	}
}
