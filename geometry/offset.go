package geometry

import "math"

// OccupancyQuery reports how many existing items overlap the given probe
// rectangle. The diagram scene supplies this when searching for free space.
type OccupancyQuery func(Rect) int

// LeastOccupiedOffset probes the candidate offsets in order and returns the
// one whose probe rectangle, centered at anchor+offset and sized probe,
// contains the fewest items. Ties resolve to the earliest candidate, so the
// search is stable and deterministic.
func LeastOccupiedOffset(anchor Point, candidates []Point, probe Size, occupied OccupancyQuery) Point {
	best := Point{}
	num := math.MaxInt
	for _, o := range candidates {
		count := occupied(RectAround(anchor.Add(o), probe))
		if count < num {
			num = count
			best = o
		}
	}
	return best
}

// LeastOccupiedPair searches the cartesian product of two candidate lists
// for the pair of offsets minimizing the sum of the two probe occupancies.
// The second offset is relative to the first probe's center. Ties resolve
// to the earliest pair in product order.
func LeastOccupiedPair(anchor Point, first, second []Point, probe1, probe2 Size, occupied OccupancyQuery) (Point, Point) {
	best1 := Point{}
	best2 := Point{}
	num := math.MaxInt
	for _, o1 := range first {
		count1 := occupied(RectAround(anchor.Add(o1), probe1))
		for _, o2 := range second {
			count2 := occupied(RectAround(anchor.Add(o1).Add(o2), probe2))
			if count1+count2 < num {
				num = count1 + count2
				best1 = o1
				best2 = o2
			}
		}
	}
	return best1, best2
}
