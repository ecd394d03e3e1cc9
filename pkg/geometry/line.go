package geometry

import "math"

// DistanceToLine returns the perpendicular distance from p to the
// infinite line through a and b. Degenerate segments fall back to the
// point distance.
func DistanceToLine(p, a, b Point2D) float64 {
	dx := b.X - a.X
	dy := b.Y - a.Y
	length := math.Sqrt(dx*dx + dy*dy)
	if length == 0 {
		return p.Distance(a)
	}
	return math.Abs(dy*p.X-dx*p.Y+b.X*a.Y-b.Y*a.X) / length
}

// IsBetweenPoints reports whether p projects onto the segment a-b
// rather than past either endpoint, using squared lengths so both
// interior angles stay non-obtuse.
func IsBetweenPoints(p, a, b Point2D) bool {
	ab := distSq(a, b)
	ap := distSq(a, p)
	pb := distSq(p, b)
	if ab == 0 {
		return false
	}
	return ap <= ab+pb && pb <= ab+ap
}

// NearestSegment returns the index i of the segment points[i]-points[i+1]
// closest to p, for inserting a new vertex. Returns -1 when fewer than
// two points exist.
func NearestSegment(points []Point2D, p Point2D) int {
	if len(points) < 2 {
		return -1
	}
	best := -1
	bestDist := math.MaxFloat64
	for i := 0; i < len(points)-1; i++ {
		a, b := points[i], points[i+1]
		if !IsBetweenPoints(p, a, b) {
			continue
		}
		d := DistanceToLine(p, a, b)
		if d < bestDist {
			bestDist = d
			best = i
		}
	}
	if best < 0 {
		// No segment brackets p; fall back to the nearest endpoint pair.
		for i := 0; i < len(points)-1; i++ {
			d := math.Min(p.Distance(points[i]), p.Distance(points[i+1]))
			if d < bestDist {
				bestDist = d
				best = i
			}
		}
	}
	return best
}

func distSq(a, b Point2D) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return dx*dx + dy*dy
}
