package geometry

import "math"

// smallAngleRad is the threshold below which RotatedBounds uses the
// linear approximation sin≈a, cos≈1-a²/2 instead of exact trig.
// About 0.57 degrees.
const smallAngleRad = 0.01

// RotatedBounds computes the smallest axis-aligned rectangle enclosing
// a width×height box at (left, top), rotated by angleDegrees about its
// own center.
func RotatedBounds(left, top, width, height, angleDegrees float64) Rect {
	if angleDegrees == 0 {
		return Rect{X: left, Y: top, Width: width, Height: height}
	}

	rad := angleDegrees * math.Pi / 180.0
	var sin, cos float64
	if math.Abs(rad) < smallAngleRad {
		sin = rad
		cos = 1 - rad*rad/2
	} else {
		sin = math.Sin(rad)
		cos = math.Cos(rad)
	}

	boundsW := math.Abs(width*cos) + math.Abs(height*sin)
	boundsH := math.Abs(width*sin) + math.Abs(height*cos)

	cx := left + width/2
	cy := top + height/2
	return Rect{
		X:      cx - boundsW/2,
		Y:      cy - boundsH/2,
		Width:  boundsW,
		Height: boundsH,
	}
}

// HitResult classifies how an item relates to a test region.
type HitResult int

const (
	// HitNone means the item and the region are disjoint.
	HitNone HitResult = iota
	// HitIntersects means they overlap without full containment.
	HitIntersects
	// HitContains means the item fully contains the region.
	HitContains
	// HitInside means the region fully contains the item.
	HitInside
)

// String returns a readable name for the hit result.
func (h HitResult) String() string {
	switch h {
	case HitNone:
		return "none"
	case HitIntersects:
		return "intersects"
	case HitContains:
		return "contains"
	case HitInside:
		return "inside"
	}
	return "unknown"
}

// HitTest classifies the relationship between an item's bounds and a
// test region.
func HitTest(itemBounds, region Rect) HitResult {
	if region.ContainsRect(itemBounds) {
		return HitInside
	}
	if itemBounds.ContainsRect(region) {
		return HitContains
	}
	if itemBounds.Intersects(region) {
		return HitIntersects
	}
	return HitNone
}

// HitTestPoints classifies a point sequence against a region. Every
// point inside yields HitContains, none yields HitNone, a mix yields
// HitIntersects.
func HitTestPoints(points []Point2D, region Rect) HitResult {
	if len(points) == 0 {
		return HitNone
	}
	inside := 0
	for _, p := range points {
		if region.Contains(p) {
			inside++
		}
	}
	switch inside {
	case 0:
		return HitNone
	case len(points):
		return HitContains
	}
	return HitIntersects
}

// SignedAngle returns the signed angle in degrees from vector a to
// vector b, positive counter-clockwise in screen coordinates.
func SignedAngle(a, b Point2D) float64 {
	cross := a.X*b.Y - a.Y*b.X
	dot := a.X*b.X + a.Y*b.Y
	return math.Atan2(cross, dot) * 180.0 / math.Pi
}

// SnapAngle rounds an angle in degrees to the nearest multiple of step.
func SnapAngle(angleDegrees, step float64) float64 {
	if step == 0 {
		return angleDegrees
	}
	return math.Round(angleDegrees/step) * step
}
