package geometry

import "math"

// Axis identifies which dimension AspectRatioSolve adjusted.
type Axis int

const (
	// AxisNone means neither dimension changed.
	AxisNone Axis = iota
	// AxisWidth means the width was recomputed from the height.
	AxisWidth
	// AxisHeight means the height was recomputed from the width.
	AxisHeight
)

// AspectRatioSolve adjusts height to width/ratio so the pair satisfies
// the declared ratio, reporting which dimension actually changed.
// A degenerate ratio (zero, negative, NaN or infinite) is reset to 1.0
// rather than propagating NaN/Inf into the geometry.
func AspectRatioSolve(width, height, ratio float64) (float64, float64, Axis) {
	if ratio <= 0 || math.IsNaN(ratio) || math.IsInf(ratio, 0) {
		ratio = 1.0
	}
	want := width / ratio
	if math.Abs(want-height) < 1e-9 {
		return width, height, AxisNone
	}
	return width, want, AxisHeight
}

// AspectRatioSolveWidth is the symmetric form: it recomputes width from
// height and the declared ratio.
func AspectRatioSolveWidth(width, height, ratio float64) (float64, float64, Axis) {
	if ratio <= 0 || math.IsNaN(ratio) || math.IsInf(ratio, 0) {
		ratio = 1.0
	}
	want := height * ratio
	if math.Abs(want-width) < 1e-9 {
		return width, height, AxisNone
	}
	return want, height, AxisWidth
}
