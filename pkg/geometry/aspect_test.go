package geometry

import (
	"math"
	"testing"
)

func TestAspectRatioSolveAdjustsHeight(t *testing.T) {
	w, h, axis := AspectRatioSolve(200, 50, 2)
	if w != 200 {
		t.Errorf("width changed: %g", w)
	}
	if math.Abs(h-100) > 1e-9 {
		t.Errorf("height = %g, want 100", h)
	}
	if axis != AxisHeight {
		t.Errorf("axis = %v, want AxisHeight", axis)
	}
}

func TestAspectRatioSolveAlreadySatisfied(t *testing.T) {
	w, h, axis := AspectRatioSolve(200, 100, 2)
	if w != 200 || h != 100 {
		t.Errorf("dimensions changed: %g x %g", w, h)
	}
	if axis != AxisNone {
		t.Errorf("axis = %v, want AxisNone", axis)
	}
}

func TestAspectRatioSolveWidthForm(t *testing.T) {
	w, h, axis := AspectRatioSolveWidth(10, 100, 2)
	if math.Abs(w-200) > 1e-9 {
		t.Errorf("width = %g, want 200", w)
	}
	if h != 100 {
		t.Errorf("height changed: %g", h)
	}
	if axis != AxisWidth {
		t.Errorf("axis = %v, want AxisWidth", axis)
	}
}

func TestAspectRatioSolveDegenerateRatios(t *testing.T) {
	for _, ratio := range []float64{0, -3, math.NaN(), math.Inf(1)} {
		w, h, _ := AspectRatioSolve(80, 80, ratio)
		if math.IsNaN(w) || math.IsNaN(h) || math.IsInf(w, 0) || math.IsInf(h, 0) {
			t.Errorf("ratio %v leaked into geometry: %g x %g", ratio, w, h)
		}
		if math.Abs(h-80) > 1e-9 {
			t.Errorf("ratio %v: height = %g, want 80 (ratio reset to 1)", ratio, h)
		}
	}
}
