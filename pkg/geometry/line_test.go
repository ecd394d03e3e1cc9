package geometry

import (
	"math"
	"testing"
)

func TestDistanceToLine(t *testing.T) {
	a := NewPoint2D(0, 0)
	b := NewPoint2D(10, 0)

	if d := DistanceToLine(NewPoint2D(5, 3), a, b); math.Abs(d-3) > eps {
		t.Errorf("expected 3, got %v", d)
	}
	if d := DistanceToLine(NewPoint2D(5, 0), a, b); math.Abs(d) > eps {
		t.Errorf("point on line: expected 0, got %v", d)
	}
	// Degenerate segment falls back to point distance.
	if d := DistanceToLine(NewPoint2D(3, 4), a, a); math.Abs(d-5) > eps {
		t.Errorf("degenerate segment: expected 5, got %v", d)
	}
}

func TestIsBetweenPoints(t *testing.T) {
	a := NewPoint2D(0, 0)
	b := NewPoint2D(10, 0)

	if !IsBetweenPoints(NewPoint2D(5, 2), a, b) {
		t.Error("midpoint offset should be between")
	}
	if IsBetweenPoints(NewPoint2D(-5, 0), a, b) {
		t.Error("point before a should not be between")
	}
	if IsBetweenPoints(NewPoint2D(15, 0), a, b) {
		t.Error("point past b should not be between")
	}
	if IsBetweenPoints(NewPoint2D(1, 1), a, a) {
		t.Error("zero-length segment has no between")
	}
}

func TestNearestSegment(t *testing.T) {
	points := []Point2D{{0, 0}, {10, 0}, {10, 10}, {0, 10}}

	if i := NearestSegment(points, NewPoint2D(5, 1)); i != 0 {
		t.Errorf("expected segment 0, got %d", i)
	}
	if i := NearestSegment(points, NewPoint2D(9, 5)); i != 1 {
		t.Errorf("expected segment 1, got %d", i)
	}
	if i := NearestSegment(points[:1], NewPoint2D(0, 0)); i != -1 {
		t.Errorf("single point: expected -1, got %d", i)
	}
}

func TestAspectRatioSolve(t *testing.T) {
	w, h, changed := AspectRatioSolve(100, 40, 2.0)
	if w != 100 || math.Abs(h-50) > eps || changed != AxisHeight {
		t.Errorf("expected (100, 50, height), got (%v, %v, %v)", w, h, changed)
	}

	// Already satisfied: nothing changes.
	w, h, changed = AspectRatioSolve(100, 50, 2.0)
	if w != 100 || h != 50 || changed != AxisNone {
		t.Errorf("expected no change, got (%v, %v, %v)", w, h, changed)
	}

	// Degenerate ratio resets to 1.0 instead of producing Inf.
	w, h, changed = AspectRatioSolve(100, 40, 0)
	if math.IsInf(h, 0) || math.IsNaN(h) {
		t.Fatalf("degenerate ratio leaked: h=%v", h)
	}
	if math.Abs(h-100) > eps || changed != AxisHeight {
		t.Errorf("expected ratio reset to 1.0 giving h=100, got h=%v (%v)", h, changed)
	}

	w, h, changed = AspectRatioSolveWidth(40, 100, 2.0)
	if math.Abs(w-200) > eps || h != 100 || changed != AxisWidth {
		t.Errorf("expected (200, 100, width), got (%v, %v, %v)", w, h, changed)
	}
}
