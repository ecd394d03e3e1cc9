package item

import (
	"testing"

	"template-designer/pkg/geometry"
)

func polylinePoints(p *PolylineItem) []geometry.Point2D {
	return append([]geometry.Point2D(nil), p.Points()...)
}

func TestPolylineBoundsLazy(t *testing.T) {
	p := NewPolyline(10, 10, []geometry.Point2D{{X: 0, Y: 0}, {X: 20, Y: 0}, {X: 20, Y: 30}})

	b := p.Bounds()
	want := geometry.NewRect(10, 10, 20, 30)
	if b != want {
		t.Errorf("expected %+v, got %+v", want, b)
	}

	// Bounds must be recomputed after a point mutation.
	p.AddPoint(geometry.NewPoint2D(50, 50))
	b = p.Bounds()
	if b.Width != 50 || b.Height != 50 {
		t.Errorf("stale bounds after mutation: %+v", b)
	}
}

func TestPolylineNormalizeIdempotent(t *testing.T) {
	p := NewPolyline(100, 100, []geometry.Point2D{{X: -10, Y: -5}, {X: 0, Y: 0}, {X: 30, Y: 20}})
	before := p.Bounds()

	p.NormalizePositions()

	for i, pt := range p.Points() {
		if pt.X < 0 || pt.Y < 0 {
			t.Errorf("point %d still negative after normalize: %+v", i, pt)
		}
	}
	if p.Left() != 90 || p.Top() != 95 {
		t.Errorf("origin not shifted to preserve union: (%v,%v)", p.Left(), p.Top())
	}
	if p.Bounds() != before {
		t.Errorf("normalize changed the union: %+v vs %+v", p.Bounds(), before)
	}

	// Second call is a no-op on an already-normalized item.
	pts := polylinePoints(p)
	fired := 0
	p.OnBoundsChanged(func() { fired++ })
	p.NormalizePositions()
	for i, pt := range p.Points() {
		if pt != pts[i] {
			t.Errorf("point %d moved on second normalize: %+v", i, pt)
		}
	}
	if fired != 0 {
		t.Error("no-op normalize must not notify")
	}
}

func TestPolylineInsertNearSegment(t *testing.T) {
	p := NewPolyline(0, 0, []geometry.Point2D{{X: 0, Y: 0}, {X: 100, Y: 0}, {X: 100, Y: 100}})

	idx := p.InsertPointNear(geometry.NewPoint2D(50, 2))
	if idx != 1 {
		t.Errorf("expected insertion at index 1, got %d", idx)
	}
	if p.PointCount() != 4 || p.Point(1) != geometry.NewPoint2D(50, 2) {
		t.Errorf("unexpected points after insert: %+v", p.Points())
	}
}

func TestPolylineRemovePoint(t *testing.T) {
	p := NewPolyline(0, 0, []geometry.Point2D{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 20, Y: 0}})
	p.RemovePoint(1)
	if p.PointCount() != 2 || p.Point(1) != geometry.NewPoint2D(20, 0) {
		t.Errorf("unexpected points after remove: %+v", p.Points())
	}
	p.RemovePoint(99) // out of range is a no-op
	if p.PointCount() != 2 {
		t.Error("out-of-range remove mutated the points")
	}
}

func TestPolylineCloneNoOffset(t *testing.T) {
	p := NewPolyline(5, 6, []geometry.Point2D{{X: 0, Y: 0}, {X: 10, Y: 10}})
	dup, ok := p.Clone().(*PolylineItem)
	if !ok {
		t.Fatal("clone lost its type")
	}
	if dup.ID() == p.ID() {
		t.Error("clone must have a fresh identity")
	}
	// Unlike box items, the poly-line clone keeps its position.
	if dup.Left() != 5 || dup.Top() != 6 {
		t.Errorf("poly-line clone must not be offset, got (%v,%v)", dup.Left(), dup.Top())
	}
	dup.SetPoint(0, geometry.NewPoint2D(99, 99))
	if p.Point(0) != geometry.NewPoint2D(0, 0) {
		t.Error("clone shares point storage with original")
	}
}

func TestPolylineHitTestPointwise(t *testing.T) {
	p := NewPolyline(0, 0, []geometry.Point2D{{X: 10, Y: 10}, {X: 90, Y: 90}})

	if got := p.HitTest(geometry.NewRect(0, 0, 200, 200)); got != geometry.HitContains {
		t.Errorf("all points in region: expected HitContains, got %v", got)
	}
	if got := p.HitTest(geometry.NewRect(0, 0, 50, 50)); got != geometry.HitIntersects {
		t.Errorf("some points in region: expected HitIntersects, got %v", got)
	}
	if got := p.HitTest(geometry.NewRect(200, 200, 10, 10)); got != geometry.HitNone {
		t.Errorf("no points in region: expected HitNone, got %v", got)
	}
}
