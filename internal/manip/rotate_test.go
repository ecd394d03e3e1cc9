package manip

import (
	"math"
	"testing"

	"template-designer/internal/item"
	"template-designer/pkg/geometry"
)

func TestRotateFollowsPointer(t *testing.T) {
	st, _, e := newFixture(DefaultConfig())
	it := item.NewPlaceholder(1, 0, 0, 100, 100)
	st.AddItems(it)

	// Center is (50,50). Start vector points right, the final pointer
	// points down, a +90 degree sweep.
	g, err := e.BeginRotate(it, geometry.NewPoint2D(100, 50))
	if err != nil {
		t.Fatal(err)
	}
	g.Delta(geometry.NewPoint2D(50, 100), false)
	g.Complete()

	if math.Abs(it.Angle()-90) > eps {
		t.Errorf("expected 90 degrees, got %v", it.Angle())
	}
}

func TestRotateSnapAlwaysMultipleOfStep(t *testing.T) {
	st, _, e := newFixture(DefaultConfig())
	it := item.NewPlaceholder(1, 0, 0, 100, 100)
	st.AddItems(it)

	g, _ := e.BeginRotate(it, geometry.NewPoint2D(100, 50))
	for _, p := range []geometry.Point2D{
		geometry.NewPoint2D(100, 60),
		geometry.NewPoint2D(90, 90),
		geometry.NewPoint2D(50, 100),
		geometry.NewPoint2D(10, 70),
		geometry.NewPoint2D(0, 45),
	} {
		g.Delta(p, true)
		if rem := math.Mod(it.Angle(), DefaultSnapStep); math.Abs(rem) > eps {
			t.Fatalf("snapped angle %v is not a multiple of %v", it.Angle(), DefaultSnapStep)
		}
	}
	g.Complete()
}

func TestRotateZeroVectorIgnored(t *testing.T) {
	st, _, e := newFixture(DefaultConfig())
	it := item.NewPlaceholder(1, 0, 0, 100, 100)
	it.SetAngle(30)
	st.AddItems(it)

	g, _ := e.BeginRotate(it, geometry.NewPoint2D(100, 50))
	g.Delta(geometry.NewPoint2D(50, 50), false) // pointer exactly on center
	g.Complete()

	if it.Angle() != 30 {
		t.Errorf("degenerate pointer changed angle to %v", it.Angle())
	}
}

func TestRotateMultiSelectionSharesDelta(t *testing.T) {
	st, _, e := newFixture(DefaultConfig())
	origin := item.NewPlaceholder(1, 0, 0, 100, 100)
	other := item.NewPlaceholder(2, 300, 0, 100, 100)
	other.SetAngle(45)
	st.AddItems(origin, other)

	sel := e.selection
	sel.Replace([]item.Item{origin, other})

	g, _ := e.BeginRotate(origin, geometry.NewPoint2D(100, 50))
	g.Delta(geometry.NewPoint2D(50, 100), false) // +90 sweep

	// Only the origin rotates live.
	if other.Angle() != 45 {
		t.Errorf("follower rotated live to %v", other.Angle())
	}
	g.Complete()

	if math.Abs(origin.Angle()-90) > eps {
		t.Errorf("origin expected 90, got %v", origin.Angle())
	}
	if math.Abs(other.Angle()-135) > eps {
		t.Errorf("follower expected 135, got %v", other.Angle())
	}
}

func TestRotateStaleOriginSkipsPropagation(t *testing.T) {
	st, _, e := newFixture(DefaultConfig())
	origin := item.NewPlaceholder(1, 0, 0, 100, 100)
	other := item.NewPlaceholder(2, 300, 0, 100, 100)
	st.AddItems(origin, other)
	e.selection.Replace([]item.Item{origin, other})

	g, _ := e.BeginRotate(origin, geometry.NewPoint2D(100, 50))
	g.Delta(geometry.NewPoint2D(50, 100), false)
	st.RemoveItems(origin)
	g.Delta(geometry.NewPoint2D(0, 50), false)
	g.Complete()

	if !g.Aborted() {
		t.Error("gesture must abort once its item leaves the store")
	}
	if other.Angle() != 0 {
		t.Errorf("aborted rotate still propagated %v to follower", other.Angle())
	}
}

func TestGestureLifecycleHooks(t *testing.T) {
	st, _, e := newFixture(DefaultConfig())
	it := item.NewPlaceholder(1, 0, 0, 100, 100)
	st.AddItems(it)

	var started, ended []GestureKind
	e.OnGestureStarted(func(k GestureKind, _ item.Item) { started = append(started, k) })
	e.OnGestureEnded(func(k GestureKind, _ item.Item) { ended = append(ended, k) })

	mg, _ := e.BeginMove(it, geometry.Point2D{})
	mg.Complete()
	mg.Complete() // idempotent

	rg, _ := e.BeginRotate(it, geometry.NewPoint2D(100, 50))
	rg.Complete()

	want := []GestureKind{GestureMove, GestureRotate}
	if len(started) != 2 || started[0] != want[0] || started[1] != want[1] {
		t.Errorf("started hooks %v, want %v", started, want)
	}
	if len(ended) != 2 || ended[0] != want[0] || ended[1] != want[1] {
		t.Errorf("ended hooks %v, want %v", ended, want)
	}
}
