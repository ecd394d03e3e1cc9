package manip

import (
	"math"
	"testing"

	"template-designer/internal/item"
	"template-designer/internal/selection"
	"template-designer/internal/store"
	"template-designer/pkg/geometry"
)

func newFixture(config Config) (*store.Store, *selection.Manager, *Engine) {
	st := store.NewStore()
	st.SetViewport(geometry.NewRect(0, 0, 2000, 2000))
	sel := selection.NewManager(st, nil)
	return st, sel, NewEngine(st, sel, config)
}

func TestMoveSimple(t *testing.T) {
	st, _, e := newFixture(DefaultConfig())
	it := item.NewPlaceholder(1, 100, 100, 50, 50)
	st.AddItems(it)

	g, err := e.BeginMove(it, geometry.NewPoint2D(120, 120))
	if err != nil {
		t.Fatal(err)
	}
	g.Delta(geometry.NewPoint2D(150, 140))
	g.Complete()

	if it.Left() != 130 || it.Top() != 120 {
		t.Errorf("expected (130,120), got (%v,%v)", it.Left(), it.Top())
	}
}

func TestMoveLockedPositionIsNoop(t *testing.T) {
	st, _, e := newFixture(DefaultConfig())
	it := item.NewPlaceholder(1, 100, 100, 50, 50)
	it.SetLockedPosition(true)
	st.AddItems(it)

	g, _ := e.BeginMove(it, geometry.NewPoint2D(0, 0))
	g.Delta(geometry.NewPoint2D(10, 10))
	g.Complete()

	if it.Left() != 100 || it.Top() != 100 {
		t.Errorf("locked item moved to (%v,%v)", it.Left(), it.Top())
	}
}

func TestMoveDeltaRotatedIntoItemFrame(t *testing.T) {
	st, _, e := newFixture(DefaultConfig())
	it := item.NewPlaceholder(1, 100, 100, 50, 50)
	it.SetAngle(90)
	st.AddItems(it)

	g, _ := e.BeginMove(it, geometry.NewPoint2D(0, 0))
	// Screen delta (30, 0) rotated by -90 degrees becomes (0, -30).
	g.Delta(geometry.NewPoint2D(30, 0))
	g.Complete()

	if math.Abs(it.Left()-100) > 1e-9 || math.Abs(it.Top()-70) > 1e-9 {
		t.Errorf("expected (100,70), got (%v,%v)", it.Left(), it.Top())
	}
}

func TestMoveMultiSelectionClamp(t *testing.T) {
	st, sel, e := newFixture(DefaultConfig())
	origin := item.NewPlaceholder(1, 100, 100, 50, 50)
	follower := item.NewPlaceholder(2, 20, 40, 50, 50)
	st.AddItems(origin, follower)
	sel.Replace([]item.Item{origin, follower})

	g, _ := e.BeginMove(origin, geometry.NewPoint2D(0, 0))
	// Raw delta (-60,-60) would drive the follower negative; the shared
	// delta clamps at (-20,-40).
	g.Delta(geometry.NewPoint2D(-60, -60))
	g.Complete()

	if origin.Left() != 80 || origin.Top() != 60 {
		t.Errorf("origin expected (80,60), got (%v,%v)", origin.Left(), origin.Top())
	}
	if follower.Left() != 0 || follower.Top() != 0 {
		t.Errorf("follower expected (0,0), got (%v,%v)", follower.Left(), follower.Top())
	}
}

func TestMoveFollowersDeferredAboveThreshold(t *testing.T) {
	config := DefaultConfig()
	config.InstantPreviewThreshold = 2
	st, sel, e := newFixture(config)

	origin := item.NewPlaceholder(1, 100, 100, 50, 50)
	f1 := item.NewPlaceholder(2, 200, 100, 50, 50)
	f2 := item.NewPlaceholder(3, 300, 100, 50, 50)
	st.AddItems(origin, f1, f2)
	sel.Replace([]item.Item{origin, f1, f2})

	g, _ := e.BeginMove(origin, geometry.NewPoint2D(0, 0))
	g.Delta(geometry.NewPoint2D(25, 0))

	// Above the instant-preview threshold only the dragged item updates
	// live.
	if origin.Left() != 125 {
		t.Errorf("origin must move live, at %v", origin.Left())
	}
	if f1.Left() != 200 || f2.Left() != 300 {
		t.Error("followers must not move live above the threshold")
	}

	g.Complete()
	if f1.Left() != 225 || f2.Left() != 325 {
		t.Errorf("followers must catch up on completion, got %v and %v", f1.Left(), f2.Left())
	}
}

func TestMoveStaleOriginAbortsSilently(t *testing.T) {
	st, _, e := newFixture(DefaultConfig())
	it := item.NewPlaceholder(1, 100, 100, 50, 50)
	st.AddItems(it)

	g, _ := e.BeginMove(it, geometry.NewPoint2D(0, 0))
	g.Delta(geometry.NewPoint2D(10, 10))
	st.RemoveItems(it)

	g.Delta(geometry.NewPoint2D(500, 500))
	if !g.Aborted() {
		t.Error("gesture must abort once its item leaves the store")
	}
	g.Complete() // must not panic or mutate

	if it.Left() != 110 || it.Top() != 110 {
		t.Errorf("aborted gesture kept writing: (%v,%v)", it.Left(), it.Top())
	}
}

func TestMoveNilItemFailsFast(t *testing.T) {
	_, _, e := newFixture(DefaultConfig())
	if _, err := e.BeginMove(nil, geometry.Point2D{}); err == nil {
		t.Error("expected error for nil item")
	}
}

func TestMoveLiveUpdatesReachObserver(t *testing.T) {
	st, _, e := newFixture(DefaultConfig())
	it := item.NewPlaceholder(1, 100, 100, 50, 50)
	st.AddItems(it)

	updates := 0
	e.OnItemChanged(func(item.Item) { updates++ })

	g, _ := e.BeginMove(it, geometry.NewPoint2D(0, 0))
	g.Delta(geometry.NewPoint2D(1, 0))
	g.Delta(geometry.NewPoint2D(2, 0))
	g.Delta(geometry.NewPoint2D(3, 0))
	g.Complete()

	if updates != 3 {
		t.Errorf("expected a live update per Delta, got %d", updates)
	}
}
