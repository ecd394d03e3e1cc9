package selection

import (
	"errors"
	"testing"

	"template-designer/internal/item"
	"template-designer/internal/store"
	"template-designer/pkg/geometry"
)

func newFixture() (*store.Store, *Manager) {
	st := store.NewStore()
	st.SetViewport(geometry.NewRect(0, 0, 1000, 1000))
	return st, NewManager(st, nil)
}

func TestAddRemovePrimary(t *testing.T) {
	st, m := newFixture()
	a := item.NewPlaceholder(1, 0, 0, 50, 50)
	b := item.NewPlaceholder(2, 100, 0, 50, 50)
	st.AddItems(a, b)

	if err := m.Add(a); err != nil {
		t.Fatal(err)
	}
	if err := m.Add(b); err != nil {
		t.Fatal(err)
	}
	if m.Primary() != a {
		t.Error("primary must be the first selected item")
	}
	m.Remove(a)
	if m.Primary() != b {
		t.Error("primary must follow removal")
	}
	m.Clear()
	if m.Count() != 0 || m.Primary() != nil {
		t.Error("clear left residue")
	}
}

func TestAddValidation(t *testing.T) {
	_, m := newFixture()
	if err := m.Add(nil); !errors.Is(err, ErrNilItem) {
		t.Errorf("expected ErrNilItem, got %v", err)
	}
	loose := item.NewPlaceholder(1, 0, 0, 50, 50)
	if err := m.Add(loose); !errors.Is(err, ErrNotInStore) {
		t.Errorf("expected ErrNotInStore, got %v", err)
	}
}

func TestStoreRemovalShrinksSelection(t *testing.T) {
	st, m := newFixture()
	a := item.NewPlaceholder(1, 0, 0, 50, 50)
	st.AddItems(a)
	m.Add(a)

	st.RemoveItems(a)
	if m.IsSelected(a) || m.Count() != 0 {
		t.Error("selection must stay a subset of store items")
	}
}

func TestContainerSyncBothDirections(t *testing.T) {
	st, m := newFixture()
	a := item.NewPlaceholder(1, 2000, 2000, 50, 50) // off-screen
	st.AddItems(a)

	// set→container: selecting forces materialization and flags it.
	m.Add(a)
	c := st.ContainerFor(a)
	if c == nil || !c.Selected() {
		t.Fatal("selection must materialize and flag the container")
	}

	// Deselecting releases the flag and the off-screen container.
	m.Remove(a)
	if st.ContainerFor(a) != nil {
		t.Error("deselected off-screen item must dematerialize")
	}

	// container→set: host toggles the container flag.
	b := item.NewPlaceholder(2, 0, 0, 50, 50)
	st.AddItems(b)
	cb := st.ContainerFor(b)
	cb.SetSelected(true)
	m.ContainerSelectionChanged(cb)
	if !m.IsSelected(b) {
		t.Error("set did not follow container selection")
	}
	cb.SetSelected(false)
	m.ContainerSelectionChanged(cb)
	if m.IsSelected(b) {
		t.Error("set did not follow container deselection")
	}
}

func TestNotificationCoalescing(t *testing.T) {
	st := store.NewStore()
	st.SetViewport(geometry.NewRect(0, 0, 1000, 1000))

	// Collect scheduled flushes without running them, like an event
	// loop batching to the end of the turn.
	var queued []func()
	m := NewManager(st, func(fn func()) { queued = append(queued, fn) })

	fired := 0
	m.OnChanged(func([]item.Item) { fired++ })

	a := item.NewPlaceholder(1, 0, 0, 50, 50)
	b := item.NewPlaceholder(2, 100, 0, 50, 50)
	c := item.NewPlaceholder(3, 200, 0, 50, 50)
	st.AddItems(a, b, c)

	m.Add(a)
	m.Add(b)
	m.Add(c)
	m.Remove(b)

	if fired != 0 {
		t.Fatalf("notification ran before the frame flushed (%d)", fired)
	}
	if len(queued) != 1 {
		t.Fatalf("expected one scheduled flush for the burst, got %d", len(queued))
	}
	queued[0]()
	if fired != 1 {
		t.Errorf("expected exactly one coalesced notification, got %d", fired)
	}
}

func TestReplaceNotifiesOnceSynchronously(t *testing.T) {
	st := store.NewStore()
	st.SetViewport(geometry.NewRect(0, 0, 1000, 1000))
	m := NewManager(st, nil)

	fired := 0
	m.OnChanged(func([]item.Item) { fired++ })

	a := item.NewPlaceholder(1, 0, 0, 50, 50)
	b := item.NewPlaceholder(2, 100, 0, 50, 50)
	c := item.NewPlaceholder(3, 200, 0, 50, 50)
	st.AddItems(a, b, c)

	if err := m.Replace([]item.Item{a, b, c}); err != nil {
		t.Fatal(err)
	}
	if fired != 1 {
		t.Errorf("Replace of 3 items fired %d notifications, want 1", fired)
	}

	// Swapping an existing selection is still one burst: clear + adds.
	fired = 0
	if err := m.Replace([]item.Item{b}); err != nil {
		t.Fatal(err)
	}
	if fired != 1 {
		t.Errorf("Replace swap fired %d notifications, want 1", fired)
	}
}

func TestRubberBandResolveNotifiesOnce(t *testing.T) {
	st := store.NewStore()
	st.SetViewport(geometry.NewRect(0, 0, 1000, 1000))
	m := NewManager(st, nil)

	a := item.NewPlaceholder(1, 10, 10, 50, 50)
	b := item.NewPlaceholder(2, 100, 10, 50, 50)
	c := item.NewPlaceholder(3, 200, 10, 50, 50)
	st.AddItems(a, b, c)

	fired := 0
	m.OnChanged(func([]item.Item) { fired++ })

	region := geometry.NewRect(0, 0, 300, 100)
	if err := m.ResolveRegion(region, ModCtrl); err != nil {
		t.Fatal(err)
	}
	if fired != 1 {
		t.Errorf("ctrl resolve fired %d notifications, want 1", fired)
	}

	fired = 0
	if err := m.ResolveRegion(region, ModShift); err != nil {
		t.Fatal(err)
	}
	if fired != 1 {
		t.Errorf("shift resolve fired %d notifications, want 1", fired)
	}
}

func TestRubberBandReplace(t *testing.T) {
	st, m := newFixture()
	a := item.NewPlaceholder(1, 10, 10, 50, 50)
	b := item.NewPlaceholder(2, 100, 10, 50, 50)
	c := item.NewPlaceholder(3, 800, 800, 50, 50)
	st.AddItems(a, b, c)
	m.Add(c)

	// Region covering a and b, no modifier: selection becomes {a,b}.
	if err := m.ResolveRegion(geometry.NewRect(0, 0, 200, 100), ModNone); err != nil {
		t.Fatal(err)
	}
	if m.Count() != 2 || !m.IsSelected(a) || !m.IsSelected(b) || m.IsSelected(c) {
		t.Errorf("expected {a,b}, got %d items", m.Count())
	}
}

func TestRubberBandShiftToggles(t *testing.T) {
	st, m := newFixture()
	a := item.NewPlaceholder(1, 10, 10, 50, 50)
	b := item.NewPlaceholder(2, 100, 10, 50, 50)
	c := item.NewPlaceholder(3, 800, 800, 50, 50)
	st.AddItems(a, b, c)
	m.Replace([]item.Item{a, c})

	// Region matches {a,b}; shift toggles: a leaves, b joins, c stays.
	if err := m.ResolveRegion(geometry.NewRect(0, 0, 200, 100), ModShift); err != nil {
		t.Fatal(err)
	}
	if m.IsSelected(a) || !m.IsSelected(b) || !m.IsSelected(c) {
		t.Errorf("expected {b,c}, got a=%v b=%v c=%v",
			m.IsSelected(a), m.IsSelected(b), m.IsSelected(c))
	}
}

func TestRubberBandCtrlMerges(t *testing.T) {
	st, m := newFixture()
	a := item.NewPlaceholder(1, 10, 10, 50, 50)
	b := item.NewPlaceholder(2, 800, 800, 50, 50)
	st.AddItems(a, b)
	m.Add(b)

	if err := m.ResolveRegion(geometry.NewRect(0, 0, 100, 100), ModCtrl); err != nil {
		t.Fatal(err)
	}
	if !m.IsSelected(a) || !m.IsSelected(b) {
		t.Error("ctrl merge must union region items with the selection")
	}
}
