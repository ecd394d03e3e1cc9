// Package store owns the canvas item collection and decides which
// items get a live view container, so a large template never
// materializes visuals for off-screen items.
package store

import (
	"errors"

	"template-designer/internal/item"
	"template-designer/pkg/geometry"
)

// ErrNilItem is returned when a nil item is passed to the store.
var ErrNilItem = errors.New("store: nil item")

// Store is the ordered item collection (z-order = insertion order)
// plus the viewport virtualizer. All methods must be called from the
// single owning UI thread.
type Store struct {
	items []item.Item
	byID  map[string]item.Item

	viewport geometry.Rect
	extend   geometry.Rect

	pool       *ContainerPool
	containers map[string]*Container

	unsubscribe map[string]func()

	onContainerRequested func(*Container)
	onContainerRecycled  func(*Container)
	onItemRemoved        []func(item.Item)
	onChanged            []func()
}

// NewStore creates an empty store with the default container pool.
func NewStore() *Store {
	pool, _ := NewContainerPool(DefaultPoolCapacity)
	return &Store{
		byID:        make(map[string]item.Item),
		pool:        pool,
		containers:  make(map[string]*Container),
		unsubscribe: make(map[string]func()),
	}
}

// SetPoolCapacity reconfigures the container pool.
func (s *Store) SetPoolCapacity(capacity int) error {
	return s.pool.SetCapacity(capacity)
}

// Pool exposes the container pool for inspection.
func (s *Store) Pool() *ContainerPool { return s.pool }

// OnContainerRequested sets the callback invoked when an item gets a
// live container; the host attaches its painted visual here.
func (s *Store) OnContainerRequested(fn func(*Container)) {
	s.onContainerRequested = fn
}

// OnContainerRecycled sets the callback invoked before a container
// returns to the pool; the host detaches its visual here.
func (s *Store) OnContainerRecycled(fn func(*Container)) {
	s.onContainerRecycled = fn
}

// OnItemRemoved registers a hook invoked for every item leaving the
// store. The selection manager uses this to keep its subset invariant.
func (s *Store) OnItemRemoved(fn func(item.Item)) {
	s.onItemRemoved = append(s.onItemRemoved, fn)
}

// OnChanged registers a hook invoked after any add, remove or clear.
func (s *Store) OnChanged(fn func()) {
	s.onChanged = append(s.onChanged, fn)
}

func (s *Store) emitChanged() {
	for _, fn := range s.onChanged {
		fn()
	}
}

// Len returns the number of items.
func (s *Store) Len() int { return len(s.items) }

// Items returns the items in z-order. The slice is a copy.
func (s *Store) Items() []item.Item {
	return append([]item.Item(nil), s.items...)
}

// ItemByID returns the item with the given id, or nil.
func (s *Store) ItemByID(id string) item.Item { return s.byID[id] }

// Contains reports whether the item is currently in the store.
func (s *Store) Contains(it item.Item) bool {
	if it == nil {
		return false
	}
	return s.byID[it.ID()] == it
}

// ExtendRect returns the union bounding box of every item, regardless
// of the current viewport. It is maintained incrementally and always
// covers the true union.
func (s *Store) ExtendRect() geometry.Rect { return s.extend }

// Viewport returns the currently visible region in canvas coordinates.
func (s *Store) Viewport() geometry.Rect { return s.viewport }

// AddItems appends items in order, updating the extend rectangle and
// materializing containers for items intersecting the viewport.
// Partial intersection counts as visible for incremental adds.
func (s *Store) AddItems(items ...item.Item) error {
	for _, it := range items {
		if it == nil {
			return ErrNilItem
		}
	}
	for _, it := range items {
		s.items = append(s.items, it)
		s.byID[it.ID()] = it
		s.extend = s.extend.Union(it.Bounds())
		s.subscribeBounds(it)
		if it.Bounds().Intersects(s.viewport) {
			s.Materialize(it)
		}
	}
	s.emitChanged()
	return nil
}

// ResetItems replaces the whole collection. includePartial decides
// whether partially visible items materialize immediately or only
// items fully inside the viewport do.
func (s *Store) ResetItems(items []item.Item, includePartial bool) error {
	for _, it := range items {
		if it == nil {
			return ErrNilItem
		}
	}
	s.Clear()
	for _, it := range items {
		s.items = append(s.items, it)
		s.byID[it.ID()] = it
		s.extend = s.extend.Union(it.Bounds())
		s.subscribeBounds(it)

		visible := false
		if includePartial {
			visible = it.Bounds().Intersects(s.viewport)
		} else {
			visible = s.viewport.ContainsRect(it.Bounds())
		}
		if visible {
			s.Materialize(it)
		}
	}
	s.emitChanged()
	return nil
}

// RemoveItems removes items, recycling their containers and informing
// removal hooks. Unknown items are ignored.
func (s *Store) RemoveItems(items ...item.Item) {
	removed := false
	for _, it := range items {
		if it == nil || s.byID[it.ID()] != it {
			continue
		}
		s.dematerialize(it, true)
		if unsub := s.unsubscribe[it.ID()]; unsub != nil {
			unsub()
			delete(s.unsubscribe, it.ID())
		}
		delete(s.byID, it.ID())
		for i, existing := range s.items {
			if existing == it {
				s.items = append(s.items[:i], s.items[i+1:]...)
				break
			}
		}
		removed = true
		for _, fn := range s.onItemRemoved {
			fn(it)
		}
	}
	if removed {
		s.recomputeExtend()
		s.emitChanged()
	}
}

// Clear removes every item.
func (s *Store) Clear() {
	s.RemoveItems(s.Items()...)
}

// QueryRegion returns the items whose bounds intersect the region, in
// z-order.
func (s *Store) QueryRegion(region geometry.Rect) []item.Item {
	var hits []item.Item
	for _, it := range s.items {
		if it.Bounds().Intersects(region) {
			hits = append(hits, it)
		}
	}
	return hits
}

// ItemAt returns the topmost item whose bounds contain the point, or
// nil.
func (s *Store) ItemAt(p geometry.Point2D) item.Item {
	for i := len(s.items) - 1; i >= 0; i-- {
		if s.items[i].Bounds().Contains(p) {
			return s.items[i]
		}
	}
	return nil
}

func (s *Store) subscribeBounds(it item.Item) {
	s.unsubscribe[it.ID()] = it.OnBoundsChanged(func() {
		s.extend = s.extend.Union(it.Bounds())
		s.reconcileItem(it)
	})
}

// recomputeExtend rebuilds the extend rectangle from scratch. Used on
// removal, where the incremental union can only grow.
func (s *Store) recomputeExtend() {
	s.extend = geometry.Rect{}
	for _, it := range s.items {
		s.extend = s.extend.Union(it.Bounds())
	}
}
