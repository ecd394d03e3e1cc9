package store

import (
	"template-designer/internal/item"
	"template-designer/pkg/geometry"
)

// Materialize gives the item a live container, pulling one from the
// pool. Materializing an already-materialized item is a no-op.
func (s *Store) Materialize(it item.Item) *Container {
	if it == nil {
		return nil
	}
	if c, ok := s.containers[it.ID()]; ok {
		return c
	}
	c := s.pool.Take()
	c.it = it
	s.containers[it.ID()] = c
	if s.onContainerRequested != nil {
		s.onContainerRequested(c)
	}
	return c
}

// Dematerialize recycles the item's container unless it is forced
// visible (export) or marked selected. Idempotent.
func (s *Store) Dematerialize(it item.Item) {
	s.dematerialize(it, false)
}

func (s *Store) dematerialize(it item.Item, evenIfHeld bool) {
	if it == nil {
		return
	}
	c, ok := s.containers[it.ID()]
	if !ok {
		return
	}
	if !evenIfHeld && (c.forced || c.selected) {
		return
	}
	delete(s.containers, it.ID())
	if s.onContainerRecycled != nil {
		s.onContainerRecycled(c)
	}
	s.pool.Put(c)
}

// ContainerFor returns the live container for the item, or nil when the
// item is not materialized.
func (s *Store) ContainerFor(it item.Item) *Container {
	if it == nil {
		return nil
	}
	return s.containers[it.ID()]
}

// MaterializedCount returns the number of live containers.
func (s *Store) MaterializedCount() int { return len(s.containers) }

// SetViewport moves the visible region and reconciles container
// visibility for the items in the four delta strips between the old and
// new rectangles, rather than walking the whole collection.
func (s *Store) SetViewport(viewport geometry.Rect) {
	old := s.viewport
	s.viewport = viewport
	if old == viewport {
		return
	}

	entered := deltaStrips(viewport, old)
	left := deltaStrips(old, viewport)

	for _, strip := range entered {
		for _, it := range s.QueryRegion(strip) {
			if it.Bounds().Intersects(viewport) {
				s.Materialize(it)
			}
		}
	}
	for _, strip := range left {
		for _, it := range s.QueryRegion(strip) {
			if !it.Bounds().Intersects(viewport) {
				s.Dematerialize(it)
			}
		}
	}
}

// Reconcile re-evaluates one item's container against the viewport.
// The selection manager calls this after clearing a container's
// selected flag so off-screen items return to the pool.
func (s *Store) Reconcile(it item.Item) {
	if it == nil {
		return
	}
	s.reconcileItem(it)
}

// reconcileItem re-evaluates one item's container after its bounds
// changed.
func (s *Store) reconcileItem(it item.Item) {
	if s.byID[it.ID()] != it {
		return
	}
	if it.Bounds().Intersects(s.viewport) {
		s.Materialize(it)
	} else {
		s.Dematerialize(it)
	}
}

// deltaStrips returns the up-to-four rectangular strips of a that lie
// outside b (left, right, top, bottom). Strips may overlap at the
// corners; visibility transitions are idempotent so double-visiting an
// item is harmless.
func deltaStrips(a, b geometry.Rect) []geometry.Rect {
	if a.IsEmpty() {
		return nil
	}
	if !a.Intersects(b) {
		return []geometry.Rect{a}
	}

	var strips []geometry.Rect
	if a.X < b.X {
		strips = append(strips, geometry.NewRect(a.X, a.Y, b.X-a.X, a.Height))
	}
	if a.X+a.Width > b.X+b.Width {
		strips = append(strips, geometry.NewRect(b.X+b.Width, a.Y, a.X+a.Width-(b.X+b.Width), a.Height))
	}
	if a.Y < b.Y {
		strips = append(strips, geometry.NewRect(a.X, a.Y, a.Width, b.Y-a.Y))
	}
	if a.Y+a.Height > b.Y+b.Height {
		strips = append(strips, geometry.NewRect(a.X, b.Y+b.Height, a.Width, a.Y+a.Height-(b.Y+b.Height)))
	}
	return strips
}

// WithAllVisible forces every item visible for the duration of fn,
// bypassing virtualization for a full-resolution export, then restores
// virtualized visibility. Restoration runs even when fn fails.
func (s *Store) WithAllVisible(fn func() error) error {
	var forced []*Container
	for _, it := range s.items {
		c := s.Materialize(it)
		if !c.forced {
			c.forced = true
			forced = append(forced, c)
		}
	}

	defer func() {
		for _, c := range forced {
			c.forced = false
		}
		for _, it := range s.items {
			s.reconcileItem(it)
		}
	}()

	return fn()
}
