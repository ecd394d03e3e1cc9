// Package selection keeps the selected-item set and the container
// visual selection flags in sync, in both directions, without letting
// either direction recurse into the other.
package selection

import (
	"errors"

	"template-designer/internal/item"
	"template-designer/internal/store"
)

// ErrNilItem is returned when a nil item is passed to the manager.
var ErrNilItem = errors.New("selection: nil item")

// ErrNotInStore is returned when selecting an item the store does not
// own.
var ErrNotInStore = errors.New("selection: item not in store")

// Manager is the selection set. Membership is always a subset of live
// store items; removal from the store removes from the selection. The
// first selected item is the stable primary, used by property panels.
type Manager struct {
	store *store.Store

	items  []item.Item
	member map[string]bool

	// syncing guards the two synchronization directions (set→container
	// and container→set) against recursing into each other.
	syncing bool

	schedule      func(func())
	notifyPending bool
	batching      bool
	batchDirty    bool
	onChanged     []func([]item.Item)
}

// NewManager creates a selection manager over the store. schedule
// defers coalesced change notifications (typically to the end of the
// current event-loop turn); nil means notify synchronously.
func NewManager(st *store.Store, schedule func(func())) *Manager {
	if schedule == nil {
		schedule = func(fn func()) { fn() }
	}
	m := &Manager{
		store:    st,
		member:   make(map[string]bool),
		schedule: schedule,
	}
	st.OnItemRemoved(func(it item.Item) {
		m.Remove(it)
	})
	return m
}

// OnChanged registers a selection-changed observer. Notifications are
// coalesced: several synchronous add/remove calls produce one callback.
func (m *Manager) OnChanged(fn func([]item.Item)) {
	m.onChanged = append(m.onChanged, fn)
}

// Selected returns the selected items in selection order.
func (m *Manager) Selected() []item.Item {
	return append([]item.Item(nil), m.items...)
}

// Primary returns the first selected item, or nil.
func (m *Manager) Primary() item.Item {
	if len(m.items) == 0 {
		return nil
	}
	return m.items[0]
}

// Count returns the number of selected items.
func (m *Manager) Count() int { return len(m.items) }

// IsSelected reports whether the item is selected.
func (m *Manager) IsSelected(it item.Item) bool {
	if it == nil {
		return false
	}
	return m.member[it.ID()]
}

// Add selects an item. Selecting an already-selected item is a no-op.
func (m *Manager) Add(it item.Item) error {
	if it == nil {
		return ErrNilItem
	}
	if !m.store.Contains(it) {
		return ErrNotInStore
	}
	if m.member[it.ID()] {
		return nil
	}
	m.items = append(m.items, it)
	m.member[it.ID()] = true
	m.syncContainer(it, true)
	m.markChanged()
	return nil
}

// Remove deselects an item. Unknown items are ignored.
func (m *Manager) Remove(it item.Item) {
	if it == nil || !m.member[it.ID()] {
		return
	}
	delete(m.member, it.ID())
	for i, sel := range m.items {
		if sel == it {
			m.items = append(m.items[:i], m.items[i+1:]...)
			break
		}
	}
	m.syncContainer(it, false)
	m.markChanged()
}

// Toggle flips an item's selection state.
func (m *Manager) Toggle(it item.Item) error {
	if it == nil {
		return ErrNilItem
	}
	if m.member[it.ID()] {
		m.Remove(it)
		return nil
	}
	return m.Add(it)
}

// Clear deselects everything.
func (m *Manager) Clear() {
	if len(m.items) == 0 {
		return
	}
	items := m.items
	m.items = nil
	m.member = make(map[string]bool)
	for _, it := range items {
		m.syncContainer(it, false)
	}
	m.markChanged()
}

// Replace makes the selection exactly the given items, in order. The
// whole swap produces at most one change notification.
func (m *Manager) Replace(items []item.Item) error {
	for _, it := range items {
		if it == nil {
			return ErrNilItem
		}
		if !m.store.Contains(it) {
			return ErrNotInStore
		}
	}
	return m.batch(func() error {
		m.Clear()
		for _, it := range items {
			if err := m.Add(it); err != nil {
				return err
			}
		}
		return nil
	})
}

// batch holds change notifications while fn mutates the selection, then
// emits at most one for the whole burst.
func (m *Manager) batch(fn func() error) error {
	if m.batching {
		return fn()
	}
	m.batching = true
	err := fn()
	m.batching = false
	if m.batchDirty {
		m.batchDirty = false
		m.markChanged()
	}
	return err
}

// syncContainer is the set→container direction: mark the item's
// container selected (materializing it if needed) or release it.
func (m *Manager) syncContainer(it item.Item, selected bool) {
	if m.syncing {
		return
	}
	m.syncing = true
	defer func() { m.syncing = false }()

	if selected {
		c := m.store.Materialize(it)
		c.SetSelected(true)
		return
	}
	if c := m.store.ContainerFor(it); c != nil {
		c.SetSelected(false)
		m.store.Reconcile(it)
	}
}

// ContainerSelectionChanged is the container→set direction: the host
// toggled a container's visual selection flag and the set follows.
// Re-entrant calls caused by the set→container sync are ignored.
func (m *Manager) ContainerSelectionChanged(c *store.Container) {
	if m.syncing || c == nil || c.Item() == nil {
		return
	}
	m.syncing = true
	defer func() { m.syncing = false }()

	it := c.Item()
	if c.Selected() {
		if !m.member[it.ID()] && m.store.Contains(it) {
			m.items = append(m.items, it)
			m.member[it.ID()] = true
			m.markChanged()
		}
	} else if m.member[it.ID()] {
		delete(m.member, it.ID())
		for i, sel := range m.items {
			if sel == it {
				m.items = append(m.items[:i], m.items[i+1:]...)
				break
			}
		}
		m.markChanged()
	}
}

// markChanged schedules one coalesced notification for the current
// burst of mutations.
func (m *Manager) markChanged() {
	if m.batching {
		m.batchDirty = true
		return
	}
	if m.notifyPending {
		return
	}
	m.notifyPending = true
	m.schedule(func() {
		m.notifyPending = false
		sel := m.Selected()
		for _, fn := range m.onChanged {
			fn(sel)
		}
	})
}
