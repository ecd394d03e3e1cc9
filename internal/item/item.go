// Package item provides the canvas item model: box-shaped items with
// position, size and rotation, poly-line items, and the designer
// variants (placeholder, image, shape, text) built on top of them.
package item

import (
	"template-designer/pkg/geometry"
)

const (
	// DefaultMinSize is the floor for item width and height when no
	// explicit minimum is configured.
	DefaultMinSize = 10.0

	// DuplicateOffset is the fixed translation applied to box item
	// clones so duplicates don't land exactly on top of the original.
	DuplicateOffset = 10.0
)

// Kind identifies the item variant.
type Kind string

const (
	KindPlaceholder Kind = "placeholder"
	KindImage       Kind = "image"
	KindShape       Kind = "shape"
	KindText        Kind = "text"
	KindPolyline    Kind = "polyline"
)

// Item is the common contract every canvas item satisfies. Items are
// exclusively owned by the store; everything else holds plain
// non-owning references.
type Item interface {
	// ID returns the unique identifier for this item.
	ID() string

	// Kind returns the item variant.
	Kind() Kind

	// Bounds returns the axis-aligned bounding rectangle of the item in
	// canvas coordinates, accounting for rotation.
	Bounds() geometry.Rect

	// HitTest classifies the item against a region in canvas coordinates.
	HitTest(region geometry.Rect) geometry.HitResult

	// OnBoundsChanged registers a listener invoked exactly once per
	// mutating call. The returned function removes the listener.
	OnBoundsChanged(fn func()) func()

	// Clone returns a value-independent copy with a fresh identity.
	Clone() Item

	// Snapshot returns a plain serializable view of the item's state.
	Snapshot() Snapshot
}

// boundsNotifier is the per-item observer list behind OnBoundsChanged.
// Mutating setters call notify exactly once, making bounds-changed the
// single invalidation signal consumers rely on.
type boundsNotifier struct {
	listeners map[int]func()
	nextKey   int
}

func (n *boundsNotifier) subscribe(fn func()) func() {
	if n.listeners == nil {
		n.listeners = make(map[int]func())
	}
	key := n.nextKey
	n.nextKey++
	n.listeners[key] = fn
	return func() {
		delete(n.listeners, key)
	}
}

func (n *boundsNotifier) notify() {
	for _, fn := range n.listeners {
		fn()
	}
}

// ListenerCount returns the number of registered bounds listeners.
// Used to verify adorners and containers detach cleanly.
func (n *boundsNotifier) ListenerCount() int {
	return len(n.listeners)
}
