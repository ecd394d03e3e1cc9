// Package manip translates pointer deltas into item-space transforms:
// move, resize and rotate gestures over the selection. Gestures follow
// a Start → Delta → Complete lifecycle and run synchronously on the UI
// thread.
package manip

import (
	"errors"

	"template-designer/internal/item"
	"template-designer/internal/selection"
	"template-designer/internal/store"
	"template-designer/pkg/geometry"
)

// ErrNilItem is returned when a gesture is started on a nil item.
var ErrNilItem = errors.New("manip: nil item")

// ErrNotResizable is returned when a resize is started on an item with
// resizing disabled.
var ErrNotResizable = errors.New("manip: item not resizable")

const (
	// DefaultSnapStep is the rotation snap increment in degrees.
	DefaultSnapStep = 15.0

	// DefaultInstantPreviewThreshold is the selection size above which
	// follower items skip live updates and move only on completion.
	DefaultInstantPreviewThreshold = 200
)

// Positioned is the surface the move gesture needs from an item.
// Box and poly-line items both provide it.
type Positioned interface {
	item.Item
	Left() float64
	Top() float64
	SetPosition(left, top float64)
}

// Box is the surface resize and rotate gestures need; every box-shaped
// variant provides it through its embedded base.
type Box interface {
	Positioned
	Width() float64
	Height() float64
	Angle() float64
	SetAngle(angle float64)
	Resizable() bool
	LockedAspectRatio() bool
	Ratio() float64
	MinWidth() float64
	MinHeight() float64
	SetGeometry(left, top, width, height float64)
	Center() geometry.Point2D
}

// GestureKind identifies the active manipulation.
type GestureKind int

const (
	GestureMove GestureKind = iota
	GestureResize
	GestureRotate
)

// Config tunes the engine.
type Config struct {
	SnapStep                float64
	InstantPreviewThreshold int
}

// DefaultConfig returns the stock engine configuration.
func DefaultConfig() Config {
	return Config{
		SnapStep:                DefaultSnapStep,
		InstantPreviewThreshold: DefaultInstantPreviewThreshold,
	}
}

// Engine owns the gesture handlers. Dependencies are passed explicitly
// at construction; the engine never reaches through globals.
type Engine struct {
	store     *store.Store
	selection *selection.Manager
	config    Config

	onItemChanged    func(item.Item)
	onGestureStarted func(GestureKind, item.Item)
	onGestureEnded   func(GestureKind, item.Item)
}

// NewEngine creates a manipulation engine over the store and selection.
func NewEngine(st *store.Store, sel *selection.Manager, config Config) *Engine {
	if config.SnapStep <= 0 {
		config.SnapStep = DefaultSnapStep
	}
	if config.InstantPreviewThreshold <= 0 {
		config.InstantPreviewThreshold = DefaultInstantPreviewThreshold
	}
	return &Engine{store: st, selection: sel, config: config}
}

// OnItemChanged sets the live-update hook invoked on every Delta step
// for each mutated item; property panels bind here.
func (e *Engine) OnItemChanged(fn func(item.Item)) { e.onItemChanged = fn }

// OnGestureStarted sets the hook invoked when a gesture starts; the
// adorner manager attaches transient overlays here.
func (e *Engine) OnGestureStarted(fn func(GestureKind, item.Item)) { e.onGestureStarted = fn }

// OnGestureEnded sets the hook invoked when a gesture completes.
func (e *Engine) OnGestureEnded(fn func(GestureKind, item.Item)) { e.onGestureEnded = fn }

func (e *Engine) notifyChanged(it item.Item) {
	if e.onItemChanged != nil {
		e.onItemChanged(it)
	}
}

func (e *Engine) gestureStarted(kind GestureKind, it item.Item) {
	if e.onGestureStarted != nil {
		e.onGestureStarted(kind, it)
	}
}

func (e *Engine) gestureEnded(kind GestureKind, it item.Item) {
	if e.onGestureEnded != nil {
		e.onGestureEnded(kind, it)
	}
}

// live reports whether the item is still owned by the store. A gesture
// whose item disappeared mid-flight aborts silently on its next step.
func (e *Engine) live(it item.Item) bool {
	return e.store.Contains(it)
}

// otherSelected returns the selected items except the gesture origin.
func (e *Engine) otherSelected(origin item.Item) []item.Item {
	var others []item.Item
	for _, it := range e.selection.Selected() {
		if it != origin {
			others = append(others, it)
		}
	}
	return others
}

// localDelta rotates a screen-space pointer delta into the item's local
// frame by the negative item angle.
func localDelta(delta geometry.Point2D, it item.Item) geometry.Point2D {
	type angled interface{ Angle() float64 }
	if a, ok := it.(angled); ok && a.Angle() != 0 {
		return delta.Rotate(-a.Angle())
	}
	return delta
}
