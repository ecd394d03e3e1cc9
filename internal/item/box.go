package item

import (
	"github.com/google/uuid"

	"template-designer/pkg/geometry"
)

// BoxItem is the shared base for all box-shaped items: a rectangle at
// (left, top) with a rotation angle about its own center.
//
// The angle is stored in degrees and never wrapped; callers normalize
// for display only. Width and height are clamped to the minimum floor
// on every mutation. Setters on locked attributes are silent no-ops,
// mirroring a disabled control rather than an error.
type BoxItem struct {
	boundsNotifier

	id   string
	kind Kind

	left, top     float64
	width, height float64
	angle         float64

	resizable         bool
	lockedPosition    bool
	lockedAspectRatio bool
	ratioX, ratioY    float64

	minWidth, minHeight float64
}

func newBoxItem(kind Kind, left, top, width, height float64) BoxItem {
	b := BoxItem{
		id:        uuid.NewString(),
		kind:      kind,
		left:      left,
		top:       top,
		resizable: true,
		ratioX:    1,
		ratioY:    1,
		minWidth:  DefaultMinSize,
		minHeight: DefaultMinSize,
	}
	b.width = b.clampWidth(width)
	b.height = b.clampHeight(height)
	return b
}

// ID returns the unique identifier for this item.
func (b *BoxItem) ID() string { return b.id }

// Kind returns the item variant.
func (b *BoxItem) Kind() Kind { return b.kind }

// Left returns the left edge of the unrotated box.
func (b *BoxItem) Left() float64 { return b.left }

// Top returns the top edge of the unrotated box.
func (b *BoxItem) Top() float64 { return b.top }

// Width returns the unrotated width.
func (b *BoxItem) Width() float64 { return b.width }

// Height returns the unrotated height.
func (b *BoxItem) Height() float64 { return b.height }

// Angle returns the rotation angle in degrees.
func (b *BoxItem) Angle() float64 { return b.angle }

// Resizable reports whether resize handles apply to this item.
func (b *BoxItem) Resizable() bool { return b.resizable }

// SetResizable toggles resize handles for this item.
func (b *BoxItem) SetResizable(v bool) { b.resizable = v }

// LockedPosition reports whether position mutation is locked.
func (b *BoxItem) LockedPosition() bool { return b.lockedPosition }

// SetLockedPosition locks or unlocks position mutation.
func (b *BoxItem) SetLockedPosition(v bool) { b.lockedPosition = v }

// LockedAspectRatio reports whether the declared ratio is enforced.
func (b *BoxItem) LockedAspectRatio() bool { return b.lockedAspectRatio }

// SetLockedAspectRatio locks or unlocks the declared aspect ratio.
func (b *BoxItem) SetLockedAspectRatio(v bool) { b.lockedAspectRatio = v }

// Ratio returns the declared aspect ratio ratioX/ratioY, or 1 when the
// declaration is degenerate.
func (b *BoxItem) Ratio() float64 {
	if b.ratioY == 0 || b.ratioX == 0 {
		return 1
	}
	return b.ratioX / b.ratioY
}

// SetRatio declares the aspect ratio as ratioX:ratioY. A locked aspect
// ratio makes this a silent no-op.
func (b *BoxItem) SetRatio(ratioX, ratioY float64) {
	if b.lockedAspectRatio {
		return
	}
	b.ratioX = ratioX
	b.ratioY = ratioY
}

// MinWidth returns the minimum width floor.
func (b *BoxItem) MinWidth() float64 { return b.minWidth }

// MinHeight returns the minimum height floor.
func (b *BoxItem) MinHeight() float64 { return b.minHeight }

// SetMinSize configures the per-item size floor. Values below the
// global default are raised to it.
func (b *BoxItem) SetMinSize(minWidth, minHeight float64) {
	if minWidth < DefaultMinSize {
		minWidth = DefaultMinSize
	}
	if minHeight < DefaultMinSize {
		minHeight = DefaultMinSize
	}
	b.minWidth = minWidth
	b.minHeight = minHeight
}

func (b *BoxItem) clampWidth(w float64) float64 {
	if w < b.minWidth {
		return b.minWidth
	}
	return w
}

func (b *BoxItem) clampHeight(h float64) float64 {
	if h < b.minHeight {
		return b.minHeight
	}
	return h
}

// SetPosition moves the item to (left, top). A locked position makes
// this a silent no-op.
func (b *BoxItem) SetPosition(left, top float64) {
	if b.lockedPosition {
		return
	}
	b.left = left
	b.top = top
	b.notify()
}

// SetSize resizes the item, clamping to the minimum floor.
func (b *BoxItem) SetSize(width, height float64) {
	b.width = b.clampWidth(width)
	b.height = b.clampHeight(height)
	b.notify()
}

// SetAngle sets the rotation angle in degrees. The value is stored as
// given, without wrapping.
func (b *BoxItem) SetAngle(angle float64) {
	b.angle = angle
	b.notify()
}

// SetGeometry updates position and size together with a single
// bounds-changed notification. The resize engine uses this so an
// edge-anchored resize doesn't double-notify.
func (b *BoxItem) SetGeometry(left, top, width, height float64) {
	b.left = left
	b.top = top
	b.width = b.clampWidth(width)
	b.height = b.clampHeight(height)
	b.notify()
}

// Bounds returns the axis-aligned bounding rectangle of the rotated
// box, recomputed from position, size and angle on every read.
func (b *BoxItem) Bounds() geometry.Rect {
	return geometry.RotatedBounds(b.left, b.top, b.width, b.height, b.angle)
}

// Center returns the visual center of the item.
func (b *BoxItem) Center() geometry.Point2D {
	return geometry.NewPoint2D(b.left+b.width/2, b.top+b.height/2)
}

// HitTest classifies the item's bounds against a region.
func (b *BoxItem) HitTest(region geometry.Rect) geometry.HitResult {
	return geometry.HitTest(b.Bounds(), region)
}

// OnBoundsChanged registers a bounds-changed listener.
func (b *BoxItem) OnBoundsChanged(fn func()) func() {
	return b.subscribe(fn)
}

// cloneBase copies the geometric state into a fresh base with a new
// identity, no listeners, and the duplicate offset applied.
func (b *BoxItem) cloneBase() BoxItem {
	dup := *b
	dup.boundsNotifier = boundsNotifier{}
	dup.id = uuid.NewString()
	dup.left += DuplicateOffset
	dup.top += DuplicateOffset
	return dup
}

func (b *BoxItem) baseSnapshot() Snapshot {
	return Snapshot{
		ID:                b.id,
		Kind:              b.kind,
		Left:              b.left,
		Top:               b.top,
		Width:             b.width,
		Height:            b.height,
		Angle:             b.angle,
		Resizable:         b.resizable,
		LockedPosition:    b.lockedPosition,
		LockedAspectRatio: b.lockedAspectRatio,
		RatioX:            b.ratioX,
		RatioY:            b.ratioY,
		MinWidth:          b.minWidth,
		MinHeight:         b.minHeight,
	}
}

// restoreBase applies a snapshot's shared fields, keeping the snapshot
// identity so reloads round-trip.
func (b *BoxItem) restoreBase(s Snapshot) {
	if s.ID != "" {
		b.id = s.ID
	}
	b.left = s.Left
	b.top = s.Top
	b.resizable = s.Resizable
	b.lockedPosition = s.LockedPosition
	b.lockedAspectRatio = s.LockedAspectRatio
	b.ratioX = s.RatioX
	b.ratioY = s.RatioY
	b.SetMinSize(s.MinWidth, s.MinHeight)
	b.width = b.clampWidth(s.Width)
	b.height = b.clampHeight(s.Height)
	b.angle = s.Angle
}
