package manip

import (
	"template-designer/internal/item"
	"template-designer/pkg/geometry"
)

// HAlign selects the active horizontal resize edge.
type HAlign int

const (
	// HStretch means no horizontal edge is active.
	HStretch HAlign = iota
	HLeft
	HRight
)

// VAlign selects the active vertical resize edge.
type VAlign int

const (
	// VStretch means no vertical edge is active.
	VStretch VAlign = iota
	VTop
	VBottom
)

// Handle encodes which edge or corner thumb drives a resize.
type Handle struct {
	H HAlign
	V VAlign
}

// ResizeGesture resizes a box item from one of its edge or corner
// handles, keeping the visually-anchored opposite corner fixed on
// screen even when the item is rotated.
type ResizeGesture struct {
	e *Engine

	target Box
	handle Handle

	startPointer geometry.Point2D
	startLeft    float64
	startTop     float64
	startWidth   float64
	startHeight  float64
	angle        float64
	center       geometry.Point2D

	aborted bool
	done    bool
}

// BeginResize starts a resize gesture on the given handle.
func (e *Engine) BeginResize(target Box, handle Handle, pointer geometry.Point2D) (*ResizeGesture, error) {
	if target == nil {
		return nil, ErrNilItem
	}
	if !target.Resizable() {
		return nil, ErrNotResizable
	}
	g := &ResizeGesture{
		e:            e,
		target:       target,
		handle:       handle,
		startPointer: pointer,
		startLeft:    target.Left(),
		startTop:     target.Top(),
		startWidth:   target.Width(),
		startHeight:  target.Height(),
		angle:        target.Angle(),
		center:       target.Center(),
	}
	e.gestureStarted(GestureResize, target)
	return g, nil
}

// anchorOffset returns the anchor point's offset from the box center in
// the item's local frame, for the given dimensions. The anchor is the
// edge or corner opposite the active handle.
func (g *ResizeGesture) anchorOffset(w, h float64) geometry.Point2D {
	var ax, ay float64
	switch g.handle.H {
	case HLeft:
		ax = w / 2
	case HRight:
		ax = -w / 2
	}
	switch g.handle.V {
	case VTop:
		ay = h / 2
	case VBottom:
		ay = -h / 2
	}
	return geometry.NewPoint2D(ax, ay)
}

// Delta applies the pointer position reached while the gesture is
// active. A vanished target aborts silently.
func (g *ResizeGesture) Delta(pointer geometry.Point2D) {
	if g.aborted || g.done {
		return
	}
	if !g.e.live(g.target) {
		g.aborted = true
		return
	}

	// Pointer delta in the item's local frame.
	d := pointer.Sub(g.startPointer).Rotate(-g.angle)

	// Per-edge delta clamps: never below the minimum size, and for the
	// top/left edges never into negative position. The position clamp
	// applies to unrotated items only: under rotation position follows
	// from the anchor correction, and holding the anchor fixed on
	// screen wins over pinning the unrotated left/top at zero.
	ldx, ldy := d.X, d.Y
	switch g.handle.H {
	case HLeft:
		if ldx > g.startWidth-g.target.MinWidth() {
			ldx = g.startWidth - g.target.MinWidth()
		}
		if g.angle == 0 && g.startLeft+ldx < 0 {
			ldx = -g.startLeft
		}
	case HRight:
		if ldx < g.target.MinWidth()-g.startWidth {
			ldx = g.target.MinWidth() - g.startWidth
		}
	}
	switch g.handle.V {
	case VTop:
		if ldy > g.startHeight-g.target.MinHeight() {
			ldy = g.startHeight - g.target.MinHeight()
		}
		if g.angle == 0 && g.startTop+ldy < 0 {
			ldy = -g.startTop
		}
	case VBottom:
		if ldy < g.target.MinHeight()-g.startHeight {
			ldy = g.target.MinHeight() - g.startHeight
		}
	}

	newW, newH := g.startWidth, g.startHeight
	switch g.handle.H {
	case HLeft:
		newW = g.startWidth - ldx
	case HRight:
		newW = g.startWidth + ldx
	}
	switch g.handle.V {
	case VTop:
		newH = g.startHeight - ldy
	case VBottom:
		newH = g.startHeight + ldy
	}

	// With a locked ratio the secondary axis follows the primary one.
	if g.target.LockedAspectRatio() {
		if g.handle.H != HStretch {
			newW, newH, _ = geometry.AspectRatioSolve(newW, newH, g.target.Ratio())
		} else if g.handle.V != VStretch {
			newW, newH, _ = geometry.AspectRatioSolveWidth(newW, newH, g.target.Ratio())
		}
		if newW < g.target.MinWidth() || newH < g.target.MinHeight() {
			return
		}
	}

	// Keep the anchor fixed on screen: its world position with the old
	// dimensions equals its position with the new ones, splitting the
	// correction along the rotation's cosine/sine.
	anchorWorld := g.center.Add(g.anchorOffset(g.startWidth, g.startHeight).Rotate(g.angle))
	newCenter := anchorWorld.Sub(g.anchorOffset(newW, newH).Rotate(g.angle))

	g.target.SetGeometry(newCenter.X-newW/2, newCenter.Y-newH/2, newW, newH)
	g.e.notifyChanged(g.target)
}

// Complete releases the gesture.
func (g *ResizeGesture) Complete() {
	if g.done {
		return
	}
	g.done = true
	g.e.gestureEnded(GestureResize, g.target)
}

// Aborted reports whether the gesture was cut short.
func (g *ResizeGesture) Aborted() bool { return g.aborted }

// Target returns the resized item.
func (g *ResizeGesture) Target() item.Item { return g.target }
