// Package adorner maintains the selection overlays: eight resize
// handles plus a rotate handle per selected item, and a transient size
// indicator while a resize gesture runs. Adorners track their item
// through its bounds-changed notifications and detach the listener
// before being discarded.
package adorner

import (
	"fmt"

	"template-designer/internal/manip"
	"template-designer/pkg/geometry"
)

const (
	// DefaultHandleSize is the on-screen handle extent in pixels; the
	// canvas-space extent shrinks as zoom grows so handles keep a
	// constant screen size.
	DefaultHandleSize = 8.0

	// RotateHandleOffset is the on-screen gap between the top edge and
	// the rotate handle.
	RotateHandleOffset = 24.0
)

// HandleID names one of the adorner thumbs.
type HandleID int

const (
	HandleNone HandleID = iota
	HandleTopLeft
	HandleTop
	HandleTopRight
	HandleLeft
	HandleRight
	HandleBottomLeft
	HandleBottom
	HandleBottomRight
	HandleRotate
)

// ResizeHandle maps the thumb to the manipulation handle it drives.
// HandleNone and HandleRotate map to the empty handle.
func (h HandleID) ResizeHandle() manip.Handle {
	switch h {
	case HandleTopLeft:
		return manip.Handle{H: manip.HLeft, V: manip.VTop}
	case HandleTop:
		return manip.Handle{V: manip.VTop}
	case HandleTopRight:
		return manip.Handle{H: manip.HRight, V: manip.VTop}
	case HandleLeft:
		return manip.Handle{H: manip.HLeft}
	case HandleRight:
		return manip.Handle{H: manip.HRight}
	case HandleBottomLeft:
		return manip.Handle{H: manip.HLeft, V: manip.VBottom}
	case HandleBottom:
		return manip.Handle{V: manip.VBottom}
	case HandleBottomRight:
		return manip.Handle{H: manip.HRight, V: manip.VBottom}
	}
	return manip.Handle{}
}

// HandleShape is one drawable thumb in canvas coordinates.
type HandleShape struct {
	ID     HandleID
	Center geometry.Point2D
}

// SelectionAdorner tracks one selected item. Its geometry is re-read on
// every bounds-changed notification so it never lags the item.
type SelectionAdorner struct {
	target manip.Box
	zoom   float64

	handles []HandleShape
	outline [4]geometry.Point2D

	unsubscribe  func()
	onInvalidate func()
}

// NewSelectionAdorner attaches an adorner to the item at the given zoom
// factor. The invalidate hook fires whenever the adorner geometry
// changes; the hosting canvas repaints there.
func NewSelectionAdorner(target manip.Box, zoom float64, onInvalidate func()) *SelectionAdorner {
	if zoom <= 0 {
		zoom = 1
	}
	a := &SelectionAdorner{target: target, zoom: zoom, onInvalidate: onInvalidate}
	a.unsubscribe = target.OnBoundsChanged(func() {
		a.refresh()
		a.invalidate()
	})
	a.refresh()
	return a
}

func (a *SelectionAdorner) invalidate() {
	if a.onInvalidate != nil {
		a.onInvalidate()
	}
}

// refresh recomputes the outline corners and handle centers from the
// item's current geometry.
func (a *SelectionAdorner) refresh() {
	w, h := a.target.Width(), a.target.Height()
	angle := a.target.Angle()
	center := a.target.Center()

	local := func(x, y float64) geometry.Point2D {
		return center.Add(geometry.NewPoint2D(x, y).Rotate(angle))
	}

	a.outline[0] = local(-w/2, -h/2)
	a.outline[1] = local(w/2, -h/2)
	a.outline[2] = local(w/2, h/2)
	a.outline[3] = local(-w/2, h/2)

	rotateGap := RotateHandleOffset / a.zoom
	a.handles = a.handles[:0]
	a.handles = append(a.handles,
		HandleShape{HandleTopLeft, local(-w/2, -h/2)},
		HandleShape{HandleTop, local(0, -h/2)},
		HandleShape{HandleTopRight, local(w/2, -h/2)},
		HandleShape{HandleLeft, local(-w/2, 0)},
		HandleShape{HandleRight, local(w/2, 0)},
		HandleShape{HandleBottomLeft, local(-w/2, h/2)},
		HandleShape{HandleBottom, local(0, h/2)},
		HandleShape{HandleBottomRight, local(w/2, h/2)},
		HandleShape{HandleRotate, local(0, -h/2-rotateGap)},
	)
}

// SetZoom rescales the handle hit extents and the rotate handle gap.
func (a *SelectionAdorner) SetZoom(zoom float64) {
	if zoom <= 0 || zoom == a.zoom {
		return
	}
	a.zoom = zoom
	a.refresh()
	a.invalidate()
}

// Handles returns the current thumbs in canvas coordinates.
func (a *SelectionAdorner) Handles() []HandleShape { return a.handles }

// Outline returns the rotated selection frame corners in order
// top-left, top-right, bottom-right, bottom-left.
func (a *SelectionAdorner) Outline() [4]geometry.Point2D { return a.outline }

// Target returns the adorned item.
func (a *SelectionAdorner) Target() manip.Box { return a.target }

// HandleAt returns the thumb under the canvas-space point, HandleNone
// when the point misses all thumbs. The rotate handle wins ties.
func (a *SelectionAdorner) HandleAt(p geometry.Point2D) HandleID {
	half := DefaultHandleSize / a.zoom / 2
	for i := len(a.handles) - 1; i >= 0; i-- {
		hs := a.handles[i]
		if p.X >= hs.Center.X-half && p.X <= hs.Center.X+half &&
			p.Y >= hs.Center.Y-half && p.Y <= hs.Center.Y+half {
			return hs.ID
		}
	}
	return HandleNone
}

// Detach removes the bounds listener. Safe to call twice.
func (a *SelectionAdorner) Detach() {
	if a.unsubscribe != nil {
		a.unsubscribe()
		a.unsubscribe = nil
	}
}

// SizeIndicator is the transient width-by-height readout shown while a
// resize gesture runs.
type SizeIndicator struct {
	target manip.Box

	unsubscribe  func()
	onInvalidate func()
}

// NewSizeIndicator attaches the indicator to the item being resized.
func NewSizeIndicator(target manip.Box, onInvalidate func()) *SizeIndicator {
	s := &SizeIndicator{target: target, onInvalidate: onInvalidate}
	s.unsubscribe = target.OnBoundsChanged(func() {
		if s.onInvalidate != nil {
			s.onInvalidate()
		}
	})
	return s
}

// Label returns the current readout text.
func (s *SizeIndicator) Label() string {
	return fmt.Sprintf("%.0f × %.0f", s.target.Width(), s.target.Height())
}

// Position returns the anchor point below the item's bounding box.
func (s *SizeIndicator) Position() geometry.Point2D {
	b := s.target.Bounds()
	return geometry.NewPoint2D(b.X+b.Width/2, b.Y+b.Height+DefaultHandleSize)
}

// Target returns the measured item.
func (s *SizeIndicator) Target() manip.Box { return s.target }

// Detach removes the bounds listener. Safe to call twice.
func (s *SizeIndicator) Detach() {
	if s.unsubscribe != nil {
		s.unsubscribe()
		s.unsubscribe = nil
	}
}
