package manip

import (
	"template-designer/internal/item"
	"template-designer/pkg/geometry"
)

// RotateGesture rotates the origin item by the signed angle between the
// center→start and center→current pointer vectors. On completion the
// same delta angle is applied to every other selected item, so a
// multi-rotate changes all orientations identically.
type RotateGesture struct {
	e *Engine

	origin     Box
	center     geometry.Point2D
	startVec   geometry.Point2D
	startAngle float64

	appliedDelta float64
	aborted      bool
	done         bool
}

// BeginRotate starts a rotate gesture at the given pointer position.
func (e *Engine) BeginRotate(origin Box, pointer geometry.Point2D) (*RotateGesture, error) {
	if origin == nil {
		return nil, ErrNilItem
	}
	center := origin.Bounds().Center()
	g := &RotateGesture{
		e:          e,
		origin:     origin,
		center:     center,
		startVec:   pointer.Sub(center),
		startAngle: origin.Angle(),
	}
	e.gestureStarted(GestureRotate, origin)
	return g, nil
}

// Delta applies the pointer position reached while the gesture is
// active. With snap enabled the resulting angle is rounded to the
// nearest snap step before being applied.
func (g *RotateGesture) Delta(pointer geometry.Point2D, snap bool) {
	if g.aborted || g.done {
		return
	}
	if !g.e.live(g.origin) {
		g.aborted = true
		return
	}

	cur := pointer.Sub(g.center)
	if cur.X == 0 && cur.Y == 0 {
		return
	}
	angle := g.startAngle + geometry.SignedAngle(g.startVec, cur)
	if snap {
		angle = geometry.SnapAngle(angle, g.e.config.SnapStep)
	}
	g.origin.SetAngle(angle)
	g.appliedDelta = angle - g.startAngle
	g.e.notifyChanged(g.origin)
}

// Complete applies the accumulated delta angle (the applied one, not a
// re-derived one) to the rest of the selection.
func (g *RotateGesture) Complete() {
	if g.done {
		return
	}
	g.done = true
	defer g.e.gestureEnded(GestureRotate, g.origin)
	if g.aborted || g.appliedDelta == 0 {
		return
	}

	for _, other := range g.e.otherSelected(g.origin) {
		b, ok := other.(Box)
		if !ok {
			continue
		}
		b.SetAngle(b.Angle() + g.appliedDelta)
		g.e.notifyChanged(b)
	}
}

// Aborted reports whether the gesture was cut short.
func (g *RotateGesture) Aborted() bool { return g.aborted }

// Origin returns the rotated item.
func (g *RotateGesture) Origin() item.Item { return g.origin }
