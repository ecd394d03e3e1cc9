package manip

import (
	"template-designer/internal/item"
	"template-designer/pkg/geometry"
)

type followerStart struct {
	it   Positioned
	left float64
	top  float64
}

// MoveGesture drags the origin item (and the rest of the selection)
// by pointer deltas transformed into the origin's local frame.
type MoveGesture struct {
	e *Engine

	origin       Positioned
	startPointer geometry.Point2D
	startLeft    float64
	startTop     float64

	followers []followerStart
	liveAll   bool

	// minLeft/minTop are the smallest start coordinates across the
	// selection; the shared delta is clamped so no item goes negative.
	minLeft float64
	minTop  float64

	lastDelta geometry.Point2D
	aborted   bool
	done      bool
}

// BeginMove starts a move gesture on the item under the pointer.
func (e *Engine) BeginMove(origin Positioned, pointer geometry.Point2D) (*MoveGesture, error) {
	if origin == nil {
		return nil, ErrNilItem
	}
	g := &MoveGesture{
		e:            e,
		origin:       origin,
		startPointer: pointer,
		startLeft:    origin.Left(),
		startTop:     origin.Top(),
		minLeft:      origin.Left(),
		minTop:       origin.Top(),
	}
	for _, other := range e.otherSelected(origin) {
		p, ok := other.(Positioned)
		if !ok {
			continue
		}
		g.followers = append(g.followers, followerStart{it: p, left: p.Left(), top: p.Top()})
		if p.Left() < g.minLeft {
			g.minLeft = p.Left()
		}
		if p.Top() < g.minTop {
			g.minTop = p.Top()
		}
	}
	// Large multi-selections skip live follower updates; followers then
	// jump into place on completion.
	g.liveAll = len(g.followers)+1 <= e.config.InstantPreviewThreshold
	e.gestureStarted(GestureMove, origin)
	return g, nil
}

// clampDelta limits the shared delta so the smallest left/top across
// the selection stays non-negative.
func (g *MoveGesture) clampDelta(d geometry.Point2D) geometry.Point2D {
	if g.minLeft+d.X < 0 {
		d.X = -g.minLeft
	}
	if g.minTop+d.Y < 0 {
		d.Y = -g.minTop
	}
	return d
}

// Delta applies the pointer position reached while the gesture is
// active. A vanished origin aborts silently.
func (g *MoveGesture) Delta(pointer geometry.Point2D) {
	if g.aborted || g.done {
		return
	}
	if !g.e.live(g.origin) {
		g.aborted = true
		return
	}

	raw := pointer.Sub(g.startPointer)
	d := g.clampDelta(localDelta(raw, g.origin))
	g.lastDelta = d

	g.origin.SetPosition(g.startLeft+d.X, g.startTop+d.Y)
	g.e.notifyChanged(g.origin)

	if g.liveAll {
		for _, f := range g.followers {
			f.it.SetPosition(f.left+d.X, f.top+d.Y)
			g.e.notifyChanged(f.it)
		}
	}
}

// Complete releases the gesture. Followers receive the final delta,
// clamped authoritatively, whether or not they were updated live.
func (g *MoveGesture) Complete() {
	if g.done {
		return
	}
	g.done = true
	defer g.e.gestureEnded(GestureMove, g.origin)
	if g.aborted {
		return
	}

	d := g.clampDelta(g.lastDelta)
	for _, f := range g.followers {
		f.it.SetPosition(f.left+d.X, f.top+d.Y)
		g.e.notifyChanged(f.it)
	}
}

// Aborted reports whether the gesture was cut short by its item
// disappearing from the store.
func (g *MoveGesture) Aborted() bool { return g.aborted }

// Origin returns the dragged item.
func (g *MoveGesture) Origin() item.Item { return g.origin }
