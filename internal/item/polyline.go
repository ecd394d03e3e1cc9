package item

import (
	"github.com/google/uuid"

	"template-designer/pkg/geometry"
)

// PolylineItem is an open poly-line: an ordered, mutable point sequence
// stored relative to a (left, top) origin. Its bounding rectangle is
// recomputed lazily; point mutation only marks it dirty.
type PolylineItem struct {
	boundsNotifier

	id   string
	left float64
	top  float64

	points []geometry.Point2D

	boundsDirty bool
	cached      geometry.Rect
}

// NewPolyline creates a poly-line item at the given origin.
func NewPolyline(left, top float64, points []geometry.Point2D) *PolylineItem {
	p := &PolylineItem{
		id:          uuid.NewString(),
		left:        left,
		top:         top,
		points:      append([]geometry.Point2D(nil), points...),
		boundsDirty: true,
	}
	return p
}

// ID returns the unique identifier for this item.
func (p *PolylineItem) ID() string { return p.id }

// Kind returns KindPolyline.
func (p *PolylineItem) Kind() Kind { return KindPolyline }

// Left returns the declared origin's x coordinate.
func (p *PolylineItem) Left() float64 { return p.left }

// Top returns the declared origin's y coordinate.
func (p *PolylineItem) Top() float64 { return p.top }

// SetPosition moves the declared origin, carrying all points with it.
func (p *PolylineItem) SetPosition(left, top float64) {
	p.left = left
	p.top = top
	p.boundsDirty = true
	p.notify()
}

// PointCount returns the number of points.
func (p *PolylineItem) PointCount() int { return len(p.points) }

// Point returns the point at index i, relative to the origin.
func (p *PolylineItem) Point(i int) geometry.Point2D { return p.points[i] }

// Points returns the point sequence relative to the origin. The slice
// must not be mutated by the caller.
func (p *PolylineItem) Points() []geometry.Point2D { return p.points }

// AddPoint appends a point.
func (p *PolylineItem) AddPoint(pt geometry.Point2D) {
	p.points = append(p.points, pt)
	p.boundsDirty = true
	p.notify()
}

// InsertPoint inserts a point at index i. Out-of-range indexes append.
func (p *PolylineItem) InsertPoint(i int, pt geometry.Point2D) {
	if i < 0 || i >= len(p.points) {
		p.points = append(p.points, pt)
	} else {
		p.points = append(p.points[:i], append([]geometry.Point2D{pt}, p.points[i:]...)...)
	}
	p.boundsDirty = true
	p.notify()
}

// InsertPointNear inserts a point splitting the segment nearest to it.
// Returns the insertion index.
func (p *PolylineItem) InsertPointNear(pt geometry.Point2D) int {
	seg := geometry.NearestSegment(p.points, pt)
	if seg < 0 {
		p.AddPoint(pt)
		return len(p.points) - 1
	}
	p.InsertPoint(seg+1, pt)
	return seg + 1
}

// RemovePoint removes the point at index i.
func (p *PolylineItem) RemovePoint(i int) {
	if i < 0 || i >= len(p.points) {
		return
	}
	p.points = append(p.points[:i], p.points[i+1:]...)
	p.boundsDirty = true
	p.notify()
}

// SetPoint replaces the point at index i.
func (p *PolylineItem) SetPoint(i int, pt geometry.Point2D) {
	if i < 0 || i >= len(p.points) {
		return
	}
	p.points[i] = pt
	p.boundsDirty = true
	p.notify()
}

// NormalizePositions translates points and shifts the origin so every
// point coordinate is non-negative relative to (left, top) while the
// absolute union is preserved. Calling it on an already-normalized item
// is a no-op.
func (p *PolylineItem) NormalizePositions() {
	if len(p.points) == 0 {
		return
	}
	box := geometry.BoundingBox(p.points)
	if box.X == 0 && box.Y == 0 {
		return
	}
	for i := range p.points {
		p.points[i].X -= box.X
		p.points[i].Y -= box.Y
	}
	p.left += box.X
	p.top += box.Y
	p.boundsDirty = true
	p.notify()
}

// Bounds returns the bounding rectangle in canvas coordinates. The
// result is cached until the next point or origin mutation.
func (p *PolylineItem) Bounds() geometry.Rect {
	if p.boundsDirty {
		box := geometry.BoundingBox(p.points)
		p.cached = geometry.NewRect(p.left+box.X, p.top+box.Y, box.Width, box.Height)
		p.boundsDirty = false
	}
	return p.cached
}

// absolutePoints returns the points in canvas coordinates.
func (p *PolylineItem) absolutePoints() []geometry.Point2D {
	abs := make([]geometry.Point2D, len(p.points))
	for i, pt := range p.points {
		abs[i] = geometry.NewPoint2D(pt.X+p.left, pt.Y+p.top)
	}
	return abs
}

// AbsolutePoints returns the point sequence in canvas coordinates.
func (p *PolylineItem) AbsolutePoints() []geometry.Point2D {
	return p.absolutePoints()
}

// HitTest classifies the poly-line point-wise against a region: all
// points inside is HitContains, none is HitNone, a mix is HitIntersects.
func (p *PolylineItem) HitTest(region geometry.Rect) geometry.HitResult {
	return geometry.HitTestPoints(p.absolutePoints(), region)
}

// OnBoundsChanged registers a bounds-changed listener.
func (p *PolylineItem) OnBoundsChanged(fn func()) func() {
	return p.subscribe(fn)
}

// Clone returns a structural copy of the poly-line. Unlike box items
// the clone is not offset; duplicates land on the original.
func (p *PolylineItem) Clone() Item {
	dup := &PolylineItem{
		id:          uuid.NewString(),
		left:        p.left,
		top:         p.top,
		points:      append([]geometry.Point2D(nil), p.points...),
		boundsDirty: true,
	}
	return dup
}

// Snapshot returns a plain serializable view of the poly-line.
func (p *PolylineItem) Snapshot() Snapshot {
	return Snapshot{
		ID:     p.id,
		Kind:   KindPolyline,
		Left:   p.left,
		Top:    p.top,
		Points: append([]geometry.Point2D(nil), p.points...),
	}
}

func polylineFromSnapshot(s Snapshot) *PolylineItem {
	p := NewPolyline(s.Left, s.Top, s.Points)
	if s.ID != "" {
		p.id = s.ID
	}
	return p
}
