package adorner

import (
	"template-designer/internal/item"
	"template-designer/internal/manip"
	"template-designer/pkg/geometry"
)

// Manager owns the live adorners. The host wires it to the selection
// manager's changed callback and the engine's gesture hooks; the
// manager itself holds no references back into either.
type Manager struct {
	zoom float64

	adorners map[string]*SelectionAdorner
	order    []string

	indicator *SizeIndicator

	onInvalidate func()
}

// NewManager creates an adorner manager at 100% zoom.
func NewManager() *Manager {
	return &Manager{
		zoom:     1,
		adorners: make(map[string]*SelectionAdorner),
	}
}

// OnInvalidate sets the repaint hook shared by all adorners.
func (m *Manager) OnInvalidate(fn func()) { m.onInvalidate = fn }

func (m *Manager) invalidate() {
	if m.onInvalidate != nil {
		m.onInvalidate()
	}
}

// SyncSelection reconciles the adorner set against the current
// selection: vanished items lose their adorner (listener detached),
// new box-shaped items gain one. Non-box items carry no adorner.
func (m *Manager) SyncSelection(selected []item.Item) {
	keep := make(map[string]bool, len(selected))
	var order []string
	for _, it := range selected {
		b, ok := it.(manip.Box)
		if !ok {
			continue
		}
		id := it.ID()
		keep[id] = true
		order = append(order, id)
		if _, exists := m.adorners[id]; !exists {
			m.adorners[id] = NewSelectionAdorner(b, m.zoom, m.onInvalidate)
		}
	}
	for id, a := range m.adorners {
		if !keep[id] {
			a.Detach()
			delete(m.adorners, id)
		}
	}
	m.order = order
	m.invalidate()
}

// GestureStarted attaches the transient size indicator for resize
// gestures. Other gesture kinds leave the overlays unchanged.
func (m *Manager) GestureStarted(kind manip.GestureKind, it item.Item) {
	if kind != manip.GestureResize {
		return
	}
	b, ok := it.(manip.Box)
	if !ok {
		return
	}
	if m.indicator != nil {
		m.indicator.Detach()
	}
	m.indicator = NewSizeIndicator(b, m.onInvalidate)
	m.invalidate()
}

// GestureEnded discards the size indicator when the resize completes.
func (m *Manager) GestureEnded(kind manip.GestureKind, _ item.Item) {
	if kind != manip.GestureResize || m.indicator == nil {
		return
	}
	m.indicator.Detach()
	m.indicator = nil
	m.invalidate()
}

// SetZoom propagates a zoom change to every adorner so handle extents
// keep their screen size.
func (m *Manager) SetZoom(zoom float64) {
	if zoom <= 0 || zoom == m.zoom {
		return
	}
	m.zoom = zoom
	for _, a := range m.adorners {
		a.SetZoom(zoom)
	}
}

// Adorners returns the live adorners in selection order.
func (m *Manager) Adorners() []*SelectionAdorner {
	out := make([]*SelectionAdorner, 0, len(m.order))
	for _, id := range m.order {
		if a, ok := m.adorners[id]; ok {
			out = append(out, a)
		}
	}
	return out
}

// Indicator returns the active size indicator, nil outside a resize.
func (m *Manager) Indicator() *SizeIndicator { return m.indicator }

// HandleAt scans the adorners topmost-first for a thumb under the
// point. It returns the hit adorner alongside the thumb so the caller
// can start the matching gesture.
func (m *Manager) HandleAt(p geometry.Point2D) (*SelectionAdorner, HandleID) {
	for i := len(m.order) - 1; i >= 0; i-- {
		a, ok := m.adorners[m.order[i]]
		if !ok {
			continue
		}
		if id := a.HandleAt(p); id != HandleNone {
			return a, id
		}
	}
	return nil, HandleNone
}

// Clear detaches everything, selection adorners and indicator alike.
func (m *Manager) Clear() {
	for id, a := range m.adorners {
		a.Detach()
		delete(m.adorners, id)
	}
	m.order = nil
	if m.indicator != nil {
		m.indicator.Detach()
		m.indicator = nil
	}
	m.invalidate()
}
