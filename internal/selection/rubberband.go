package selection

import (
	"template-designer/internal/item"
	"template-designer/pkg/geometry"
)

// Modifier is the keyboard modifier state at rubber-band release.
type Modifier int

const (
	// ModNone replaces the selection with the region-matched items.
	ModNone Modifier = iota
	// ModShift toggles: symmetric difference with the current selection.
	ModShift
	// ModCtrl merges: union with the current selection.
	ModCtrl
)

// ResolveRegion applies a rubber-band selection region against the
// current modifier state. Items matching the region are those whose
// hit test is anything better than a miss (inside or overlapping).
func (m *Manager) ResolveRegion(region geometry.Rect, mod Modifier) error {
	var matched []item.Item
	for _, it := range m.store.Items() {
		if it.HitTest(region) != geometry.HitNone {
			matched = append(matched, it)
		}
	}

	switch mod {
	case ModShift:
		// Symmetric difference: matched items toggle, the rest stay.
		return m.batch(func() error {
			for _, it := range matched {
				if err := m.Toggle(it); err != nil {
					return err
				}
			}
			return nil
		})

	case ModCtrl:
		return m.batch(func() error {
			for _, it := range matched {
				if err := m.Add(it); err != nil {
					return err
				}
			}
			return nil
		})
	}

	return m.Replace(matched)
}
