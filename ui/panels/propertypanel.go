// Package panels provides the side panels of the designer window.
package panels

import (
	"fmt"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"template-designer/internal/app"
	"template-designer/internal/item"
	"template-designer/internal/manip"
)

// PropertyPanel shows and edits the primary selection's geometry. It
// refreshes live while a gesture runs.
type PropertyPanel struct {
	state *app.State

	root *fyne.Container

	header *widget.Label
	x      *widget.Entry
	y      *widget.Entry
	width  *widget.Entry
	height *widget.Entry
	angle  *widget.Entry

	lockPos    *widget.Check
	lockAspect *widget.Check

	text *widget.Entry
	slot *widget.Entry

	// updating suppresses entry callbacks while the panel itself
	// writes entry text.
	updating bool
}

// NewPropertyPanel creates the panel and wires it to the document.
func NewPropertyPanel(state *app.State) *PropertyPanel {
	p := &PropertyPanel{state: state}

	p.header = widget.NewLabel("No selection")
	p.x = p.geometryEntry(func(b manip.Box, v float64) { b.SetPosition(v, b.Top()) })
	p.y = p.geometryEntry(func(b manip.Box, v float64) { b.SetPosition(b.Left(), v) })
	p.width = p.geometryEntry(func(b manip.Box, v float64) {
		b.SetGeometry(b.Left(), b.Top(), v, b.Height())
	})
	p.height = p.geometryEntry(func(b manip.Box, v float64) {
		b.SetGeometry(b.Left(), b.Top(), b.Width(), v)
	})
	p.angle = p.geometryEntry(func(b manip.Box, v float64) { b.SetAngle(v) })

	p.lockPos = widget.NewCheck("Lock position", func(v bool) {
		if p.updating {
			return
		}
		if b, ok := p.primaryBox(); ok {
			if l, ok := b.(interface{ SetLockedPosition(bool) }); ok {
				l.SetLockedPosition(v)
				p.state.SetModified(true)
			}
		}
	})
	p.lockAspect = widget.NewCheck("Lock aspect ratio", func(v bool) {
		if p.updating {
			return
		}
		if b, ok := p.primaryBox(); ok {
			if l, ok := b.(interface{ SetLockedAspectRatio(bool) }); ok {
				l.SetLockedAspectRatio(v)
				p.state.SetModified(true)
			}
		}
	})

	p.text = widget.NewEntry()
	p.text.OnSubmitted = func(s string) {
		if t, ok := p.state.Selection.Primary().(*item.TextItem); ok {
			t.SetText(s)
			p.state.SetModified(true)
		}
	}
	p.slot = widget.NewEntry()
	p.slot.OnSubmitted = func(s string) {
		n, err := strconv.Atoi(s)
		if err != nil {
			return
		}
		if ph, ok := p.state.Selection.Primary().(*item.PlaceholderItem); ok {
			ph.SetSlot(n)
			p.state.SetModified(true)
		}
	}

	form := widget.NewForm(
		widget.NewFormItem("X", p.x),
		widget.NewFormItem("Y", p.y),
		widget.NewFormItem("Width", p.width),
		widget.NewFormItem("Height", p.height),
		widget.NewFormItem("Angle", p.angle),
		widget.NewFormItem("Text", p.text),
		widget.NewFormItem("Slot", p.slot),
	)
	p.root = container.NewVBox(p.header, form, p.lockPos, p.lockAspect)

	state.On(app.EventSelectionChanged, func(interface{}) { p.Refresh() })
	state.Engine.OnItemChanged(func(it item.Item) {
		if it == state.Selection.Primary() {
			p.Refresh()
		}
	})
	p.Refresh()
	return p
}

// Widget returns the panel's root canvas object.
func (p *PropertyPanel) Widget() fyne.CanvasObject { return p.root }

func (p *PropertyPanel) primaryBox() (manip.Box, bool) {
	b, ok := p.state.Selection.Primary().(manip.Box)
	return b, ok
}

func (p *PropertyPanel) geometryEntry(apply func(b manip.Box, v float64)) *widget.Entry {
	e := widget.NewEntry()
	e.OnSubmitted = func(s string) {
		if p.updating {
			return
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return
		}
		if b, ok := p.primaryBox(); ok {
			apply(b, v)
			p.state.SetModified(true)
		}
	}
	return e
}

// Refresh re-reads the primary selection into the entries.
func (p *PropertyPanel) Refresh() {
	p.updating = true
	defer func() { p.updating = false }()

	primary := p.state.Selection.Primary()
	if primary == nil {
		p.header.SetText("No selection")
		for _, e := range []*widget.Entry{p.x, p.y, p.width, p.height, p.angle, p.text, p.slot} {
			e.SetText("")
			e.Disable()
		}
		p.lockPos.Disable()
		p.lockAspect.Disable()
		return
	}

	count := p.state.Selection.Count()
	if count > 1 {
		p.header.SetText(fmt.Sprintf("%s (+%d more)", primary.Kind(), count-1))
	} else {
		p.header.SetText(string(primary.Kind()))
	}

	b, ok := primary.(manip.Box)
	if !ok {
		// Poly-lines expose no box geometry; show bounds read-only.
		bounds := primary.Bounds()
		p.x.SetText(fmtFloat(bounds.X))
		p.y.SetText(fmtFloat(bounds.Y))
		p.width.SetText(fmtFloat(bounds.Width))
		p.height.SetText(fmtFloat(bounds.Height))
		p.angle.SetText("")
		for _, e := range []*widget.Entry{p.x, p.y, p.width, p.height, p.angle} {
			e.Disable()
		}
		p.lockPos.Disable()
		p.lockAspect.Disable()
	} else {
		for _, e := range []*widget.Entry{p.x, p.y, p.width, p.height, p.angle} {
			e.Enable()
		}
		p.x.SetText(fmtFloat(b.Left()))
		p.y.SetText(fmtFloat(b.Top()))
		p.width.SetText(fmtFloat(b.Width()))
		p.height.SetText(fmtFloat(b.Height()))
		p.angle.SetText(fmtFloat(b.Angle()))

		p.lockPos.Enable()
		p.lockAspect.Enable()
		if l, ok := b.(interface{ LockedPosition() bool }); ok {
			p.lockPos.SetChecked(l.LockedPosition())
		}
		p.lockAspect.SetChecked(b.LockedAspectRatio())
	}

	if t, ok := primary.(*item.TextItem); ok {
		p.text.Enable()
		p.text.SetText(t.Text())
	} else {
		p.text.SetText("")
		p.text.Disable()
	}
	if ph, ok := primary.(*item.PlaceholderItem); ok {
		p.slot.Enable()
		p.slot.SetText(strconv.Itoa(ph.Slot()))
	} else {
		p.slot.SetText("")
		p.slot.Disable()
	}
}

func fmtFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}
