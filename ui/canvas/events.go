package canvas

import (
	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"template-designer/internal/adorner"
	"template-designer/internal/item"
	"template-designer/pkg/geometry"
)

// zoomScroll wraps the content in a scroll container whose wheel zooms
// instead of scrolling.
type zoomScroll struct {
	widget.BaseWidget
	scroll *container.Scroll
	canvas *DesignerCanvas
}

func newZoomScroll(content fyne.CanvasObject, canvas *DesignerCanvas) *zoomScroll {
	scroll := container.NewScroll(content)
	scroll.Direction = container.ScrollBoth
	zs := &zoomScroll{scroll: scroll, canvas: canvas}
	zs.ExtendBaseWidget(zs)
	return zs
}

func (zs *zoomScroll) Scrolled(ev *fyne.ScrollEvent) {
	if ev.Scrolled.DY > 0 {
		zs.canvas.ZoomIn()
	} else if ev.Scrolled.DY < 0 {
		zs.canvas.ZoomOut()
	}
}

func (zs *zoomScroll) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(zs.scroll)
}

// Offset returns the scroll container's current offset.
func (zs *zoomScroll) Offset() fyne.Position {
	return zs.scroll.Offset
}

// Size returns the scroll container's size.
func (zs *zoomScroll) Size() fyne.Size {
	return zs.scroll.Size()
}

// Refresh refreshes the scroll container.
func (zs *zoomScroll) Refresh() {
	zs.scroll.Refresh()
	zs.BaseWidget.Refresh()
}

// Resize sets the size of the scroll container.
func (zs *zoomScroll) Resize(size fyne.Size) {
	zs.scroll.Resize(size)
	zs.BaseWidget.Resize(size)
}

// draggableContent wraps the raster to handle mouse events.
type draggableContent struct {
	widget.BaseWidget
	canvas *DesignerCanvas
	raster *fynecanvas.Raster
}

func newDraggableContent(dc *DesignerCanvas, raster *fynecanvas.Raster) *draggableContent {
	c := &draggableContent{canvas: dc, raster: raster}
	c.ExtendBaseWidget(c)
	return c
}

func (c *draggableContent) CreateRenderer() fyne.WidgetRenderer {
	return &draggableContentRenderer{content: c}
}

func (c *draggableContent) MinSize() fyne.Size {
	return c.raster.MinSize()
}

// Dragged routes the drag to the active gesture, starting one on the
// first step.
func (c *draggableContent) Dragged(ev *fyne.DragEvent) {
	dc := c.canvas
	p := dc.canvasPoint(ev.Position)

	if !dc.gestureActive() && !dc.rubberBand {
		dc.beginGesture(p)
	}

	switch {
	case dc.resize != nil:
		dc.resize.Delta(p)
	case dc.rotate != nil:
		dc.rotate.Delta(p, dc.rotationSnap)
	case dc.move != nil:
		dc.move.Delta(p)
	case dc.rubberBand:
		dc.rubberEnd = p
	}
	dc.Refresh()
}

// DragEnd completes the active gesture or resolves the rubber band.
func (c *draggableContent) DragEnd() {
	dc := c.canvas

	switch {
	case dc.resize != nil:
		dc.resize.Complete()
		dc.resize = nil
	case dc.rotate != nil:
		dc.rotate.Complete()
		dc.rotate = nil
	case dc.move != nil:
		dc.move.Complete()
		dc.move = nil
	case dc.rubberBand:
		region := rubberRect(dc.rubberStart, dc.rubberEnd)
		_ = dc.state.Selection.ResolveRegion(region, dc.rubberMod)
		dc.rubberBand = false
	}
	dc.Refresh()
}

func (c *draggableContent) Scrolled(ev *fyne.ScrollEvent) {
	if ev.Scrolled.DY > 0 {
		c.canvas.ZoomIn()
	} else if ev.Scrolled.DY < 0 {
		c.canvas.ZoomOut()
	}
}

// Tapped selects the item under the pointer, or clears the selection
// on empty canvas.
func (c *draggableContent) Tapped(ev *fyne.PointEvent) {
	dc := c.canvas

	size := c.Size()
	if ev.Position.X < 0 || ev.Position.Y < 0 ||
		ev.Position.X > size.Width || ev.Position.Y > size.Height {
		return
	}

	p := dc.canvasPoint(ev.Position)
	if _, id := dc.state.Adorners.HandleAt(p); id != adorner.HandleNone {
		return
	}
	if it := dc.state.Store.ItemAt(p); it != nil {
		_ = dc.state.Selection.Replace([]item.Item{it})
		return
	}
	dc.state.Selection.Clear()
}

func rubberRect(a, b geometry.Point2D) geometry.Rect {
	x1, x2 := a.X, b.X
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	y1, y2 := a.Y, b.Y
	if y1 > y2 {
		y1, y2 = y2, y1
	}
	return geometry.NewRect(x1, y1, x2-x1, y2-y1)
}

type draggableContentRenderer struct {
	content *draggableContent
}

func (r *draggableContentRenderer) Layout(size fyne.Size) {
	r.content.raster.Resize(size)
}

func (r *draggableContentRenderer) MinSize() fyne.Size {
	return r.content.raster.MinSize()
}

func (r *draggableContentRenderer) Refresh() {
	r.content.raster.Refresh()
}

func (r *draggableContentRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.content.raster}
}

func (r *draggableContentRenderer) Destroy() {}
