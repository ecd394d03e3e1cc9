// Package canvas provides the Fyne widget hosting the template canvas:
// it paints the item store through the raster renderer and translates
// pointer events into selection changes and manipulation gestures.
package canvas

import (
	"image"
	"image/color"
	"log"
	"math"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"

	"template-designer/internal/adorner"
	"template-designer/internal/app"
	"template-designer/internal/item"
	"template-designer/internal/manip"
	"template-designer/internal/render"
	"template-designer/internal/selection"
	"template-designer/pkg/geometry"
)

const (
	zoomStep     = 1.25
	canvasMargin = 40.0
)

// DesignerCanvas is the interactive template canvas widget.
type DesignerCanvas struct {
	widget.BaseWidget

	state *app.State

	raster  *fynecanvas.Raster
	content *draggableContent
	scroll  *zoomScroll

	rotationSnap bool

	// At most one gesture is active at a time.
	move   *manip.MoveGesture
	resize *manip.ResizeGesture
	rotate *manip.RotateGesture

	rubberBand  bool
	rubberStart geometry.Point2D
	rubberEnd   geometry.Point2D
	rubberMod   selection.Modifier
}

// NewDesignerCanvas creates the canvas widget over the document state.
func NewDesignerCanvas(state *app.State) *DesignerCanvas {
	dc := &DesignerCanvas{
		state:        state,
		rotationSnap: true,
	}

	dc.raster = fynecanvas.NewRaster(dc.draw)
	dc.raster.ScaleMode = fynecanvas.ImageScalePixels
	dc.raster.SetMinSize(dc.contentSize())

	dc.content = newDraggableContent(dc, dc.raster)
	dc.scroll = newZoomScroll(dc.content, dc)
	dc.ExtendBaseWidget(dc)

	state.Adorners.OnInvalidate(dc.Refresh)
	state.On(app.EventItemsChanged, func(interface{}) { dc.Refresh() })
	state.On(app.EventSelectionChanged, func(interface{}) { dc.Refresh() })
	state.On(app.EventTemplateLoaded, func(interface{}) {
		dc.updateContentSize()
		dc.Refresh()
	})
	state.On(app.EventZoomChanged, func(interface{}) {
		dc.updateContentSize()
		dc.Refresh()
	})

	return dc
}

// CreateRenderer implements fyne.Widget.
func (dc *DesignerCanvas) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(dc.scroll)
}

// Container returns the scrollable canvas object for embedding.
func (dc *DesignerCanvas) Container() fyne.CanvasObject {
	return dc.scroll
}

// SetRotationSnap toggles rotate-gesture snapping.
func (dc *DesignerCanvas) SetRotationSnap(snap bool) { dc.rotationSnap = snap }

// RotationSnap reports whether rotate gestures snap.
func (dc *DesignerCanvas) RotationSnap() bool { return dc.rotationSnap }

// SetRubberBandModifier sets the modifier applied at the next
// rubber-band release. The main window feeds key state here.
func (dc *DesignerCanvas) SetRubberBandModifier(mod selection.Modifier) {
	dc.rubberMod = mod
}

// ZoomIn steps the zoom up.
func (dc *DesignerCanvas) ZoomIn() {
	dc.state.SetZoom(dc.state.Zoom() * zoomStep)
}

// ZoomOut steps the zoom down.
func (dc *DesignerCanvas) ZoomOut() {
	dc.state.SetZoom(dc.state.Zoom() / zoomStep)
}

// FitToWindow zooms so the whole canvas fits the scroll viewport.
func (dc *DesignerCanvas) FitToWindow() {
	size := dc.scroll.Size()
	if size.Width <= 0 || size.Height <= 0 {
		return
	}
	canvas := dc.state.CanvasSize
	fit := math.Min(
		float64(size.Width)/(canvas.Width+2*canvasMargin),
		float64(size.Height)/(canvas.Height+2*canvasMargin))
	dc.state.SetZoom(fit)
}

// Refresh repaints the raster.
func (dc *DesignerCanvas) Refresh() {
	dc.raster.Refresh()
	dc.BaseWidget.Refresh()
}

func (dc *DesignerCanvas) contentSize() fyne.Size {
	z := dc.state.Zoom()
	canvas := dc.state.CanvasSize
	return fyne.NewSize(
		float32((canvas.Width+2*canvasMargin)*z),
		float32((canvas.Height+2*canvasMargin)*z))
}

func (dc *DesignerCanvas) updateContentSize() {
	dc.raster.SetMinSize(dc.contentSize())
	dc.content.Refresh()
}

// canvasPoint converts a viewport-relative pointer position into
// canvas units: add the scroll offset, remove zoom and the margin.
func (dc *DesignerCanvas) canvasPoint(pos fyne.Position) geometry.Point2D {
	z := dc.state.Zoom()
	off := dc.scroll.Offset()
	return geometry.NewPoint2D(
		float64(pos.X+off.X)/z-canvasMargin,
		float64(pos.Y+off.Y)/z-canvasMargin)
}

func (dc *DesignerCanvas) gestureActive() bool {
	return dc.move != nil || dc.resize != nil || dc.rotate != nil
}

// beginGesture routes the first drag step: adorner handles win over
// item bodies, empty canvas starts a rubber band.
func (dc *DesignerCanvas) beginGesture(p geometry.Point2D) {
	if a, id := dc.state.Adorners.HandleAt(p); id != adorner.HandleNone {
		if id == adorner.HandleRotate {
			g, err := dc.state.Engine.BeginRotate(a.Target(), p)
			if err != nil {
				log.Printf("rotate gesture: %v", err)
				return
			}
			dc.rotate = g
			return
		}
		g, err := dc.state.Engine.BeginResize(a.Target(), id.ResizeHandle(), p)
		if err != nil {
			log.Printf("resize gesture: %v", err)
			return
		}
		dc.resize = g
		return
	}

	if it := dc.state.Store.ItemAt(p); it != nil {
		if !dc.state.Selection.IsSelected(it) {
			if err := dc.state.Selection.Replace([]item.Item{it}); err != nil {
				log.Printf("select: %v", err)
				return
			}
		}
		if pos, ok := it.(manip.Positioned); ok {
			g, err := dc.state.Engine.BeginMove(pos, p)
			if err != nil {
				log.Printf("move gesture: %v", err)
				return
			}
			dc.move = g
		}
		return
	}

	dc.rubberBand = true
	dc.rubberStart = p
	dc.rubberEnd = p
}

// draw rasterizes the visible canvas region. Only items the store has
// virtualized into the region actually paint.
func (dc *DesignerCanvas) draw(w, h int) image.Image {
	out := image.NewRGBA(image.Rect(0, 0, w, h))
	backdrop := color.RGBA{R: 60, G: 60, B: 64, A: 255}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			out.SetRGBA(x, y, backdrop)
		}
	}

	z := dc.state.Zoom()
	canvas := dc.state.CanvasSize

	// Keep the store's viewport in sync with what the raster shows.
	viewport := geometry.NewRect(
		-canvasMargin, -canvasMargin,
		float64(w)/z, float64(h)/z)
	dc.state.Store.SetViewport(viewport)

	// White page under the items.
	px1 := int(canvasMargin * z)
	py1 := int(canvasMargin * z)
	px2 := int((canvasMargin + canvas.Width) * z)
	py2 := int((canvasMargin + canvas.Height) * z)
	white := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	for y := py1; y <= py2 && y < h; y++ {
		if y < 0 {
			continue
		}
		for x := px1; x <= px2 && x < w; x++ {
			if x < 0 {
				continue
			}
			out.SetRGBA(x, y, white)
		}
	}

	// Items paint in canvas units shifted by the margin; reuse the
	// export painters on a shifted sub-image view.
	page := out.SubImage(image.Rect(px1, py1, w, h)).(*image.RGBA)
	shifted := image.NewRGBA(image.Rect(0, 0, w-px1, h-py1))
	visible := dc.state.Store.QueryRegion(viewport)
	if err := render.PaintItems(shifted, visible, z); err != nil {
		log.Printf("canvas paint: %v", err)
	}
	blitOver(page, shifted, px1, py1)

	dc.drawOverlays(out, z)
	return out
}

// blitOver copies non-transparent pixels of src onto dst at the given
// offset.
func blitOver(dst *image.RGBA, src *image.RGBA, offX, offY int) {
	b := src.Bounds()
	db := dst.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := src.RGBAAt(x, y)
			if c.A == 0 {
				continue
			}
			px, py := x+offX, y+offY
			if px < db.Min.X || px >= db.Max.X || py < db.Min.Y || py >= db.Max.Y {
				continue
			}
			dst.SetRGBA(px, py, c)
		}
	}
}

// drawOverlays paints selection frames, handles, the rubber band and
// the size indicator on top of the items.
func (dc *DesignerCanvas) drawOverlays(out *image.RGBA, z float64) {
	toPx := func(p geometry.Point2D) (int, int) {
		return int((p.X + canvasMargin) * z), int((p.Y + canvasMargin) * z)
	}

	frame := color.RGBA{R: 0, G: 120, B: 255, A: 255}
	for _, a := range dc.state.Adorners.Adorners() {
		outline := a.Outline()
		for i := 0; i < 4; i++ {
			x1, y1 := toPx(outline[i])
			x2, y2 := toPx(outline[(i+1)%4])
			drawOverlayLine(out, x1, y1, x2, y2, frame)
		}
		half := int(adorner.DefaultHandleSize / 2)
		for _, hs := range a.Handles() {
			cx, cy := toPx(hs.Center)
			col := frame
			if hs.ID == adorner.HandleRotate {
				col = color.RGBA{R: 0, G: 190, B: 120, A: 255}
			}
			fillOverlayRect(out, cx-half, cy-half, cx+half, cy+half, col)
		}
	}

	if dc.rubberBand {
		x1, y1 := toPx(dc.rubberStart)
		x2, y2 := toPx(dc.rubberEnd)
		if x1 > x2 {
			x1, x2 = x2, x1
		}
		if y1 > y2 {
			y1, y2 = y2, y1
		}
		drawDashedRect(out, x1, y1, x2, y2, color.RGBA{R: 255, G: 200, B: 0, A: 255})
	}

	if ind := dc.state.Adorners.Indicator(); ind != nil {
		cx, cy := toPx(ind.Position())
		render.DrawLabel(out, ind.Label(), cx, cy, 2, color.RGBA{R: 20, G: 20, B: 20, A: 255})
	}
}

func fillOverlayRect(out *image.RGBA, x1, y1, x2, y2 int, col color.RGBA) {
	b := out.Bounds()
	for y := y1; y <= y2; y++ {
		if y < b.Min.Y || y >= b.Max.Y {
			continue
		}
		for x := x1; x <= x2; x++ {
			if x < b.Min.X || x >= b.Max.X {
				continue
			}
			out.SetRGBA(x, y, col)
		}
	}
}

func drawOverlayLine(out *image.RGBA, x1, y1, x2, y2 int, col color.RGBA) {
	b := out.Bounds()
	dx := x2 - x1
	dy := y2 - y1
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}
	sx := 1
	if x1 > x2 {
		sx = -1
	}
	sy := 1
	if y1 > y2 {
		sy = -1
	}
	err := dx - dy
	for {
		if x1 >= b.Min.X && x1 < b.Max.X && y1 >= b.Min.Y && y1 < b.Max.Y {
			out.SetRGBA(x1, y1, col)
		}
		if x1 == x2 && y1 == y2 {
			return
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

// drawDashedRect outlines a rectangle with alternating pixels.
func drawDashedRect(out *image.RGBA, x1, y1, x2, y2 int, col color.RGBA) {
	b := out.Bounds()
	set := func(x, y int) {
		if (x+y)%4 < 2 && x >= b.Min.X && x < b.Max.X && y >= b.Min.Y && y < b.Max.Y {
			out.SetRGBA(x, y, col)
		}
	}
	for x := x1; x <= x2; x++ {
		set(x, y1)
		set(x, y2)
	}
	for y := y1; y <= y2; y++ {
		set(x1, y)
		set(x2, y)
	}
}
