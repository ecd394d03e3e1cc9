package render

import (
	"image/color"
	"testing"

	"template-designer/internal/item"
	"template-designer/internal/store"
	"template-designer/pkg/geometry"
)

var (
	red  = color.RGBA{R: 255, A: 255}
	blue = color.RGBA{B: 255, A: 255}
)

func newRenderStore(t *testing.T, items ...item.Item) *store.Store {
	t.Helper()
	st := store.NewStore()
	st.SetViewport(geometry.NewRect(0, 0, 1000, 1000))
	if err := st.AddItems(items...); err != nil {
		t.Fatal(err)
	}
	return st
}

func TestRenderFillsBackground(t *testing.T) {
	st := newRenderStore(t)
	img, err := Render(st, geometry.NewSize(100, 60), Options{})
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds().Dx() != 100 || img.Bounds().Dy() != 60 {
		t.Fatalf("unexpected size %v", img.Bounds())
	}
	white := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	if got := img.RGBAAt(50, 30); got != white {
		t.Errorf("background pixel %v", got)
	}
}

func TestRenderSolidRectangle(t *testing.T) {
	s := item.NewShape(item.ShapeRectangle, 10, 10, 40, 20)
	s.SetFill(red)
	st := newRenderStore(t, s)

	img, err := Render(st, geometry.NewSize(100, 60), Options{})
	if err != nil {
		t.Fatal(err)
	}
	if got := img.RGBAAt(30, 20); got != red {
		t.Errorf("interior pixel %v, want fill", got)
	}
	if got := img.RGBAAt(5, 5); got == red {
		t.Error("fill leaked outside the item")
	}
}

func TestRenderZOrderIsInsertionOrder(t *testing.T) {
	bottom := item.NewShape(item.ShapeRectangle, 10, 10, 40, 20)
	bottom.SetFill(red)
	top := item.NewShape(item.ShapeRectangle, 10, 10, 40, 20)
	top.SetFill(blue)
	st := newRenderStore(t, bottom, top)

	img, err := Render(st, geometry.NewSize(100, 60), Options{})
	if err != nil {
		t.Fatal(err)
	}
	if got := img.RGBAAt(30, 20); got != blue {
		t.Errorf("later item must paint on top, got %v", got)
	}
}

func TestRenderRotatedRectangleFootprint(t *testing.T) {
	s := item.NewShape(item.ShapeRectangle, 40, 20, 40, 20)
	s.SetFill(red)
	s.SetAngle(90)
	st := newRenderStore(t, s)

	img, err := Render(st, geometry.NewSize(120, 80), Options{})
	if err != nil {
		t.Fatal(err)
	}
	// Rotated 90 degrees about its center (60,30), the 40x20 box
	// occupies x in [50,70], y in [10,50].
	if got := img.RGBAAt(60, 15); got != red {
		t.Errorf("pixel inside rotated footprint is %v", got)
	}
	if got := img.RGBAAt(30, 15); got == red {
		t.Error("fill leaked outside the rotated footprint")
	}
	if got := img.RGBAAt(45, 30); got == red {
		t.Error("original unrotated footprint must not paint")
	}
}

func TestRenderIncludesOffViewportItems(t *testing.T) {
	st := store.NewStore()
	st.SetViewport(geometry.NewRect(0, 0, 50, 50))
	s := item.NewShape(item.ShapeRectangle, 200, 200, 40, 20)
	s.SetFill(red)
	if err := st.AddItems(s); err != nil {
		t.Fatal(err)
	}
	if st.MaterializedCount() != 0 {
		t.Fatal("item unexpectedly materialized")
	}

	img, err := Render(st, geometry.NewSize(300, 300), Options{})
	if err != nil {
		t.Fatal(err)
	}
	if got := img.RGBAAt(220, 210); got != red {
		t.Errorf("off-viewport item must still export, got %v", got)
	}
	if st.MaterializedCount() != 0 {
		t.Error("render must restore virtualization state")
	}
}

func TestRenderDPIScalesBaseSize(t *testing.T) {
	st := newRenderStore(t)
	img, err := Render(st, geometry.NewSize(100, 60), Options{DPI: 192})
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds().Dx() != 200 || img.Bounds().Dy() != 120 {
		t.Errorf("expected 200x120 at 192 DPI, got %v", img.Bounds())
	}
}

func TestRenderScalesToRequestedPixels(t *testing.T) {
	s := item.NewShape(item.ShapeRectangle, 0, 0, 100, 60)
	s.SetFill(red)
	st := newRenderStore(t, s)

	img, err := Render(st, geometry.NewSize(100, 60), Options{WidthPx: 500, HeightPx: 300})
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds().Dx() != 500 || img.Bounds().Dy() != 300 {
		t.Fatalf("unexpected output size %v", img.Bounds())
	}
	if got := img.RGBAAt(250, 150); got.R < 200 {
		t.Errorf("scaled interior lost the fill: %v", got)
	}
}

func TestRenderInvalidCanvasFails(t *testing.T) {
	st := newRenderStore(t)
	if _, err := Render(st, geometry.NewSize(0, 100), Options{}); err == nil {
		t.Error("expected error for empty canvas")
	}
}

func TestRenderPlaceholderPaintsFrame(t *testing.T) {
	p := item.NewPlaceholder(3, 10, 10, 60, 40)
	st := newRenderStore(t, p)

	img, err := Render(st, geometry.NewSize(100, 60), Options{})
	if err != nil {
		t.Fatal(err)
	}
	frame := color.RGBA{R: 120, G: 120, B: 120, A: 255}
	if got := img.RGBAAt(10, 30); got != frame {
		t.Errorf("left frame edge %v", got)
	}
	fill := color.RGBA{R: 230, G: 230, B: 230, A: 255}
	if got := img.RGBAAt(15, 15); got != fill {
		t.Errorf("placeholder interior %v", got)
	}
}

func TestRenderMissingImagePaintsFallbackFrame(t *testing.T) {
	i := item.NewImage("/nonexistent/photo.png", 10, 10, 60, 40)
	st := newRenderStore(t, i)

	img, err := Render(st, geometry.NewSize(100, 60), Options{})
	if err != nil {
		t.Fatal(err)
	}
	mark := color.RGBA{R: 180, G: 80, B: 80, A: 255}
	if got := img.RGBAAt(10, 30); got != mark {
		t.Errorf("fallback frame edge %v", got)
	}
}

func TestRenderPolyline(t *testing.T) {
	p := item.NewPolyline(0, 0, []geometry.Point2D{
		{X: 10, Y: 10}, {X: 50, Y: 10}, {X: 50, Y: 40},
	})
	st := newRenderStore(t, p)

	img, err := Render(st, geometry.NewSize(100, 60), Options{})
	if err != nil {
		t.Fatal(err)
	}
	ink := color.RGBA{R: 40, G: 40, B: 40, A: 255}
	if got := img.RGBAAt(30, 10); got != ink {
		t.Errorf("horizontal segment pixel %v", got)
	}
	if got := img.RGBAAt(50, 25); got != ink {
		t.Errorf("vertical segment pixel %v", got)
	}
}

func TestRenderTextUsesItemColor(t *testing.T) {
	txt := item.NewText("HI", 10, 10)
	txt.SetColor(blue)
	st := newRenderStore(t, txt)

	img, err := Render(st, geometry.NewSize(200, 100), Options{})
	if err != nil {
		t.Fatal(err)
	}
	found := false
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y && !found; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if img.RGBAAt(x, y) == blue {
				found = true
				break
			}
		}
	}
	if !found {
		t.Error("no text pixels painted")
	}
}

func TestRenderPropagatesPaintErrors(t *testing.T) {
	// A foreign item type is the only way painting can fail; fake one.
	st := newRenderStore(t)
	if err := st.AddItems(badItem{item.NewPlaceholder(1, 0, 0, 20, 20)}); err != nil {
		t.Fatal(err)
	}
	if _, err := Render(st, geometry.NewSize(100, 100), Options{}); err == nil {
		t.Fatal("expected paint error")
	}
	// The visible item stays materialized; the forced flag must be gone.
	if st.MaterializedCount() != 1 {
		t.Errorf("expected 1 materialized container, got %d", st.MaterializedCount())
	}
}

type badItem struct{ *item.PlaceholderItem }
