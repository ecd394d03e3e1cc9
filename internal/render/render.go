// Package render rasterizes a template's item store into a pixel
// buffer for export. Rendering ignores viewport virtualization: the
// store is forced fully visible for the duration of the pass, items
// paint in z-order (insertion order), and rotated boxes are sampled
// through the inverse of their affine transform.
package render

import (
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"math"
	"os"

	xdraw "golang.org/x/image/draw"

	"template-designer/internal/item"
	"template-designer/internal/store"
	"template-designer/pkg/geometry"
)

// ReferenceDPI is the canvas-unit resolution: at this DPI one canvas
// unit maps to one pixel.
const ReferenceDPI = 96.0

// Options tunes a render pass.
type Options struct {
	// WidthPx and HeightPx select the output pixel size. Zero keeps the
	// native size implied by the DPI.
	WidthPx  int
	HeightPx int

	// DPI scales canvas units to pixels. Zero means ReferenceDPI.
	DPI float64

	// Background fills the canvas before items paint. A zero value
	// means opaque white.
	Background color.RGBA
}

// Render rasterizes the store onto a canvas of the given size in
// canvas units. Every item paints whether or not it is currently
// materialized; per-item visibility is restored afterwards even when
// painting fails.
func Render(st *store.Store, canvas geometry.Size, opts Options) (*image.RGBA, error) {
	if canvas.Width <= 0 || canvas.Height <= 0 {
		return nil, fmt.Errorf("render: invalid canvas size %gx%g", canvas.Width, canvas.Height)
	}
	dpi := opts.DPI
	if dpi <= 0 {
		dpi = ReferenceDPI
	}
	scale := dpi / ReferenceDPI

	bg := opts.Background
	if bg == (color.RGBA{}) {
		bg = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	}

	base := image.NewRGBA(image.Rect(0, 0,
		int(math.Ceil(canvas.Width*scale)), int(math.Ceil(canvas.Height*scale))))
	fillRect(base, 0, 0, base.Bounds().Max.X-1, base.Bounds().Max.Y-1, bg)

	err := st.WithAllVisible(func() error {
		return PaintItems(base, st.Items(), scale)
	})
	if err != nil {
		return nil, err
	}

	if opts.WidthPx <= 0 || opts.HeightPx <= 0 ||
		(opts.WidthPx == base.Bounds().Dx() && opts.HeightPx == base.Bounds().Dy()) {
		return base, nil
	}
	out := image.NewRGBA(image.Rect(0, 0, opts.WidthPx, opts.HeightPx))
	xdraw.CatmullRom.Scale(out, out.Bounds(), base, base.Bounds(), xdraw.Src, nil)
	return out, nil
}

// PaintItems paints the given items in slice order at the given
// pixel-per-unit scale. The interactive canvas calls this with the
// virtualized visible set; export passes every item.
func PaintItems(dst *image.RGBA, items []item.Item, scale float64) error {
	for _, it := range items {
		if err := paintItem(dst, it, scale); err != nil {
			return fmt.Errorf("render item %s: %w", it.ID(), err)
		}
	}
	return nil
}

func paintItem(dst *image.RGBA, it item.Item, scale float64) error {
	switch v := it.(type) {
	case *item.PolylineItem:
		paintPolyline(dst, v, scale)
		return nil
	case *item.ShapeItem:
		return paintBox(dst, &v.BoxItem, scale, func(local *image.RGBA) {
			paintShapeLocal(local, v, scale)
		})
	case *item.PlaceholderItem:
		return paintBox(dst, &v.BoxItem, scale, func(local *image.RGBA) {
			paintPlaceholderLocal(local, v, scale)
		})
	case *item.ImageItem:
		return paintBox(dst, &v.BoxItem, scale, func(local *image.RGBA) {
			paintImageLocal(local, v)
		})
	case *item.TextItem:
		return paintBox(dst, &v.BoxItem, scale, func(local *image.RGBA) {
			paintTextLocal(local, v, scale)
		})
	}
	return fmt.Errorf("unpaintable item kind %q", it.Kind())
}

// paintBox renders the item into a local buffer at its pixel size and
// composes it onto the canvas. Unrotated boxes blit directly; rotated
// ones go through inverse-transform sampling.
func paintBox(dst *image.RGBA, b *item.BoxItem, scale float64, paint func(local *image.RGBA)) error {
	wpx := int(math.Ceil(b.Width() * scale))
	hpx := int(math.Ceil(b.Height() * scale))
	if wpx < 1 || hpx < 1 {
		return nil
	}
	local := image.NewRGBA(image.Rect(0, 0, wpx, hpx))
	paint(local)

	if b.Angle() == 0 {
		x := int(math.Round(b.Left() * scale))
		y := int(math.Round(b.Top() * scale))
		xdraw.Draw(dst, image.Rect(x, y, x+wpx, y+hpx), local, image.Point{}, xdraw.Over)
		return nil
	}

	t := boxTransform(b.Left(), b.Top(), b.Width(), b.Height(), b.Angle(), scale)
	return composeRotated(dst, local, t, b.Bounds(), scale)
}

func paintShapeLocal(local *image.RGBA, s *item.ShapeItem, scale float64) {
	w := local.Bounds().Max.X - 1
	h := local.Bounds().Max.Y - 1
	stroke := int(math.Round(s.StrokeWidth() * scale))
	if stroke < 1 {
		stroke = 1
	}
	shadowOff := int(math.Round(4 * scale))

	switch s.Shape() {
	case item.ShapeRectangle:
		if s.Shadow() {
			fillRect(local, shadowOff, shadowOff, w, h, s.ShadowColor())
		}
		fillRect(local, 0, 0, w, h, s.Fill())
		strokeRect(local, 0, 0, w, h, stroke, s.Stroke())
	case item.ShapeEllipse:
		if s.Shadow() {
			fillEllipse(local, shadowOff, shadowOff, w, h, s.ShadowColor())
		}
		fillEllipse(local, 0, 0, w, h, s.Fill())
		strokeEllipse(local, 0, 0, w, h, stroke, s.Stroke())
	case item.ShapeLine:
		drawLine(local, 0, 0, w, h, s.Stroke(), stroke)
	}
}

func paintPlaceholderLocal(local *image.RGBA, p *item.PlaceholderItem, scale float64) {
	w := local.Bounds().Max.X - 1
	h := local.Bounds().Max.Y - 1
	fillRect(local, 0, 0, w, h, color.RGBA{R: 230, G: 230, B: 230, A: 255})
	strokeRect(local, 0, 0, w, h, 2, color.RGBA{R: 120, G: 120, B: 120, A: 255})

	labelScale := int(2 * scale)
	if labelScale < 1 {
		labelScale = 1
	}
	label := fmt.Sprintf("%d", p.Slot())
	drawTextCentered(local, label, (w+1)/2, (h+1)/2, labelScale, color.RGBA{R: 120, G: 120, B: 120, A: 255})
}

func paintImageLocal(local *image.RGBA, i *item.ImageItem) {
	src, err := loadImage(i.SourcePath())
	if err != nil {
		// Missing or undecodable source paints as an empty frame.
		w := local.Bounds().Max.X - 1
		h := local.Bounds().Max.Y - 1
		strokeRect(local, 0, 0, w, h, 2, color.RGBA{R: 180, G: 80, B: 80, A: 255})
		drawLine(local, 0, 0, w, h, color.RGBA{R: 180, G: 80, B: 80, A: 255}, 1)
		drawLine(local, w, 0, 0, h, color.RGBA{R: 180, G: 80, B: 80, A: 255}, 1)
		return
	}

	target := local.Bounds()
	if i.KeepAspect() {
		target = fitRect(src.Bounds(), local.Bounds())
	}
	xdraw.BiLinear.Scale(local, target, src, src.Bounds(), xdraw.Src, nil)
}

func paintTextLocal(local *image.RGBA, t *item.TextItem, scale float64) {
	glyphScale := int(math.Round(t.FontSize() * scale / 5))
	if glyphScale < 1 {
		glyphScale = 1
	}
	drawText(local, t.Text(), 0, 0, glyphScale, t.Color())
}

func paintPolyline(dst *image.RGBA, p *item.PolylineItem, scale float64) {
	points := p.AbsolutePoints()
	col := color.RGBA{R: 40, G: 40, B: 40, A: 255}
	thickness := int(math.Round(2 * scale))
	for i := 0; i+1 < len(points); i++ {
		drawLine(dst,
			int(math.Round(points[i].X*scale)), int(math.Round(points[i].Y*scale)),
			int(math.Round(points[i+1].X*scale)), int(math.Round(points[i+1].Y*scale)),
			col, thickness)
	}
}

// fitRect scales src proportionally into dst and centers it.
func fitRect(src, dst image.Rectangle) image.Rectangle {
	sw, sh := float64(src.Dx()), float64(src.Dy())
	dw, dh := float64(dst.Dx()), float64(dst.Dy())
	if sw <= 0 || sh <= 0 {
		return dst
	}
	f := math.Min(dw/sw, dh/sh)
	w := int(sw * f)
	h := int(sh * f)
	x := dst.Min.X + (dst.Dx()-w)/2
	y := dst.Min.Y + (dst.Dy()-h)/2
	return image.Rect(x, y, x+w, y+h)
}

func loadImage(path string) (image.Image, error) {
	if path == "" {
		return nil, fmt.Errorf("empty source path")
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}
