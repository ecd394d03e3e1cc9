package item

import (
	"image/color"
)

// ShapeKind selects the outline a shape item paints.
type ShapeKind string

const (
	ShapeRectangle ShapeKind = "rectangle"
	ShapeEllipse   ShapeKind = "ellipse"
	ShapeLine      ShapeKind = "line"
)

// PlaceholderItem marks a photo slot in the template. The slot number
// decides which captured photo lands in it.
type PlaceholderItem struct {
	BoxItem

	slot int
}

// NewPlaceholder creates a placeholder item for the given slot number.
func NewPlaceholder(slot int, left, top, width, height float64) *PlaceholderItem {
	p := &PlaceholderItem{BoxItem: newBoxItem(KindPlaceholder, left, top, width, height), slot: slot}
	return p
}

// Slot returns the photo slot number.
func (p *PlaceholderItem) Slot() int { return p.slot }

// SetSlot sets the photo slot number.
func (p *PlaceholderItem) SetSlot(slot int) { p.slot = slot }

// Clone returns a duplicate offset by the fixed duplicate translation.
func (p *PlaceholderItem) Clone() Item {
	dup := &PlaceholderItem{BoxItem: p.cloneBase(), slot: p.slot}
	return dup
}

// Snapshot returns a plain serializable view of the placeholder.
func (p *PlaceholderItem) Snapshot() Snapshot {
	s := p.baseSnapshot()
	s.Slot = p.slot
	return s
}

// ImageItem displays an external image file. The item stores only the
// source path; decoding is the renderer's business.
type ImageItem struct {
	BoxItem

	sourcePath string
	keepAspect bool
}

// NewImage creates an image item for the given source path.
func NewImage(sourcePath string, left, top, width, height float64) *ImageItem {
	i := &ImageItem{BoxItem: newBoxItem(KindImage, left, top, width, height), sourcePath: sourcePath}
	return i
}

// SourcePath returns the image file path.
func (i *ImageItem) SourcePath() string { return i.sourcePath }

// SetSourcePath sets the image file path.
func (i *ImageItem) SetSourcePath(path string) { i.sourcePath = path }

// KeepAspect reports whether the image scales uniformly.
func (i *ImageItem) KeepAspect() bool { return i.keepAspect }

// SetKeepAspect toggles uniform scaling.
func (i *ImageItem) SetKeepAspect(v bool) { i.keepAspect = v }

// Clone returns a duplicate offset by the fixed duplicate translation.
func (i *ImageItem) Clone() Item {
	dup := &ImageItem{BoxItem: i.cloneBase(), sourcePath: i.sourcePath, keepAspect: i.keepAspect}
	return dup
}

// Snapshot returns a plain serializable view of the image item.
func (i *ImageItem) Snapshot() Snapshot {
	s := i.baseSnapshot()
	s.SourcePath = i.sourcePath
	s.KeepAspect = i.keepAspect
	return s
}

// ShapeItem paints a filled and stroked primitive.
type ShapeItem struct {
	BoxItem

	shape       ShapeKind
	fill        color.RGBA
	stroke      color.RGBA
	strokeWidth float64
	shadow      bool
	shadowColor color.RGBA
}

// NewShape creates a shape item.
func NewShape(shape ShapeKind, left, top, width, height float64) *ShapeItem {
	s := &ShapeItem{
		BoxItem:     newBoxItem(KindShape, left, top, width, height),
		shape:       shape,
		fill:        color.RGBA{R: 255, G: 255, B: 255, A: 255},
		stroke:      color.RGBA{A: 255},
		strokeWidth: 1,
		shadowColor: color.RGBA{A: 128},
	}
	return s
}

// Shape returns the primitive kind.
func (s *ShapeItem) Shape() ShapeKind { return s.shape }

// SetShape sets the primitive kind.
func (s *ShapeItem) SetShape(k ShapeKind) { s.shape = k }

// Fill returns the fill color.
func (s *ShapeItem) Fill() color.RGBA { return s.fill }

// SetFill sets the fill color.
func (s *ShapeItem) SetFill(c color.RGBA) { s.fill = c }

// Stroke returns the stroke color.
func (s *ShapeItem) Stroke() color.RGBA { return s.stroke }

// SetStroke sets the stroke color.
func (s *ShapeItem) SetStroke(c color.RGBA) { s.stroke = c }

// StrokeWidth returns the stroke width.
func (s *ShapeItem) StrokeWidth() float64 { return s.strokeWidth }

// SetStrokeWidth sets the stroke width.
func (s *ShapeItem) SetStrokeWidth(w float64) { s.strokeWidth = w }

// Shadow reports whether a drop shadow is painted.
func (s *ShapeItem) Shadow() bool { return s.shadow }

// SetShadow toggles the drop shadow.
func (s *ShapeItem) SetShadow(v bool) { s.shadow = v }

// ShadowColor returns the drop shadow color.
func (s *ShapeItem) ShadowColor() color.RGBA { return s.shadowColor }

// SetShadowColor sets the drop shadow color.
func (s *ShapeItem) SetShadowColor(c color.RGBA) { s.shadowColor = c }

// Clone returns a duplicate offset by the fixed duplicate translation.
func (s *ShapeItem) Clone() Item {
	dup := *s
	dup.BoxItem = s.cloneBase()
	return &dup
}

// Snapshot returns a plain serializable view of the shape item.
func (s *ShapeItem) Snapshot() Snapshot {
	snap := s.baseSnapshot()
	snap.Shape = s.shape
	snap.Fill = rgbaPtr(s.fill)
	snap.Stroke = rgbaPtr(s.stroke)
	snap.StrokeWidth = s.strokeWidth
	snap.Shadow = s.shadow
	snap.ShadowColor = rgbaPtr(s.shadowColor)
	return snap
}

// TextItem paints a run of text. With auto-size enabled the box tracks
// the measured extent of its content.
type TextItem struct {
	BoxItem

	text       string
	fontFamily string
	fontSize   float64
	bold       bool
	italic     bool
	textColor  color.RGBA
	autoSize   bool
}

// NewText creates a text item. Auto-size starts enabled, so the initial
// box is measured from the content.
func NewText(text string, left, top float64) *TextItem {
	t := &TextItem{
		BoxItem:    newBoxItem(KindText, left, top, DefaultMinSize, DefaultMinSize),
		text:       text,
		fontFamily: "Sans",
		fontSize:   24,
		textColor:  color.RGBA{A: 255},
		autoSize:   true,
	}
	t.applyAutoSize()
	return t
}

// Text returns the text content.
func (t *TextItem) Text() string { return t.text }

// SetText sets the text content, re-measuring when auto-size is on.
func (t *TextItem) SetText(text string) {
	t.text = text
	if t.autoSize {
		t.applyAutoSize()
	}
	t.notify()
}

// FontFamily returns the font family name.
func (t *TextItem) FontFamily() string { return t.fontFamily }

// SetFontFamily sets the font family name.
func (t *TextItem) SetFontFamily(name string) { t.fontFamily = name }

// FontSize returns the font size in canvas units.
func (t *TextItem) FontSize() float64 { return t.fontSize }

// SetFontSize sets the font size, re-measuring when auto-size is on.
func (t *TextItem) SetFontSize(size float64) {
	if size <= 0 {
		return
	}
	t.fontSize = size
	if t.autoSize {
		t.applyAutoSize()
	}
	t.notify()
}

// Bold reports the bold style flag.
func (t *TextItem) Bold() bool { return t.bold }

// SetBold sets the bold style flag.
func (t *TextItem) SetBold(v bool) { t.bold = v }

// Italic reports the italic style flag.
func (t *TextItem) Italic() bool { return t.italic }

// SetItalic sets the italic style flag.
func (t *TextItem) SetItalic(v bool) { t.italic = v }

// Color returns the text color.
func (t *TextItem) Color() color.RGBA { return t.textColor }

// SetColor sets the text color.
func (t *TextItem) SetColor(c color.RGBA) { t.textColor = c }

// AutoSize reports whether the box tracks the measured text extent.
func (t *TextItem) AutoSize() bool { return t.autoSize }

// SetAutoSize toggles auto-size, re-measuring immediately when enabled.
func (t *TextItem) SetAutoSize(v bool) {
	t.autoSize = v
	if v {
		t.applyAutoSize()
		t.notify()
	}
}

// applyAutoSize resizes the box to the measured extent without emitting
// a notification of its own; the calling setter notifies once.
func (t *TextItem) applyAutoSize() {
	w, h := MeasureText(t.text, t.fontSize)
	t.width = t.clampWidth(w)
	t.height = t.clampHeight(h)
}

// MeasureText estimates the extent of a text run at the given size,
// using the fixed-advance metrics of the renderer's bitmap font.
func MeasureText(text string, fontSize float64) (width, height float64) {
	lines := 1
	maxLen := 0
	cur := 0
	for _, r := range text {
		if r == '\n' {
			lines++
			cur = 0
			continue
		}
		cur++
		if cur > maxLen {
			maxLen = cur
		}
	}
	width = float64(maxLen) * fontSize * 0.8
	height = float64(lines) * fontSize * 1.2
	return width, height
}

// Clone returns a duplicate offset by the fixed duplicate translation.
func (t *TextItem) Clone() Item {
	dup := *t
	dup.BoxItem = t.cloneBase()
	return &dup
}

// Snapshot returns a plain serializable view of the text item.
func (t *TextItem) Snapshot() Snapshot {
	s := t.baseSnapshot()
	s.Text = t.text
	s.FontFamily = t.fontFamily
	s.FontSize = t.fontSize
	s.Bold = t.bold
	s.Italic = t.italic
	s.TextColor = rgbaPtr(t.textColor)
	s.AutoSize = t.autoSize
	return s
}
