package item

import (
	"fmt"
	"image/color"

	"template-designer/pkg/geometry"
)

// Snapshot is the plain serializable state of an item, sufficient for
// template persistence and export. The core does not know what format
// it ends up in; collaborators marshal it however they like.
type Snapshot struct {
	ID   string `json:"id,omitempty"`
	Kind Kind   `json:"kind"`

	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`
	Angle  float64 `json:"angle,omitempty"`

	Resizable         bool    `json:"resizable,omitempty"`
	LockedPosition    bool    `json:"locked_position,omitempty"`
	LockedAspectRatio bool    `json:"locked_aspect_ratio,omitempty"`
	RatioX            float64 `json:"ratio_x,omitempty"`
	RatioY            float64 `json:"ratio_y,omitempty"`
	MinWidth          float64 `json:"min_width,omitempty"`
	MinHeight         float64 `json:"min_height,omitempty"`

	// Placeholder
	Slot int `json:"slot,omitempty"`

	// Image
	SourcePath string `json:"source_path,omitempty"`
	KeepAspect bool   `json:"keep_aspect,omitempty"`

	// Shape
	Shape       ShapeKind   `json:"shape,omitempty"`
	Fill        *color.RGBA `json:"fill,omitempty"`
	Stroke      *color.RGBA `json:"stroke,omitempty"`
	StrokeWidth float64     `json:"stroke_width,omitempty"`
	Shadow      bool        `json:"shadow,omitempty"`
	ShadowColor *color.RGBA `json:"shadow_color,omitempty"`

	// Text
	Text       string      `json:"text,omitempty"`
	FontFamily string      `json:"font_family,omitempty"`
	FontSize   float64     `json:"font_size,omitempty"`
	Bold       bool        `json:"bold,omitempty"`
	Italic     bool        `json:"italic,omitempty"`
	TextColor  *color.RGBA `json:"text_color,omitempty"`
	AutoSize   bool        `json:"auto_size,omitempty"`

	// Polyline
	Points []geometry.Point2D `json:"points,omitempty"`
}

func rgbaPtr(c color.RGBA) *color.RGBA { return &c }

func rgbaValue(c *color.RGBA, fallback color.RGBA) color.RGBA {
	if c == nil {
		return fallback
	}
	return *c
}

// FromSnapshot reconstructs an item from its snapshot, as produced by
// template deserialization.
func FromSnapshot(s Snapshot) (Item, error) {
	switch s.Kind {
	case KindPlaceholder:
		p := NewPlaceholder(s.Slot, s.Left, s.Top, s.Width, s.Height)
		p.restoreBase(s)
		return p, nil

	case KindImage:
		i := NewImage(s.SourcePath, s.Left, s.Top, s.Width, s.Height)
		i.restoreBase(s)
		i.keepAspect = s.KeepAspect
		return i, nil

	case KindShape:
		shape := s.Shape
		if shape == "" {
			shape = ShapeRectangle
		}
		sh := NewShape(shape, s.Left, s.Top, s.Width, s.Height)
		sh.restoreBase(s)
		sh.fill = rgbaValue(s.Fill, sh.fill)
		sh.stroke = rgbaValue(s.Stroke, sh.stroke)
		if s.StrokeWidth > 0 {
			sh.strokeWidth = s.StrokeWidth
		}
		sh.shadow = s.Shadow
		sh.shadowColor = rgbaValue(s.ShadowColor, sh.shadowColor)
		return sh, nil

	case KindText:
		t := NewText(s.Text, s.Left, s.Top)
		t.autoSize = s.AutoSize
		t.restoreBase(s)
		if s.FontFamily != "" {
			t.fontFamily = s.FontFamily
		}
		if s.FontSize > 0 {
			t.fontSize = s.FontSize
		}
		t.bold = s.Bold
		t.italic = s.Italic
		t.textColor = rgbaValue(s.TextColor, t.textColor)
		if t.autoSize {
			t.applyAutoSize()
		}
		return t, nil

	case KindPolyline:
		return polylineFromSnapshot(s), nil
	}
	return nil, fmt.Errorf("unknown item kind %q", s.Kind)
}
