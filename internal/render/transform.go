package render

import (
	"fmt"
	"image"
	"math"

	"gonum.org/v1/gonum/mat"

	"template-designer/pkg/geometry"
)

// boxTransform builds the local-to-canvas transform for a rotated box:
// scale to pixels, rotate about the box center, translate into place.
func boxTransform(left, top, width, height, angleDegrees, scale float64) geometry.AffineTransform {
	cx := (left + width/2) * scale
	cy := (top + height/2) * scale
	rad := angleDegrees * math.Pi / 180.0
	t := geometry.Translation(cx, cy)
	t = t.Compose(geometry.Rotation(rad))
	t = t.Compose(geometry.Translation(-width*scale/2, -height*scale/2))
	return t
}

// invertAffine inverts the transform through its 3x3 homogeneous
// matrix. Degenerate transforms (zero-sized boxes) fail.
func invertAffine(t geometry.AffineTransform) (geometry.AffineTransform, error) {
	m := mat.NewDense(3, 3, []float64{
		t.A, t.B, t.TX,
		t.C, t.D, t.TY,
		0, 0, 1,
	})
	var inv mat.Dense
	if err := inv.Inverse(m); err != nil {
		return geometry.AffineTransform{}, fmt.Errorf("invert transform: %w", err)
	}
	return geometry.AffineTransform{
		A: inv.At(0, 0), B: inv.At(0, 1), TX: inv.At(0, 2),
		C: inv.At(1, 0), D: inv.At(1, 1), TY: inv.At(1, 2),
	}, nil
}

// composeRotated samples the locally painted box into dst through the
// inverse of its transform: every destination pixel inside the rotated
// footprint pulls the nearest source pixel.
func composeRotated(dst, local *image.RGBA, t geometry.AffineTransform, footprint geometry.Rect, scale float64) error {
	inv, err := invertAffine(t)
	if err != nil {
		return err
	}

	lb := local.Bounds()
	db := dst.Bounds()

	x1 := int(math.Floor(footprint.X * scale))
	y1 := int(math.Floor(footprint.Y * scale))
	x2 := int(math.Ceil((footprint.X + footprint.Width) * scale))
	y2 := int(math.Ceil((footprint.Y + footprint.Height) * scale))

	for y := y1; y <= y2; y++ {
		if y < db.Min.Y || y >= db.Max.Y {
			continue
		}
		for x := x1; x <= x2; x++ {
			if x < db.Min.X || x >= db.Max.X {
				continue
			}
			src := inv.Apply(geometry.NewPoint2D(float64(x)+0.5, float64(y)+0.5))
			sx := int(src.X)
			sy := int(src.Y)
			if sx < lb.Min.X || sx >= lb.Max.X || sy < lb.Min.Y || sy >= lb.Max.Y {
				continue
			}
			c := local.RGBAAt(sx, sy)
			if c.A == 0 {
				continue
			}
			dst.SetRGBA(x, y, c)
		}
	}
	return nil
}
