package render

import (
	"image"
	"image/color"
)

// fillRect fills the pixel rectangle [x1,x2]x[y1,y2], clipped to dst.
func fillRect(dst *image.RGBA, x1, y1, x2, y2 int, col color.RGBA) {
	bounds := dst.Bounds()
	for y := y1; y <= y2; y++ {
		if y < bounds.Min.Y || y >= bounds.Max.Y {
			continue
		}
		for x := x1; x <= x2; x++ {
			if x < bounds.Min.X || x >= bounds.Max.X {
				continue
			}
			dst.Set(x, y, col)
		}
	}
}

// strokeRect outlines the pixel rectangle with the given thickness,
// drawn inward from the edges.
func strokeRect(dst *image.RGBA, x1, y1, x2, y2, thickness int, col color.RGBA) {
	if thickness < 1 {
		thickness = 1
	}
	for t := 0; t < thickness; t++ {
		fillRect(dst, x1, y1+t, x2, y1+t, col)
		fillRect(dst, x1, y2-t, x2, y2-t, col)
		fillRect(dst, x1+t, y1, x1+t, y2, col)
		fillRect(dst, x2-t, y1, x2-t, y2, col)
	}
}

// fillEllipse fills the ellipse inscribed in [x1,x2]x[y1,y2].
func fillEllipse(dst *image.RGBA, x1, y1, x2, y2 int, col color.RGBA) {
	cx := float64(x1+x2) / 2
	cy := float64(y1+y2) / 2
	rx := float64(x2-x1) / 2
	ry := float64(y2-y1) / 2
	if rx <= 0 || ry <= 0 {
		return
	}
	bounds := dst.Bounds()
	for y := y1; y <= y2; y++ {
		if y < bounds.Min.Y || y >= bounds.Max.Y {
			continue
		}
		for x := x1; x <= x2; x++ {
			if x < bounds.Min.X || x >= bounds.Max.X {
				continue
			}
			dx := (float64(x) - cx) / rx
			dy := (float64(y) - cy) / ry
			if dx*dx+dy*dy <= 1 {
				dst.Set(x, y, col)
			}
		}
	}
}

// strokeEllipse outlines the inscribed ellipse as a ring of the given
// thickness.
func strokeEllipse(dst *image.RGBA, x1, y1, x2, y2, thickness int, col color.RGBA) {
	cx := float64(x1+x2) / 2
	cy := float64(y1+y2) / 2
	rx := float64(x2-x1) / 2
	ry := float64(y2-y1) / 2
	if rx <= 0 || ry <= 0 {
		return
	}
	irx := rx - float64(thickness)
	iry := ry - float64(thickness)
	bounds := dst.Bounds()
	for y := y1; y <= y2; y++ {
		if y < bounds.Min.Y || y >= bounds.Max.Y {
			continue
		}
		for x := x1; x <= x2; x++ {
			if x < bounds.Min.X || x >= bounds.Max.X {
				continue
			}
			dx := (float64(x) - cx) / rx
			dy := (float64(y) - cy) / ry
			if dx*dx+dy*dy > 1 {
				continue
			}
			if irx > 0 && iry > 0 {
				idx := (float64(x) - cx) / irx
				idy := (float64(y) - cy) / iry
				if idx*idx+idy*idy <= 1 {
					continue
				}
			}
			dst.Set(x, y, col)
		}
	}
}

// drawLine draws a thick line between two pixels with Bresenham
// stepping.
func drawLine(dst *image.RGBA, x1, y1, x2, y2 int, col color.RGBA, thickness int) {
	if thickness < 1 {
		thickness = 1
	}
	bounds := dst.Bounds()

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
		for t := -thickness / 2; t <= thickness/2; t++ {
			for s := -thickness / 2; s <= thickness/2; s++ {
				px, py := x1+s, y1+t
				if px >= bounds.Min.X && px < bounds.Max.X && py >= bounds.Min.Y && py < bounds.Max.Y {
					dst.Set(px, py, col)
				}
			}
		}
		if x1 == x2 && y1 == y2 {
			break
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
