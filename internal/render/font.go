package render

import (
	"image"
	"image/color"
)

// glyphPatterns contains 3x5 pixel patterns for digits, letters and a
// few symbols. Each glyph is 5 rows of 3 bits.
var glyphPatterns = map[rune][5]uint8{
	'0': {0b111, 0b101, 0b101, 0b101, 0b111},
	'1': {0b010, 0b110, 0b010, 0b010, 0b111},
	'2': {0b111, 0b001, 0b111, 0b100, 0b111},
	'3': {0b111, 0b001, 0b111, 0b001, 0b111},
	'4': {0b101, 0b101, 0b111, 0b001, 0b001},
	'5': {0b111, 0b100, 0b111, 0b001, 0b111},
	'6': {0b111, 0b100, 0b111, 0b101, 0b111},
	'7': {0b111, 0b001, 0b001, 0b001, 0b001},
	'8': {0b111, 0b101, 0b111, 0b101, 0b111},
	'9': {0b111, 0b101, 0b111, 0b001, 0b111},
	'A': {0b010, 0b101, 0b111, 0b101, 0b101},
	'B': {0b110, 0b101, 0b110, 0b101, 0b110},
	'C': {0b011, 0b100, 0b100, 0b100, 0b011},
	'D': {0b110, 0b101, 0b101, 0b101, 0b110},
	'E': {0b111, 0b100, 0b110, 0b100, 0b111},
	'F': {0b111, 0b100, 0b110, 0b100, 0b100},
	'G': {0b011, 0b100, 0b101, 0b101, 0b011},
	'H': {0b101, 0b101, 0b111, 0b101, 0b101},
	'I': {0b111, 0b010, 0b010, 0b010, 0b111},
	'J': {0b001, 0b001, 0b001, 0b101, 0b010},
	'K': {0b101, 0b101, 0b110, 0b101, 0b101},
	'L': {0b100, 0b100, 0b100, 0b100, 0b111},
	'M': {0b101, 0b111, 0b101, 0b101, 0b101},
	'N': {0b101, 0b111, 0b111, 0b101, 0b101},
	'O': {0b010, 0b101, 0b101, 0b101, 0b010},
	'P': {0b110, 0b101, 0b110, 0b100, 0b100},
	'Q': {0b010, 0b101, 0b101, 0b111, 0b011},
	'R': {0b110, 0b101, 0b110, 0b101, 0b101},
	'S': {0b011, 0b100, 0b010, 0b001, 0b110},
	'T': {0b111, 0b010, 0b010, 0b010, 0b010},
	'U': {0b101, 0b101, 0b101, 0b101, 0b111},
	'V': {0b101, 0b101, 0b101, 0b101, 0b010},
	'W': {0b101, 0b101, 0b101, 0b111, 0b101},
	'X': {0b101, 0b101, 0b010, 0b101, 0b101},
	'Y': {0b101, 0b101, 0b010, 0b010, 0b010},
	'Z': {0b111, 0b001, 0b010, 0b100, 0b111},
	'+': {0b000, 0b010, 0b111, 0b010, 0b000},
	'-': {0b000, 0b000, 0b111, 0b000, 0b000},
	'*': {0b000, 0b101, 0b010, 0b101, 0b000},
	'.': {0b000, 0b000, 0b000, 0b000, 0b010},
	':': {0b000, 0b010, 0b000, 0b010, 0b000},
	'!': {0b010, 0b010, 0b010, 0b000, 0b010},
	'?': {0b111, 0b001, 0b010, 0b000, 0b010},
	' ': {0b000, 0b000, 0b000, 0b000, 0b000},
}

// glyphPattern returns the 3x5 pattern for a character, folding
// lowercase to uppercase. Unsupported characters render blank.
func glyphPattern(ch rune) [5]uint8 {
	if ch >= 'a' && ch <= 'z' {
		ch = ch - 'a' + 'A'
	}
	if p, ok := glyphPatterns[ch]; ok {
		return p
	}
	return [5]uint8{}
}

// drawGlyph paints one scaled glyph with its top-left at (x, y).
func drawGlyph(dst *image.RGBA, ch rune, x, y, scale int, col color.RGBA) {
	pattern := glyphPattern(ch)
	bounds := dst.Bounds()
	for row := 0; row < 5; row++ {
		for c := 0; c < 3; c++ {
			if pattern[row]&(1<<(2-c)) == 0 {
				continue
			}
			for dy := 0; dy < scale; dy++ {
				for dx := 0; dx < scale; dx++ {
					px := x + c*scale + dx
					py := y + row*scale + dy
					if px >= bounds.Min.X && px < bounds.Max.X &&
						py >= bounds.Min.Y && py < bounds.Max.Y {
						dst.Set(px, py, col)
					}
				}
			}
		}
	}
}

// drawText paints a multi-line text run with its top-left at (x, y).
// Characters advance by 4 font pixels, lines by 6.
func drawText(dst *image.RGBA, text string, x, y, scale int, col color.RGBA) {
	if scale < 1 {
		scale = 1
	}
	cx, cy := x, y
	for _, ch := range text {
		if ch == '\n' {
			cx = x
			cy += 6 * scale
			continue
		}
		drawGlyph(dst, ch, cx, cy, scale, col)
		cx += 4 * scale
	}
}

// DrawLabel paints a single-line label centered on (cx, cy). The
// interactive canvas uses it for overlay readouts.
func DrawLabel(dst *image.RGBA, text string, cx, cy, scale int, col color.RGBA) {
	drawTextCentered(dst, text, cx, cy, scale, col)
}

// drawTextCentered paints a single-line label centered on (cx, cy).
func drawTextCentered(dst *image.RGBA, text string, cx, cy, scale int, col color.RGBA) {
	if scale < 1 {
		scale = 1
	}
	n := len([]rune(text))
	if n == 0 {
		return
	}
	width := n*3*scale + (n-1)*scale
	drawText(dst, text, cx-width/2, cy-5*scale/2, scale, col)
}
