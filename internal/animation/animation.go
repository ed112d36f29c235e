package animation

import (
	"image"
	"image/color"

	"tinygo.org/x/drivers"
)

// threshold is the luminance (16-bit) below which a source pixel counts as ink.
const threshold = 0x8000

// Ink reports whether the pixel of img at (x, y) is drawn. Icons are stored as black ink on a white background.
func Ink(img image.Image, x, y int) bool {
	r, g, b, a := img.At(x, y).RGBA()
	if a < threshold {
		return false
	}
	return (r+g+b)/3 < threshold
}

// DrawBitmap draws the ink of the top-left w by h pixels of img on the display at the given coordinates in colour c.
// Pixels that are not ink are left untouched. Off-screen coordinates are clipped.
func DrawBitmap(disp drivers.Displayer, offX, offY int16, img image.Image, w, h int16, c color.RGBA) {
	dw, dh := disp.Size()
	b := img.Bounds()
	if bw := int16(b.Dx()); bw < w {
		w = bw
	}
	if bh := int16(b.Dy()); bh < h {
		h = bh
	}
	for x := int16(0); x < w; x++ {
		xx := x + offX
		if xx < 0 || xx >= dw {
			continue
		}
		for y := int16(0); y < h; y++ {
			yy := y + offY
			if yy < 0 || yy >= dh {
				continue
			}
			if Ink(img, b.Min.X+int(x), b.Min.Y+int(y)) {
				disp.SetPixel(xx, yy, c)
			}
		}
	}
}

// FillRect sets every on-screen pixel of the rectangle to c.
func FillRect(disp drivers.Displayer, x, y, w, h int16, c color.RGBA) {
	dw, dh := disp.Size()
	x0, y0, x1, y1 := x, y, x+w, y+h
	if x0 < 0 {
		x0 = 0
	}
	if y0 < 0 {
		y0 = 0
	}
	if x1 > dw {
		x1 = dw
	}
	if y1 > dh {
		y1 = dh
	}
	for xx := x0; xx < x1; xx++ {
		for yy := y0; yy < y1; yy++ {
			disp.SetPixel(xx, yy, c)
		}
	}
}
