// Package framebuffer provides an in-memory monochrome display.
package framebuffer

import (
	"image/color"
	"strings"
)

// Buffer is a 1-bit drivers.Displayer kept entirely in memory. A pixel is lit when any colour channel is non-zero.
type Buffer struct {
	w, h int16
	pix  []uint8

	// Flushed counts calls to Display.
	Flushed int
	// OnDisplay, if set, is invoked by Display.
	OnDisplay func(*Buffer) error
}

func New(w, h int16) *Buffer {
	return &Buffer{
		w:   w,
		h:   h,
		pix: make([]uint8, (int(w)*int(h)+7)/8),
	}
}

func (b *Buffer) Size() (x, y int16) {
	return b.w, b.h
}

func (b *Buffer) SetPixel(x, y int16, c color.RGBA) {
	if x < 0 || y < 0 || x >= b.w || y >= b.h {
		return
	}
	i := int(y)*int(b.w) + int(x)
	if c.R != 0 || c.G != 0 || c.B != 0 {
		b.pix[i/8] |= 1 << (i % 8)
	} else {
		b.pix[i/8] &^= 1 << (i % 8)
	}
}

// Lit reports whether the pixel is on. Off-screen pixels are never lit.
func (b *Buffer) Lit(x, y int16) bool {
	if x < 0 || y < 0 || x >= b.w || y >= b.h {
		return false
	}
	i := int(y)*int(b.w) + int(x)
	return b.pix[i/8]&(1<<(i%8)) != 0
}

// Count returns the number of lit pixels in the rectangle.
func (b *Buffer) Count(x, y, w, h int16) int {
	n := 0
	for xx := x; xx < x+w; xx++ {
		for yy := y; yy < y+h; yy++ {
			if b.Lit(xx, yy) {
				n++
			}
		}
	}
	return n
}

func (b *Buffer) Clear() {
	for i := range b.pix {
		b.pix[i] = 0
	}
}

func (b *Buffer) Display() error {
	b.Flushed++
	if b.OnDisplay != nil {
		return b.OnDisplay(b)
	}
	return nil
}

// String renders the buffer with Unicode half blocks, two pixel rows per line of text.
func (b *Buffer) String() string {
	var sb strings.Builder
	for y := int16(0); y < b.h; y += 2 {
		for x := int16(0); x < b.w; x++ {
			top, bottom := b.Lit(x, y), b.Lit(x, y+1)
			switch {
			case top && bottom:
				sb.WriteString("█")
			case top:
				sb.WriteString("▀")
			case bottom:
				sb.WriteString("▄")
			default:
				sb.WriteByte(' ')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
