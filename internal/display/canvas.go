// Package display draws menus onto a drivers.Displayer.
package display

import (
	"image"
	"image/color"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"

	"github.com/ajanata/wristmenu/internal/animation"
)

var (
	black = color.RGBA{A: 0xFF}
	white = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
)

// DefaultFont is small enough to fit a title, four options and an exit option on a 64 pixel tall panel.
var DefaultFont tinyfont.Fonter = &tinyfont.Org01

// Canvas draws text, bitmaps and rectangles on a display. Nothing reaches the panel until Display is called.
type Canvas struct {
	d        drivers.Displayer
	font     tinyfont.Fonter
	inverted bool
}

// New returns a canvas on d using font, or DefaultFont if font is nil.
func New(d drivers.Displayer, font tinyfont.Fonter) *Canvas {
	if font == nil {
		font = DefaultFont
	}
	return &Canvas{d: d, font: font}
}

func (c *Canvas) ink() color.RGBA {
	if c.inverted {
		return black
	}
	return white
}

func (c *Canvas) paper() color.RGBA {
	if c.inverted {
		return white
	}
	return black
}

// SetInverted swaps the ink and paper colours used for text.
func (c *Canvas) SetInverted(inverted bool) { c.inverted = inverted }

func (c *Canvas) SetFont(f tinyfont.Fonter) {
	if f == nil {
		f = DefaultFont
	}
	c.font = f
}

func (c *Canvas) MeasureText(text string) (w, h int16) {
	_, outbox := tinyfont.LineWidth(c.font, text)
	return int16(outbox), int16(c.font.GetYAdvance())
}

func (c *Canvas) DrawText(text string, x, y int16, inverted bool) {
	fg := c.ink()
	if inverted {
		w, h := c.MeasureText(text)
		// cover descenders too
		animation.FillRect(c.d, x, y-h, w, h+2, c.ink())
		fg = c.paper()
	}
	tinyfont.WriteLine(c.d, c.font, x, y, text, fg)
}

func (c *Canvas) DrawBitmap(x, y int16, img image.Image, w, h int16, fg color.RGBA) {
	animation.DrawBitmap(c.d, x, y, img, w, h, fg)
}

func (c *Canvas) FillRect(x, y, w, h int16, col color.RGBA) {
	animation.FillRect(c.d, x, y, w, h, col)
}

func (c *Canvas) DisplayWidth() int16 {
	w, _ := c.d.Size()
	return w
}

func (c *Canvas) DisplayHeight() int16 {
	_, h := c.d.Size()
	return h
}

// Display pushes the drawing to the panel.
func (c *Canvas) Display() error {
	return c.d.Display()
}
