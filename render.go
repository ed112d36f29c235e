package wristmenu

import (
	"image"
	"image/color"

	"tinygo.org/x/tinyfont"

	"github.com/ajanata/wristmenu/internal/animation/slide"
	"github.com/ajanata/wristmenu/internal/media"
)

// Drawer is everything the renderer needs from the display. Text coordinates are of the baseline of the first
// character.
type Drawer interface {
	MeasureText(text string) (w, h int16)
	// DrawText draws text in the ink colour, or in the paper colour on an ink box when inverted is set.
	DrawText(text string, x, y int16, inverted bool)
	DrawBitmap(x, y int16, img image.Image, w, h int16, fg color.RGBA)
	FillRect(x, y, w, h int16, c color.RGBA)
	DisplayWidth() int16
	DisplayHeight() int16
	SetFont(f tinyfont.Fonter)
}

// Layout holds the positions used when drawing menus. Vertical positions other than Top are relative to Top.
type Layout struct {
	Top         int16
	IconSpacing int16
	IconSize    int16
	IconY       int16
	BarTopY     int16
	BarBottomY  int16
	// PageBandGap is the horizontal space between the controls of the page band.
	PageBandGap int16
}

func DefaultLayout() Layout {
	return Layout{
		Top:         0,
		IconSpacing: 48,
		IconSize:    32,
		IconY:       16,
		BarTopY:     14,
		BarBottomY:  42,
		PageBandGap: 6,
	}
}

// Chrome is the artwork used by icon menus.
type Chrome struct {
	DefaultIcon image.Image
	BarTop      image.Image
	BarBottom   image.Image
}

// DefaultChrome is the embedded artwork.
func DefaultChrome() Chrome {
	return Chrome{
		DefaultIcon: media.MustLoadImage(media.TypeIcon, "default"),
		BarTop:      media.MustLoadImage(media.TypeBar, "selectbar_top"),
		BarBottom:   media.MustLoadImage(media.TypeBar, "selectbar_bottom"),
	}
}

// Renderer draws the active menu of a navigator.
type Renderer struct {
	nav      *Navigator
	d        Drawer
	layout   Layout
	chrome   Chrome
	inverted bool

	fontW, fontH int16
}

func NewRenderer(nav *Navigator, d Drawer, layout Layout, chrome Chrome) *Renderer {
	r := &Renderer{
		nav:    nav,
		d:      d,
		layout: layout,
		chrome: chrome,
	}
	r.measureFont()
	return r
}

// SetFont changes the font used for all text and recalculates the glyph size used for layout.
func (r *Renderer) SetFont(f tinyfont.Fonter) {
	r.d.SetFont(f)
	r.measureFont()
}

func (r *Renderer) measureFont() {
	r.fontW, r.fontH = r.d.MeasureText("A")
}

// FontSize is the size of one glyph of the current font.
func (r *Renderer) FontSize() (w, h int16) { return r.fontW, r.fontH }

// Polarity is implemented by drawers that can swap their own ink and paper colours for text.
type Polarity interface {
	SetInverted(inverted bool)
}

// SetInverted swaps ink and paper for everything drawn from now on.
func (r *Renderer) SetInverted(inverted bool) {
	r.inverted = inverted
	if p, ok := r.d.(Polarity); ok {
		p.SetInverted(inverted)
	}
}

func (r *Renderer) Inverted() bool { return r.inverted }

func (r *Renderer) ink() color.RGBA {
	if r.inverted {
		return Black
	}
	return White
}

func (r *Renderer) paper() color.RGBA {
	if r.inverted {
		return White
	}
	return Black
}

func (r *Renderer) text(s string, x, y int16, inverted bool) {
	if _, ok := r.d.(Polarity); !ok && r.inverted {
		// the drawer only knows one palette; the best it can do is flip each run
		inverted = !inverted
	}
	r.d.DrawText(s, x, y, inverted)
}

func (r *Renderer) centreText(s string, cx, y int16) {
	w, _ := r.d.MeasureText(s)
	r.text(s, cx-w/2, y, false)
}

// Clear fills the display with the paper colour.
func (r *Renderer) Clear() {
	r.d.FillRect(0, 0, r.d.DisplayWidth(), r.d.DisplayHeight(), r.paper())
}

// Render draws the active menu and runs its OnRender hook. For icon menus it also moves the carousel one step toward
// the selected icon and reports whether it is still moving.
func (r *Renderer) Render() bool {
	m := r.nav.Menu()
	r.Clear()

	animating := false
	if m.Kind == KindIconCarousel {
		animating = r.drawIcons(m)
	} else {
		r.drawList(m)
	}

	if m.OnRender != nil {
		m.OnRender(r.d)
	}
	return animating
}

func (r *Renderer) lineHeight() int16 {
	return r.fontH + r.fontH/2
}

func (r *Renderer) drawList(m *Menu) {
	width := r.d.DisplayWidth()
	h := r.lineHeight()
	top := r.layout.Top
	r.centreText(m.Name, width/2, top+h)

	last := len(m.options) - 1
	for i := 0; i < last; i++ {
		o := m.options[i]
		if o == nil {
			continue
		}
		y := top + h*int16(i+2)
		if i == m.selected {
			r.text(">", 0, y, false)
		}
		r.drawName(o, r.fontW, y)
	}

	// the exit option shares the line of the last regular option, against the right edge
	exit := m.options[last]
	if exit == nil {
		return
	}
	nw, _ := r.d.MeasureText(exit.Name)
	x := width - nw - 2*r.fontW
	y := top + h*int16(last+1)
	if last == m.selected {
		r.text(">", x, y, false)
	}
	r.text(exit.Name, x+r.fontW, y, false)
}

// drawName draws an option name, inverting its highlighted run.
func (r *Renderer) drawName(o *Option, x, y int16) {
	hl := o.Highlight
	if hl.Length == 0 {
		r.text(o.Name, x, y, false)
		return
	}

	name := []rune(o.Name)
	parts := [3]string{
		string(name[:hl.Start]),
		string(name[hl.Start : hl.Start+hl.Length]),
		string(name[hl.Start+hl.Length:]),
	}
	for i, p := range parts {
		if p == "" {
			continue
		}
		r.text(p, x, y, i == 1)
		w, _ := r.d.MeasureText(p)
		x += w
	}
}

func (r *Renderer) drawIcons(m *Menu) bool {
	width := r.d.DisplayWidth()
	l := r.layout
	animating := m.carousel.Step(slide.Target(m.selected, l.IconSpacing))

	_, th := r.d.MeasureText(m.Name)
	r.centreText(m.Name, width/2, l.Top+th)

	if r.chrome.BarTop != nil {
		bw := int16(r.chrome.BarTop.Bounds().Dx())
		bh := int16(r.chrome.BarTop.Bounds().Dy())
		r.d.DrawBitmap(width/2-bw/2, l.Top+l.BarTopY, r.chrome.BarTop, bw, bh, r.ink())
	}
	if r.chrome.BarBottom != nil {
		bw := int16(r.chrome.BarBottom.Bounds().Dx())
		bh := int16(r.chrome.BarBottom.Bounds().Dy())
		r.d.DrawBitmap(width/2-bw/2, l.Top+l.BarBottomY, r.chrome.BarBottom, bw, bh, r.ink())
	}

	x := width/2 + m.carousel.X - l.IconSize/2
	for _, o := range m.options {
		if o != nil && x < width && x >= -l.IconSize {
			icon := o.Icon
			if icon == nil {
				icon = r.chrome.DefaultIcon
			}
			if icon != nil {
				r.d.DrawBitmap(x, l.Top+l.IconY, icon, l.IconSize, l.IconSize, r.ink())
			}
		}
		x += l.IconSpacing
	}
	return animating
}

// DrawPageBand draws the next page, previous page and exit controls of a paginator across the top of the display,
// inverting the one under the paginator's cursor. The previous page control is left out on the first page.
func (r *Renderer) DrawPageBand(p *Paginator) {
	y := r.layout.Top + r.fontH
	var x int16
	for _, c := range []struct {
		meta  Meta
		label string
	}{
		{MetaNextPage, "<Next>"},
		{MetaPrevPage, "<Prev>"},
		{MetaExitPage, "<Exit>"},
	} {
		if c.meta == MetaPrevPage && p.Page() == 0 {
			continue
		}
		r.text(c.label, x, y, p.Meta() == c.meta)
		w, _ := r.d.MeasureText(c.label)
		x += w + r.layout.PageBandGap
	}
}

// RenderList draws one page of items below the page band, marking the item at selected when the paginator's cursor
// is not in the band. items is the whole list.
func (r *Renderer) RenderList(p *Paginator, items []string, selected int) {
	r.Clear()
	r.DrawPageBand(p)

	h := r.lineHeight()
	first := p.Page() * p.ItemsPerPage()
	for i := 0; i < p.ItemsOnPage(); i++ {
		if first+i >= len(items) {
			break
		}
		y := r.layout.Top + r.fontH + h*int16(i+1)
		if i == selected && p.Meta() == MetaNone {
			r.text(">", 0, y, false)
		}
		r.text(items[first+i], r.fontW, y, false)
	}
}
