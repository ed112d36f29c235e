package wristmenu

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"tinygo.org/x/tinyfont"
)

type textCall struct {
	text     string
	x, y     int16
	inverted bool
}

type bitmapCall struct {
	x, y int16
	img  image.Image
	fg   color.RGBA
}

// recorder is a Drawer with a monospaced 4x6 font that records what is drawn.
type recorder struct {
	w, h    int16
	glyphW  int16
	texts   []textCall
	bitmaps []bitmapCall
	fills   []color.RGBA
	fonts   int
}

func newRecorder() *recorder {
	return &recorder{w: 128, h: 64, glyphW: 4}
}

func (r *recorder) reset() {
	r.texts = nil
	r.bitmaps = nil
	r.fills = nil
}

func (r *recorder) MeasureText(text string) (int16, int16) {
	return r.glyphW * int16(len([]rune(text))), 6
}

func (r *recorder) DrawText(text string, x, y int16, inverted bool) {
	r.texts = append(r.texts, textCall{text, x, y, inverted})
}

func (r *recorder) DrawBitmap(x, y int16, img image.Image, _, _ int16, fg color.RGBA) {
	r.bitmaps = append(r.bitmaps, bitmapCall{x, y, img, fg})
}

func (r *recorder) FillRect(_, _, _, _ int16, c color.RGBA) {
	r.fills = append(r.fills, c)
}

func (r *recorder) DisplayWidth() int16  { return r.w }
func (r *recorder) DisplayHeight() int16 { return r.h }

func (r *recorder) SetFont(tinyfont.Fonter) {
	r.fonts++
	r.glyphW = 6
}

func (r *recorder) find(text string) (textCall, bool) {
	for _, c := range r.texts {
		if c.text == text {
			return c, true
		}
	}
	return textCall{}, false
}

// polarRecorder also swaps its own palette.
type polarRecorder struct {
	*recorder
	inverted bool
}

func (p *polarRecorder) SetInverted(inverted bool) { p.inverted = inverted }

func icon(tag uint8) image.Image {
	img := image.NewGray(image.Rect(0, 0, 32, 32))
	img.Pix[0] = tag
	return img
}

func testChrome() Chrome {
	return Chrome{
		DefaultIcon: icon(1),
		BarTop:      image.NewGray(image.Rect(0, 0, 40, 8)),
		BarBottom:   image.NewGray(image.Rect(0, 0, 40, 8)),
	}
}

func textMenu(t *testing.T) *Definition {
	t.Helper()
	def := NewDefinition(1)
	_, err := def.DefineMenu(0, 4, "Alarms", KindTextList)
	require.NoError(t, err)
	require.NoError(t, def.DefineOption(0, 0, ActionOption("Alarm 07:30", nil, func() {}).Highlighted(6, 2)))
	require.NoError(t, def.DefineOption(0, 2, ActionOption("New", nil, func() {})))
	require.NoError(t, def.DefineOption(0, 3, ExitOption("Back", nil)))
	return def
}

func TestRenderTextList(t *testing.T) {
	d := newRecorder()
	n := newNav(t, textMenu(t))
	r := NewRenderer(n, d, DefaultLayout(), testChrome())

	w, h := r.FontSize()
	require.Equal(t, int16(4), w)
	require.Equal(t, int16(6), h)
	// line height is one and a half glyphs
	const lh = 9

	assert.False(t, r.Render())
	assert.Equal(t, []color.RGBA{Black}, d.fills)

	title, ok := d.find("Alarms")
	require.True(t, ok)
	assert.Equal(t, textCall{"Alarms", 64 - 12, lh, false}, title)

	// selection marker on the first option
	marker, ok := d.find(">")
	require.True(t, ok)
	assert.Equal(t, textCall{">", 0, 2 * lh, false}, marker)

	// highlighted run split out of the name
	pre, ok := d.find("Alarm ")
	require.True(t, ok)
	assert.Equal(t, textCall{"Alarm ", 4, 2 * lh, false}, pre)
	inv, ok := d.find("07")
	require.True(t, ok)
	assert.Equal(t, textCall{"07", 4 + 24, 2 * lh, true}, inv)
	post, ok := d.find(":30")
	require.True(t, ok)
	assert.Equal(t, textCall{":30", 4 + 24 + 8, 2 * lh, false}, post)

	// unset slot 1 is skipped, slot 2 is on its own line
	opt, ok := d.find("New")
	require.True(t, ok)
	assert.Equal(t, int16(4*lh), opt.y)

	// the exit option shares the last option's line at the right edge
	exit, ok := d.find("Back")
	require.True(t, ok)
	assert.Equal(t, textCall{"Back", 128 - 16 - 8 + 4, 4 * lh, false}, exit)
}

func TestRenderTextListExitSelected(t *testing.T) {
	d := newRecorder()
	n := newNav(t, textMenu(t))
	n.MoveUp()
	require.True(t, n.Menu().SelectedOption().IsExit())
	r := NewRenderer(n, d, DefaultLayout(), testChrome())

	r.Render()
	marker, ok := d.find(">")
	require.True(t, ok)
	assert.Equal(t, textCall{">", 128 - 16 - 8, 4 * 9, false}, marker)
}

func TestRenderHook(t *testing.T) {
	d := newRecorder()
	def := textMenu(t)
	var got Drawer
	def.Menu(0).OnRender = func(dr Drawer) {
		got = dr
		dr.DrawText("overlay", 0, 60, false)
	}
	r := NewRenderer(newNav(t, def), d, DefaultLayout(), testChrome())
	r.Render()
	assert.Same(t, d, got)
	assert.Equal(t, "overlay", d.texts[len(d.texts)-1].text)
}

func iconMenu(t *testing.T) *Definition {
	t.Helper()
	def := NewDefinition(1)
	_, err := def.DefineMenu(0, 4, "Main", KindIconCarousel)
	require.NoError(t, err)
	require.NoError(t, def.DefineOption(0, 0, ActionOption("Clock", icon(10), func() {})))
	require.NoError(t, def.DefineOption(0, 1, ActionOption("Timer", nil, func() {})))
	require.NoError(t, def.DefineOption(0, 2, ActionOption("Alarm", icon(12), func() {})))
	require.NoError(t, def.DefineOption(0, 3, ExitOption("Exit", icon(13))))
	return def
}

func iconXs(d *recorder) []int16 {
	var xs []int16
	for _, b := range d.bitmaps {
		if b.img.Bounds().Dx() == 32 {
			xs = append(xs, b.x)
		}
	}
	return xs
}

func TestRenderIconsSettled(t *testing.T) {
	d := newRecorder()
	chrome := testChrome()
	n := newNav(t, iconMenu(t))
	r := NewRenderer(n, d, DefaultLayout(), chrome)

	assert.False(t, r.Render())

	title, ok := d.find("Main")
	require.True(t, ok)
	assert.Equal(t, textCall{"Main", 64 - 8, 6, false}, title)

	require.Len(t, d.bitmaps, 2+2)
	assert.Equal(t, bitmapCall{44, 14, chrome.BarTop, White}, d.bitmaps[0])
	assert.Equal(t, bitmapCall{44, 42, chrome.BarBottom, White}, d.bitmaps[1])

	// first icon centred, the second to its right, the rest past the right edge
	assert.Equal(t, []int16{48, 96}, iconXs(d))
	assert.Same(t, chrome.DefaultIcon, d.bitmaps[3].img)
	assert.Equal(t, int16(16), d.bitmaps[2].y)
}

func TestRenderIconsAnimates(t *testing.T) {
	d := newRecorder()
	n := newNav(t, iconMenu(t))
	r := NewRenderer(n, d, DefaultLayout(), testChrome())
	m := n.Menu()

	n.MoveDown()
	n.MoveDown()
	// target is two icons to the left
	frames := 0
	for r.Render() {
		frames++
		require.Less(t, frames, 50)
	}
	assert.Equal(t, int16(-96), m.CarouselX())
	assert.Greater(t, frames, 0)

	d.reset()
	assert.False(t, r.Render())
	// the selected icon is centred, the first icon is off the left edge
	assert.Equal(t, []int16{0, 48, 96}, iconXs(d))
}

func TestRenderIconsClipping(t *testing.T) {
	d := newRecorder()
	n := newNav(t, iconMenu(t))
	r := NewRenderer(n, d, DefaultLayout(), testChrome())
	m := n.Menu()

	// each case is one frame from settling on the first icon, which moves the strip 16 pixels first
	for _, tc := range []struct {
		x    int16
		want []int16
	}{
		{96, nil},                        // first icon lands on the right edge
		{95, []int16{127}},               // one pixel in
		{-97, []int16{15, 63, 111}},      // first icon one pixel past a full icon width off the left edge
		{-96, []int16{-32, 16, 64, 112}}, // first icon exactly one icon width off the left edge is still drawn
		{-95, []int16{-31, 17, 65, 113}}, // one pixel in
	} {
		m.carousel.X = tc.x
		d.reset()
		assert.True(t, r.Render())
		assert.Equal(t, tc.want, iconXs(d), "offset %d", tc.x)
	}
}

func TestSetFontRemeasures(t *testing.T) {
	d := newRecorder()
	r := NewRenderer(newNav(t, textMenu(t)), d, DefaultLayout(), testChrome())
	r.SetFont(nil)
	assert.Equal(t, 1, d.fonts)
	w, _ := r.FontSize()
	assert.Equal(t, int16(6), w)
}

func TestSetInvertedWithoutPolarity(t *testing.T) {
	d := newRecorder()
	n := newNav(t, textMenu(t))
	r := NewRenderer(n, d, DefaultLayout(), testChrome())
	r.SetInverted(true)
	assert.True(t, r.Inverted())

	r.Render()
	assert.Equal(t, []color.RGBA{White}, d.fills)
	title, _ := d.find("Alarms")
	assert.True(t, title.inverted)
	inv, _ := d.find("07")
	assert.False(t, inv.inverted)
}

func TestSetInvertedWithPolarity(t *testing.T) {
	d := &polarRecorder{recorder: newRecorder()}
	def := iconMenu(t)
	r := NewRenderer(newNav(t, def), d, DefaultLayout(), testChrome())
	r.SetInverted(true)
	assert.True(t, d.inverted)

	r.Render()
	assert.Equal(t, []color.RGBA{White}, d.fills)
	title, _ := d.find("Main")
	assert.False(t, title.inverted)
	for _, b := range d.bitmaps {
		assert.Equal(t, Black, b.fg)
	}
}

func TestRenderList(t *testing.T) {
	d := newRecorder()
	r := NewRenderer(newNav(t, textMenu(t)), d, DefaultLayout(), testChrome())
	p := NewPaginator(4)
	items := []string{"a", "b", "c", "d", "e", "f"}
	p.Begin(len(items))

	r.RenderList(p, items, 1)
	next, ok := d.find("<Next>")
	require.True(t, ok)
	assert.False(t, next.inverted)
	_, ok = d.find("<Prev>")
	assert.False(t, ok, "no previous page on the first page")
	exit, ok := d.find("<Exit>")
	require.True(t, ok)
	assert.Equal(t, int16(24+6), exit.x)

	for _, s := range []string{"a", "b", "c", "d"} {
		_, ok := d.find(s)
		assert.True(t, ok, s)
	}
	_, ok = d.find("e")
	assert.False(t, ok)
	marker, ok := d.find(">")
	require.True(t, ok)
	b, _ := d.find("b")
	assert.Equal(t, b.y, marker.y)

	// second page, cursor in the band
	sel, page := 0, 0
	p.HandleUp(&sel)
	p.HandleSelect(&page)
	p.HandleUp(&sel)
	require.Equal(t, MetaPrevPage, p.Meta())
	d.reset()
	r.RenderList(p, items, sel)
	prev, ok := d.find("<Prev>")
	require.True(t, ok)
	assert.True(t, prev.inverted)
	_, ok = d.find(">")
	assert.False(t, ok)
	_, ok = d.find("e")
	assert.True(t, ok)
	_, ok = d.find("a")
	assert.False(t, ok)
}
