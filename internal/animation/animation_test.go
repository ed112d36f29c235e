package animation

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ajanata/wristmenu/internal/framebuffer"
)

var white = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}

// square returns a w by w white image with a black n by n square in the top left corner.
func square(w, n int) image.Image {
	img := image.NewGray(image.Rect(0, 0, w, w))
	for x := 0; x < w; x++ {
		for y := 0; y < w; y++ {
			if x < n && y < n {
				img.SetGray(x, y, color.Gray{})
			} else {
				img.SetGray(x, y, color.Gray{Y: 0xFF})
			}
		}
	}
	return img
}

func TestInk(t *testing.T) {
	img := square(4, 2)
	assert.True(t, Ink(img, 0, 0))
	assert.True(t, Ink(img, 1, 1))
	assert.False(t, Ink(img, 2, 2))

	transparent := image.NewRGBA(image.Rect(0, 0, 1, 1))
	assert.False(t, Ink(transparent, 0, 0))
}

func TestDrawBitmap(t *testing.T) {
	fb := framebuffer.New(16, 16)
	DrawBitmap(fb, 4, 4, square(8, 3), 8, 8, white)
	assert.Equal(t, 9, fb.Count(0, 0, 16, 16))
	assert.True(t, fb.Lit(4, 4))
	assert.True(t, fb.Lit(6, 6))
	assert.False(t, fb.Lit(7, 7))
}

func TestDrawBitmapClips(t *testing.T) {
	fb := framebuffer.New(16, 16)
	DrawBitmap(fb, -2, -2, square(8, 3), 8, 8, white)
	assert.Equal(t, 1, fb.Count(0, 0, 16, 16))
	assert.True(t, fb.Lit(0, 0))

	fb.Clear()
	DrawBitmap(fb, 15, 15, square(8, 3), 8, 8, white)
	assert.Equal(t, 1, fb.Count(0, 0, 16, 16))
}

func TestDrawBitmapSmallerThanRequested(t *testing.T) {
	fb := framebuffer.New(16, 16)
	DrawBitmap(fb, 0, 0, square(2, 2), 8, 8, white)
	assert.Equal(t, 4, fb.Count(0, 0, 16, 16))
}

func TestFillRect(t *testing.T) {
	fb := framebuffer.New(8, 8)
	FillRect(fb, 6, 6, 4, 4, white)
	assert.Equal(t, 4, fb.Count(0, 0, 8, 8))
	FillRect(fb, -10, -10, 100, 100, color.RGBA{})
	assert.Equal(t, 0, fb.Count(0, 0, 8, 8))
}
