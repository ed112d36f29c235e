package media

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadImage(t *testing.T) {
	for _, name := range Names(TypeIcon) {
		img, err := LoadImage(TypeIcon, name)
		require.NoError(t, err, name)
		assert.Equal(t, 32, img.Bounds().Dx(), name)
		assert.Equal(t, 32, img.Bounds().Dy(), name)
	}

	for _, name := range []string{"selectbar_top", "selectbar_bottom"} {
		img, err := LoadImage(TypeBar, name)
		require.NoError(t, err, name)
		assert.Equal(t, 40, img.Bounds().Dx(), name)
		assert.Equal(t, 8, img.Bounds().Dy(), name)
	}
}

func TestLoadImageErrors(t *testing.T) {
	_, err := LoadImage(TypeIcon, "nope")
	assert.Error(t, err)

	// unknown type
	_, err = LoadImage(Type("bogus"), "default")
	assert.Error(t, err)
}

func TestNames(t *testing.T) {
	names := Names(TypeIcon)
	assert.Contains(t, names, "default")
	assert.Contains(t, names, "exit")
	assert.Empty(t, Names(Type("bogus")))
}

func TestMustLoadImage(t *testing.T) {
	assert.NotPanics(t, func() { MustLoadImage(TypeIcon, "default") })
	assert.Panics(t, func() { MustLoadImage(TypeBar, "default") })
}
