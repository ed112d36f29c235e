package media

import (
	"embed"
	"errors"
	"image"
	"io/fs"
	"strings"

	"golang.org/x/image/bmp"
)

//go:embed media/*/*.bmp
var imgs embed.FS

// LoadImage loads the specified image of the specified type.
func LoadImage(typ Type, name string) (image.Image, error) {
	r, err := imgs.Open("media/" + string(typ) + "/" + name + ".bmp")
	if err != nil {
		return nil, err
	}
	defer r.Close()

	fi, err := r.Stat()
	if err != nil {
		return nil, err
	}

	if fi.IsDir() {
		return nil, errors.New("cannot open directory")
	}

	w, h := typ.Size()
	if w == 0 || h == 0 {
		return nil, errors.New("invalid media type")
	}

	img, err := bmp.Decode(r)
	if err != nil {
		return nil, err
	}

	b := img.Bounds()
	if int(w) != b.Dx() || int(h) != b.Dy() {
		return nil, errors.New("invalid image size for type " + string(typ))
	}

	return img, nil
}

// MustLoadImage is LoadImage for media that is known to be embedded. It panics on error.
func MustLoadImage(typ Type, name string) image.Image {
	img, err := LoadImage(typ, name)
	if err != nil {
		panic("media " + string(typ) + "/" + name + ": " + err.Error())
	}
	return img
}

// Names lists the embedded images of a type.
func Names(typ Type) []string {
	entries, err := fs.ReadDir(imgs, "media/"+string(typ))
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".bmp"))
	}
	return names
}
