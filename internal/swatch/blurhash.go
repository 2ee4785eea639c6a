package swatch

import (
	"fmt"
	"image"

	"github.com/bbrks/go-blurhash"
	"golang.org/x/image/draw"
)

// thumbnailSize bounds the longer side of the image fed to the blurhash
// encoder. The placeholder is low frequency so a small copy encodes the same.
const thumbnailSize = 64

// Placeholder returns a 4x3 component blurhash of the tile described by opts.
func Placeholder(c Color, opts Options) (string, error) {
	img, err := Render(c, opts)
	if err != nil {
		return "", err
	}

	hash, err := blurhash.Encode(4, 3, thumbnail(img))
	if err != nil {
		return "", fmt.Errorf("encode blurhash: %w", err)
	}
	return hash, nil
}

func thumbnail(img image.Image) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= thumbnailSize && h <= thumbnailSize {
		return img
	}

	var dw, dh int
	if w > h {
		dw, dh = thumbnailSize, max(h*thumbnailSize/w, 1)
	} else {
		dw, dh = max(w*thumbnailSize/h, 1), thumbnailSize
	}

	dst := image.NewRGBA(image.Rect(0, 0, dw, dh))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}
