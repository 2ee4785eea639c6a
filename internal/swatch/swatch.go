// Package swatch renders colors as small PNG tiles with an optional hex label.
package swatch

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	DefaultWidth  = 120
	DefaultHeight = 25
	MaxDimension  = 1024
)

// labelLightness is the CIE L* above which black text reads better than white.
const labelLightness = 0.5

// ErrInvalidSize is returned for tiles outside [1, MaxDimension] in either axis.
var ErrInvalidSize = errors.New("swatch size out of range")

// Color is anything that can be drawn and named by its hex form.
// colorhash.Color and colorhash.RGB both qualify.
type Color interface {
	color.Color
	Hex() string
}

// Options controls tile size and labeling. Zero dimensions use the defaults.
type Options struct {
	Width  int
	Height int
	Label  bool
}

func (o Options) normalize() (Options, error) {
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.Width < 1 || o.Width > MaxDimension || o.Height < 1 || o.Height > MaxDimension {
		return o, fmt.Errorf("%w: %dx%d, each side must be in [1, %d]", ErrInvalidSize, o.Width, o.Height, MaxDimension)
	}
	return o, nil
}

// Render draws the tile. The label is skipped when it does not fit.
func Render(c Color, opts Options) (*image.RGBA, error) {
	opts, err := opts.normalize()
	if err != nil {
		return nil, err
	}

	img := image.NewRGBA(image.Rect(0, 0, opts.Width, opts.Height))
	draw.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)

	if opts.Label {
		drawLabel(img, c.Hex(), LabelColor(c))
	}
	return img, nil
}

// Encode writes the tile to w as PNG.
func Encode(w io.Writer, c Color, opts Options) error {
	img, err := Render(c, opts)
	if err != nil {
		return err
	}
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// PNG returns the encoded tile.
func PNG(c Color, opts Options) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, c, opts); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// LabelColor picks black or white, whichever stands out more against c.
func LabelColor(c color.Color) color.Color {
	cf, ok := colorful.MakeColor(c)
	if !ok {
		return color.Black
	}
	l, _, _ := cf.Lab()
	if l > labelLightness {
		return color.Black
	}
	return color.White
}

func drawLabel(img *image.RGBA, text string, fg color.Color) {
	face := basicfont.Face7x13
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(fg),
		Face: face,
	}

	b := img.Bounds()
	width := d.MeasureString(text).Ceil()
	if width > b.Dx() || face.Height > b.Dy() {
		return
	}

	// Center the text box; the baseline sits Ascent below its top edge.
	x := (b.Dx() - width) / 2
	y := (b.Dy()-face.Height)/2 + face.Ascent
	d.Dot = fixed.P(x, y)
	d.DrawString(text)
}
