package colorhash

import (
	"fmt"
	"math"
)

// HSL is a color in the HSL model. H is in degrees [0, 360]; S and L are
// fractions in [0, 1].
type HSL struct {
	H float64 `json:"h"`
	S float64 `json:"s"`
	L float64 `json:"l"`
}

// RGB converts the color to 8-bit RGB.
func (c HSL) RGB() RGB {
	return HSLToRGB(c.H, c.S, c.L)
}

// RGB is an 8-bit-per-channel color.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// Hex formats the color as "#rrggbb" with lowercase digits.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Slice returns the channels as [r, g, b].
func (c RGB) Slice() []int {
	return []int{int(c.R), int(c.G), int(c.B)}
}

// RGBA implements image/color.Color. The color is fully opaque.
func (c RGB) RGBA() (r, g, b, a uint32) {
	r = uint32(c.R)
	r |= r << 8
	g = uint32(c.G)
	g |= g << 8
	b = uint32(c.B)
	b |= b << 8
	a = 0xffff
	return
}

// HSLToRGB converts HSL to RGB.
// h: hue (0-360), s: saturation (0-1), l: lightness (0-1).
// Channels are rounded half to even.
func HSLToRGB(h, s, l float64) RGB {
	h /= MaxHue

	var q float64
	if l < 0.5 {
		q = l * (1 + s)
	} else {
		q = l + s - l*s
	}
	p := 2*l - q

	return RGB{
		R: channel(hueToRGB(p, q, h+1.0/3.0)),
		G: channel(hueToRGB(p, q, h)),
		B: channel(hueToRGB(p, q, h-1.0/3.0)),
	}
}

func hueToRGB(p, q, t float64) float64 {
	if t < 0 {
		t++
	} else if t > 1 {
		t--
	}
	if t < 1.0/6.0 {
		return p + (q-p)*6*t
	}
	if t < 1.0/2.0 {
		return q
	}
	if t < 2.0/3.0 {
		return p + (q-p)*(2.0/3.0-t)*6
	}
	return p
}

func channel(v float64) uint8 {
	v = math.RoundToEven(v * 255)
	switch {
	case v <= 0 || math.IsNaN(v):
		return 0
	case v >= 255:
		return 255
	default:
		return uint8(v)
	}
}

// RGBToHex formats three channels as "#rrggbb". Each channel must be within
// [0, 255], otherwise ErrInvalidArgument is returned.
func RGBToHex(r, g, b int) (string, error) {
	c, err := RGBFromSlice([]int{r, g, b})
	if err != nil {
		return "", err
	}
	return c.Hex(), nil
}

// RGBFromSlice builds an RGB from exactly three channel values in [0, 255].
func RGBFromSlice(values []int) (RGB, error) {
	if len(values) != 3 {
		return RGB{}, invalidArgument("rgb", fmt.Sprintf("rgb needs exactly 3 channels, got %d", len(values)))
	}
	for _, v := range values {
		if v < 0 || v > 255 {
			return RGB{}, invalidArgument("rgb", fmt.Sprintf("rgb channel %d is not in range [0, 255]", v))
		}
	}
	return RGB{R: uint8(values[0]), G: uint8(values[1]), B: uint8(values[2])}, nil
}
