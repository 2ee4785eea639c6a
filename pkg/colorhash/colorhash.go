// Package colorhash deterministically maps any value to a color.
//
// The value is rendered to its canonical string, hashed with CRC-32, and the
// checksum is bucketed into a hue plus a saturation and lightness picked from
// configurable pools. The same value and configuration always produce the same
// color, without storing a color table:
//
//	c, err := colorhash.Compute("Hello World")
//	if err != nil {
//		return err
//	}
//	c.HSL() // {131 0.65 0.5}
//	c.RGB() // {45 210 75}
//	c.Hex() // "#2dd24b"
//
// The package holds no state; every function is safe for concurrent use.
package colorhash

// Color is the color computed for a value. Color satisfies image/color.Color.
type Color struct {
	hsl      HSL
	checksum uint32
}

// Compute builds a Config from opts and returns the color for v.
// Invalid options are reported before any hashing happens.
func Compute(v any, opts ...Option) (Color, error) {
	cfg, err := NewConfig(opts...)
	if err != nil {
		return Color{}, err
	}
	return ComputeWithConfig(v, cfg), nil
}

// ComputeWithConfig returns the color for v using an already validated Config.
func ComputeWithConfig(v any, cfg Config) Color {
	sum := CRC32Hash(v)
	return Color{
		hsl:      Bucketize(sum, cfg),
		checksum: sum,
	}
}

// HSL returns the color's hue, saturation and lightness.
func (c Color) HSL() HSL {
	return c.hsl
}

// RGB returns the color in 8-bit RGB. It is derived from HSL on each call.
func (c Color) RGB() RGB {
	return c.hsl.RGB()
}

// Hex returns the color as "#rrggbb".
func (c Color) Hex() string {
	return c.RGB().Hex()
}

// Checksum returns the CRC-32 the color was derived from.
func (c Color) Checksum() uint32 {
	return c.checksum
}

// RGBA implements image/color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	return c.RGB().RGBA()
}

// String returns the hex form.
func (c Color) String() string {
	return c.Hex()
}
