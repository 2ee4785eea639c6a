package colorhash

// Bucketize derives an HSL color from a checksum.
//
// The hue is checksum mod 359. With a hue range it is rescaled to
// (hue/1000)*(max-min)+min. Saturation and lightness are then picked from the
// pools by successive quotient-and-remainder steps on the checksum, so the
// same checksum always lands on the same pool entries.
func Bucketize(checksum uint32, cfg Config) HSL {
	saturation := cfg.saturationPool()
	lightness := cfg.lightnessPool()

	n := uint64(checksum)

	h := float64(n % hueModulus)
	if cfg.hueRange {
		h = (h/hueScale)*float64(cfg.maxHue-cfg.minHue) + float64(cfg.minHue)
	}

	n /= MaxHue
	s := saturation[n%uint64(len(saturation))]

	n /= uint64(len(saturation))
	l := lightness[n%uint64(len(lightness))]

	return HSL{H: h, S: s, L: l}
}
