package colorhash

import "slices"

// Hue bounds in degrees.
const (
	MinHue = 0
	MaxHue = 360
)

const (
	// hueModulus is one less than MaxHue, so an unranged hue never exceeds 358.
	hueModulus = 359
	// hueScale divides the raw hue before it is stretched over a hue range.
	// It does not match hueModulus; colors already in use depend on it.
	hueScale = 1000
)

var defaultPool = []float64{0.35, 0.5, 0.65}

// DefaultPool returns a copy of the default lightness and saturation pool.
func DefaultPool() []float64 {
	return slices.Clone(defaultPool)
}

// Config is a validated, immutable colorhash configuration.
//
// The zero value is usable and equals DefaultConfig.
type Config struct {
	lightness  []float64
	saturation []float64
	minHue     int
	maxHue     int
	hueRange   bool
}

// Option customizes a Config built by NewConfig.
type Option func(*options)

type options struct {
	lightness  []float64
	saturation []float64
	minHue     *int
	maxHue     *int
}

// WithLightness sets the pool of lightness values to pick from. Each value
// must be within [0, 1].
func WithLightness(values ...float64) Option {
	return func(o *options) {
		o.lightness = slices.Clone(values)
		if o.lightness == nil {
			o.lightness = []float64{}
		}
	}
}

// WithSaturation sets the pool of saturation values to pick from. Each value
// must be within [0, 1].
func WithSaturation(values ...float64) Option {
	return func(o *options) {
		o.saturation = slices.Clone(values)
		if o.saturation == nil {
			o.saturation = []float64{}
		}
	}
}

// WithMinHue sets the lower hue bound. Without WithMaxHue the upper bound
// defaults to 360.
func WithMinHue(h int) Option {
	return func(o *options) {
		o.minHue = &h
	}
}

// WithMaxHue sets the upper hue bound. Without WithMinHue the lower bound
// defaults to 0.
func WithMaxHue(h int) Option {
	return func(o *options) {
		o.maxHue = &h
	}
}

// WithHueRange sets both hue bounds.
func WithHueRange(minHue, maxHue int) Option {
	return func(o *options) {
		o.minHue = &minHue
		o.maxHue = &maxHue
	}
}

// DefaultConfig returns the configuration used when no options are given:
// lightness and saturation pools of {0.35, 0.5, 0.65} and no hue range.
func DefaultConfig() Config {
	return Config{
		lightness:  DefaultPool(),
		saturation: DefaultPool(),
	}
}

// NewConfig builds and validates a Config.
//
// Pools must be non-empty (ErrInvalidArgument) with every value in [0, 1]
// (ErrRange). Hue bounds must satisfy 0 <= min <= max <= 360 (ErrRange).
func NewConfig(opts ...Option) (Config, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	if o.lightness == nil {
		o.lightness = DefaultPool()
	}
	if o.saturation == nil {
		o.saturation = DefaultPool()
	}

	if err := validatePool("lightness", o.lightness); err != nil {
		return Config{}, err
	}
	if err := validatePool("saturation", o.saturation); err != nil {
		return Config{}, err
	}

	cfg := Config{
		lightness:  o.lightness,
		saturation: o.saturation,
	}

	if o.minHue == nil && o.maxHue == nil {
		return cfg, nil
	}

	minHue, maxHue := MinHue, MaxHue
	if o.minHue != nil {
		minHue = *o.minHue
	}
	if o.maxHue != nil {
		maxHue = *o.maxHue
	}

	if minHue < MinHue || minHue > MaxHue || maxHue < MinHue || maxHue > MaxHue || minHue > maxHue {
		return Config{}, rangeError("hue", "min_h and max_h must be in range [0, 360] with min_h <= max_h")
	}

	cfg.minHue = minHue
	cfg.maxHue = maxHue
	cfg.hueRange = true

	return cfg, nil
}

// MustConfig is like NewConfig but panics on error. Use it for package-level
// configurations built from constants.
func MustConfig(opts ...Option) Config {
	cfg, err := NewConfig(opts...)
	if err != nil {
		panic(err)
	}
	return cfg
}

func validatePool(name string, pool []float64) error {
	if len(pool) == 0 {
		return invalidArgument(name, name+" pool must not be empty")
	}
	for _, v := range pool {
		// Written negated so NaN is rejected too.
		if !(v >= 0 && v <= 1) {
			return rangeError(name, name+" params must be in range (0.0, 1.0)")
		}
	}
	return nil
}

// Lightness returns a copy of the lightness pool.
func (c Config) Lightness() []float64 {
	return slices.Clone(c.lightnessPool())
}

// Saturation returns a copy of the saturation pool.
func (c Config) Saturation() []float64 {
	return slices.Clone(c.saturationPool())
}

// HueRange returns the configured hue bounds. ok is false when no range was
// set, in which case min and max report the full circle.
func (c Config) HueRange() (minHue, maxHue int, ok bool) {
	if !c.hueRange {
		return MinHue, MaxHue, false
	}
	return c.minHue, c.maxHue, true
}

func (c Config) lightnessPool() []float64 {
	if len(c.lightness) == 0 {
		return defaultPool
	}
	return c.lightness
}

func (c Config) saturationPool() []float64 {
	if len(c.saturation) == 0 {
		return defaultPool
	}
	return c.saturation
}
