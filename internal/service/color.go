// Package service implements the colorhash server's business logic on top of
// the colorhash library and the preset store.
package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/listenupapp/colorhash/internal/config"
	domainerrors "github.com/listenupapp/colorhash/internal/errors"
	"github.com/listenupapp/colorhash/pkg/colorhash"
)

// MaxBatchSize caps the number of values in one batch request.
const MaxBatchSize = 500

// ColorRequest selects the configuration a value is colored with. Inline
// fields override the preset field by field; anything left unset falls back
// to the server's default palette.
type ColorRequest struct {
	Preset     string
	Lightness  []float64
	Saturation []float64
	MinHue     *int
	MaxHue     *int
}

// ColorResult is the color computed for one value.
type ColorResult struct {
	Value    string        `json:"value"`
	HSL      colorhash.HSL `json:"hsl"`
	RGB      [3]int        `json:"rgb"`
	Hex      string        `json:"hex"`
	Checksum uint32        `json:"checksum"`
	Preset   string        `json:"preset,omitempty"`
}

// ConvertResult is an RGB triple with its hex form.
type ConvertResult struct {
	RGB [3]int `json:"rgb"`
	Hex string `json:"hex"`
}

// ColorService computes colors for values.
type ColorService struct {
	presets  *PresetService
	defaults []colorhash.Option
	logger   *slog.Logger
}

// NewColorService creates a color service whose unset pools come from palette.
func NewColorService(presets *PresetService, palette config.PaletteConfig, logger *slog.Logger) *ColorService {
	var defaults []colorhash.Option
	if palette.Lightness != nil {
		defaults = append(defaults, colorhash.WithLightness(palette.Lightness...))
	}
	if palette.Saturation != nil {
		defaults = append(defaults, colorhash.WithSaturation(palette.Saturation...))
	}
	return &ColorService{
		presets:  presets,
		defaults: defaults,
		logger:   logger,
	}
}

// Compute returns the color for value.
func (s *ColorService) Compute(ctx context.Context, value string, req ColorRequest) (*ColorResult, error) {
	cfg, preset, err := s.Resolve(ctx, req)
	if err != nil {
		return nil, err
	}
	return newResult(value, cfg, preset), nil
}

// Batch returns colors for values in input order, resolving the configuration once.
func (s *ColorService) Batch(ctx context.Context, values []string, req ColorRequest) ([]*ColorResult, error) {
	if len(values) == 0 {
		return nil, domainerrors.ValidationWithDetails("validation failed",
			map[string]string{"values": "must contain at least one value"})
	}
	if len(values) > MaxBatchSize {
		return nil, domainerrors.ValidationWithDetails("validation failed",
			map[string]string{"values": fmt.Sprintf("must not exceed %d items", MaxBatchSize)})
	}

	cfg, preset, err := s.Resolve(ctx, req)
	if err != nil {
		return nil, err
	}

	results := make([]*ColorResult, len(values))
	for i, v := range values {
		if i%64 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		results[i] = newResult(v, cfg, preset)
	}

	s.logger.Debug("batch computed", "count", len(values), "preset", preset)
	return results, nil
}

// Resolve builds the configuration for req and returns the slug of the
// preset it used, if any.
func (s *ColorService) Resolve(ctx context.Context, req ColorRequest) (colorhash.Config, string, error) {
	opts := append([]colorhash.Option(nil), s.defaults...)

	var slug string
	if req.Preset != "" {
		p, err := s.presets.Get(ctx, req.Preset)
		if err != nil {
			return colorhash.Config{}, "", err
		}
		slug = p.Slug
		opts = append(opts, p.Options()...)
	}

	if req.Lightness != nil {
		opts = append(opts, colorhash.WithLightness(req.Lightness...))
	}
	if req.Saturation != nil {
		opts = append(opts, colorhash.WithSaturation(req.Saturation...))
	}
	if req.MinHue != nil {
		opts = append(opts, colorhash.WithMinHue(*req.MinHue))
	}
	if req.MaxHue != nil {
		opts = append(opts, colorhash.WithMaxHue(*req.MaxHue))
	}

	cfg, err := colorhash.NewConfig(opts...)
	if err != nil {
		return colorhash.Config{}, "", domainerrors.FromColorError(err)
	}
	return cfg, slug, nil
}

// ConvertHSL converts an HSL triple to RGB and hex.
func (s *ColorService) ConvertHSL(h, sat, l float64) (*ConvertResult, error) {
	details := map[string]string{}
	if !(h >= colorhash.MinHue && h <= colorhash.MaxHue) {
		details["h"] = "must be in range [0, 360]"
	}
	if !(sat >= 0 && sat <= 1) {
		details["s"] = "must be in range [0, 1]"
	}
	if !(l >= 0 && l <= 1) {
		details["l"] = "must be in range [0, 1]"
	}
	if len(details) > 0 {
		return nil, domainerrors.ErrOutOfRange.WithDetails(details)
	}

	return convertResult(colorhash.HSLToRGB(h, sat, l)), nil
}

// ConvertRGB validates an [r, g, b] triple and formats it as hex.
func (s *ColorService) ConvertRGB(rgb []int) (*ConvertResult, error) {
	c, err := colorhash.RGBFromSlice(rgb)
	if err != nil {
		return nil, domainerrors.FromColorError(err)
	}
	return convertResult(c), nil
}

func newResult(value string, cfg colorhash.Config, preset string) *ColorResult {
	c := colorhash.ComputeWithConfig(value, cfg)
	rgb := c.RGB()
	return &ColorResult{
		Value:    value,
		HSL:      c.HSL(),
		RGB:      [3]int{int(rgb.R), int(rgb.G), int(rgb.B)},
		Hex:      c.Hex(),
		Checksum: c.Checksum(),
		Preset:   preset,
	}
}

func convertResult(c colorhash.RGB) *ConvertResult {
	return &ConvertResult{
		RGB: [3]int{int(c.R), int(c.G), int(c.B)},
		Hex: c.Hex(),
	}
}
