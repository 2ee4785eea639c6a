// Package domain contains the entities the colorhash server persists and serves.
package domain

import (
	"time"

	"github.com/listenupapp/colorhash/pkg/colorhash"
)

// DefaultPresetSlug names the built-in preset. It resolves even when no
// preset is stored and cannot be created, updated or deleted.
const DefaultPresetSlug = "default"

// Preset is a named, persisted colorhash configuration.
// Nil pools and hue bounds fall back to the server's default palette.
type Preset struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"` // unique, derived from Name
	Description string    `json:"description,omitempty"`
	Lightness   []float64 `json:"lightness,omitempty"`
	Saturation  []float64 `json:"saturation,omitempty"`
	MinHue      *int      `json:"min_hue,omitempty"`
	MaxHue      *int      `json:"max_hue,omitempty"`
	Builtin     bool      `json:"builtin,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// DefaultPreset returns the built-in preset: library pools, no hue range.
func DefaultPreset() *Preset {
	return &Preset{
		ID:          DefaultPresetSlug,
		Name:        "Default",
		Slug:        DefaultPresetSlug,
		Description: "Library defaults: lightness and saturation {0.35, 0.5, 0.65}, full hue circle.",
		Lightness:   colorhash.DefaultPool(),
		Saturation:  colorhash.DefaultPool(),
		Builtin:     true,
	}
}

// Options returns the colorhash options the preset sets. Unset fields
// contribute nothing, so callers can prepend defaults.
func (p *Preset) Options() []colorhash.Option {
	var opts []colorhash.Option
	if p.Lightness != nil {
		opts = append(opts, colorhash.WithLightness(p.Lightness...))
	}
	if p.Saturation != nil {
		opts = append(opts, colorhash.WithSaturation(p.Saturation...))
	}
	if p.MinHue != nil {
		opts = append(opts, colorhash.WithMinHue(*p.MinHue))
	}
	if p.MaxHue != nil {
		opts = append(opts, colorhash.WithMaxHue(*p.MaxHue))
	}
	return opts
}

// Config validates the preset by building its colorhash configuration.
func (p *Preset) Config() (colorhash.Config, error) {
	return colorhash.NewConfig(p.Options()...)
}

// Touch updates the UpdatedAt timestamp.
func (p *Preset) Touch() {
	p.UpdatedAt = time.Now()
}
