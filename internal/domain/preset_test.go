package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/listenupapp/colorhash/pkg/colorhash"
)

func intPtr(v int) *int { return &v }

func TestPreset_Config(t *testing.T) {
	p := &Preset{
		Lightness:  []float64{0.4},
		Saturation: []float64{0.8, 0.9},
		MinHue:     intPtr(100),
		MaxHue:     intPtr(200),
	}

	cfg, err := p.Config()
	require.NoError(t, err)

	assert.Equal(t, []float64{0.4}, cfg.Lightness())
	assert.Equal(t, []float64{0.8, 0.9}, cfg.Saturation())
	minHue, maxHue, ok := cfg.HueRange()
	assert.True(t, ok)
	assert.Equal(t, 100, minHue)
	assert.Equal(t, 200, maxHue)
}

func TestPreset_ConfigUnsetFieldsUseDefaults(t *testing.T) {
	cfg, err := (&Preset{MaxHue: intPtr(90)}).Config()
	require.NoError(t, err)

	assert.Equal(t, colorhash.DefaultPool(), cfg.Lightness())
	minHue, maxHue, ok := cfg.HueRange()
	assert.True(t, ok)
	assert.Equal(t, 0, minHue)
	assert.Equal(t, 90, maxHue)
}

func TestPreset_ConfigRejectsInvalid(t *testing.T) {
	_, err := (&Preset{MinHue: intPtr(300), MaxHue: intPtr(10)}).Config()
	assert.ErrorIs(t, err, colorhash.ErrRange)

	_, err = (&Preset{Lightness: []float64{}}).Config()
	assert.ErrorIs(t, err, colorhash.ErrInvalidArgument)
}

func TestDefaultPreset(t *testing.T) {
	p := DefaultPreset()
	assert.Equal(t, DefaultPresetSlug, p.Slug)
	assert.True(t, p.Builtin)

	c, err := colorhash.Compute("Hello World", p.Options()...)
	require.NoError(t, err)
	assert.Equal(t, "#2dd24b", c.Hex())
}

