package validation_test

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/listenupapp/colorhash/internal/errors"
	"github.com/listenupapp/colorhash/internal/validation"
)

type presetRequest struct {
	Name      string    `json:"name" validate:"required,min=1,max=64"`
	Slug      string    `json:"slug,omitempty" validate:"omitempty,slug"`
	Lightness []float64 `json:"lightness" validate:"omitempty,min=1,max=32,dive,gte=0,lte=1"`
	MinHue    *int      `json:"min_hue" validate:"omitempty,gte=0,lte=360"`
}

func hue(h int) *int { return &h }

func TestValidator_Success(t *testing.T) {
	v := validation.New()

	err := v.Validate(presetRequest{
		Name:      "Warm",
		Slug:      "warm-tones",
		Lightness: []float64{0, 0.5, 1},
		MinHue:    hue(360),
	})
	assert.NoError(t, err)
}

func TestValidator_Errors(t *testing.T) {
	v := validation.New()

	tests := []struct {
		name      string
		req       presetRequest
		wantField string
		wantMsg   string
	}{
		{"missing name", presetRequest{}, "name", "is required"},
		{"name too long", presetRequest{Name: strings.Repeat("x", 65)}, "name", "must not exceed 64 characters"},
		{"bad slug", presetRequest{Name: "a", Slug: "Warm Tones"}, "slug", "must be lowercase letters"},
		{"trailing hyphen", presetRequest{Name: "a", Slug: "warm-"}, "slug", "must be lowercase letters"},
		{"pool value", presetRequest{Name: "a", Lightness: []float64{0.5, 1.2}}, "lightness[1]", "must be less than or equal to 1"},
		{"negative pool value", presetRequest{Name: "a", Lightness: []float64{-0.1}}, "lightness[0]", "must be greater than or equal to 0"},
		{"pool too large", presetRequest{Name: "a", Lightness: make([]float64, 33)}, "lightness", "must not exceed 32 items"},
		{"hue", presetRequest{Name: "a", MinHue: hue(361)}, "min_hue", "must be less than or equal to 360"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.req)
			require.Error(t, err)

			var de *domainerrors.Error
			require.True(t, domainerrors.As(err, &de))
			assert.Equal(t, http.StatusBadRequest, de.HTTPStatus())
			assert.Equal(t, "validation failed", de.Message)

			details, ok := de.Details.(map[string]string)
			require.True(t, ok)
			assert.Contains(t, details[tt.wantField], tt.wantMsg, "details: %v", details)
		})
	}
}

func TestValidator_JSONFieldNames(t *testing.T) {
	err := validation.New().Validate(presetRequest{})
	require.Error(t, err)

	var de *domainerrors.Error
	require.True(t, domainerrors.As(err, &de))
	details := de.Details.(map[string]string)

	assert.Contains(t, details, "name")
	assert.NotContains(t, details, "Name")
}

func TestValidator_NonStruct(t *testing.T) {
	err := validation.New().Validate("not a struct")
	require.Error(t, err)

	var de *domainerrors.Error
	assert.False(t, domainerrors.As(err, &de))
}
