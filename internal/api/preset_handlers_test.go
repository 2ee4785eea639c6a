package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/listenupapp/colorhash/internal/domain"
	"github.com/listenupapp/colorhash/internal/service"
)

func TestPresets_CRUD(t *testing.T) {
	ts := setupTestServer(t, Options{})
	authz := ts.bearer(t)

	resp := ts.api.Post("/api/v1/presets", authz, map[string]any{
		"name":    "Warm Tones",
		"min_hue": 0,
		"max_hue": 60,
	})
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())
	created := decodeEnvelope[domain.Preset](t, resp.Body.Bytes()).Data
	assert.Equal(t, "warm-tones", created.Slug)

	resp = ts.api.Get("/api/v1/presets/warm-tones")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, created.ID, decodeEnvelope[domain.Preset](t, resp.Body.Bytes()).Data.ID)

	resp = ts.api.Get("/api/v1/colors?value=hey&preset=warm-tones")
	require.Equal(t, http.StatusOK, resp.Code)
	res := decodeEnvelope[service.ColorResult](t, resp.Body.Bytes()).Data
	assert.Equal(t, "warm-tones", res.Preset)
	assert.LessOrEqual(t, res.HSL.H, 60.0)
	assert.Equal(t, "no-cache", resp.Header().Get("Cache-Control"))

	resp = ts.api.Patch("/api/v1/presets/"+created.ID, authz, map[string]any{"name": "Sunset"})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	assert.Equal(t, "sunset", decodeEnvelope[domain.Preset](t, resp.Body.Bytes()).Data.Slug)

	resp = ts.api.Get("/api/v1/presets")
	require.Equal(t, http.StatusOK, resp.Code)
	list := decodeEnvelope[ListPresetsResponse](t, resp.Body.Bytes()).Data.Presets
	require.Len(t, list, 2)
	assert.Equal(t, domain.DefaultPresetSlug, list[0].Slug)
	assert.Equal(t, "sunset", list[1].Slug)

	resp = ts.api.Delete("/api/v1/presets/"+created.ID, authz)
	require.Equal(t, http.StatusNoContent, resp.Code, resp.Body.String())

	resp = ts.api.Get("/api/v1/presets/sunset")
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestPresets_ListPages(t *testing.T) {
	ts := setupTestServer(t, Options{})
	authz := ts.bearer(t)

	for _, name := range []string{"Cyan", "Amber", "Blush"} {
		resp := ts.api.Post("/api/v1/presets", authz, map[string]any{"name": name})
		require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())
	}

	resp := ts.api.Get("/api/v1/presets?limit=2")
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	first := decodeEnvelope[ListPresetsResponse](t, resp.Body.Bytes()).Data
	require.Len(t, first.Presets, 3)
	assert.Equal(t, domain.DefaultPresetSlug, first.Presets[0].Slug)
	assert.Equal(t, "amber", first.Presets[1].Slug)
	assert.Equal(t, "blush", first.Presets[2].Slug)
	assert.True(t, first.HasMore)

	resp = ts.api.Get("/api/v1/presets?limit=2&cursor=" + first.NextCursor)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	second := decodeEnvelope[ListPresetsResponse](t, resp.Body.Bytes()).Data
	require.Len(t, second.Presets, 1)
	assert.Equal(t, "cyan", second.Presets[0].Slug)
	assert.False(t, second.HasMore)

	resp = ts.api.Get("/api/v1/presets?cursor=%25%25")
	require.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Equal(t, "VALIDATION", decodeEnvelope[any](t, resp.Body.Bytes()).Code)
}

func TestPresets_WriteRequiresToken(t *testing.T) {
	ts := setupTestServer(t, Options{})
	body := map[string]any{"name": "Warm"}

	tests := []struct {
		name     string
		header   []any
		status   int
		wantCode string
	}{
		{"no header", nil, http.StatusUnauthorized, "UNAUTHORIZED"},
		{"not bearer", []any{"Authorization: Basic abc"}, http.StatusUnauthorized, "UNAUTHORIZED"},
		{"garbage token", []any{"Authorization: Bearer v4.local.nope"}, http.StatusUnauthorized, "UNAUTHORIZED"},
		{"wrong scope", []any{ts.bearer(t, "presets:read")}, http.StatusForbidden, "FORBIDDEN"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append(tt.header, body)
			resp := ts.api.Post("/api/v1/presets", args...)
			require.Equal(t, tt.status, resp.Code, resp.Body.String())
			assert.Equal(t, tt.wantCode, decodeEnvelope[any](t, resp.Body.Bytes()).Code)
		})
	}
}

func TestPresets_Errors(t *testing.T) {
	ts := setupTestServer(t, Options{})
	authz := ts.bearer(t)

	resp := ts.api.Post("/api/v1/presets", authz, map[string]any{"name": "Warm"})
	require.Equal(t, http.StatusCreated, resp.Code)

	tests := []struct {
		name     string
		body     map[string]any
		status   int
		wantCode string
	}{
		{"duplicate slug", map[string]any{"name": "warm"}, http.StatusConflict, "ALREADY_EXISTS"},
		{"reserved slug", map[string]any{"name": "Default"}, http.StatusConflict, "ALREADY_EXISTS"},
		{"pool value", map[string]any{"name": "x", "lightness": []float64{1.5}}, http.StatusBadRequest, "VALIDATION"},
		{"inverted hues", map[string]any{"name": "y", "min_hue": 300, "max_hue": 10}, http.StatusUnprocessableEntity, "OUT_OF_RANGE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := ts.api.Post("/api/v1/presets", authz, tt.body)
			require.Equal(t, tt.status, resp.Code, resp.Body.String())
			assert.Equal(t, tt.wantCode, decodeEnvelope[any](t, resp.Body.Bytes()).Code)
		})
	}

	resp = ts.api.Delete("/api/v1/presets/default", authz)
	assert.Equal(t, http.StatusForbidden, resp.Code)
}
