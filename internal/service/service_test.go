package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/listenupapp/colorhash/internal/config"
	"github.com/listenupapp/colorhash/internal/logger"
	"github.com/listenupapp/colorhash/internal/store"
	"github.com/listenupapp/colorhash/internal/validation"
)

type testServices struct {
	presets *PresetService
	colors  *ColorService
}

func setupServices(t *testing.T, palette config.PaletteConfig) *testServices {
	t.Helper()

	s, err := store.NewInMemory(nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	log := logger.Discard().Logger
	presets := NewPresetService(s, validation.New(), log)
	return &testServices{
		presets: presets,
		colors:  NewColorService(presets, palette, log),
	}
}

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }

func mustCreate(t *testing.T, svc *PresetService, in PresetInput) string {
	t.Helper()
	p, err := svc.Create(context.Background(), in)
	require.NoError(t, err)
	return p.ID
}
