package providers

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/samber/do/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/listenupapp/colorhash/internal/config"
	"github.com/listenupapp/colorhash/internal/logger"
	"github.com/listenupapp/colorhash/internal/service"
	"github.com/listenupapp/colorhash/internal/store"
)

func newTestInjector(t *testing.T, cfg *config.Config) *do.RootScope {
	t.Helper()

	st, err := store.NewInMemory(nil)
	require.NoError(t, err)

	injector := do.New()
	do.ProvideValue(injector, cfg)
	do.ProvideValue(injector, logger.Discard())
	do.ProvideValue(injector, &StoreHandle{Store: st})
	do.Provide(injector, ProvideValidator)
	do.Provide(injector, ProvidePresetService)
	do.Provide(injector, ProvideRateLimiter)
	do.Provide(injector, ProvidePresetSync)

	t.Cleanup(func() { injector.Shutdown() })
	return injector
}

func TestProvideRateLimiter(t *testing.T) {
	disabled := newTestInjector(t, &config.Config{})
	assert.Nil(t, do.MustInvoke[*RateLimiterHandle](disabled).Limiter)

	enabled := newTestInjector(t, &config.Config{
		RateLimit: config.RateLimitConfig{Enabled: true, RPS: 5, Burst: 1},
	})
	h := do.MustInvoke[*RateLimiterHandle](enabled)
	require.NotNil(t, h.Limiter)
	assert.True(t, h.Limiter.Allow("10.0.0.1"))
	assert.False(t, h.Limiter.Allow("10.0.0.1"))
}

func TestProvidePresetSync_NoFile(t *testing.T) {
	injector := newTestInjector(t, &config.Config{})

	h := do.MustInvoke[*PresetSyncHandle](injector)
	assert.Nil(t, h.Sync)
	assert.NoError(t, h.Shutdown())
}

func TestProvidePresetSync_LoadsAtStartup(t *testing.T) {
	path := filepath.Join(t.TempDir(), "presets.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"name": "Warm", "max_hue": 60}]`), 0o600))

	injector := newTestInjector(t, &config.Config{
		Presets: config.PresetsConfig{File: path, Watch: true},
	})

	h := do.MustInvoke[*PresetSyncHandle](injector)
	require.NotNil(t, h.Sync)

	presets := do.MustInvoke[*service.PresetService](injector)
	p, err := presets.Get(context.Background(), "warm")
	require.NoError(t, err)
	assert.Equal(t, "Warm", p.Name)

	assert.NoError(t, h.Shutdown())
}

func TestProvidePresetSync_BrokenFileIsNotFatal(t *testing.T) {
	path := filepath.Join(t.TempDir(), "presets.json")
	require.NoError(t, os.WriteFile(path, []byte(`{not json`), 0o600))

	injector := newTestInjector(t, &config.Config{
		Presets: config.PresetsConfig{File: path},
	})

	h, err := do.Invoke[*PresetSyncHandle](injector)
	require.NoError(t, err)
	assert.NotNil(t, h.Sync)
}
