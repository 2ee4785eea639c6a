package providers

import (
	"context"
	"sync"

	"github.com/samber/do/v2"

	"github.com/listenupapp/colorhash/internal/config"
	"github.com/listenupapp/colorhash/internal/logger"
	"github.com/listenupapp/colorhash/internal/ratelimit"
	"github.com/listenupapp/colorhash/internal/service"
	"github.com/listenupapp/colorhash/internal/watcher"
)

// RateLimiterHandle wraps the per-client limiter. Limiter is nil when rate
// limiting is disabled.
type RateLimiterHandle struct {
	Limiter *ratelimit.KeyedRateLimiter
}

// Shutdown implements do.Shutdownable.
func (h *RateLimiterHandle) Shutdown() error {
	if h.Limiter != nil {
		h.Limiter.Stop()
	}
	return nil
}

// ProvideRateLimiter provides the per-client request limiter.
func ProvideRateLimiter(i do.Injector) (*RateLimiterHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	if !cfg.RateLimit.Enabled {
		log.Info("Rate limiting disabled by configuration")
		return &RateLimiterHandle{}, nil
	}

	log.Info("Rate limiting enabled", "rps", cfg.RateLimit.RPS, "burst", cfg.RateLimit.Burst)
	return &RateLimiterHandle{Limiter: ratelimit.New(cfg.RateLimit.RPS, cfg.RateLimit.Burst)}, nil
}

// PresetSyncHandle wraps the presets file sync with its watch goroutine.
// Sync is nil when no presets file is configured.
type PresetSyncHandle struct {
	Sync   *watcher.PresetSync
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// Shutdown implements do.Shutdownable.
func (h *PresetSyncHandle) Shutdown() error {
	if h.cancel != nil {
		h.cancel()
	}
	h.wg.Wait()
	return nil
}

// ProvidePresetSync loads the presets file once and, when enabled, keeps
// watching it for changes.
func ProvidePresetSync(i do.Injector) (*PresetSyncHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	presets := do.MustInvoke[*service.PresetService](i)

	if cfg.Presets.File == "" {
		return &PresetSyncHandle{}, nil
	}

	ps := watcher.NewPresetSync(cfg.Presets.File, presets, log.Logger, watcher.Options{})

	// A broken file at startup is not fatal; the watcher picks up the fix.
	if _, err := ps.Load(context.Background()); err != nil {
		log.Warn("Failed to load presets file", "path", cfg.Presets.File, "error", err)
	}

	h := &PresetSyncHandle{Sync: ps}
	if !cfg.Presets.Watch {
		return h, nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	h.cancel = cancel
	h.wg.Go(func() {
		if err := ps.Watch(ctx); err != nil {
			log.Error("Presets file watcher stopped", "error", err)
		}
	})

	return h, nil
}
