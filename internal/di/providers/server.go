package providers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/samber/do/v2"

	"github.com/listenupapp/colorhash/internal/api"
	"github.com/listenupapp/colorhash/internal/auth"
	"github.com/listenupapp/colorhash/internal/config"
	"github.com/listenupapp/colorhash/internal/domain"
	"github.com/listenupapp/colorhash/internal/logger"
	"github.com/listenupapp/colorhash/internal/mdns"
	"github.com/listenupapp/colorhash/internal/service"
)

// shutdownTimeout bounds how long in-flight requests may take to drain.
const shutdownTimeout = 30 * time.Second

// HTTPServerHandle wraps http.Server with Shutdownable.
type HTTPServerHandle struct {
	*http.Server
}

// Shutdown implements do.Shutdownable.
func (h *HTTPServerHandle) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return h.Server.Shutdown(ctx)
}

// ProvideHTTPServer builds the API handler and starts serving in the background.
func ProvideHTTPServer(i do.Injector) (*HTTPServerHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	info := do.MustInvoke[BuildInfo](i)
	log := do.MustInvoke[*logger.Logger](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	limiter := do.MustInvoke[*RateLimiterHandle](i)

	services := &api.Services{
		Colors:  do.MustInvoke[*service.ColorService](i),
		Presets: do.MustInvoke[*service.PresetService](i),
		Tokens:  do.MustInvoke[*auth.TokenService](i),
	}

	handler := api.NewServer(storeHandle.Store, services, api.Options{
		Version:     info.Version,
		CORSOrigins: cfg.Server.CORSOrigins,
		RateLimiter: limiter.Limiter,
	}, log.Logger)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start in background
	go func() {
		log.Info("HTTP server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("HTTP server error", "error", err)
		}
	}()

	return &HTTPServerHandle{Server: srv}, nil
}

// MDNSServiceHandle wraps mdns.Service with Shutdownable.
type MDNSServiceHandle struct {
	*mdns.Service
	started bool
}

// Shutdown implements do.Shutdownable.
func (h *MDNSServiceHandle) Shutdown() error {
	if h.started && h.Service != nil {
		h.Stop()
	}
	return nil
}

// ProvideMDNSService advertises the server on the local network.
func ProvideMDNSService(i do.Injector) (*MDNSServiceHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	instance := do.MustInvoke[*domain.Instance](i)

	if !cfg.Server.AdvertiseMDNS {
		log.Info("mDNS advertisement disabled by configuration")
		return &MDNSServiceHandle{}, nil
	}

	port, err := strconv.Atoi(cfg.Server.Port)
	if err != nil {
		return nil, err
	}

	svc := mdns.NewService(log.Logger)
	if err := svc.Start(instance, port); err != nil {
		// Non-fatal: the API works without avahi (containers, CI).
		log.Warn("mDNS advertisement unavailable", "error", err)
		return &MDNSServiceHandle{Service: svc}, nil
	}

	return &MDNSServiceHandle{Service: svc, started: true}, nil
}
