// Package di provides dependency injection configuration for the colorhash server.
package di

import (
	"github.com/samber/do/v2"

	"github.com/listenupapp/colorhash/internal/auth"
	"github.com/listenupapp/colorhash/internal/config"
	"github.com/listenupapp/colorhash/internal/di/providers"
	"github.com/listenupapp/colorhash/internal/domain"
	"github.com/listenupapp/colorhash/internal/logger"
	"github.com/listenupapp/colorhash/internal/service"
	"github.com/listenupapp/colorhash/internal/validation"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer(info providers.BuildInfo) *do.RootScope {
	injector := do.New()

	do.ProvideValue(injector, info)

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)
	do.Provide(injector, providers.ProvideAuthKey)

	// Database layer
	do.Provide(injector, providers.ProvideStore)
	do.Provide(injector, providers.ProvideInstance)

	// Auth layer
	do.Provide(injector, providers.ProvideTokenService)

	// Business services
	do.Provide(injector, providers.ProvideValidator)
	do.Provide(injector, providers.ProvideInstanceService)
	do.Provide(injector, providers.ProvidePresetService)
	do.Provide(injector, providers.ProvideColorService)

	// Workers
	do.Provide(injector, providers.ProvideRateLimiter)
	do.Provide(injector, providers.ProvidePresetSync)

	// Server
	do.Provide(injector, providers.ProvideHTTPServer)
	do.Provide(injector, providers.ProvideMDNSService)

	return injector
}

// Bootstrap initializes all services. Presets from the file are loaded
// before the HTTP server starts accepting requests.
func Bootstrap(injector *do.RootScope) error {
	if _, err := do.Invoke[*config.Config](injector); err != nil {
		return err
	}

	_ = do.MustInvoke[*logger.Logger](injector)
	_ = do.MustInvoke[providers.AuthKey](injector)
	_ = do.MustInvoke[*providers.StoreHandle](injector)
	_ = do.MustInvoke[*domain.Instance](injector)
	_ = do.MustInvoke[*auth.TokenService](injector)

	// Business services
	_ = do.MustInvoke[*validation.Validator](injector)
	_ = do.MustInvoke[*service.InstanceService](injector)
	_ = do.MustInvoke[*service.PresetService](injector)
	_ = do.MustInvoke[*service.ColorService](injector)

	// Workers
	_ = do.MustInvoke[*providers.RateLimiterHandle](injector)
	_ = do.MustInvoke[*providers.PresetSyncHandle](injector)

	// Server
	_ = do.MustInvoke[*providers.HTTPServerHandle](injector)
	_ = do.MustInvoke[*providers.MDNSServiceHandle](injector)

	return nil
}
