// Package providers contains dependency injection providers for the colorhash server.
package providers

import (
	"github.com/samber/do/v2"

	"github.com/listenupapp/colorhash/internal/config"
	"github.com/listenupapp/colorhash/internal/logger"
)

// BuildInfo carries process inputs the container cannot discover itself.
type BuildInfo struct {
	Version string
	Args    []string
}

// ProvideConfig provides the application configuration.
func ProvideConfig(i do.Injector) (*config.Config, error) {
	info := do.MustInvoke[BuildInfo](i)
	return config.Load(info.Args)
}

// ProvideLogger provides the structured logger.
func ProvideLogger(i do.Injector) (*logger.Logger, error) {
	cfg := do.MustInvoke[*config.Config](i)
	info := do.MustInvoke[BuildInfo](i)

	log := logger.New(logger.Config{
		Format:      cfg.Logger.Format,
		Level:       logger.ParseLevel(cfg.Logger.Level),
		AddSource:   cfg.App.Environment == "development",
		Environment: cfg.App.Environment,
	})

	log.Info("Starting colorhash server",
		"version", info.Version,
		"environment", cfg.App.Environment,
		"log_level", cfg.Logger.Level,
		"data_path", cfg.Data.Path,
		"presets_file", cfg.Presets.File,
	)

	return log, nil
}
