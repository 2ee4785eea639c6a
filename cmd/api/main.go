// Package main provides the entry point for the colorhash server.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/samber/do/v2"

	"github.com/listenupapp/colorhash/internal/di"
	"github.com/listenupapp/colorhash/internal/di/providers"
	"github.com/listenupapp/colorhash/internal/logger"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	injector := di.NewContainer(providers.BuildInfo{
		Version: version,
		Args:    os.Args[1:],
	})

	if err := di.Bootstrap(injector); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to bootstrap server: %v\n", err)
		os.Exit(1)
	}

	log := do.MustInvoke[*logger.Logger](injector)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	// The container shuts handles down in reverse dependency order, so the
	// HTTP server drains before the database closes.
	if err := injector.Shutdown(); err != nil {
		log.Error("Shutdown error", "error", err)
	}

	log.Info("Server stopped")
}
