package providers

import (
	"context"
	"path/filepath"

	"github.com/samber/do/v2"

	"github.com/listenupapp/colorhash/internal/config"
	"github.com/listenupapp/colorhash/internal/domain"
	"github.com/listenupapp/colorhash/internal/logger"
	"github.com/listenupapp/colorhash/internal/service"
	"github.com/listenupapp/colorhash/internal/store"
)

// StoreHandle wraps the store with shutdown capability.
type StoreHandle struct {
	*store.Store
}

// Shutdown implements do.Shutdownable.
func (h *StoreHandle) Shutdown() error {
	return h.Close()
}

// ProvideStore provides the preset database.
func ProvideStore(i do.Injector) (*StoreHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	dbPath := filepath.Join(cfg.Data.Path, "db")
	db, err := store.New(dbPath, log.Logger)
	if err != nil {
		return nil, err
	}

	log.Info("Database initialized", "path", dbPath)

	return &StoreHandle{Store: db}, nil
}

// ProvideInstance ensures the instance record exists and returns it.
func ProvideInstance(i do.Injector) (*domain.Instance, error) {
	info := do.MustInvoke[BuildInfo](i)
	instanceService := do.MustInvoke[*service.InstanceService](i)

	return instanceService.InitializeInstance(context.Background(), info.Version)
}
