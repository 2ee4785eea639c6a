package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/listenupapp/colorhash/internal/config"
	"github.com/listenupapp/colorhash/internal/domain"
	domainerrors "github.com/listenupapp/colorhash/internal/errors"
	"github.com/listenupapp/colorhash/internal/store"
)

// InstanceService handles the server instance record.
type InstanceService struct {
	store  *store.Store
	logger *slog.Logger
	config *config.Config
}

// NewInstanceService creates a new instance service.
func NewInstanceService(store *store.Store, logger *slog.Logger, config *config.Config) *InstanceService {
	return &InstanceService{
		store:  store,
		logger: logger,
		config: config,
	}
}

// GetInstance retrieves the server instance record.
func (s *InstanceService) GetInstance(ctx context.Context) (*domain.Instance, error) {
	instance, err := s.store.GetInstance(ctx)
	if err != nil {
		if errors.Is(err, store.ErrInstanceNotFound) {
			return nil, domainerrors.Wrap(err, domainerrors.CodeNotFound, "instance not initialized")
		}
		return nil, fmt.Errorf("failed to get instance: %w", err)
	}
	return instance, nil
}

// InitializeInstance ensures the instance record exists and carries the
// configured server name and the running version.
func (s *InstanceService) InitializeInstance(ctx context.Context, version string) (*domain.Instance, error) {
	name := s.config.Server.Name
	if name == "" {
		name = "Colorhash Server"
	}

	instance, err := s.store.InitializeInstance(ctx, name, version)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize instance: %w", err)
	}
	return instance, nil
}
