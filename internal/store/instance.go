package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/listenupapp/colorhash/internal/domain"
	"github.com/listenupapp/colorhash/internal/id"
)

// instanceKey holds the singleton instance record.
var instanceKey = []byte("server:instance")

// ErrInstanceNotFound is returned before the instance record is created.
var ErrInstanceNotFound = errors.New("instance not found")

// GetInstance returns the instance record.
func (s *Store) GetInstance(ctx context.Context) (*domain.Instance, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var inst domain.Instance
	if err := s.get(instanceKey, &inst); err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, ErrInstanceNotFound
		}
		return nil, fmt.Errorf("failed to get instance: %w", err)
	}
	return &inst, nil
}

// InitializeInstance returns the instance record, creating it with a fresh
// UUID on first start. Name and version are refreshed when they changed.
func (s *Store) InitializeInstance(ctx context.Context, name, version string) (*domain.Instance, error) {
	inst, err := s.GetInstance(ctx)
	switch {
	case errors.Is(err, ErrInstanceNotFound):
		now := time.Now()
		inst = &domain.Instance{
			ID:        id.NewInstance(),
			Name:      name,
			Version:   version,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := s.set(instanceKey, inst); err != nil {
			return nil, fmt.Errorf("failed to create instance: %w", err)
		}
		if s.logger != nil {
			s.logger.Info("Server instance created", "id", inst.ID)
		}
		return inst, nil
	case err != nil:
		return nil, fmt.Errorf("failed to initialize instance: %w", err)
	}

	if inst.Name != name || inst.Version != version {
		inst.Name = name
		inst.Version = version
		inst.UpdatedAt = time.Now()
		if err := s.set(instanceKey, inst); err != nil {
			return nil, fmt.Errorf("failed to update instance: %w", err)
		}
	}

	if s.logger != nil {
		s.logger.Info("Server instance loaded", "id", inst.ID, "version", inst.Version)
	}
	return inst, nil
}
