package store

import (
	"context"

	"github.com/listenupapp/colorhash/internal/domain"
)

// PresetStore is the preset persistence the services depend on.
type PresetStore interface {
	CreatePreset(ctx context.Context, p *domain.Preset) error
	GetPreset(ctx context.Context, id string) (*domain.Preset, error)
	GetPresetBySlug(ctx context.Context, slug string) (*domain.Preset, error)
	ListPresetsPage(ctx context.Context, params PaginationParams) (*PaginatedResult[*domain.Preset], error)
	CountPresets(ctx context.Context) (int, error)
	UpdatePreset(ctx context.Context, p *domain.Preset) error
	DeletePreset(ctx context.Context, id string) error
	UpsertPresetBySlug(ctx context.Context, p *domain.Preset) (bool, error)
}

var _ PresetStore = (*Store)(nil)
