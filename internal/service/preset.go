package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/listenupapp/colorhash/internal/domain"
	domainerrors "github.com/listenupapp/colorhash/internal/errors"
	"github.com/listenupapp/colorhash/internal/id"
	"github.com/listenupapp/colorhash/internal/store"
	"github.com/listenupapp/colorhash/internal/util"
	"github.com/listenupapp/colorhash/internal/validation"
)

// PresetInput is the full description of a preset, used to create one or to
// upsert it from the presets file.
type PresetInput struct {
	Name        string    `json:"name" validate:"required,max=64"`
	Description string    `json:"description,omitempty" validate:"max=500"`
	Lightness   []float64 `json:"lightness,omitempty" validate:"omitempty,max=32,dive,gte=0,lte=1"`
	Saturation  []float64 `json:"saturation,omitempty" validate:"omitempty,max=32,dive,gte=0,lte=1"`
	MinHue      *int      `json:"min_hue,omitempty" validate:"omitempty,gte=0,lte=360"`
	MaxHue      *int      `json:"max_hue,omitempty" validate:"omitempty,gte=0,lte=360"`
}

// PresetPatch changes some fields of a preset. Nil fields are left alone;
// ClearHueRange drops both hue bounds before MinHue and MaxHue apply.
type PresetPatch struct {
	Name          *string   `json:"name,omitempty" validate:"omitempty,min=1,max=64"`
	Description   *string   `json:"description,omitempty" validate:"omitempty,max=500"`
	Lightness     []float64 `json:"lightness,omitempty" validate:"omitempty,max=32,dive,gte=0,lte=1"`
	Saturation    []float64 `json:"saturation,omitempty" validate:"omitempty,max=32,dive,gte=0,lte=1"`
	MinHue        *int      `json:"min_hue,omitempty" validate:"omitempty,gte=0,lte=360"`
	MaxHue        *int      `json:"max_hue,omitempty" validate:"omitempty,gte=0,lte=360"`
	ClearHueRange bool      `json:"clear_hue_range,omitempty"`
}

// PresetService manages named colorhash configurations.
type PresetService struct {
	store     store.PresetStore
	validator *validation.Validator
	logger    *slog.Logger
}

// NewPresetService creates a new preset service.
func NewPresetService(store store.PresetStore, validator *validation.Validator, logger *slog.Logger) *PresetService {
	return &PresetService{
		store:     store,
		validator: validator,
		logger:    logger,
	}
}

// ListPage returns one page of presets. The built-in preset leads the first
// page and does not count toward the limit.
func (s *PresetService) ListPage(ctx context.Context, params store.PaginationParams) (*store.PaginatedResult[*domain.Preset], error) {
	page, err := s.store.ListPresetsPage(ctx, params)
	if errors.Is(err, store.ErrInvalidCursor) {
		return nil, domainerrors.ValidationWithDetails("invalid cursor", map[string]string{"query.cursor": err.Error()})
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list presets: %w", err)
	}

	if params.Cursor == "" {
		page.Items = append([]*domain.Preset{domain.DefaultPreset()}, page.Items...)
	}
	return page, nil
}

// Count returns the number of stored presets, not counting the built-in one.
func (s *PresetService) Count(ctx context.Context) (int, error) {
	return s.store.CountPresets(ctx)
}

// Get resolves ref as a preset ID first, then as a slug.
func (s *PresetService) Get(ctx context.Context, ref string) (*domain.Preset, error) {
	if ref == domain.DefaultPresetSlug {
		return domain.DefaultPreset(), nil
	}

	p, err := s.store.GetPreset(ctx, ref)
	if errors.Is(err, store.ErrPresetNotFound) {
		p, err = s.store.GetPresetBySlug(ctx, ref)
	}
	if errors.Is(err, store.ErrPresetNotFound) {
		return nil, domainerrors.NotFoundf("preset %q not found", ref)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get preset: %w", err)
	}
	return p, nil
}

// Create validates and stores a new preset.
func (s *PresetService) Create(ctx context.Context, in PresetInput) (*domain.Preset, error) {
	p, err := s.build(in)
	if err != nil {
		return nil, err
	}

	if p.ID, err = id.NewPreset(); err != nil {
		return nil, fmt.Errorf("failed to generate preset id: %w", err)
	}

	if err := s.store.CreatePreset(ctx, p); err != nil {
		if errors.Is(err, store.ErrPresetExists) {
			return nil, domainerrors.AlreadyExistsf("preset %q already exists", p.Slug)
		}
		return nil, fmt.Errorf("failed to create preset: %w", err)
	}

	s.logger.Info("preset created", "id", p.ID, "slug", p.Slug)
	return p, nil
}

// Update applies patch to the preset with the given ID.
func (s *PresetService) Update(ctx context.Context, presetID string, patch PresetPatch) (*domain.Preset, error) {
	if presetID == domain.DefaultPresetSlug {
		return nil, domainerrors.Forbidden("the default preset cannot be changed")
	}
	if err := s.validator.Validate(patch); err != nil {
		return nil, err
	}

	p, err := s.store.GetPreset(ctx, presetID)
	if errors.Is(err, store.ErrPresetNotFound) {
		return nil, domainerrors.NotFoundf("preset %q not found", presetID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get preset: %w", err)
	}

	if patch.Name != nil {
		p.Name = *patch.Name
		if p.Slug, err = slugFor(p.Name); err != nil {
			return nil, err
		}
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.Lightness != nil {
		p.Lightness = patch.Lightness
	}
	if patch.Saturation != nil {
		p.Saturation = patch.Saturation
	}
	if patch.ClearHueRange {
		p.MinHue, p.MaxHue = nil, nil
	}
	if patch.MinHue != nil {
		p.MinHue = patch.MinHue
	}
	if patch.MaxHue != nil {
		p.MaxHue = patch.MaxHue
	}

	if _, err := p.Config(); err != nil {
		return nil, domainerrors.FromColorError(err)
	}
	p.Touch()

	if err := s.store.UpdatePreset(ctx, p); err != nil {
		switch {
		case errors.Is(err, store.ErrPresetExists):
			return nil, domainerrors.AlreadyExistsf("preset %q already exists", p.Slug)
		case errors.Is(err, store.ErrPresetNotFound):
			return nil, domainerrors.NotFoundf("preset %q not found", presetID)
		}
		return nil, fmt.Errorf("failed to update preset: %w", err)
	}

	s.logger.Info("preset updated", "id", p.ID, "slug", p.Slug)
	return p, nil
}

// Delete removes the preset with the given ID.
func (s *PresetService) Delete(ctx context.Context, presetID string) error {
	if presetID == domain.DefaultPresetSlug {
		return domainerrors.Forbidden("the default preset cannot be deleted")
	}

	if err := s.store.DeletePreset(ctx, presetID); err != nil {
		if errors.Is(err, store.ErrPresetNotFound) {
			return domainerrors.NotFoundf("preset %q not found", presetID)
		}
		return fmt.Errorf("failed to delete preset: %w", err)
	}

	s.logger.Info("preset deleted", "id", presetID)
	return nil
}

// Upsert creates the preset or replaces the one with the same slug.
func (s *PresetService) Upsert(ctx context.Context, in PresetInput) (*domain.Preset, bool, error) {
	p, err := s.build(in)
	if err != nil {
		return nil, false, err
	}
	if p.ID, err = id.NewPreset(); err != nil {
		return nil, false, fmt.Errorf("failed to generate preset id: %w", err)
	}

	created, err := s.store.UpsertPresetBySlug(ctx, p)
	if err != nil {
		return nil, false, fmt.Errorf("failed to upsert preset: %w", err)
	}
	return p, created, nil
}

// build validates in and turns it into a preset without an ID.
func (s *PresetService) build(in PresetInput) (*domain.Preset, error) {
	if err := s.validator.Validate(in); err != nil {
		return nil, err
	}

	slug, err := slugFor(in.Name)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	p := &domain.Preset{
		Name:        in.Name,
		Slug:        slug,
		Description: in.Description,
		Lightness:   in.Lightness,
		Saturation:  in.Saturation,
		MinHue:      in.MinHue,
		MaxHue:      in.MaxHue,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if _, err := p.Config(); err != nil {
		return nil, domainerrors.FromColorError(err)
	}
	return p, nil
}

func slugFor(name string) (string, error) {
	slug := util.Slugify(name)
	switch slug {
	case "":
		return "", domainerrors.ValidationWithDetails("validation failed",
			map[string]string{"name": "must contain at least one letter or digit"})
	case domain.DefaultPresetSlug:
		return "", domainerrors.AlreadyExistsf("preset %q is built in", slug)
	}
	return slug, nil
}
