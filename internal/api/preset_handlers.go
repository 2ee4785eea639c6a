package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/listenupapp/colorhash/internal/auth"
	"github.com/listenupapp/colorhash/internal/domain"
	"github.com/listenupapp/colorhash/internal/service"
	"github.com/listenupapp/colorhash/internal/store"
)

func (s *Server) registerPresetRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listPresets",
		Method:      http.MethodGet,
		Path:        "/api/v1/presets",
		Summary:     "List presets",
		Description: "Returns stored presets sorted by slug, one page at a time. The first page starts with the built-in default preset.",
		Tags:        []string{"Presets"},
	}, s.handleListPresets)

	huma.Register(s.api, huma.Operation{
		OperationID: "getPreset",
		Method:      http.MethodGet,
		Path:        "/api/v1/presets/{ref}",
		Summary:     "Get preset",
		Description: "Returns a preset by ID or slug",
		Tags:        []string{"Presets"},
	}, s.handleGetPreset)

	huma.Register(s.api, huma.Operation{
		OperationID:   "createPreset",
		Method:        http.MethodPost,
		Path:          "/api/v1/presets",
		Summary:       "Create preset",
		Description:   "Stores a named colorhash configuration",
		Tags:          []string{"Presets"},
		DefaultStatus: http.StatusCreated,
		Security:      []map[string][]string{{"bearer": {}}},
	}, s.handleCreatePreset)

	huma.Register(s.api, huma.Operation{
		OperationID: "updatePreset",
		Method:      http.MethodPatch,
		Path:        "/api/v1/presets/{id}",
		Summary:     "Update preset",
		Description: "Changes the given fields of a preset",
		Tags:        []string{"Presets"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleUpdatePreset)

	huma.Register(s.api, huma.Operation{
		OperationID:   "deletePreset",
		Method:        http.MethodDelete,
		Path:          "/api/v1/presets/{id}",
		Summary:       "Delete preset",
		Description:   "Deletes a stored preset",
		Tags:          []string{"Presets"},
		DefaultStatus: http.StatusNoContent,
		Security:      []map[string][]string{{"bearer": {}}},
	}, s.handleDeletePreset)
}

// === DTOs ===

// ListPresetsInput contains pagination parameters for listing presets.
type ListPresetsInput struct {
	Limit  int    `query:"limit" minimum:"0" maximum:"1000" doc:"Presets per page (default 100)"`
	Cursor string `query:"cursor" doc:"next_cursor from the previous page"`
}

// ListPresetsResponse contains one page of presets.
type ListPresetsResponse struct {
	Presets    []*domain.Preset `json:"presets" doc:"Presets, default first on the first page"`
	NextCursor string           `json:"next_cursor,omitempty" doc:"Cursor for the next page"`
	HasMore    bool             `json:"has_more" doc:"Whether more presets follow"`
}

// ListPresetsOutput wraps the list response for Huma.
type ListPresetsOutput struct {
	Body ListPresetsResponse
}

// GetPresetInput contains parameters for getting a preset.
type GetPresetInput struct {
	Ref string `path:"ref" doc:"Preset ID or slug"`
}

// PresetOutput wraps a preset for Huma.
type PresetOutput struct {
	Body *domain.Preset
}

// CreatePresetInput wraps the create request for Huma.
type CreatePresetInput struct {
	Authorization string `header:"Authorization"`
	Body          service.PresetInput
}

// UpdatePresetInput wraps the update request for Huma.
type UpdatePresetInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"Preset ID"`
	Body          service.PresetPatch
}

// DeletePresetInput contains parameters for deleting a preset.
type DeletePresetInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"Preset ID"`
}

// === Handlers ===

func (s *Server) handleListPresets(ctx context.Context, input *ListPresetsInput) (*ListPresetsOutput, error) {
	params := store.DefaultPaginationParams()
	if input.Limit > 0 {
		params.Limit = input.Limit
	}
	params.Cursor = input.Cursor

	page, err := s.services.Presets.ListPage(ctx, params)
	if err != nil {
		return nil, err
	}
	return &ListPresetsOutput{Body: ListPresetsResponse{
		Presets:    page.Items,
		NextCursor: page.NextCursor,
		HasMore:    page.HasMore,
	}}, nil
}

func (s *Server) handleGetPreset(ctx context.Context, input *GetPresetInput) (*PresetOutput, error) {
	p, err := s.services.Presets.Get(ctx, input.Ref)
	if err != nil {
		return nil, err
	}
	return &PresetOutput{Body: p}, nil
}

func (s *Server) handleCreatePreset(ctx context.Context, input *CreatePresetInput) (*PresetOutput, error) {
	claims, err := s.requireScope(input.Authorization, auth.ScopePresetsWrite)
	if err != nil {
		return nil, err
	}

	p, err := s.services.Presets.Create(ctx, input.Body)
	if err != nil {
		return nil, err
	}

	s.logger.Info("preset created via API", "slug", p.Slug, "subject", claims.Subject)
	return &PresetOutput{Body: p}, nil
}

func (s *Server) handleUpdatePreset(ctx context.Context, input *UpdatePresetInput) (*PresetOutput, error) {
	claims, err := s.requireScope(input.Authorization, auth.ScopePresetsWrite)
	if err != nil {
		return nil, err
	}

	p, err := s.services.Presets.Update(ctx, input.ID, input.Body)
	if err != nil {
		return nil, err
	}

	s.logger.Info("preset updated via API", "slug", p.Slug, "subject", claims.Subject)
	return &PresetOutput{Body: p}, nil
}

func (s *Server) handleDeletePreset(ctx context.Context, input *DeletePresetInput) (*struct{}, error) {
	claims, err := s.requireScope(input.Authorization, auth.ScopePresetsWrite)
	if err != nil {
		return nil, err
	}

	if err := s.services.Presets.Delete(ctx, input.ID); err != nil {
		return nil, err
	}

	s.logger.Info("preset deleted via API", "id", input.ID, "subject", claims.Subject)
	return nil, nil
}
