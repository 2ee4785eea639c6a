package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/listenupapp/colorhash/internal/config"
	"github.com/listenupapp/colorhash/internal/domain"
	domainerrors "github.com/listenupapp/colorhash/internal/errors"
	"github.com/listenupapp/colorhash/internal/store"
)

func TestPresetService_Create(t *testing.T) {
	svc := setupServices(t, config.PaletteConfig{}).presets
	ctx := context.Background()

	p, err := svc.Create(ctx, PresetInput{
		Name:      "Warm Tones",
		Lightness: []float64{0.4, 0.6},
		MinHue:    intPtr(0),
		MaxHue:    intPtr(60),
	})
	require.NoError(t, err)

	assert.Regexp(t, `^preset-[0-9a-z]{16}$`, p.ID)
	assert.Equal(t, "warm-tones", p.Slug)
	assert.False(t, p.CreatedAt.IsZero())

	got, err := svc.Get(ctx, "warm-tones")
	require.NoError(t, err)
	assert.Equal(t, p.ID, got.ID)

	got, err = svc.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Warm Tones", got.Name)
}

func TestPresetService_CreateErrors(t *testing.T) {
	svc := setupServices(t, config.PaletteConfig{}).presets
	ctx := context.Background()

	mustCreate(t, svc, PresetInput{Name: "Warm"})

	tests := []struct {
		name     string
		in       PresetInput
		wantCode domainerrors.Code
	}{
		{"missing name", PresetInput{}, domainerrors.CodeValidation},
		{"name without letters", PresetInput{Name: "!!!"}, domainerrors.CodeValidation},
		{"slug taken", PresetInput{Name: "WARM"}, domainerrors.CodeAlreadyExists},
		{"reserved slug", PresetInput{Name: "Default"}, domainerrors.CodeAlreadyExists},
		{"pool value", PresetInput{Name: "a", Lightness: []float64{1.5}}, domainerrors.CodeValidation},
		{"empty pool", PresetInput{Name: "b", Saturation: []float64{}}, domainerrors.CodeInvalidArgument},
		{"inverted hues", PresetInput{Name: "c", MinHue: intPtr(200), MaxHue: intPtr(100)}, domainerrors.CodeOutOfRange},
		{"hue too large", PresetInput{Name: "d", MaxHue: intPtr(400)}, domainerrors.CodeValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, tt.in)
			require.Error(t, err)

			var de *domainerrors.Error
			require.True(t, domainerrors.As(err, &de), "got %T: %v", err, err)
			assert.Equal(t, tt.wantCode, de.Code)
		})
	}
}

func TestPresetService_ListStartsWithDefault(t *testing.T) {
	svc := setupServices(t, config.PaletteConfig{}).presets
	ctx := context.Background()

	mustCreate(t, svc, PresetInput{Name: "Zebra"})
	mustCreate(t, svc, PresetInput{Name: "Apple"})

	page, err := svc.ListPage(ctx, store.DefaultPaginationParams())
	require.NoError(t, err)
	assert.False(t, page.HasMore)
	presets := page.Items
	require.Len(t, presets, 3)
	assert.Equal(t, domain.DefaultPresetSlug, presets[0].Slug)
	assert.True(t, presets[0].Builtin)
	assert.Equal(t, "apple", presets[1].Slug)
	assert.Equal(t, "zebra", presets[2].Slug)

	n, err := svc.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestPresetService_ListPage(t *testing.T) {
	svc := setupServices(t, config.PaletteConfig{}).presets
	ctx := context.Background()

	mustCreate(t, svc, PresetInput{Name: "Zebra"})
	mustCreate(t, svc, PresetInput{Name: "Apple"})

	first, err := svc.ListPage(ctx, store.PaginationParams{Limit: 1})
	require.NoError(t, err)
	require.Len(t, first.Items, 2)
	assert.Equal(t, domain.DefaultPresetSlug, first.Items[0].Slug)
	assert.Equal(t, "apple", first.Items[1].Slug)
	require.True(t, first.HasMore)

	second, err := svc.ListPage(ctx, store.PaginationParams{Limit: 1, Cursor: first.NextCursor})
	require.NoError(t, err)
	require.Len(t, second.Items, 1)
	assert.Equal(t, "zebra", second.Items[0].Slug)
	assert.False(t, second.HasMore)

	_, err = svc.ListPage(ctx, store.PaginationParams{Cursor: "!!"})
	assert.ErrorIs(t, err, domainerrors.ErrValidation)
}

func TestPresetService_GetDefaultAndMissing(t *testing.T) {
	svc := setupServices(t, config.PaletteConfig{}).presets
	ctx := context.Background()

	p, err := svc.Get(ctx, "default")
	require.NoError(t, err)
	assert.True(t, p.Builtin)

	_, err = svc.Get(ctx, "nope")
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestPresetService_Update(t *testing.T) {
	svc := setupServices(t, config.PaletteConfig{}).presets
	ctx := context.Background()

	presetID := mustCreate(t, svc, PresetInput{Name: "Warm", MinHue: intPtr(10), MaxHue: intPtr(50)})

	p, err := svc.Update(ctx, presetID, PresetPatch{
		Name:       strPtr("Sunset Glow"),
		Saturation: []float64{0.9},
	})
	require.NoError(t, err)
	assert.Equal(t, "sunset-glow", p.Slug)
	assert.Equal(t, []float64{0.9}, p.Saturation)
	assert.Equal(t, 10, *p.MinHue, "untouched fields are kept")

	_, err = svc.Get(ctx, "warm")
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)

	p, err = svc.Update(ctx, presetID, PresetPatch{ClearHueRange: true})
	require.NoError(t, err)
	assert.Nil(t, p.MinHue)
	assert.Nil(t, p.MaxHue)
}

func TestPresetService_UpdateErrors(t *testing.T) {
	svc := setupServices(t, config.PaletteConfig{}).presets
	ctx := context.Background()

	warm := mustCreate(t, svc, PresetInput{Name: "Warm"})
	mustCreate(t, svc, PresetInput{Name: "Cold"})

	_, err := svc.Update(ctx, warm, PresetPatch{Name: strPtr("cold")})
	assert.ErrorIs(t, err, domainerrors.ErrAlreadyExists)

	_, err = svc.Update(ctx, warm, PresetPatch{MinHue: intPtr(300), MaxHue: intPtr(200)})
	assert.ErrorIs(t, err, domainerrors.ErrOutOfRange)

	_, err = svc.Update(ctx, "preset-missing", PresetPatch{})
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)

	_, err = svc.Update(ctx, "default", PresetPatch{})
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)
}

func TestPresetService_Delete(t *testing.T) {
	svc := setupServices(t, config.PaletteConfig{}).presets
	ctx := context.Background()

	presetID := mustCreate(t, svc, PresetInput{Name: "Warm"})
	require.NoError(t, svc.Delete(ctx, presetID))

	assert.ErrorIs(t, svc.Delete(ctx, presetID), domainerrors.ErrNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, "default"), domainerrors.ErrForbidden)
}

func TestPresetService_Upsert(t *testing.T) {
	svc := setupServices(t, config.PaletteConfig{}).presets
	ctx := context.Background()

	p, created, err := svc.Upsert(ctx, PresetInput{Name: "Pastel", Lightness: []float64{0.8}})
	require.NoError(t, err)
	assert.True(t, created)

	again, created, err := svc.Upsert(ctx, PresetInput{Name: "pastel", Lightness: []float64{0.85}})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, p.ID, again.ID)

	got, err := svc.Get(ctx, "pastel")
	require.NoError(t, err)
	assert.Equal(t, []float64{0.85}, got.Lightness)
}
