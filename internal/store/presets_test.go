package store

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/listenupapp/colorhash/internal/domain"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := New(filepath.Join(t.TempDir(), "db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func newPreset(id, slug string) *domain.Preset {
	now := time.Now().UTC().Truncate(time.Second)
	return &domain.Preset{
		ID:        id,
		Name:      slug,
		Slug:      slug,
		Lightness: []float64{0.4, 0.6},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestCreatePreset(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	hue := 120
	p := newPreset("preset-1", "greens")
	p.MinHue = &hue
	require.NoError(t, s.CreatePreset(ctx, p))

	got, err := s.GetPreset(ctx, "preset-1")
	require.NoError(t, err)
	assert.Equal(t, "greens", got.Slug)
	assert.Equal(t, []float64{0.4, 0.6}, got.Lightness)
	require.NotNil(t, got.MinHue)
	assert.Equal(t, 120, *got.MinHue)
	assert.Nil(t, got.MaxHue)
	assert.True(t, p.CreatedAt.Equal(got.CreatedAt))
}

func TestCreatePreset_DuplicateSlug(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.CreatePreset(ctx, newPreset("preset-1", "warm")))
	err := s.CreatePreset(ctx, newPreset("preset-2", "warm"))
	assert.ErrorIs(t, err, ErrPresetExists)

	_, err = s.GetPreset(ctx, "preset-2")
	assert.ErrorIs(t, err, ErrPresetNotFound)
}

func TestGetPresetBySlug(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.CreatePreset(ctx, newPreset("preset-1", "warm")))

	got, err := s.GetPresetBySlug(ctx, "warm")
	require.NoError(t, err)
	assert.Equal(t, "preset-1", got.ID)

	_, err = s.GetPresetBySlug(ctx, "cold")
	assert.ErrorIs(t, err, ErrPresetNotFound)
}

func TestListPresets_SortedBySlug(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	for _, p := range []*domain.Preset{
		newPreset("preset-c", "zebra"),
		newPreset("preset-a", "apple"),
		newPreset("preset-b", "mango"),
	} {
		require.NoError(t, s.CreatePreset(ctx, p))
	}

	page, err := s.ListPresetsPage(ctx, DefaultPaginationParams())
	require.NoError(t, err)
	assert.False(t, page.HasMore)
	presets := page.Items
	require.Len(t, presets, 3)
	assert.Equal(t, "apple", presets[0].Slug)
	assert.Equal(t, "mango", presets[1].Slug)
	assert.Equal(t, "zebra", presets[2].Slug)

	n, err := s.CountPresets(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestListPresets_Empty(t *testing.T) {
	s := setupTestStore(t)

	page, err := s.ListPresetsPage(context.Background(), DefaultPaginationParams())
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.Empty(t, page.NextCursor)
}

func TestListPresetsPage(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	for i, slug := range []string{"echo", "alpha", "delta", "charlie", "bravo"} {
		require.NoError(t, s.CreatePreset(ctx, newPreset(fmt.Sprintf("preset-%d", i), slug)))
	}

	var (
		slugs  []string
		cursor string
		pages  int
	)
	for {
		page, err := s.ListPresetsPage(ctx, PaginationParams{Limit: 2, Cursor: cursor})
		require.NoError(t, err)
		pages++
		for _, p := range page.Items {
			slugs = append(slugs, p.Slug)
		}
		if !page.HasMore {
			assert.Empty(t, page.NextCursor)
			break
		}
		require.Len(t, page.Items, 2)
		cursor = page.NextCursor
	}

	assert.Equal(t, 3, pages)
	assert.Equal(t, []string{"alpha", "bravo", "charlie", "delta", "echo"}, slugs)
}

func TestListPresetsPage_ExactFit(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.CreatePreset(ctx, newPreset("preset-a", "apple")))
	require.NoError(t, s.CreatePreset(ctx, newPreset("preset-b", "mango")))

	page, err := s.ListPresetsPage(ctx, PaginationParams{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, page.Items, 2)
	assert.False(t, page.HasMore)
}

func TestListPresetsPage_InvalidCursor(t *testing.T) {
	s := setupTestStore(t)

	_, err := s.ListPresetsPage(context.Background(), PaginationParams{Cursor: "%%%"})
	assert.ErrorIs(t, err, ErrInvalidCursor)
}

func TestUpdatePreset_Reslug(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	p := newPreset("preset-1", "warm")
	require.NoError(t, s.CreatePreset(ctx, p))

	p.Slug = "warmer"
	p.Description = "more orange"
	require.NoError(t, s.UpdatePreset(ctx, p))

	_, err := s.GetPresetBySlug(ctx, "warm")
	assert.ErrorIs(t, err, ErrPresetNotFound)

	got, err := s.GetPresetBySlug(ctx, "warmer")
	require.NoError(t, err)
	assert.Equal(t, "more orange", got.Description)

	// The old slug is free again.
	require.NoError(t, s.CreatePreset(ctx, newPreset("preset-2", "warm")))
}

func TestUpdatePreset_SlugConflict(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.CreatePreset(ctx, newPreset("preset-1", "warm")))
	require.NoError(t, s.CreatePreset(ctx, newPreset("preset-2", "cold")))

	p, err := s.GetPreset(ctx, "preset-2")
	require.NoError(t, err)
	p.Slug = "warm"
	assert.ErrorIs(t, s.UpdatePreset(ctx, p), ErrPresetExists)

	got, err := s.GetPresetBySlug(ctx, "cold")
	require.NoError(t, err)
	assert.Equal(t, "preset-2", got.ID)
}

func TestUpdatePreset_NotFound(t *testing.T) {
	s := setupTestStore(t)
	err := s.UpdatePreset(context.Background(), newPreset("preset-x", "x"))
	assert.ErrorIs(t, err, ErrPresetNotFound)
}

func TestDeletePreset(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.CreatePreset(ctx, newPreset("preset-1", "warm")))
	require.NoError(t, s.DeletePreset(ctx, "preset-1"))

	_, err := s.GetPreset(ctx, "preset-1")
	assert.ErrorIs(t, err, ErrPresetNotFound)
	_, err = s.GetPresetBySlug(ctx, "warm")
	assert.ErrorIs(t, err, ErrPresetNotFound)

	assert.ErrorIs(t, s.DeletePreset(ctx, "preset-1"), ErrPresetNotFound)
}

func TestUpsertPresetBySlug(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	first := newPreset("preset-1", "warm")
	created, err := s.UpsertPresetBySlug(ctx, first)
	require.NoError(t, err)
	assert.True(t, created)

	second := newPreset("preset-2", "warm")
	second.Lightness = []float64{0.9}
	second.CreatedAt = second.CreatedAt.Add(time.Hour)

	created, err = s.UpsertPresetBySlug(ctx, second)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, "preset-1", second.ID, "existing ID is kept")
	assert.True(t, first.CreatedAt.Equal(second.CreatedAt))

	got, err := s.GetPresetBySlug(ctx, "warm")
	require.NoError(t, err)
	assert.Equal(t, "preset-1", got.ID)
	assert.Equal(t, []float64{0.9}, got.Lightness)

	_, err = s.GetPreset(ctx, "preset-2")
	assert.ErrorIs(t, err, ErrPresetNotFound)
}

func TestCanceledContext(t *testing.T) {
	s := setupTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, s.CreatePreset(ctx, newPreset("p", "p")), context.Canceled)
	_, err := s.ListPresetsPage(ctx, DefaultPaginationParams())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPresetsSurviveReopen(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "db")
	ctx := context.Background()

	s, err := New(dir, nil)
	require.NoError(t, err)
	require.NoError(t, s.CreatePreset(ctx, newPreset("preset-1", "warm")))
	require.NoError(t, s.Close())

	s, err = New(dir, nil)
	require.NoError(t, err)
	defer s.Close()

	got, err := s.GetPresetBySlug(ctx, "warm")
	require.NoError(t, err)
	assert.Equal(t, "preset-1", got.ID)
}

func TestNewInMemory(t *testing.T) {
	s, err := NewInMemory(nil)
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.CreatePreset(context.Background(), newPreset("preset-1", "warm")))
	n, err := s.CountPresets(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
