package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/listenupapp/colorhash/internal/domain"
)

const (
	presetPrefix       = "preset:"           // preset:{id} → Preset JSON
	presetBySlugPrefix = "idx:presets:slug:" // idx:presets:slug:{slug} → presetID
)

// Preset errors.
var (
	ErrPresetNotFound = errors.New("preset not found")
	ErrPresetExists   = errors.New("preset already exists")
	ErrInvalidCursor  = errors.New("invalid cursor")
)

// CreatePreset stores a new preset. The slug must be unused.
func (s *Store) CreatePreset(ctx context.Context, p *domain.Preset) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		slugKey := []byte(presetBySlugPrefix + p.Slug)
		if _, err := txn.Get(slugKey); err == nil {
			return ErrPresetExists
		} else if !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}

		if err := setTxn(txn, []byte(presetPrefix+p.ID), p); err != nil {
			return err
		}
		return txn.Set(slugKey, []byte(p.ID))
	})
}

// GetPreset retrieves a preset by ID.
func (s *Store) GetPreset(ctx context.Context, id string) (*domain.Preset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var p domain.Preset
	err := s.get([]byte(presetPrefix+id), &p)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrPresetNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get preset %s: %w", id, err)
	}
	return &p, nil
}

// GetPresetBySlug retrieves a preset by slug.
func (s *Store) GetPresetBySlug(ctx context.Context, slug string) (*domain.Preset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var p domain.Preset
	err := s.db.View(func(txn *badger.Txn) error {
		id, err := slugOwner(txn, slug)
		if err != nil {
			return err
		}
		return getTxn(txn, []byte(presetPrefix+id), &p)
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrPresetNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get preset by slug %s: %w", slug, err)
	}
	return &p, nil
}

// ListPresetsPage returns stored presets in slug order, one page at a time.
// It walks the slug index, so the cursor is the last slug of the previous page.
func (s *Store) ListPresetsPage(ctx context.Context, params PaginationParams) (*PaginatedResult[*domain.Preset], error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	params.Validate()
	after, err := DecodeCursor(params.Cursor)
	if err != nil {
		return nil, err
	}

	prefix := []byte(presetBySlugPrefix)
	result := &PaginatedResult[*domain.Preset]{Items: make([]*domain.Preset, 0, params.Limit)}

	err = s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix

		it := txn.NewIterator(opts)
		defer it.Close()

		start := buildKey(presetBySlugPrefix, after)
		defer releaseKey(start)

		for it.Seek(start); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			if after != "" && string(item.Key()[len(prefix):]) == after {
				continue
			}
			if len(result.Items) == params.Limit {
				result.HasMore = true
				break
			}

			id, err := item.ValueCopy(nil)
			if err != nil {
				return err
			}

			var p domain.Preset
			key := buildKey(presetPrefix, string(id))
			err = getTxn(txn, key, &p)
			releaseKey(key)
			if err != nil {
				if s.logger != nil {
					s.logger.Warn("Skipping unreadable preset", "id", string(id), "error", err)
				}
				continue
			}
			result.Items = append(result.Items, &p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list presets page: %w", err)
	}

	if result.HasMore {
		result.NextCursor = EncodeCursor(result.Items[len(result.Items)-1].Slug)
	}
	return result, nil
}

// CountPresets returns the number of stored presets.
func (s *Store) CountPresets(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	prefix := []byte(presetPrefix)
	count := 0
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		opts.PrefetchValues = false

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			count++
		}
		return nil
	})
	return count, err
}

// UpdatePreset replaces a stored preset. When the slug changed, the new slug
// must be unused and the old index entry is removed.
func (s *Store) UpdatePreset(ctx context.Context, p *domain.Preset) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		key := []byte(presetPrefix + p.ID)

		var existing domain.Preset
		if err := getTxn(txn, key, &existing); err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return ErrPresetNotFound
			}
			return err
		}

		if existing.Slug != p.Slug {
			owner, err := slugOwner(txn, p.Slug)
			switch {
			case err == nil && owner != p.ID:
				return ErrPresetExists
			case err != nil && !errors.Is(err, badger.ErrKeyNotFound):
				return err
			}
			if err := txn.Delete([]byte(presetBySlugPrefix + existing.Slug)); err != nil {
				return err
			}
			if err := txn.Set([]byte(presetBySlugPrefix+p.Slug), []byte(p.ID)); err != nil {
				return err
			}
		}

		return setTxn(txn, key, p)
	})
}

// DeletePreset removes a preset and its slug index entry.
func (s *Store) DeletePreset(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		key := []byte(presetPrefix + id)

		var p domain.Preset
		if err := getTxn(txn, key, &p); err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return ErrPresetNotFound
			}
			return err
		}

		if err := txn.Delete(key); err != nil {
			return err
		}
		return txn.Delete([]byte(presetBySlugPrefix + p.Slug))
	})
}

// UpsertPresetBySlug creates p, or overwrites the preset holding p.Slug
// while keeping that preset's ID and CreatedAt. It reports whether a new
// preset was created. p is updated to the stored state.
func (s *Store) UpsertPresetBySlug(ctx context.Context, p *domain.Preset) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	created := false
	err := s.db.Update(func(txn *badger.Txn) error {
		slugKey := []byte(presetBySlugPrefix + p.Slug)

		id, err := slugOwner(txn, p.Slug)
		switch {
		case errors.Is(err, badger.ErrKeyNotFound):
			created = true
			if err := txn.Set(slugKey, []byte(p.ID)); err != nil {
				return err
			}
		case err != nil:
			return err
		default:
			var existing domain.Preset
			if err := getTxn(txn, []byte(presetPrefix+id), &existing); err != nil {
				return err
			}
			p.ID = existing.ID
			p.CreatedAt = existing.CreatedAt
			p.UpdatedAt = time.Now()
		}

		return setTxn(txn, []byte(presetPrefix+p.ID), p)
	})
	return created, err
}

func slugOwner(txn *badger.Txn, slug string) (string, error) {
	item, err := txn.Get([]byte(presetBySlugPrefix + slug))
	if err != nil {
		return "", err
	}
	val, err := item.ValueCopy(nil)
	if err != nil {
		return "", err
	}
	return string(val), nil
}
