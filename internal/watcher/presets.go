package watcher

import (
	"context"
	"crypto/sha256"
	"encoding/json/jsontext"
	"encoding/json/v2"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/listenupapp/colorhash/internal/domain"
	"github.com/listenupapp/colorhash/internal/service"
)

// PresetUpserter stores a preset by slug, reporting whether it was new.
type PresetUpserter interface {
	Upsert(ctx context.Context, in service.PresetInput) (*domain.Preset, bool, error)
}

// LoadResult summarizes one pass over the presets file.
type LoadResult struct {
	Created   int
	Updated   int
	Skipped   int
	Unchanged bool
}

// PresetSync loads presets from a JSON file into the store.
//
// The file holds a list of preset objects. Entries that fail to decode or
// validate are logged and skipped; the rest are still applied.
type PresetSync struct {
	path    string
	presets PresetUpserter
	logger  *slog.Logger
	opts    Options

	mu       sync.Mutex
	lastHash [sha256.Size]byte
	loaded   bool
}

// NewPresetSync creates a sync for the file at path.
func NewPresetSync(path string, presets PresetUpserter, logger *slog.Logger, opts Options) *PresetSync {
	return &PresetSync{
		path:    path,
		presets: presets,
		logger:  logger.With("component", "preset_sync"),
		opts:    opts,
	}
}

// Load reads the file and upserts every valid entry. Content identical to
// the previous successful load is not applied again.
func (s *PresetSync) Load(ctx context.Context) (LoadResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	//#nosec G304 -- path comes from configuration
	data, err := os.ReadFile(s.path)
	if err != nil {
		return LoadResult{}, fmt.Errorf("read presets file: %w", err)
	}

	sum := sha256.Sum256(data)
	if s.loaded && sum == s.lastHash {
		return LoadResult{Unchanged: true}, nil
	}

	var entries []jsontext.Value
	if err := json.Unmarshal(data, &entries); err != nil {
		return LoadResult{}, fmt.Errorf("parse presets file: %w", err)
	}

	var res LoadResult
	for i, raw := range entries {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		var in service.PresetInput
		if err := json.Unmarshal(raw, &in); err != nil {
			s.logger.Warn("skipping malformed preset", "index", i, "error", err)
			res.Skipped++
			continue
		}

		p, created, err := s.presets.Upsert(ctx, in)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return res, err
			}
			s.logger.Warn("skipping invalid preset", "index", i, "name", in.Name, "error", err)
			res.Skipped++
			continue
		}

		if created {
			res.Created++
		} else {
			res.Updated++
		}
		s.logger.Debug("preset applied", "slug", p.Slug, "created", created)
	}

	s.lastHash = sum
	s.loaded = true

	s.logger.Info("presets file loaded",
		"path", s.path,
		"created", res.Created,
		"updated", res.Updated,
		"skipped", res.Skipped,
	)
	return res, nil
}

// Watch reloads the file whenever it settles after a change, until ctx is
// cancelled. Reload failures are logged and the previous presets are kept.
func (s *PresetSync) Watch(ctx context.Context) error {
	w, err := New(s.path, s.logger, s.opts)
	if err != nil {
		return err
	}
	defer w.Stop() //nolint:errcheck // shutdown

	errCh := make(chan error, 1)
	go func() { errCh <- w.Run(ctx) }()

	s.logger.Info("watching presets file", "path", s.path)

	for {
		select {
		case <-ctx.Done():
			return nil
		case err := <-errCh:
			return err
		case <-w.Changes():
			if _, err := s.Load(ctx); err != nil {
				s.logger.Error("failed to reload presets file", "path", s.path, "error", err)
			}
		}
	}
}
