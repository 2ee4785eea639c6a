// Package watcher keeps stored presets in sync with the presets file.
package watcher

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher reports settled changes to a single file.
//
// The parent directory is watched rather than the file itself so editors that
// save by renaming a temp file over the original are still seen.
type Watcher struct {
	path   string
	logger *slog.Logger
	opts   Options
	fs     *fsnotify.Watcher

	mu    sync.Mutex // protects timer
	timer *time.Timer

	changes  chan struct{}
	done     chan struct{}
	stopOnce sync.Once
}

// New creates a watcher for path. The file itself does not have to exist yet.
func New(path string, logger *slog.Logger, opts Options) (*Watcher, error) {
	opts.setDefaults()

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve path: %w", err)
	}

	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	if err := fs.Add(filepath.Dir(abs)); err != nil {
		fs.Close() //nolint:errcheck // already failing
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}

	return &Watcher{
		path:    abs,
		logger:  logger,
		opts:    opts,
		fs:      fs,
		changes: make(chan struct{}, 1),
		done:    make(chan struct{}),
	}, nil
}

// Changes delivers one signal per settled burst of writes. Signals are
// coalesced, so a slow reader sees at most one pending change.
func (w *Watcher) Changes() <-chan struct{} {
	return w.changes
}

// Run processes filesystem events until ctx is cancelled or Stop is called.
func (w *Watcher) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-w.done:
			return nil
		case event, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			w.handle(event)
		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("file watcher error", "path", w.path, "error", err)
		}
	}
}

func (w *Watcher) handle(event fsnotify.Event) {
	if filepath.Clean(event.Name) != w.path {
		return
	}

	if event.Op.Has(fsnotify.Remove) {
		w.logger.Warn("presets file removed, keeping stored presets", "path", w.path)
		return
	}

	if event.Op.Has(fsnotify.Write) || event.Op.Has(fsnotify.Create) {
		w.settle()
	}
}

// settle restarts the quiet-period timer.
func (w *Watcher) settle() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.opts.SettleDelay, w.notify)
}

func (w *Watcher) notify() {
	select {
	case <-w.done:
	case w.changes <- struct{}{}:
	default:
		// A change is already pending.
	}
}

// Stop releases the fsnotify watcher. It is safe to call more than once.
func (w *Watcher) Stop() error {
	var err error
	w.stopOnce.Do(func() {
		close(w.done)

		w.mu.Lock()
		if w.timer != nil {
			w.timer.Stop()
		}
		w.mu.Unlock()

		err = w.fs.Close()
	})
	return err
}
