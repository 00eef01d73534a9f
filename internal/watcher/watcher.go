// Package watcher observes the corpus directory for PDF changes so
// long-running sessions know when the index is stale.
package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/qadi-labs/qadi-cli/internal/logger"
)

// Change describes one corpus file event.
type Change struct {
	// Path is the affected PDF file.
	Path string

	// Removed is true for delete and rename-away events.
	Removed bool
}

// Watcher reports corpus changes and tracks staleness. The watcher
// never re-ingests by itself; it only tells the caller the index no
// longer matches the directory.
type Watcher struct {
	fsw     *fsnotify.Watcher
	changes chan Change

	mu    sync.Mutex
	stale bool
}

// New creates a watcher over the corpus directory.
func New(corpusDir string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}

	if err := fsw.Add(corpusDir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watching %s: %w", corpusDir, err)
	}

	return &Watcher{
		fsw:     fsw,
		changes: make(chan Change, 16),
	}, nil
}

// Changes returns the channel of corpus file events.
func (w *Watcher) Changes() <-chan Change {
	return w.changes
}

// Stale reports whether the corpus changed since the last ingest.
func (w *Watcher) Stale() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.stale
}

// MarkFresh clears the staleness flag after a re-ingest.
func (w *Watcher) MarkFresh() {
	w.mu.Lock()
	w.stale = false
	w.mu.Unlock()
}

// Run processes events until the context is cancelled. Non-PDF files
// and chmod-only events are ignored.
func (w *Watcher) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			change, relevant := w.classify(event)
			if !relevant {
				continue
			}

			w.mu.Lock()
			w.stale = true
			w.mu.Unlock()

			logger.Debug("Corpus change: %s (removed=%t)", change.Path, change.Removed)
			select {
			case w.changes <- change:
			default:
				// Staleness flag already covers a full channel.
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			logger.Warn("Watcher error: %v", err)
		}
	}
}

// Close stops watching and releases resources.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}

func (w *Watcher) classify(event fsnotify.Event) (Change, bool) {
	if !strings.EqualFold(filepath.Ext(event.Name), ".pdf") {
		return Change{}, false
	}

	switch {
	case event.Op.Has(fsnotify.Create), event.Op.Has(fsnotify.Write):
		return Change{Path: event.Name}, true
	case event.Op.Has(fsnotify.Remove), event.Op.Has(fsnotify.Rename):
		return Change{Path: event.Name, Removed: true}, true
	default:
		return Change{}, false
	}
}
