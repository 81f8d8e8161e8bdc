// Package watcher monitors a directory and runs the pipeline handler on each
// new media file. Files are handled strictly one at a time, in arrival order;
// the watcher is event-driven repetition of the single-file command, not a
// batch scheduler.
package watcher

import (
	"context"
	"fmt"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/recapkit/recapkit/pkg/logger"
	"github.com/recapkit/recapkit/pkg/media"
)

// Handler processes one detected media file
type Handler func(ctx context.Context, filePath string) error

// stabilityWait gives the writer time to finish before the file is read
const stabilityWait = 2 * time.Second

// Watcher watches a single directory for new media files
type Watcher struct {
	dir     string
	handler Handler
	watcher *fsnotify.Watcher
}

// New creates a watcher over dir that invokes handler for each new media file
func New(dir string, handler Handler) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	if err := fw.Add(dir); err != nil {
		_ = fw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	return &Watcher{
		dir:     dir,
		handler: handler,
		watcher: fw,
	}, nil
}

// Run blocks, handling new files until the context is canceled. Handler
// failures are logged and do not stop the watch; each file is its own run.
func (w *Watcher) Run(ctx context.Context) error {
	log := logger.WithComponent("watcher").WithField("dir", w.dir)
	log.Info().Msg("Watching for new media files")

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("Watcher stopped")
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			if !event.Has(fsnotify.Create) {
				continue
			}
			if !media.IsSupported(event.Name) {
				log.Debug().Str("file", event.Name).Msg("Ignoring unsupported file")
				continue
			}

			log.Info().Str("file", event.Name).Msg("New media file detected")
			time.Sleep(stabilityWait)

			// One file end-to-end at a time.
			if err := w.handler(ctx, event.Name); err != nil {
				log.Error().Err(err).Str("file", event.Name).Msg("Failed to process file")
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			log.Error().Err(err).Msg("Watcher error")
		}
	}
}

// Close releases the underlying filesystem watcher
func (w *Watcher) Close() error {
	return w.watcher.Close()
}
