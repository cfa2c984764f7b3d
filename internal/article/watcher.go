package article

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/yildizm/synopsis/internal/logger"
)

// Watcher reloads an article file whenever it changes on disk
type Watcher struct {
	path     string
	maxBytes int64
	watcher  *fsnotify.Watcher
	updates  chan *Document
	log      *logger.Logger
}

// NewWatcher creates a watcher for path. The parent directory is watched so
// editors that save through rename are still picked up.
func NewWatcher(path string, maxBytes int64, log *logger.Logger) (*Watcher, error) {
	if err := ValidateFilePath(path); err != nil {
		return nil, fmt.Errorf("invalid file path: %w", err)
	}

	absPath, err := filepath.Abs(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path: %w", err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	if err := fsw.Add(filepath.Dir(absPath)); err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("failed to watch file: %w", err)
	}

	if log == nil {
		log = logger.Nop()
	}

	return &Watcher{
		path:     absPath,
		maxBytes: maxBytes,
		watcher:  fsw,
		updates:  make(chan *Document, 1),
		log:      log.WithComponent("watcher"),
	}, nil
}

// Path returns the absolute path being watched
func (w *Watcher) Path() string {
	return w.path
}

// Updates delivers the reloaded document after each change. It is closed
// when Run returns.
func (w *Watcher) Updates() <-chan *Document {
	return w.updates
}

// Run processes file system events until ctx is done or the watcher closes
func (w *Watcher) Run(ctx context.Context) error {
	defer close(w.updates)
	defer func() {
		if err := w.watcher.Close(); err != nil {
			w.log.Warn("failed to close watcher: %v", err)
		}
	}()

	w.log.Info("watching %s", w.path)

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			if !w.relevant(event) {
				continue
			}
			w.reload(ctx)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			w.log.Warn("watcher error: %v", err)
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.path {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create)
}

func (w *Watcher) reload(ctx context.Context) {
	doc, err := LoadFile(w.path, w.maxBytes)
	if err != nil {
		w.log.Warn("failed to reload %s: %v", w.path, err)
		return
	}

	w.log.DebugWithFields("article reloaded", []logger.Field{
		logger.F("path", w.path), logger.F("words", CountWords(doc.Text)),
	})

	// keep only the latest version when the consumer lags behind
	select {
	case <-w.updates:
	default:
	}

	select {
	case w.updates <- doc:
	case <-ctx.Done():
	}
}
