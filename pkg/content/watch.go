package content

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// watchDebounce is the quiet period after a filesystem event before the
// change is logged, so editors that write in several steps produce one line.
const watchDebounce = 500 * time.Millisecond

// Watcher observes the source document on disk after startup. The served
// content is frozen at process start, so the watcher never reloads anything;
// it only tells the operator that a restart is needed to pick up the change.
type Watcher struct {
	watcher *fsnotify.Watcher
	path    string
	logger  *slog.Logger
}

// NewWatcher creates a watcher for the document at path. The parent directory
// is watched rather than the file itself so atomic rename-in-place saves are
// still observed.
func NewWatcher(path string, logger *slog.Logger) (*Watcher, error) {
	if logger == nil {
		logger = slog.Default()
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		_ = fw.Close()
		return nil, fmt.Errorf("failed to resolve watch path %q: %w", path, err)
	}

	if err := fw.Add(filepath.Dir(abs)); err != nil {
		_ = fw.Close()
		return nil, fmt.Errorf("failed to watch %q: %w", filepath.Dir(abs), err)
	}

	return &Watcher{watcher: fw, path: abs, logger: logger}, nil
}

// Watch blocks until the context is cancelled, logging a warning whenever the
// document file is written, created, or renamed on disk.
func (w *Watcher) Watch(ctx context.Context) error {
	defer w.watcher.Close()

	var (
		timer   *time.Timer
		timerCh <-chan time.Time
	)

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(watchDebounce)
				timerCh = timer.C
			} else {
				timer.Reset(watchDebounce)
			}

		case <-timerCh:
			w.logger.Warn("index file changed on disk; serving the copy loaded at startup, restart to pick up changes",
				"path", w.path,
			)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("file watcher error", "error", err)
		}
	}
}
