// Package watch re-runs an action whenever a single file changes.
package watch

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/inful/shalinks/internal/foundation/errors"
	"git.home.luguber.info/inful/shalinks/internal/logfields"
)

// DefaultDebounce coalesces the burst of events editors emit on save.
const DefaultDebounce = 200 * time.Millisecond

// FileWatcher calls OnChange after path was written, created or renamed and
// no further event arrived for the debounce period.
type FileWatcher struct {
	path     string
	debounce time.Duration
	onChange func(context.Context) error
	logger   *slog.Logger
}

func NewFileWatcher(path string, debounce time.Duration, onChange func(context.Context) error) (*FileWatcher, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to resolve watched path").
			WithContext("path", path).
			Build()
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &FileWatcher{
		path:     absPath,
		debounce: debounce,
		onChange: onChange,
		logger:   slog.Default(),
	}, nil
}

// WithLogger sets the logger used for watch events.
func (fw *FileWatcher) WithLogger(l *slog.Logger) *FileWatcher {
	if l != nil {
		fw.logger = l
	}
	return fw
}

// Run blocks until ctx is done. Errors from OnChange are logged, not returned.
func (fw *FileWatcher) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.WrapError(err, errors.CategoryRuntime, "failed to create file watcher").Build()
	}
	defer func() { _ = watcher.Close() }()

	// Watch the directory containing the file (more reliable than watching the file directly)
	dir := filepath.Dir(fw.path)
	if err := watcher.Add(dir); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to watch directory").
			WithContext("path", dir).
			Build()
	}
	fw.logger.Info("Watching for changes", logfields.Path(fw.path))

	timer := time.NewTimer(fw.debounce)
	timer.Stop()
	defer timer.Stop()

	name := filepath.Base(fw.path)
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) != name {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				fw.logger.Debug("File change detected", logfields.Path(event.Name), slog.String("op", event.Op.String()))
				timer.Reset(fw.debounce)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fw.logger.Error("File watcher error", logfields.Error(err))
		case <-timer.C:
			if err := fw.onChange(ctx); err != nil {
				fw.logger.Error("Change handler failed", logfields.Path(fw.path), logfields.Error(err))
			}
		}
	}
}
