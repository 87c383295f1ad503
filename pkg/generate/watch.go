package generate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/macropower/termicon/pkg/log"
)

// ErrWatch is returned when the watcher cannot be set up.
var ErrWatch = errors.New("watch")

// Watch calls fn each time the file at path is written, created or renamed,
// until ctx is canceled. The parent directory is watched so that editors
// which replace the file are handled. Errors returned by fn are logged and do
// not stop the loop.
func Watch(ctx context.Context, path string, fn func(context.Context) error) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("%w: resolve %q: %w", ErrWatch, path, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("%w: create fsnotify watcher: %w", ErrWatch, err)
	}

	defer func() {
		err := watcher.Close()
		if err != nil {
			slog.Error("close watcher", slog.Any("err", err))
		}
	}()

	dir := filepath.Dir(absPath)

	err = watcher.Add(dir)
	if err != nil {
		return fmt.Errorf("%w: add %q to watcher: %w", ErrWatch, dir, err)
	}

	logger := log.WithContext(ctx)
	logger.InfoContext(ctx, "watching for changes", slog.String("path", absPath))

	for {
		select {
		case <-ctx.Done():
			return nil

		case evt, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			if filepath.Clean(evt.Name) != absPath {
				continue
			}

			// Ignore events that are not related to file content changes.
			if evt.Has(fsnotify.Chmod) || evt.Has(fsnotify.Remove) {
				continue
			}

			logger.DebugContext(ctx, "file changed", slog.String("event", evt.String()))

			err := fn(ctx)
			if err != nil {
				logger.ErrorContext(ctx, "regenerate", slog.Any("err", err))
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}

			logger.ErrorContext(ctx, "watch", slog.Any("err", err))
		}
	}
}
