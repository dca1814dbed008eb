package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/fsnotify/fsnotify"

	"github.com/modelcheck/tlctrace/pkgs/errors"
)

// runWatch re-runs extraction every time the checker log is rewritten. The
// watch is on the containing directory because TLC (and most editors) replace
// the file rather than appending in place.
func runWatch(ctx context.Context, opts *options, path string) error {
	logger := newLogger(opts.quiet)

	absPath, err := filepath.Abs(path)
	if err != nil {
		return errors.Wrap(errors.ErrWatchFailed, "cannot resolve watch path", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(errors.ErrWatchFailed, "cannot create watcher", err)
	}
	defer func() { _ = watcher.Close() }()

	if err := watcher.Add(filepath.Dir(absPath)); err != nil {
		return errors.Wrap(errors.ErrWatchFailed, "cannot watch directory", err)
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initial pass; a log without a trace yet is normal here.
	reemit(opts, absPath, logger)

	logger.Info("watching checker output", "path", absPath)
	for {
		select {
		case <-ctx.Done():
			logger.Info("watch stopped")
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Name != absPath {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			logger.Debug("checker output changed", "op", event.Op.String())
			reemit(opts, absPath, logger)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("file watcher error", "error", err)
		}
	}
}

// reemit performs one parse-and-emit pass, logging failures instead of
// aborting the watch.
func reemit(opts *options, path string, logger *slog.Logger) {
	if err := runParse(opts, []string{path}); err != nil {
		if errors.IsErrorType(err, errors.ErrNoTraceFound) {
			logger.Info("no counterexample trace yet", "path", path)
		} else {
			logger.Warn("extraction failed", "error", err)
		}
		return
	}
	logger.Info("trace document emitted", "path", path)
}
