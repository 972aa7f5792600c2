package main

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/alnah/go-n2t/internal/fileutil"
	"github.com/alnah/go-n2t/internal/logging"
)

// watchDebounce coalesces bursts of events, such as an export being unzipped.
const watchDebounce = 500 * time.Millisecond

// watchInput converts inputPath again after each change until ctx is done.
// Directories are watched recursively, including ones created later;
// a file input is watched through its parent directory.
func watchInput(ctx context.Context, inputPath string, c *converter) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating file watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	match, isDir, err := addWatches(watcher, inputPath)
	if err != nil {
		return err
	}

	if !c.quiet {
		fmt.Fprintf(c.env.Stdout, "Watching %s (Ctrl+C to stop)\n", inputPath)
	}

	timer := time.NewTimer(watchDebounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if isDir && event.Has(fsnotify.Create) && fileutil.DirExists(event.Name) {
				if err := watcher.Add(event.Name); err != nil {
					c.logger.Warn("cannot watch directory", logging.Path(event.Name), logging.Error(err))
				}
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if !match(event.Name) {
				continue
			}
			c.logger.Debug("change detected", logging.Path(event.Name), slog.String("op", event.Op.String()))
			timer.Reset(watchDebounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			c.logger.Warn("watcher error", logging.Error(err))

		case <-timer.C:
			if err := c.convertInput(ctx, inputPath); err != nil {
				fmt.Fprintln(c.env.Stderr, formatError(err))
			}
		}
	}
}

// addWatches registers inputPath with watcher and returns the filter for
// event names that should trigger a conversion.
func addWatches(watcher *fsnotify.Watcher, inputPath string) (func(string) bool, bool, error) {
	info, err := os.Stat(inputPath)
	if err != nil {
		return nil, false, err
	}

	if info.IsDir() {
		err := filepath.WalkDir(inputPath, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() {
				return nil
			}
			if err := watcher.Add(path); err != nil {
				return fmt.Errorf("watching %s: %w", path, err)
			}
			return nil
		})
		if err != nil {
			return nil, true, err
		}
		return isPagePath, true, nil
	}

	target, err := filepath.Abs(inputPath)
	if err != nil {
		return nil, false, fmt.Errorf("resolving %s: %w", inputPath, err)
	}
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return nil, false, fmt.Errorf("watching %s: %w", filepath.Dir(target), err)
	}
	return func(name string) bool {
		abs, err := filepath.Abs(name)
		return err == nil && abs == target
	}, false, nil
}
