package cli

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// watchLoop re-runs the pipeline whenever the working tree changes, after a
// debounce window so bursts of writes trigger a single re-run. The loop ends
// when ctx is cancelled.
func (a *App) watchLoop(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating filesystem watcher: %w", err)
	}
	defer watcher.Close()

	if err := a.addWatchesRecursive(watcher, a.Opts.RepoPath); err != nil {
		return err
	}

	var logPath string
	if a.Opts.LogFile != "" {
		logPath, _ = filepath.Abs(a.Opts.LogFile)
	}

	if err := a.runOnce(); err != nil {
		return err
	}
	a.Logger.Info("Watching for working-tree changes",
		slog.String("path", a.Opts.RepoPath),
		slog.Duration("debounce", a.Opts.WatchDebounce))

	debounce := time.NewTimer(a.Opts.WatchDebounce)
	if !debounce.Stop() {
		<-debounce.C
	}
	pending := false

	for {
		select {
		case <-ctx.Done():
			a.Logger.Info("Shutdown signal received")
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if a.ignoreEvent(event, logPath) {
				continue
			}
			// New directories must be watched too; fsnotify is not recursive.
			if event.Op.Has(fsnotify.Create) {
				if info, statErr := os.Stat(event.Name); statErr == nil && info.IsDir() {
					if addErr := a.addWatchesRecursive(watcher, event.Name); addErr != nil {
						a.Logger.Warn("Could not watch new directory",
							slog.String("path", event.Name), slog.Any("error", addErr))
					}
				}
			}
			debounce.Reset(a.Opts.WatchDebounce)
			pending = true

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			a.Logger.Warn("Watcher error", slog.Any("error", err))

		case <-debounce.C:
			if !pending {
				continue
			}
			pending = false
			a.Logger.Info("Working tree changed, re-running")
			if err := a.runOnce(); err != nil {
				return err
			}
		}
	}
}

// addWatchesRecursive registers root and every directory below it, skipping
// the .git metadata directory.
func (a *App) addWatchesRecursive(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			a.Logger.Warn("Error accessing path while adding watches",
				slog.String("path", path), slog.Any("error", err))
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if d.Name() == ".git" {
			return filepath.SkipDir
		}
		if addErr := watcher.Add(path); addErr != nil {
			return fmt.Errorf("watching %q: %w", path, addErr)
		}
		return nil
	})
}

// ignoreEvent filters events that would otherwise re-trigger runs endlessly:
// writes to our own log file and anything inside .git.
func (a *App) ignoreEvent(event fsnotify.Event, logPath string) bool {
	if logPath != "" && event.Name == logPath {
		return true
	}
	sep := string(os.PathSeparator)
	return strings.Contains(event.Name, sep+".git"+sep) || strings.HasSuffix(event.Name, sep+".git")
}
