package loader

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/dhcraft/m3gim/internal/archive"
	"github.com/dhcraft/m3gim/internal/checksum"
	"github.com/dhcraft/m3gim/internal/jsonld"
)

// debounceDelay absorbs the write bursts editors and export scripts
// produce when replacing the data file.
const debounceDelay = 200 * time.Millisecond

// ReloadCallback is called with the freshly built store after a successful
// watcher-driven reload.
type ReloadCallback func(store *archive.Store)

// Watch watches the export file's directory and rebuilds the store when the
// file content actually changes, until ctx is cancelled.
//
// The directory is watched rather than the file itself: atomic replacement
// (write to temp, rename over) swaps the inode, and a watch on the old
// inode would go silent after the first replacement. Reloads are debounced
// and checksum-gated, so touch events without a content change are free.
func Watch(ctx context.Context, path string, logger *slog.Logger, cb ReloadCallback) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	absPath, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	if err := w.Add(filepath.Dir(absPath)); err != nil {
		return err
	}

	lastSum := ""
	if data, readErr := os.ReadFile(absPath); readErr == nil {
		lastSum = checksum.Sum(data)
	}

	logger.Info("watcher: started", slog.String("path", absPath))

	var reloadTimer *time.Timer
	var reloadCh <-chan time.Time

	scheduleReload := func() {
		if reloadTimer == nil {
			reloadTimer = time.NewTimer(debounceDelay)
			reloadCh = reloadTimer.C
		} else {
			reloadTimer.Reset(debounceDelay)
		}
	}

	for {
		select {
		case <-ctx.Done():
			if reloadTimer != nil {
				reloadTimer.Stop()
			}
			logger.Info("watcher: stopped")
			return nil

		case <-reloadCh:
			lastSum = reload(absPath, lastSum, logger, cb)

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != absPath {
				continue
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) == 0 {
				continue
			}
			scheduleReload()

		case watchErr, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Error("watcher: error", slog.String("error", watchErr.Error()))
		}
	}
}

// reload rebuilds the store if the file content changed and returns the
// checksum of whatever is on disk now. All failure modes keep the previous
// snapshot: the callback only ever sees complete stores.
func reload(path, lastSum string, logger *slog.Logger, cb ReloadCallback) string {
	data, err := os.ReadFile(path)
	if err != nil {
		logger.Warn("watcher: read failed", slog.String("path", path), slog.String("error", err.Error()))
		return lastSum
	}
	sum := checksum.Sum(data)
	if sum == lastSum {
		logger.Debug("watcher: content unchanged", slog.String("path", path))
		return lastSum
	}

	doc, err := jsonld.Parse(data)
	if err != nil {
		logger.Warn("watcher: parse failed, keeping previous snapshot",
			slog.String("path", path), slog.String("error", err.Error()))
		return sum
	}

	store := archive.BuildStore(doc)
	logger.Info("watcher: reloaded",
		slog.String("path", path),
		slog.Int("records", len(store.AllRecords)))
	if cb != nil {
		cb(store)
	}
	return sum
}
