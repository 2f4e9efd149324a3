package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"

	"github.com/opd-ai/vtracer"
)

// watchDebounce is how long a file must stay quiet before it is converted,
// so that half-written files are not picked up.
const watchDebounce = 250 * time.Millisecond

// watchDir converts every raster file already in dir, then every raster
// file created or rewritten there, until ctx is cancelled.
func watchDir(ctx context.Context, dir, outDir string, cfg vtracer.Config) error {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	logrus.WithFields(logrus.Fields{
		"function": "watchDir",
		"dir":      dir,
		"out":      outDir,
	}).Info("Watching for raster files")

	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read %s: %w", dir, err)
	}
	for _, e := range entries {
		if !e.IsDir() && isRaster(e.Name()) {
			_ = convertOne(filepath.Join(dir, e.Name()), outDir, cfg)
		}
	}

	pending := make(map[string]struct{})
	timer := time.NewTimer(watchDebounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			logrus.WithField("function", "watchDir").Info("Watcher stopped")
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !(event.Has(fsnotify.Create) || event.Has(fsnotify.Write)) || !isRaster(event.Name) {
				continue
			}
			logrus.WithFields(logrus.Fields{
				"function": "watchDir",
				"path":     event.Name,
				"op":       event.Op.String(),
			}).Debug("File changed")
			pending[event.Name] = struct{}{}
			timer.Reset(watchDebounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logrus.WithFields(logrus.Fields{
				"function": "watchDir",
				"error":    err.Error(),
			}).Error("Watcher error")

		case <-timer.C:
			paths := make([]string, 0, len(pending))
			for p := range pending {
				paths = append(paths, p)
			}
			sort.Strings(paths)
			clear(pending)
			for _, p := range paths {
				_ = convertOne(p, outDir, cfg)
			}
		}
	}
}
