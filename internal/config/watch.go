package config

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/teslashibe/facecenter/internal/log"
	"github.com/teslashibe/facecenter/pkg/debug"
)

// reloadDelay coalesces the burst of events an editor save produces.
const reloadDelay = 200 * time.Millisecond

// Watch re-resolves path with o whenever the file changes and passes the
// result to onChange. The parent directory is watched so atomic renames
// are seen. Parse errors are logged and skipped. Blocks until ctx is done.
func Watch(ctx context.Context, path string, o Overrides, onChange func(File)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}

	timer := time.NewTimer(time.Hour)
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
			if filepath.Clean(event.Name) != abs {
				debug.Log("config watcher ignored event", "name", event.Name)
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				timer.Reset(reloadDelay)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn("config watcher error", "error", err)

		case <-timer.C:
			cfg, err := Resolve(abs, o)
			if err != nil {
				log.Warn("config reload failed", "path", abs, "error", err)
				continue
			}
			log.Info("config reloaded", "path", abs)
			onChange(cfg)
		}
	}
}
