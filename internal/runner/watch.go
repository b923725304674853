package runner

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watch runs the manifest once, then re-runs it whenever the manifest
// file changes on disk, until ctx is cancelled. Manifest and task
// failures are logged and do not end the watch; only a watcher setup
// failure or ctx cancellation returns.
func (r *Runner) Watch(ctx context.Context, path string) error {
	if err := r.RunFile(path); err != nil {
		r.logger.Error("run failed", "manifest", path, "error", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	// Watch the directory, not the file: editors that save via
	// rename-and-replace would otherwise drop the watch after one save.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return err
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	debounce := time.Duration(r.cfg.Run.WatchDebounceMs) * time.Millisecond
	timer := time.NewTimer(0)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	r.logger.Info("watching manifest", "path", path)

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			evAbs, err := filepath.Abs(ev.Name)
			if err != nil || evAbs != abs {
				continue
			}
			// Many editors emit several events per save; collapse them.
			timer.Reset(debounce)

		case <-timer.C:
			r.logger.Info("manifest changed, re-running", "path", path)
			if err := r.RunFile(path); err != nil {
				r.logger.Error("run failed", "manifest", path, "error", err)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			r.logger.Warn("watch error", "error", err)
		}
	}
}
