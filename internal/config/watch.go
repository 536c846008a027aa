package config

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/BrunoTulio/logr"
	"github.com/fsnotify/fsnotify"
)

const watchDebounce = 250 * time.Millisecond

// WatchSecrets reloads s whenever its file changes, until ctx is done.
// The parent directory is watched so editors that replace the file
// on save are still seen.
func WatchSecrets(ctx context.Context, s *Secrets, log logr.Logger) error {
	target, err := filepath.Abs(s.Path())
	if err != nil {
		return fmt.Errorf("resolve secrets path: %w", err)
	}
	dir := filepath.Dir(target)

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer func() {
		_ = w.Close()
	}()

	if err := w.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	log.Infof("👀 Watching %s for changes", target)

	// debounce to avoid partial writes
	var (
		timerMu sync.Mutex
		timer   *time.Timer
	)
	debounce := func() {
		timerMu.Lock()
		defer timerMu.Unlock()
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(watchDebounce, func() {
			if _, err := s.Reload(); err != nil {
				log.Warnf("⚠️  Failed to reload secrets: %v", err)
				return
			}
			log.Info("🔑 Secrets reloaded")
		})
	}

	for {
		select {
		case <-ctx.Done():
			timerMu.Lock()
			if timer != nil {
				timer.Stop()
			}
			timerMu.Unlock()
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) == target && ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				debounce()
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Warnf("Secrets watcher error: %v", err)
		}
	}
}
