package presets

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce collapses bursts of writes into one reload.
const DefaultDebounce = 50 * time.Millisecond

// WatchOption configures Watch.
type WatchOption func(*watchConfig)

type watchConfig struct {
	debounce time.Duration
}

// WithDebounce overrides the reload debounce delay.
func WithDebounce(d time.Duration) WatchOption {
	return func(cfg *watchConfig) {
		if d >= 0 {
			cfg.debounce = d
		}
	}
}

// Watch reloads the preset file at path whenever it is written or
// re-created, and hands the new store (or the load error) to onReload. It
// blocks until ctx is done. Watcher failures are reported through onReload
// with a nil store.
func Watch(ctx context.Context, path string, onReload func(*Store, error), opts ...WatchOption) error {
	cfg := watchConfig{debounce: DefaultDebounce}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("presets: create watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory: editors often replace the file instead of writing
	// it in place.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("presets: watch %s: %w", path, err)
	}
	target := filepath.Clean(path)

	var (
		timer   *time.Timer
		pending <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(cfg.debounce)
			} else {
				timer.Reset(cfg.debounce)
			}
			pending = timer.C

		case <-pending:
			pending = nil
			store, err := LoadFile(path)
			onReload(store, err)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			onReload(nil, fmt.Errorf("presets: watch %s: %w", path, err))
		}
	}
}
