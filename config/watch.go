package config

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultReloadDebounce coalesces the burst of events editors emit on save.
const DefaultReloadDebounce = 200 * time.Millisecond

// Watcher reloads a config file when it changes on disk. Each successful
// reload is delivered on Updates; a file that fails to load or validate is
// logged and skipped.
type Watcher struct {
	path     string
	debounce time.Duration
	fsw      *fsnotify.Watcher
	updates  chan *Config
	done     chan struct{}
	once     sync.Once
}

// Watch starts watching path. The containing directory is watched so that
// editors which replace the file on save are still seen.
func Watch(path string, debounce time.Duration) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving config path: %w", err)
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating file watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watching %s: %w", filepath.Dir(abs), err)
	}
	if debounce <= 0 {
		debounce = DefaultReloadDebounce
	}

	w := &Watcher{
		path:     abs,
		debounce: debounce,
		fsw:      fsw,
		updates:  make(chan *Config, 1),
		done:     make(chan struct{}),
	}
	go w.run()
	return w, nil
}

// Updates delivers reloaded configurations. Only the latest unread one is kept.
func (w *Watcher) Updates() <-chan *Config {
	return w.updates
}

// Close stops watching. It is safe to call more than once.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.done)
		err = w.fsw.Close()
	})
	return err
}

func (w *Watcher) run() {
	var pending <-chan time.Time
	for {
		select {
		case <-w.done:
			return

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename) {
				pending = time.After(w.debounce)
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			slog.Warn("config watcher error", "error", err)

		case <-pending:
			pending = nil
			cfg, err := Load(w.path)
			if err != nil {
				slog.Warn("config reload failed", "path", w.path, "error", err)
				continue
			}
			// Latest wins
			select {
			case <-w.updates:
			default:
			}
			w.updates <- cfg
			slog.Info("config reloaded", "path", w.path)
		}
	}
}
