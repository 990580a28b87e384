package fs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/bft-labs/chatship/internal/ports"
)

// WatchedTokenFile caches the credentials file and reloads it when the file
// changes on disk. Use it for long-running sessions where re-reading the file
// on every send is wasteful.
type WatchedTokenFile struct {
	file   *TokenFile
	logger ports.Logger

	watcher *fsnotify.Watcher
	done    chan struct{}

	mu     sync.RWMutex
	cache  map[string]string
	loaded bool
}

// NewWatchedTokenFile starts watching the directory containing path.
// The directory is created if it does not exist. Call Close to stop watching.
func NewWatchedTokenFile(path string, logger ports.Logger) (*WatchedTokenFile, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}

	w := &WatchedTokenFile{
		file:    NewTokenFile(path),
		logger:  logger,
		watcher: watcher,
		done:    make(chan struct{}),
	}
	go w.run()
	return w, nil
}

// Get returns the cached value, loading the file on first use or after a change.
func (w *WatchedTokenFile) Get(ctx context.Context, key string) (string, bool, error) {
	w.mu.RLock()
	if w.loaded {
		defer w.mu.RUnlock()
		return lookup(w.cache, key)
	}
	w.mu.RUnlock()

	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.loaded {
		values, err := readCredentials(w.file.Path())
		if err != nil {
			return "", false, err
		}
		w.cache = values
		w.loaded = true
	}
	return lookup(w.cache, key)
}

// Set writes through to the file and drops the cache.
func (w *WatchedTokenFile) Set(ctx context.Context, key, value string) error {
	if err := w.file.Set(ctx, key, value); err != nil {
		return err
	}
	w.invalidate()
	return nil
}

// Delete writes through to the file and drops the cache.
func (w *WatchedTokenFile) Delete(ctx context.Context, key string) error {
	if err := w.file.Delete(ctx, key); err != nil {
		return err
	}
	w.invalidate()
	return nil
}

// Close stops the watcher.
func (w *WatchedTokenFile) Close() error {
	err := w.watcher.Close()
	<-w.done
	return err
}

func (w *WatchedTokenFile) invalidate() {
	w.mu.Lock()
	w.loaded = false
	w.cache = nil
	w.mu.Unlock()
}

func (w *WatchedTokenFile) run() {
	defer close(w.done)
	target := filepath.Clean(w.file.Path())

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			w.invalidate()
			w.logger.Debug("credentials changed", ports.String("path", target), ports.String("op", event.Op.String()))

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("credentials watcher error", ports.Err(err))
		}
	}
}
