// Package watcher reloads a layout document when its file changes on disk.
package watcher

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/philipparndt/fieldmap/internal/logging"
)

// LayoutWatcher watches a single layout file and invokes a callback after
// writes settle. Editors often emit bursts of write and create events for one
// save; the debounce window collapses a burst into one reload.
type LayoutWatcher struct {
	watcher  *fsnotify.Watcher
	path     string
	onChange func(path string)
	debounce time.Duration

	mu    sync.Mutex
	timer *time.Timer
}

// New creates a watcher for the given layout file. The callback runs on a
// timer goroutine; callers that touch UI state must hop back themselves.
func New(path string, debounce time.Duration, onChange func(path string)) (*LayoutWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", path, err)
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	// Watch the directory, not the file: editors that save via rename
	// replace the inode and a file watch would go dead after the first save.
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}
	return &LayoutWatcher{
		watcher:  fsw,
		path:     abs,
		onChange: onChange,
		debounce: debounce,
	}, nil
}

// Start begins delivering change notifications until Close.
func (w *LayoutWatcher) Start() {
	go func() {
		for {
			select {
			case event, ok := <-w.watcher.Events:
				if !ok {
					return
				}
				if event.Name != w.path {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
					w.schedule()
				}
			case err, ok := <-w.watcher.Errors:
				if !ok {
					return
				}
				logging.Logger().Warn("layout watcher error", "err", err)
			}
		}
	}()
}

func (w *LayoutWatcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, func() {
		logging.Logger().Info("layout file changed", "path", w.path)
		w.onChange(w.path)
	})
}

// Close stops the watcher and cancels any pending notification.
func (w *LayoutWatcher) Close() error {
	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()
	return w.watcher.Close()
}
