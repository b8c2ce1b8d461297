// Package watcher reloads a local catalog file when it changes on disk.
package watcher

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the window used to coalesce rapid write bursts. Editors
// and atomic-save tools often emit several events per save.
const DefaultDebounce = 250 * time.Millisecond

// Debouncer coalesces rapid triggers into a single callback invocation. Only
// the most recently scheduled callback runs once the window elapses.
type Debouncer struct {
	window time.Duration
	mu     sync.Mutex
	timer  *time.Timer
	seq    uint64
}

// NewDebouncer creates a debouncer. A zero window means DefaultDebounce.
func NewDebouncer(window time.Duration) *Debouncer {
	if window == 0 {
		window = DefaultDebounce
	}
	return &Debouncer{window: window}
}

// Trigger schedules callback after the window, replacing any pending one.
func (d *Debouncer) Trigger(callback func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.seq++
	seq := d.seq

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.window, func() {
		d.mu.Lock()
		// A newer trigger superseded this one while the timer raced.
		stale := seq != d.seq
		if !stale {
			d.timer = nil
		}
		d.mu.Unlock()
		if stale {
			return
		}
		callback()
	})
}

// Cancel drops any pending callback, including one already racing the timer.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.seq++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// CatalogWatcher watches one catalog file and invokes a callback, debounced,
// whenever its contents change.
type CatalogWatcher struct {
	fw       *fsnotify.Watcher
	debounce *Debouncer
	path     string
	done     chan struct{}
}

// WatchCatalog starts watching path. onChange runs on the watcher goroutine
// after each debounced change. The watch is placed on the parent directory so
// atomic renames (write temp + rename over) are still seen.
func WatchCatalog(path string, onChange func()) (*CatalogWatcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	dir := filepath.Dir(path)
	if err := fw.Add(dir); err != nil {
		fw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	w := &CatalogWatcher{
		fw:       fw,
		debounce: NewDebouncer(0),
		path:     filepath.Clean(path),
		done:     make(chan struct{}),
	}
	go w.loop(onChange)
	return w, nil
}

func (w *CatalogWatcher) loop(onChange func()) {
	for {
		select {
		case ev, ok := <-w.fw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.debounce.Trigger(onChange)
		case _, ok := <-w.fw.Errors:
			if !ok {
				return
			}
		case <-w.done:
			return
		}
	}
}

// Close stops the watcher and drops any pending reload.
func (w *CatalogWatcher) Close() error {
	close(w.done)
	w.debounce.Cancel()
	return w.fw.Close()
}
