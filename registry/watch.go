package registry

import (
	"context"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// defaultDebounceDelay coalesces editor write bursts into one reload.
const defaultDebounceDelay = 200 * time.Millisecond

// Watch monitors the registry's data directory and invalidates the
// memoized system of any variant whose backing ".data" file is written,
// created, renamed or removed, so the next Lookup reloads it. Watch
// blocks until ctx is canceled; it is a no-op error if the registry has
// no data directory. Watching is entirely outside the conversion hot
// path.
func (r *Registry) Watch(ctx context.Context) error {
	if r.dataDir == "" {
		return nil
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(r.dataDir); err != nil {
		return err
	}

	debouncer := newDebouncer(defaultDebounceDelay, func(path string) {
		base := strings.TrimSuffix(filepath.Base(path), ".data")
		r.Invalidate(base)
	})
	defer debouncer.cancelAll()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Ext(event.Name) != ".data" {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) != 0 {
				debouncer.add(event.Name)
			}
		case _, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			// Watch errors are transient; keep watching.
		}
	}
}

// debouncer delays processing until file activity settles, coalescing
// rapid events for the same path into one callback.
type debouncer struct {
	delay    time.Duration
	callback func(path string)
	mu       sync.Mutex
	pending  map[string]*time.Timer
}

func newDebouncer(delay time.Duration, callback func(path string)) *debouncer {
	return &debouncer{
		delay:    delay,
		callback: callback,
		pending:  make(map[string]*time.Timer),
	}
}

// add schedules a path for processing after the debounce delay,
// resetting the timer if the path is already pending.
func (d *debouncer) add(path string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if timer, exists := d.pending[path]; exists {
		timer.Stop()
	}
	d.pending[path] = time.AfterFunc(d.delay, func() {
		d.mu.Lock()
		delete(d.pending, path)
		d.mu.Unlock()

		// Invoke outside the lock to avoid deadlocks.
		d.callback(path)
	})
}

// cancelAll stops all pending timers, preventing callbacks during
// shutdown.
func (d *debouncer) cancelAll() {
	d.mu.Lock()
	defer d.mu.Unlock()

	for path, timer := range d.pending {
		timer.Stop()
		delete(d.pending, path)
	}
}
