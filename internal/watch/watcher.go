// Package watch reports edits of project configuration files.
package watch

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/specialistvlad/packer/internal/ctxlog"
)

// DefaultDebounce is the quiet period after the last event before a change
// is reported. Editors often write a file several times per save.
const DefaultDebounce = 300 * time.Millisecond

// Watcher watches a fixed set of file names inside one directory. The
// directory itself is watched so files replaced by rename are still seen.
type Watcher struct {
	mu       sync.Mutex
	watcher  *fsnotify.Watcher
	dir      string
	names    map[string]bool
	debounce time.Duration
	pending  map[string]time.Time
	changes  chan string
}

// New watches the given base names in dir.
func New(dir string, names []string, debounce time.Duration) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(dir); err != nil {
		fw.Close()
		return nil, err
	}

	w := &Watcher{
		watcher:  fw,
		dir:      dir,
		names:    make(map[string]bool, len(names)),
		debounce: debounce,
		pending:  make(map[string]time.Time),
		changes:  make(chan string, 1),
	}
	for _, name := range names {
		w.names[name] = true
	}
	return w, nil
}

// Changes delivers the base name of each changed file after its debounce
// period. Changes arriving while the previous one is unread are merged.
func (w *Watcher) Changes() <-chan string {
	return w.changes
}

// Run processes file system events until ctx is cancelled, then releases
// the underlying watcher.
func (w *Watcher) Run(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)
	defer w.watcher.Close()

	tick := w.debounce / 3
	if tick <= 0 {
		tick = 10 * time.Millisecond
	}
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("file watcher error", "error", err)

		case <-ticker.C:
			w.flush()
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) && !event.Has(fsnotify.Rename) && !event.Has(fsnotify.Remove) {
		return
	}
	name := filepath.Base(event.Name)
	if !w.names[name] {
		return
	}
	w.mu.Lock()
	w.pending[name] = time.Now()
	w.mu.Unlock()
}

func (w *Watcher) flush() {
	w.mu.Lock()
	var ready []string
	now := time.Now()
	for name, at := range w.pending {
		if now.Sub(at) >= w.debounce {
			ready = append(ready, name)
			delete(w.pending, name)
		}
	}
	w.mu.Unlock()

	for _, name := range ready {
		select {
		case w.changes <- name:
		default:
		}
	}
}
