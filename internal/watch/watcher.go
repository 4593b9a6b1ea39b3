// Package watch monitors the import directory for CSV drops and feeds them
// into the store. Rapid saves from editors and network copies are debounced
// so a file is imported once, after it stops changing.
package watch

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"barkeep/internal/logging"
	"barkeep/internal/store"
)

// Event reports one completed import.
type Event struct {
	Path string
	Rows int
	Err  error
}

// Watcher watches one import directory. Imported results are delivered on
// Events; the UI reloads its lists when one arrives.
type Watcher struct {
	mu          sync.Mutex
	watcher     *fsnotify.Watcher
	st          *store.Store
	dir         string
	debounceMap map[string]time.Time
	debounceDur time.Duration
	events      chan Event
	stopCh      chan struct{}
	doneCh      chan struct{}
	running     bool
}

// New creates a watcher over dir, importing into st.
func New(st *store.Store, dir string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{
		watcher:     fw,
		st:          st,
		dir:         dir,
		debounceMap: make(map[string]time.Time),
		debounceDur: 500 * time.Millisecond,
		events:      make(chan Event, 16),
		stopCh:      make(chan struct{}),
		doneCh:      make(chan struct{}),
	}, nil
}

// Events returns the channel import results are delivered on.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Start imports any files already sitting in the directory, then begins
// watching for new ones. Non-blocking; the loop runs in its own goroutine
// until Stop or context cancellation.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.mu.Unlock()

	log := logging.Get(logging.CategoryWatch)

	if err := os.MkdirAll(w.dir, 0755); err != nil {
		log.Warn("failed to create import dir %s: %v (continuing)", w.dir, err)
	}
	if err := w.watcher.Add(w.dir); err != nil {
		log.Warn("initial watch of %s failed: %v", w.dir, err)
	} else {
		log.Info("watching %s", w.dir)
	}

	// Pre-existing drops are imported before any filesystem event fires.
	if n, err := store.ImportDir(w.st, w.dir); err != nil {
		log.Error("initial import failed: %v", err)
		w.deliver(Event{Path: w.dir, Err: err})
	} else if n > 0 {
		w.deliver(Event{Path: w.dir, Rows: n})
	}

	go w.run(ctx)
	return nil
}

// Stop halts the watcher and waits for the loop to exit.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	w.mu.Unlock()

	close(w.stopCh)
	<-w.doneCh

	if err := w.watcher.Close(); err != nil {
		logging.Get(logging.CategoryWatch).Error("error closing watcher: %v", err)
	}
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	log := logging.Get(logging.CategoryWatch)
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Error("watch error: %v", err)
		case <-ticker.C:
			w.processDebounced()
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if !strings.EqualFold(filepath.Ext(event.Name), ".csv") {
		return
	}
	if event.Op&(fsnotify.Create|fsnotify.Write) == 0 {
		return
	}
	w.mu.Lock()
	w.debounceMap[event.Name] = time.Now()
	w.mu.Unlock()
}

// processDebounced imports every file whose last event is older than the
// debounce window.
func (w *Watcher) processDebounced() {
	w.mu.Lock()
	var due []string
	now := time.Now()
	for path, last := range w.debounceMap {
		if now.Sub(last) >= w.debounceDur {
			due = append(due, path)
			delete(w.debounceMap, path)
		}
	}
	w.mu.Unlock()

	for _, path := range due {
		n, err := store.ImportCSV(w.st, path)
		if err != nil {
			logging.Get(logging.CategoryWatch).Error("import of %s failed: %v", path, err)
		}
		w.deliver(Event{Path: path, Rows: n, Err: err})
	}
}

// deliver drops the event if nobody is draining the channel; the watcher
// must never block the import path on a slow UI.
func (w *Watcher) deliver(ev Event) {
	select {
	case w.events <- ev:
	default:
	}
}
