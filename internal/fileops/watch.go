package fileops

import (
	"fmt"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/LFroesch/burrow/internal/logger"
)

const watchDebounce = 200 * time.Millisecond

// Watcher reports changes inside a single directory. Bursts of fsnotify
// events are coalesced into one notification carrying the directory path.
type Watcher struct {
	fsw    *fsnotify.Watcher
	events chan string

	mu     sync.Mutex
	dir    string
	closed bool
	timer  *time.Timer
}

// NewWatcher starts the event loop. Callers must Close it.
func NewWatcher() (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	w := &Watcher{
		fsw:    fsw,
		events: make(chan string, 1),
	}
	go w.loop()
	return w, nil
}

// Watch replaces the watched directory with dir. Watching the same
// directory again is a no-op.
func (w *Watcher) Watch(dir string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed || dir == w.dir {
		return nil
	}
	if w.dir != "" {
		_ = w.fsw.Remove(w.dir)
	}
	w.dir = ""
	if err := w.fsw.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	w.dir = dir
	return nil
}

// Events delivers the path of a directory whose contents changed.
func (w *Watcher) Events() <-chan string {
	return w.events
}

// Close stops the watcher and closes Events.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()
	return w.fsw.Close()
}

func (w *Watcher) loop() {
	defer func() {
		w.mu.Lock()
		w.closed = true
		if w.timer != nil {
			w.timer.Stop()
		}
		close(w.events)
		w.mu.Unlock()
	}()

	for {
		select {
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if event.Op == fsnotify.Chmod {
				continue
			}
			w.schedule()

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			logger.Warn("Directory watcher error: %v", err)
		}
	}
}

func (w *Watcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
	dir := w.dir
	w.timer = time.AfterFunc(watchDebounce, func() {
		w.mu.Lock()
		defer w.mu.Unlock()
		if w.closed || dir != w.dir {
			return
		}
		select {
		case w.events <- dir:
		default:
		}
	})
}
