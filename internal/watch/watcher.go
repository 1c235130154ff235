// Package watch monitors the local download directory while a copy is
// in flight, so files delivered by the bridge tool can be reported in
// the log as they arrive.
package watch

import (
	"fmt"
	"sync"
	"time"

	"devpull/internal/log"

	"github.com/fsnotify/fsnotify"
)

// Arrival represents a file appearing in the watched directory.
type Arrival struct {
	Path      string
	Timestamp time.Time
}

// Watcher reports file creations in a single directory using fsnotify.
type Watcher struct {
	dir       string
	arrivals  chan Arrival
	stopChan  chan struct{}
	fsWatcher *fsnotify.Watcher

	mutex   sync.Mutex
	running bool
}

// New creates a watcher for the given directory.
func New(dir string) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	if err := fsWatcher.Add(dir); err != nil {
		fsWatcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	return &Watcher{
		dir:       dir,
		arrivals:  make(chan Arrival, 10),
		stopChan:  make(chan struct{}),
		fsWatcher: fsWatcher,
	}, nil
}

// Arrivals returns the channel of detected file arrivals. It is closed
// when the watcher stops.
func (w *Watcher) Arrivals() <-chan Arrival {
	return w.arrivals
}

// Start begins watching in a background goroutine.
func (w *Watcher) Start() {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	if w.running {
		return
	}
	w.running = true

	go w.loop()
}

func (w *Watcher) loop() {
	defer close(w.arrivals)
	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Create) {
				continue
			}
			select {
			case w.arrivals <- Arrival{Path: event.Name, Timestamp: time.Now()}:
			case <-w.stopChan:
				return
			}
		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			log.Warnf("watching %s: %v", w.dir, err)
		case <-w.stopChan:
			return
		}
	}
}

// Stop terminates the watcher and releases the fsnotify handle. Safe to
// call more than once.
func (w *Watcher) Stop() {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	if !w.running {
		return
	}
	w.running = false

	close(w.stopChan)
	if err := w.fsWatcher.Close(); err != nil {
		log.Warnf("closing watcher: %v", err)
	}
}
