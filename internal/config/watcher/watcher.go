// Package watcher reloads configuration when its file changes.
//
// The watcher observes the file's directory rather than the file itself so
// that editors which save by rename are still seen. Bursts of events for
// the file are coalesced into one callback after a quiet period.
package watcher

import (
	"errors"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ErrWatcherClosed is returned when using a closed watcher.
var ErrWatcherClosed = errors.New("watcher closed")

// Operation represents the type of file operation.
type Operation int

const (
	// OpWrite indicates the file was modified.
	OpWrite Operation = iota

	// OpCreate indicates a new file was created.
	OpCreate

	// OpRemove indicates the file was deleted.
	OpRemove

	// OpRename indicates the file was renamed.
	OpRename
)

// String returns the operation name.
func (op Operation) String() string {
	switch op {
	case OpWrite:
		return "write"
	case OpCreate:
		return "create"
	case OpRemove:
		return "remove"
	case OpRename:
		return "rename"
	default:
		return "unknown"
	}
}

// Event represents a debounced change to the watched file.
type Event struct {
	// Path is the absolute path to the changed file.
	Path string

	// Op is the most significant operation seen in the burst.
	Op Operation

	// Time is when the last raw event arrived.
	Time time.Time
}

// Handler is called when a file change is detected.
type Handler func(event Event)

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets the quiet period before a change is reported.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d >= 0 {
			w.debounce = d
		}
	}
}

// WithErrorHandler sets a callback for errors reported by fsnotify.
func WithErrorHandler(fn func(error)) Option {
	return func(w *Watcher) {
		w.onError = fn
	}
}

// Watcher monitors one configuration file.
type Watcher struct {
	mu sync.Mutex

	path     string
	fsw      *fsnotify.Watcher
	handler  Handler
	onError  func(error)
	debounce time.Duration

	pending *Event
	timer   *time.Timer

	closed  bool
	closeCh chan struct{}
	wg      sync.WaitGroup
}

// New starts watching path and calls handler after each burst of changes.
func New(path string, handler Handler, opts ...Option) (*Watcher, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(filepath.Dir(absPath)); err != nil {
		_ = fsw.Close()
		return nil, err
	}

	w := &Watcher{
		path:     absPath,
		fsw:      fsw,
		handler:  handler,
		debounce: 100 * time.Millisecond,
		closeCh:  make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}

	w.wg.Add(1)
	go w.processLoop()

	return w, nil
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string {
	return w.path
}

// Close stops the watcher. Pending events are dropped.
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
	w.pending = nil
	close(w.closeCh)
	w.mu.Unlock()

	w.wg.Wait()
	return w.fsw.Close()
}

func (w *Watcher) processLoop() {
	defer w.wg.Done()

	for {
		select {
		case <-w.closeCh:
			return

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if op, ok := convertOp(ev.Op); ok {
				w.queue(op)
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			if w.onError != nil {
				w.onError(err)
			}
		}
	}
}

// convertOp maps an fsnotify operation. Chmod is ignored.
func convertOp(op fsnotify.Op) (Operation, bool) {
	switch {
	case op.Has(fsnotify.Remove):
		return OpRemove, true
	case op.Has(fsnotify.Rename):
		return OpRename, true
	case op.Has(fsnotify.Create):
		return OpCreate, true
	case op.Has(fsnotify.Write):
		return OpWrite, true
	default:
		return 0, false
	}
}

// queue coalesces op into the pending event:
// a later create wins over remove and rename (save by rename),
// remove and rename win over write, and write never downgrades.
func (w *Watcher) queue(op Operation) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}

	now := time.Now()
	if w.pending == nil {
		w.pending = &Event{Path: w.path, Op: op, Time: now}
	} else {
		w.pending.Time = now
		if op != OpWrite {
			w.pending.Op = op
		}
	}

	if w.debounce == 0 {
		w.fireLocked()
		return
	}
	if w.timer == nil {
		w.timer = time.AfterFunc(w.debounce, w.fire)
	} else {
		w.timer.Reset(w.debounce)
	}
}

func (w *Watcher) fire() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.fireLocked()
}

func (w *Watcher) fireLocked() {
	if w.closed || w.pending == nil {
		return
	}
	ev := *w.pending
	w.pending = nil

	// The handler runs without the lock so it may reload and re-read files.
	w.mu.Unlock()
	defer w.mu.Lock()
	w.safeCall(ev)
}

// safeCall runs the handler, keeping the watcher alive if it panics.
func (w *Watcher) safeCall(ev Event) {
	defer func() {
		if r := recover(); r != nil && w.onError != nil {
			w.onError(errors.New("watcher: handler panicked"))
		}
	}()
	w.handler(ev)
}
