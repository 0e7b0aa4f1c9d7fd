package dispatcher

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/dshills/softtab/internal/dispatcher/handler"
	"github.com/dshills/softtab/internal/input/key"
)

// Dispatcher passes key events along an ordered chain of links.
type Dispatcher struct {
	mu sync.RWMutex

	links   []handler.Link
	config  Config
	metrics *Metrics
}

// New creates a new dispatcher with the given configuration.
func New(config Config) *Dispatcher {
	d := &Dispatcher{config: config}
	if config.EnableMetrics {
		d.metrics = NewMetrics()
	}
	return d
}

// NewWithDefaults creates a new dispatcher with default configuration.
func NewWithDefaults() *Dispatcher {
	return New(DefaultConfig())
}

// Append adds a link at the end of the chain.
func (d *Dispatcher) Append(l handler.Link) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.indexOf(l.Name()) >= 0 {
		return fmt.Errorf("%w: %s", ErrDuplicateLink, l.Name())
	}
	d.links = append(d.links, l)
	return nil
}

// InsertBefore adds a link ahead of the named link.
func (d *Dispatcher) InsertBefore(name string, l handler.Link) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.indexOf(l.Name()) >= 0 {
		return fmt.Errorf("%w: %s", ErrDuplicateLink, l.Name())
	}
	i := d.indexOf(name)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrLinkNotFound, name)
	}
	d.links = append(d.links[:i], append([]handler.Link{l}, d.links[i:]...)...)
	return nil
}

// Remove removes the named link.
func (d *Dispatcher) Remove(name string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	i := d.indexOf(name)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrLinkNotFound, name)
	}
	d.links = append(d.links[:i], d.links[i+1:]...)
	return nil
}

// Links returns the link names in chain order.
func (d *Dispatcher) Links() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()

	names := make([]string, len(d.links))
	for i, l := range d.links {
		names[i] = l.Name()
	}
	return names
}

// Metrics returns the metrics collector, or nil when disabled.
func (d *Dispatcher) Metrics() *Metrics {
	return d.metrics
}

func (d *Dispatcher) indexOf(name string) int {
	for i, l := range d.links {
		if l.Name() == name {
			return i
		}
	}
	return -1
}

// Dispatch runs ev through the chain and returns the first result that
// is not a forward. The event is passed to every link unchanged.
func (d *Dispatcher) Dispatch(ev key.Event) handler.Result {
	d.mu.RLock()
	links := make([]handler.Link, len(d.links))
	copy(links, d.links)
	d.mu.RUnlock()

	result := handler.Forward()
	for _, l := range links {
		if d.config.RecoverFromPanic {
			result = d.handleWithRecovery(l, ev)
		} else {
			result = l.Handle(ev)
		}

		if d.metrics != nil {
			d.metrics.recordLink(l.Name(), result.Status)
		}
		if result.Status != handler.StatusForward {
			break
		}
	}

	if d.metrics != nil {
		d.metrics.recordDispatch(result.Status)
	}
	return result
}

// handleWithRecovery runs a link with panic recovery.
func (d *Dispatcher) handleWithRecovery(l handler.Link, ev key.Event) (result handler.Result) {
	defer func() {
		if r := recover(); r != nil {
			stack := make([]byte, 4096)
			n := runtime.Stack(stack, false)

			result = handler.Error(fmt.Errorf("%w: %s on %s: %v\n%s", ErrPanic, l.Name(), ev, r, stack[:n]))

			if d.metrics != nil {
				d.metrics.recordPanic(l.Name())
			}
		}
	}()

	return l.Handle(ev)
}
