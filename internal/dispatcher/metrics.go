package dispatcher

import (
	"sort"
	"sync"

	"github.com/dshills/softtab/internal/dispatcher/handler"
)

// Metrics collects dispatch statistics.
type Metrics struct {
	mu sync.RWMutex

	links map[string]*LinkMetrics

	totalDispatches uint64
	totalForwarded  uint64
	totalErrors     uint64
}

// LinkMetrics holds the counts for one link.
type LinkMetrics struct {
	Name      string
	Handled   uint64
	Forwarded uint64
	Errors    uint64
	Panics    uint64
}

// NewMetrics creates a new metrics collector.
func NewMetrics() *Metrics {
	return &Metrics{links: make(map[string]*LinkMetrics)}
}

func (m *Metrics) link(name string) *LinkMetrics {
	lm := m.links[name]
	if lm == nil {
		lm = &LinkMetrics{Name: name}
		m.links[name] = lm
	}
	return lm
}

// recordLink records the outcome of one link.
func (m *Metrics) recordLink(name string, status handler.Status) {
	m.mu.Lock()
	defer m.mu.Unlock()

	lm := m.link(name)
	switch status {
	case handler.StatusHandled:
		lm.Handled++
	case handler.StatusForward:
		lm.Forwarded++
	case handler.StatusError:
		lm.Errors++
	}
}

// recordPanic records a recovered panic.
func (m *Metrics) recordPanic(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.link(name).Panics++
}

// recordDispatch records the final status of one dispatch.
func (m *Metrics) recordDispatch(status handler.Status) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.totalDispatches++
	switch status {
	case handler.StatusForward:
		m.totalForwarded++
	case handler.StatusError:
		m.totalErrors++
	}
}

// Link returns a copy of the metrics for one link.
func (m *Metrics) Link(name string) (LinkMetrics, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	lm, ok := m.links[name]
	if !ok {
		return LinkMetrics{}, false
	}
	return *lm, true
}

// Links returns all link metrics sorted by name.
func (m *Metrics) Links() []LinkMetrics {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]LinkMetrics, 0, len(m.links))
	for _, lm := range m.links {
		out = append(out, *lm)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Totals returns the dispatch, forwarded and error counts.
func (m *Metrics) Totals() (dispatches, forwarded, errors uint64) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.totalDispatches, m.totalForwarded, m.totalErrors
}

// Reset clears all metrics.
func (m *Metrics) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.links = make(map[string]*LinkMetrics)
	m.totalDispatches = 0
	m.totalForwarded = 0
	m.totalErrors = 0
}
