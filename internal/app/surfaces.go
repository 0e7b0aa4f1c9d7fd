package app

import (
	"sync"

	"github.com/dshills/softtab/internal/softtab"
)

// Surface is a popup that owns the keyboard while it is open.
type Surface uint8

const (
	// SurfaceCompletion is the completion popup opened by Ctrl+Space.
	SurfaceCompletion Surface = iota
)

// String returns the surface name.
func (s Surface) String() string {
	switch s {
	case SurfaceCompletion:
		return "completion"
	default:
		return "unknown"
	}
}

// Surfaces tracks the open surfaces and script state of one view.
// It is the view's softtab.Suppressor.
type Surfaces struct {
	mu         sync.RWMutex
	open       map[Surface]bool
	automation func() bool
}

var _ softtab.Suppressor = (*Surfaces)(nil)

// NewSurfaces creates a tracker. automation reports whether a script is
// driving the view; nil means never.
func NewSurfaces(automation func() bool) *Surfaces {
	return &Surfaces{open: make(map[Surface]bool), automation: automation}
}

// Set records whether s is open.
func (t *Surfaces) Set(s Surface, open bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if open {
		t.open[s] = true
	} else {
		delete(t.open, s)
	}
}

// IsOpen reports whether s is open.
func (t *Surfaces) IsOpen(s Surface) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.open[s]
}

// SurfaceActive reports whether any surface is open.
func (t *Surfaces) SurfaceActive() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.open) > 0
}

// InAutomation reports whether a script is running.
func (t *Surfaces) InAutomation() bool {
	t.mu.RLock()
	fn := t.automation
	t.mu.RUnlock()
	return fn != nil && fn()
}

func (t *Surfaces) setAutomation(fn func() bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.automation = fn
}
