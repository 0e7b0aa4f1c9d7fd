package engine

import "github.com/dshills/softtab/internal/engine/cursor"

// Option configures an Engine during creation.
type Option func(*Engine)

// WithContent sets the initial content of the engine.
func WithContent(content string) Option {
	return func(e *Engine) {
		e.initContent = content
	}
}

// WithReadOnly creates a read-only engine.
// Write operations will return ErrReadOnly.
func WithReadOnly() Option {
	return func(e *Engine) {
		e.readOnly = true
	}
}

// WithRevealHandler sets the callback invoked by EnsureVisible.
func WithRevealHandler(fn func(cursor.Position)) Option {
	return func(e *Engine) {
		e.onReveal = fn
	}
}
