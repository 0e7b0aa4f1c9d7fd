// Package handler provides the link interface and result types for the
// key dispatch chain.
package handler

import "github.com/dshills/softtab/internal/input/key"

// Link is one element of a dispatch chain.
type Link interface {
	// Name identifies the link within its chain.
	Name() string

	// Handle processes ev. Returning a forward result passes ev to the
	// next link.
	Handle(ev key.Event) Result
}

// LinkFunc adapts a function to the Link interface.
type LinkFunc struct {
	name string
	fn   func(ev key.Event) Result
}

// NewLinkFunc creates a LinkFunc.
func NewLinkFunc(name string, fn func(ev key.Event) Result) *LinkFunc {
	return &LinkFunc{name: name, fn: fn}
}

// Name implements Link.
func (f *LinkFunc) Name() string {
	return f.name
}

// Handle implements Link.
func (f *LinkFunc) Handle(ev key.Event) Result {
	if f.fn == nil {
		return Forward()
	}
	return f.fn(ev)
}
