// Package backend provides the terminal abstraction the renderer draws on.
package backend

import "github.com/dshills/softtab/internal/input/key"

// EventType identifies the type of terminal event.
type EventType int

const (
	EventNone EventType = iota
	EventKey
	EventMouse
	EventResize
	EventInterrupt
)

// Event represents a terminal event.
type Event struct {
	Type EventType

	// Key is set for EventKey.
	Key key.Event

	// Mouse event fields. Only primary button presses are reported.
	MouseX, MouseY int

	// Resize event fields.
	Width, Height int

	// Data is the payload of EventInterrupt.
	Data any
}

// Style is a cell style.
type Style struct {
	Reverse   bool
	Bold      bool
	Dim       bool
	Underline bool
}

// Cell is one screen cell.
type Cell struct {
	Rune  rune
	Style Style
}

// Backend is a drawable screen with an event source.
type Backend interface {
	Init() error
	Shutdown()
	Size() (width, height int)
	SetCell(x, y int, c Cell)
	Clear()
	Show()
	ShowCursor(x, y int)
	HideCursor()

	// PollEvent blocks until an event arrives. It returns EventNone after
	// Shutdown.
	PollEvent() Event

	// Interrupt queues an EventInterrupt carrying data.
	Interrupt(data any)
}
