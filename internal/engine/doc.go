// Package engine provides the per-view editing facade used by the host.
//
// An Engine combines a text buffer with the caret and selection of one
// view, and publishes caret-moved notifications. It is the concrete
// implementation of the buffer and caret capabilities that the soft-tab
// engine consumes.
//
// # Architecture
//
// The engine is built on two sub-packages:
//
//   - buffer: line-indexed text storage with offset/point conversion
//   - cursor: Position (with virtual space) and Selection values
//
// # Basic Usage
//
//	e := engine.New(engine.WithContent("    foo\nbar"))
//
//	// Move the caret; listeners are notified
//	unsub := e.SubscribeCaret(func(old, new cursor.Position) { ... })
//	defer unsub()
//	e.MoveCaret(cursor.At(0, 4))
//
//	// Extend a selection; the caret follows the active end
//	e.Select(cursor.NewSelection(cursor.At(0, 0), cursor.At(0, 4)))
//
// # Virtual Space
//
// The caret may sit past the end of a line. MoveCaret normalizes a column
// beyond the line length into VirtualSpaces. Edits that shift the caret
// drop its virtual space.
//
// # Thread Safety
//
// Engine methods are safe for concurrent use. Listeners are invoked
// outside the engine lock, on the goroutine that changed the caret.
package engine
