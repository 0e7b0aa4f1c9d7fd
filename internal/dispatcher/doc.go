// Package dispatcher routes key events through an ordered chain of links.
//
// Each view owns one Dispatcher. A link either handles the event or
// forwards it; a forwarded event reaches the next link unchanged, and the
// dispatcher returns the first non-forward result verbatim. When every
// link forwards, Dispatch returns a forward result so the caller can apply
// application-level bindings.
//
// # Typical Chain
//
//  1. completion popup (owns arrows and Enter while open)
//  2. soft-tab engine
//  3. editor defaults (single-character moves, inserts, deletes)
//
// # Usage
//
//	d := dispatcher.New(dispatcher.DefaultConfig())
//	d.Append(popup)
//	d.Append(softtabLink)
//	d.Append(editor.New(view, indent))
//
//	result := d.Dispatch(ev)
//
// # Panics
//
// With RecoverFromPanic set, a panicking link produces an error result
// wrapping ErrPanic, and the remaining links are skipped.
package dispatcher
