// Package softtab makes a space-indented buffer behave as if it used real
// tab characters.
//
// Arrow keys, Backspace and Delete near leading or trailing whitespace
// move over, or remove, a whole indent unit (a soft tab) instead of a
// single space. Inside code content every key keeps its default behavior.
//
// # Components
//
//   - ColumnModel: column arithmetic over one line (leading and trailing
//     space runs, code range, character lookup)
//   - TabStops: nearest, previous and next stop computation
//   - Navigator: arrow-key state machine with vertical column memory
//   - Eraser: soft-tab Backspace and Delete
//   - SelectionAdjuster: keeps the selection in step with caret moves
//   - Controller: per-view entry point owning CaretState and the
//     re-entrancy guard
//
// # Host Capabilities
//
// The package does not own text storage, rendering or configuration. A
// host supplies them through the TextBuffer, CaretView, ConfigSource and
// Suppressor interfaces. The Controller is meant to sit in a key
// interception chain: when Exec returns Unhandled the host runs its
// default behavior for the key.
//
// # Usage
//
//	c := softtab.New(buf, view, cfg, surfaces,
//		softtab.WithEraseGating(softtab.RunGating),
//		softtab.WithLogger(logger))
//	defer c.Close()
//
//	if c.Exec(softtab.Keystroke{Command: softtab.CmdRight}) == softtab.Unhandled {
//		// host default single-character move
//	}
//
// # Thread Safety
//
// A Controller is bound to one view and must be driven from that view's
// event goroutine. Controllers for different views share nothing.
package softtab
