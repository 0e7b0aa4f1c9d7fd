// Package cursor provides caret and selection values for a single view.
//
// Positions are expressed as line/column pairs plus a count of virtual
// spaces. Virtual spaces are caret columns past the end of a line that
// exist only logically; they are not backed by buffer content.
//
// Selection Model:
//
// Selections use an anchor/active model where:
//   - Anchor: The position where the selection started
//   - Active: The current caret position (where typing would occur)
//
// When Anchor == Active, the selection represents just a caret with no
// selected text. The selection can extend forward or backward,
// preserving the user's selection direction.
//
// Basic usage:
//
//	pos := cursor.Position{Line: 2, Column: 4}
//	sel := cursor.NewCaretSelection(pos)
//
//	// Extend selection, anchor stays put
//	sel = sel.Extend(cursor.Position{Line: 2, Column: 8})
//
//	// Collapse back to the caret
//	sel = sel.Collapse()
//
// Thread Safety:
//
// Position and Selection are immutable value types and safe for
// concurrent use.
package cursor
