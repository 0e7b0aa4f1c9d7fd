package softtab

import "github.com/dshills/softtab/internal/engine/cursor"

// SelectionAdjuster keeps the view selection in step with caret moves.
type SelectionAdjuster struct {
	view CaretView
}

// Adjust returns the selection after the caret moves to caret.
// An extending move keeps anchor fixed; any other move collapses the
// selection at caret.
func (SelectionAdjuster) Adjust(extend bool, anchor, caret cursor.Position) cursor.Selection {
	if extend {
		return cursor.NewSelection(anchor, caret)
	}
	return cursor.NewCaretSelection(caret)
}

// Apply moves the view caret to caret and updates the selection.
func (a SelectionAdjuster) Apply(extend bool, anchor, caret cursor.Position) {
	sel := a.Adjust(extend, anchor, caret)
	if sel.IsEmpty() {
		a.view.MoveCaret(caret)
	} else {
		a.view.Select(sel)
	}
	a.view.EnsureVisible()
}
