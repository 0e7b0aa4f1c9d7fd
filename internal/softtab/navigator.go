package softtab

import (
	"go.uber.org/zap"

	"github.com/dshills/softtab/internal/engine/cursor"
)

// Navigator handles arrow keys over soft tabs.
//
// Horizontal moves outside the code range jump to the previous or next
// stop when every character crossed is a space. Vertical moves re-home the
// caret at the saved virtual column so ragged lines do not drift it.
type Navigator struct {
	buf   TextBuffer
	view  CaretView
	sel   SelectionAdjuster
	state *CaretState
	snap  VerticalSnap
	log   *zap.Logger

	indentSize int
}

// Left moves the caret back to the previous stop.
func (n *Navigator) Left(extend bool) Result {
	p := n.view.Caret()
	line, err := lineAt(n.buf, p.Line)
	if err != nil {
		n.log.Debug("left: caret line unavailable", zap.Error(err))
		return Unhandled
	}

	m := NewColumnModel(line)
	if m.IsWithinCodeRange(p) || p.InVirtualSpace() {
		return Unhandled
	}

	col := m.ColumnOf(p)
	if c, ok := m.CharBefore(col); !ok || c != ' ' {
		return Unhandled
	}

	target := PreviousStop(col, n.indentSize)
	if !m.AllSpaces(target, col) {
		return Unhandled
	}

	n.sel.Apply(extend, n.view.Selection().Anchor, cursor.At(p.Line, target))
	return Handled
}

// Right moves the caret forward to the next stop.
func (n *Navigator) Right(extend bool) Result {
	p := n.view.Caret()
	line, err := lineAt(n.buf, p.Line)
	if err != nil {
		n.log.Debug("right: caret line unavailable", zap.Error(err))
		return Unhandled
	}

	m := NewColumnModel(line)
	if m.IsWithinCodeRange(p) || p.InVirtualSpace() {
		return Unhandled
	}

	col := m.ColumnOf(p)
	if c, ok := m.CharAt(col); !ok || c != ' ' {
		return Unhandled
	}

	target := NextStop(col, n.indentSize)
	if target > line.Len() || !m.AllSpaces(col, target) {
		return Unhandled
	}

	n.sel.Apply(extend, n.view.Selection().Anchor, cursor.At(p.Line, target))
	return Handled
}

// Vertical moves the caret one line up or down at the saved column.
// A move past the first or last line leaves the caret in place; without
// extend it still collapses the selection there.
func (n *Navigator) Vertical(up, extend bool) Result {
	p := n.view.Caret()
	cur, err := lineAt(n.buf, p.Line)
	if err != nil {
		n.log.Debug("vertical: caret line unavailable", zap.Error(err))
		return Unhandled
	}

	if !n.state.HasSavedColumn {
		n.state.SavedColumn = NewColumnModel(cur).VirtualColumnOf(p)
		n.state.HasSavedColumn = true
	}

	var target Line
	if up {
		target, err = previousLine(n.buf, cur)
	} else {
		target, err = nextLine(n.buf, cur)
	}
	if err != nil {
		n.log.Debug("vertical move abandoned", zap.Int("line", p.Line), zap.Error(err))
		if !extend && !n.view.Selection().IsEmpty() {
			n.view.MoveCaret(p)
		}
		return Handled
	}

	n.sel.Apply(extend, n.view.Selection().Anchor, n.place(target, n.state.SavedColumn))
	return Handled
}

// place returns the caret position for column on target.
func (n *Navigator) place(target Line, column int) cursor.Position {
	if column > target.Len() {
		return cursor.Position{
			Line:          target.Number,
			Column:        target.Len(),
			VirtualSpaces: column - target.Len(),
		}
	}

	if n.snap == SnapNearest && column%n.indentSize != 0 {
		indentEnd := target.IndentEnd()
		if column <= indentEnd {
			if stop := NearestStop(column, n.indentSize); stop <= indentEnd {
				column = stop
			}
		}
	}
	return cursor.At(target.Number, column)
}
