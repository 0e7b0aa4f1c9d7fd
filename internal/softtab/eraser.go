package softtab

import (
	"strings"

	"go.uber.org/zap"

	"github.com/dshills/softtab/internal/engine/cursor"
)

// Eraser removes soft tabs on Backspace and Delete.
type Eraser struct {
	buf    TextBuffer
	view   CaretView
	gating EraseGating
	log    *zap.Logger

	indentSize int
}

// Backspace removes the space run back to the previous stop.
func (e *Eraser) Backspace() Result {
	if !e.view.Selection().IsEmpty() {
		return Unhandled
	}

	p := e.view.Caret()
	line, m, ok := e.model(p)
	if !ok || m.IsWithinCodeRange(p) {
		return Unhandled
	}

	if p.InVirtualSpace() {
		if line, m, ok = e.materialize(line, p); !ok {
			return Unhandled
		}
		p = cursor.At(line.Number, line.Len())
	}

	col := m.ColumnOf(p)
	if col == 0 {
		return Unhandled
	}

	remove := ((col - 1) % e.indentSize) + 1
	count := 0
	for count < remove {
		if c, ok := m.CharAt(col - 1 - count); !ok || c != ' ' {
			break
		}
		count++
	}
	if !e.gating.allows(count, e.indentSize) {
		return Unhandled
	}

	if err := e.buf.Delete(line.Start+col-count, line.Start+col); err != nil {
		e.log.Debug("backspace: delete failed", zap.Error(err))
		return Unhandled
	}
	e.view.MoveCaret(cursor.At(line.Number, col-count))
	e.view.EnsureVisible()
	return Handled
}

// Delete removes the space run forward to the next stop.
// It never applies in virtual space.
func (e *Eraser) Delete() Result {
	if !e.view.Selection().IsEmpty() {
		return Unhandled
	}

	p := e.view.Caret()
	if p.InVirtualSpace() {
		return Unhandled
	}

	line, m, ok := e.model(p)
	if !ok || m.IsWithinCodeRange(p) {
		return Unhandled
	}

	col := m.ColumnOf(p)
	remove := e.indentSize - col%e.indentSize
	count := 0
	for count < remove {
		if c, ok := m.CharAt(col + count); !ok || c != ' ' {
			break
		}
		count++
	}
	if !e.gating.allows(count, e.indentSize) {
		return Unhandled
	}

	if err := e.buf.Delete(line.Start+col, line.Start+col+count); err != nil {
		e.log.Debug("delete: delete failed", zap.Error(err))
		return Unhandled
	}
	e.view.MoveCaret(cursor.At(line.Number, col))
	e.view.EnsureVisible()
	return Handled
}

func (e *Eraser) model(p cursor.Position) (Line, ColumnModel, bool) {
	line, err := lineAt(e.buf, p.Line)
	if err != nil {
		e.log.Debug("erase: caret line unavailable", zap.Error(err))
		return Line{}, ColumnModel{}, false
	}
	return line, NewColumnModel(line), true
}

// materialize turns the caret's virtual space into real spaces and moves
// the caret to the new line end.
func (e *Eraser) materialize(line Line, p cursor.Position) (Line, ColumnModel, bool) {
	if err := e.buf.Insert(line.Start+line.Len(), strings.Repeat(" ", p.VirtualSpaces)); err != nil {
		e.log.Debug("erase: materialize virtual space failed", zap.Error(err))
		return Line{}, ColumnModel{}, false
	}
	line, m, ok := e.model(cursor.At(line.Number, 0))
	if !ok {
		return Line{}, ColumnModel{}, false
	}
	e.view.MoveCaret(cursor.At(line.Number, line.Len()))
	return line, m, true
}
