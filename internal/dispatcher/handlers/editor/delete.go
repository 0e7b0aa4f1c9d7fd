package editor

import (
	"unicode/utf8"

	"github.com/dshills/softtab/internal/dispatcher/handler"
	"github.com/dshills/softtab/internal/engine/cursor"
)

// backspace removes the character before the caret, joins with the
// previous line at column 0, or steps back through virtual space.
func (l *Link) backspace() handler.Result {
	if !l.view.Selection().IsEmpty() {
		return l.deleteSelection()
	}

	p := l.view.Caret()
	if p.VirtualSpaces > 0 {
		p.VirtualSpaces--
		return l.place(p, false)
	}

	end, err := l.offset(p)
	if err != nil {
		return handler.Error(err)
	}

	var start int
	switch {
	case p.Column > 0:
		_, size := utf8.DecodeLastRuneInString(l.line(p.Line)[:p.Column])
		start = end - size
	case p.Line > 0:
		start = end - 1
	default:
		return handler.Handled()
	}

	if err := l.view.Delete(start, end); err != nil {
		return handler.Error(err)
	}
	l.view.EnsureVisible()
	return handler.Handled().WithRedraw()
}

// deleteForward removes the character at the caret, joining with the
// next line at the line end.
func (l *Link) deleteForward() handler.Result {
	if !l.view.Selection().IsEmpty() {
		return l.deleteSelection()
	}

	p := l.view.Caret()
	text := l.line(p.Line)
	start, err := l.offset(p)
	if err != nil {
		return handler.Error(err)
	}

	var end int
	switch {
	case p.VirtualSpaces > 0:
		return handler.Handled()
	case p.Column < len(text):
		_, size := utf8.DecodeRuneInString(text[p.Column:])
		end = start + size
	case p.Line+1 < l.view.LineCount():
		end = start + 1
	default:
		return handler.Handled()
	}

	if err := l.view.Delete(start, end); err != nil {
		return handler.Error(err)
	}
	return handler.Handled().WithRedraw()
}

// deleteSelection removes the selected text and collapses the caret at
// its start.
func (l *Link) deleteSelection() handler.Result {
	sel := l.view.Selection()
	start, end := sel.Start().Physical(), sel.End().Physical()

	from, err := l.offset(start)
	if err != nil {
		return handler.Error(err)
	}
	to, err := l.offset(end)
	if err != nil {
		return handler.Error(err)
	}

	if from < to {
		if err := l.view.Delete(from, to); err != nil {
			return handler.Error(err)
		}
	}
	l.view.MoveCaret(cursor.At(start.Line, start.Column))
	l.view.EnsureVisible()
	return handler.Handled().WithRedraw()
}
