package editor

import (
	"strings"

	"github.com/dshills/softtab/internal/dispatcher/handler"
)

// insertText replaces the selection with text, filling virtual space
// first so the text lands at the caret's visual column.
func (l *Link) insertText(text string) handler.Result {
	if !l.view.Selection().IsEmpty() {
		if res := l.deleteSelection(); res.Status == handler.StatusError {
			return res
		}
	}

	p := l.view.Caret()
	off, err := l.offset(p)
	if err != nil {
		return handler.Error(err)
	}
	if p.VirtualSpaces > 0 {
		text = strings.Repeat(" ", p.VirtualSpaces) + text
	}
	if err := l.view.Insert(off, text); err != nil {
		return handler.Error(err)
	}
	l.view.EnsureVisible()
	return handler.Handled().WithRedraw()
}

// newline splits the line and carries the leading spaces over.
func (l *Link) newline() handler.Result {
	p := l.view.Caret()
	text := l.line(p.Line)
	indent := len(text) - len(strings.TrimLeft(text, " "))
	if p.Column < indent {
		indent = p.Column
	}

	sel := l.view.Selection()
	if !sel.IsEmpty() {
		if res := l.deleteSelection(); res.Status == handler.StatusError {
			return res
		}
	}

	// Virtual space is not carried into the new line.
	p = l.view.Caret()
	p.VirtualSpaces = 0
	l.view.MoveCaret(p)
	return l.insertText("\n" + strings.Repeat(" ", indent))
}

// tab inserts spaces to the next stop, or a tab character when the
// buffer does not convert tabs.
func (l *Link) tab() handler.Result {
	size, spaces := l.indent()
	if !spaces || size <= 0 {
		return l.insertText("\t")
	}

	col := l.view.Caret().VirtualColumn()
	return l.insertText(strings.Repeat(" ", size-col%size))
}
