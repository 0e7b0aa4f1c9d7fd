package editor

import (
	"strings"
	"unicode/utf8"

	"github.com/dshills/softtab/internal/dispatcher/handler"
	"github.com/dshills/softtab/internal/engine/cursor"
)

// moveLeft moves one character left, through virtual space first and
// onto the previous line end at column 0.
func (l *Link) moveLeft(extend bool) handler.Result {
	p := l.view.Caret()
	switch {
	case p.VirtualSpaces > 0:
		p.VirtualSpaces--
	case p.Column > 0:
		_, size := utf8.DecodeLastRuneInString(l.line(p.Line)[:p.Column])
		p.Column -= size
	case p.Line > 0:
		p = cursor.At(p.Line-1, len(l.line(p.Line-1)))
	default:
		return handler.Handled()
	}
	return l.place(p, extend)
}

// moveRight moves one character right, wrapping to the next line.
func (l *Link) moveRight(extend bool) handler.Result {
	p := l.view.Caret()
	text := l.line(p.Line)
	switch {
	case p.VirtualSpaces > 0:
		p.VirtualSpaces++
	case p.Column < len(text):
		_, size := utf8.DecodeRuneInString(text[p.Column:])
		p.Column += size
	case p.Line+1 < l.view.LineCount():
		p = cursor.At(p.Line+1, 0)
	default:
		return handler.Handled()
	}
	return l.place(p, extend)
}

// moveVertical moves delta lines, keeping the virtual column.
func (l *Link) moveVertical(delta int, extend bool) handler.Result {
	p := l.view.Caret()
	target := p.Line + delta
	if target < 0 {
		target = 0
	}
	if last := l.view.LineCount() - 1; target > last {
		target = last
	}
	if target == p.Line {
		return handler.Handled()
	}
	return l.place(cursor.At(target, p.VirtualColumn()), extend)
}

// moveHome toggles between the first non-space character and column 0.
func (l *Link) moveHome(extend bool) handler.Result {
	p := l.view.Caret()
	text := l.line(p.Line)
	indent := len(text) - len(strings.TrimLeft(text, " "))

	col := indent
	if p.Column == indent && p.VirtualSpaces == 0 {
		col = 0
	}
	return l.place(cursor.At(p.Line, col), extend)
}

// moveEnd moves to the end of the line.
func (l *Link) moveEnd(extend bool) handler.Result {
	p := l.view.Caret()
	return l.place(cursor.At(p.Line, len(l.line(p.Line))), extend)
}
