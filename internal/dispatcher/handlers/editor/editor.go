package editor

import (
	"github.com/dshills/softtab/internal/dispatcher/handler"
	"github.com/dshills/softtab/internal/engine/cursor"
	"github.com/dshills/softtab/internal/input/key"
)

// LinkName is the name of the editor link in a dispatch chain.
const LinkName = "editor"

// View is the editing surface the link operates on.
type View interface {
	LineCount() int
	LineText(line int) (string, error)
	LineStartOffset(line int) (int, error)
	Insert(offset int, text string) error
	Delete(start, end int) error

	Caret() cursor.Position
	Selection() cursor.Selection
	MoveCaret(p cursor.Position)
	Select(sel cursor.Selection)
	EnsureVisible()
}

// IndentFunc reports the indent size and whether Tab inserts spaces.
type IndentFunc func() (size int, insertSpaces bool)

// Link applies default editing behavior to a view.
type Link struct {
	view     View
	indent   IndentFunc
	pageSize int
}

// New creates an editor link for view.
func New(view View, indent IndentFunc) *Link {
	if indent == nil {
		indent = func() (int, bool) { return 4, true }
	}
	return &Link{view: view, indent: indent, pageSize: 20}
}

// SetPageSize sets the number of lines PageUp and PageDown move.
func (l *Link) SetPageSize(n int) {
	if n > 0 {
		l.pageSize = n
	}
}

// Name implements handler.Link.
func (l *Link) Name() string {
	return LinkName
}

// Handle implements handler.Link.
func (l *Link) Handle(ev key.Event) handler.Result {
	extend := ev.Shifted()

	switch ev.Key {
	case key.KeyLeft:
		return l.moveLeft(extend)
	case key.KeyRight:
		return l.moveRight(extend)
	case key.KeyUp:
		return l.moveVertical(-1, extend)
	case key.KeyDown:
		return l.moveVertical(1, extend)
	case key.KeyPageUp:
		return l.moveVertical(-l.pageSize, extend)
	case key.KeyPageDown:
		return l.moveVertical(l.pageSize, extend)
	case key.KeyHome:
		return l.moveHome(extend)
	case key.KeyEnd:
		return l.moveEnd(extend)
	case key.KeyBackspace:
		return l.backspace()
	case key.KeyDelete:
		return l.deleteForward()
	case key.KeyEnter:
		return l.newline()
	case key.KeyTab:
		return l.tab()
	case key.KeyRune:
		if ev.IsChar() {
			return l.insertText(string(ev.Rune))
		}
	}
	return handler.Forward()
}

// line returns the text of the caret line.
func (l *Link) line(n int) string {
	text, _ := l.view.LineText(n)
	return text
}

// offset returns the buffer offset of a physical position.
func (l *Link) offset(p cursor.Position) (int, error) {
	start, err := l.view.LineStartOffset(p.Line)
	if err != nil {
		return 0, err
	}
	return start + p.Column, nil
}

// place moves the caret, extending the selection when asked.
func (l *Link) place(p cursor.Position, extend bool) handler.Result {
	if extend {
		l.view.Select(cursor.NewSelection(l.view.Selection().Anchor, p))
	} else {
		l.view.MoveCaret(p)
	}
	l.view.EnsureVisible()
	return handler.Handled()
}
