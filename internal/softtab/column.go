package softtab

import (
	"strings"

	"github.com/dshills/softtab/internal/engine/cursor"
)

// Line is an immutable view of one buffer line.
type Line struct {
	// Number is the zero-based line number.
	Number int
	// Start is the buffer offset of the first character.
	Start int
	// Text is the line content without its line terminator.
	Text string
}

// Len returns the line length in bytes.
func (l Line) Len() int {
	return len(l.Text)
}

// IndentEnd returns the length of the leading space run.
func (l Line) IndentEnd() int {
	return len(l.Text) - len(strings.TrimLeft(l.Text, " "))
}

// CodeEnd returns the column where the trailing space run starts.
// A line made only of spaces has CodeEnd equal to its length.
func (l Line) CodeEnd() int {
	if l.IndentEnd() == len(l.Text) {
		return len(l.Text)
	}
	return len(strings.TrimRight(l.Text, " "))
}

// ColumnModel answers column questions about a caret on one line.
// Columns in Position are already relative to the line start.
type ColumnModel struct {
	line      Line
	indentEnd int
	codeEnd   int
}

// NewColumnModel creates a column model for line.
func NewColumnModel(line Line) ColumnModel {
	return ColumnModel{
		line:      line,
		indentEnd: line.IndentEnd(),
		codeEnd:   line.CodeEnd(),
	}
}

// Line returns the modelled line.
func (m ColumnModel) Line() Line { return m.line }

// IndentEnd returns the length of the leading space run.
func (m ColumnModel) IndentEnd() int { return m.indentEnd }

// CodeEnd returns the start of the trailing space run.
func (m ColumnModel) CodeEnd() int { return m.codeEnd }

// ColumnOf returns the physical column of p.
func (m ColumnModel) ColumnOf(p cursor.Position) int {
	return p.Column
}

// VirtualColumnOf returns the column of p including virtual space.
func (m ColumnModel) VirtualColumnOf(p cursor.Position) int {
	return m.ColumnOf(p) + p.VirtualSpaces
}

// IsWithinCodeRange reports whether p is strictly inside the content
// between the leading and trailing space runs.
func (m ColumnModel) IsWithinCodeRange(p cursor.Position) bool {
	col := m.ColumnOf(p)
	return col > m.indentEnd && col < m.codeEnd
}

// CharAt returns the character at column, or false past the line end.
func (m ColumnModel) CharAt(column int) (byte, bool) {
	if column < 0 || column >= len(m.line.Text) {
		return 0, false
	}
	return m.line.Text[column], true
}

// CharBefore returns the character before column, or false at the line
// start.
func (m ColumnModel) CharBefore(column int) (byte, bool) {
	return m.CharAt(column - 1)
}

// AllSpaces reports whether every character in [from, to) is a space.
// The range must lie inside the line.
func (m ColumnModel) AllSpaces(from, to int) bool {
	if from < 0 || to > len(m.line.Text) || from > to {
		return false
	}
	for i := from; i < to; i++ {
		if m.line.Text[i] != ' ' {
			return false
		}
	}
	return true
}
