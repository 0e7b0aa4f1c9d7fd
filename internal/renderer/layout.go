package renderer

import (
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
)

// DisplayWidth returns the screen width of line[:column] with tabs
// expanded to tabSize.
func DisplayWidth(line string, column, tabSize int) int {
	if column > len(line) {
		column = len(line)
	}
	w := 0
	for _, r := range line[:column] {
		w += cellWidth(r, w, tabSize)
	}
	return w
}

// ColumnAt maps a display column to a byte column in line. Display
// columns past the end of the line report the excess as virtual spaces.
// A display column inside a wide rune or tab maps to its start.
func ColumnAt(line string, display, tabSize int) (column, virtual int) {
	w := 0
	for i, r := range line {
		next := w + cellWidth(r, w, tabSize)
		if display < next {
			return i, 0
		}
		w = next
	}
	return len(line), max(display-w, 0)
}

// cellWidth returns the width of r drawn at display column at.
func cellWidth(r rune, at, tabSize int) int {
	if r == '\t' {
		if tabSize <= 0 {
			tabSize = 1
		}
		return tabSize - at%tabSize
	}
	if r == utf8.RuneError {
		return 1
	}
	if w := runewidth.RuneWidth(r); w > 0 {
		return w
	}
	return 1
}
