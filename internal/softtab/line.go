package softtab

import "fmt"

// lineAt reads line n from buf.
func lineAt(buf TextBuffer, n int) (Line, error) {
	text, err := buf.LineText(n)
	if err != nil {
		return Line{}, err
	}
	start, err := buf.LineStartOffset(n)
	if err != nil {
		return Line{}, err
	}
	return Line{Number: n, Start: start, Text: text}, nil
}

// previousLine returns the line before cur, derived from the offset just
// before cur starts.
func previousLine(buf TextBuffer, cur Line) (Line, error) {
	if cur.Start <= 0 {
		return Line{}, fmt.Errorf("above line %d: %w", cur.Number, ErrNoTargetLine)
	}
	n, err := buf.LineFromOffset(cur.Start - 1)
	if err != nil {
		return Line{}, err
	}
	return lineAt(buf, n)
}

// nextLine returns the line after cur. The line is derived from the
// offset past cur's terminator; when that offset maps back onto cur the
// next line number is used instead.
func nextLine(buf TextBuffer, cur Line) (Line, error) {
	off := cur.Start + cur.Len() + 1
	if off > buf.Len() {
		return Line{}, fmt.Errorf("below line %d: %w", cur.Number, ErrNoTargetLine)
	}
	n, err := buf.LineFromOffset(off)
	if err != nil {
		return Line{}, err
	}
	if n == cur.Number {
		if cur.Number+1 >= buf.LineCount() {
			return Line{}, fmt.Errorf("below line %d: %w", cur.Number, ErrNoTargetLine)
		}
		n = cur.Number + 1
	}
	return lineAt(buf, n)
}
