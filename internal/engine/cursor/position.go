package cursor

import "fmt"

// Position is a caret location within a buffer.
// Line and Column are 0-indexed; Column is the physical offset from the
// start of the line. VirtualSpaces counts columns past the end of the line.
//
// Invariant: VirtualSpaces >= 0, and VirtualSpaces > 0 only when Column
// equals the line length.
type Position struct {
	Line          int
	Column        int
	VirtualSpaces int
}

// At returns a position with no virtual space.
func At(line, column int) Position {
	return Position{Line: line, Column: column}
}

// VirtualColumn returns the column including virtual space.
func (p Position) VirtualColumn() int {
	return p.Column + p.VirtualSpaces
}

// InVirtualSpace returns true if the caret sits past the end of its line.
func (p Position) InVirtualSpace() bool {
	return p.VirtualSpaces > 0
}

// Physical returns the position with virtual space dropped.
func (p Position) Physical() Position {
	return Position{Line: p.Line, Column: p.Column}
}

// Compare returns -1 if p < other, 0 if p == other, 1 if p > other.
// Virtual space orders after the physical column it extends.
func (p Position) Compare(other Position) int {
	switch {
	case p.Line < other.Line:
		return -1
	case p.Line > other.Line:
		return 1
	}
	pc, oc := p.VirtualColumn(), other.VirtualColumn()
	switch {
	case pc < oc:
		return -1
	case pc > oc:
		return 1
	}
	return 0
}

// Before returns true if p comes before other.
func (p Position) Before(other Position) bool {
	return p.Compare(other) < 0
}

// After returns true if p comes after other.
func (p Position) After(other Position) bool {
	return p.Compare(other) > 0
}

// String returns a human-readable representation of the position.
func (p Position) String() string {
	if p.VirtualSpaces > 0 {
		return fmt.Sprintf("(%d:%d+%d)", p.Line, p.Column, p.VirtualSpaces)
	}
	return fmt.Sprintf("(%d:%d)", p.Line, p.Column)
}
