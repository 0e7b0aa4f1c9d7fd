package cursor

import "fmt"

// Selection represents a range of selected text.
// Anchor is where the selection started; Active is the caret end.
// When Anchor == Active, this represents a caret with no selection.
// Selection is an immutable value type.
type Selection struct {
	Anchor Position // Where selection started
	Active Position // Caret end (where typing occurs)
}

// NewSelection creates a selection from anchor to active.
func NewSelection(anchor, active Position) Selection {
	return Selection{Anchor: anchor, Active: active}
}

// NewCaretSelection creates a selection representing just a caret.
func NewCaretSelection(p Position) Selection {
	return Selection{Anchor: p, Active: p}
}

// IsEmpty returns true if the selection has no extent.
func (s Selection) IsEmpty() bool {
	return s.Anchor == s.Active
}

// Start returns the lower bound of the selection.
func (s Selection) Start() Position {
	if s.Active.Before(s.Anchor) {
		return s.Active
	}
	return s.Anchor
}

// End returns the upper bound of the selection.
func (s Selection) End() Position {
	if s.Active.Before(s.Anchor) {
		return s.Anchor
	}
	return s.Active
}

// IsBackward returns true if the active end precedes the anchor.
func (s Selection) IsBackward() bool {
	return s.Active.Before(s.Anchor)
}

// Extend returns a selection with the active end moved to p.
// The anchor remains fixed.
func (s Selection) Extend(p Position) Selection {
	return Selection{Anchor: s.Anchor, Active: p}
}

// MoveTo returns a collapsed selection at p.
func (s Selection) MoveTo(p Position) Selection {
	return Selection{Anchor: p, Active: p}
}

// Collapse collapses the selection to its active end.
func (s Selection) Collapse() Selection {
	return Selection{Anchor: s.Active, Active: s.Active}
}

// Equals returns true if two selections have the same anchor and active end.
func (s Selection) Equals(other Selection) bool {
	return s.Anchor == other.Anchor && s.Active == other.Active
}

// String returns a string representation of the selection.
func (s Selection) String() string {
	if s.IsEmpty() {
		return fmt.Sprintf("Caret%s", s.Active)
	}
	dir := "→"
	if s.IsBackward() {
		dir = "←"
	}
	return fmt.Sprintf("Selection(%s%s%s)", s.Anchor, dir, s.Active)
}
