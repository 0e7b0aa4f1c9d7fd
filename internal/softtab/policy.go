package softtab

import "fmt"

// EraseGating selects when Backspace and Delete remove a space run.
type EraseGating uint8

const (
	// RunGating removes any contiguous run longer than one space.
	RunGating EraseGating = iota
	// MultipleGating also requires the run to be a whole number of
	// indent units.
	MultipleGating
)

// String returns the configuration name of the policy.
func (g EraseGating) String() string {
	switch g {
	case RunGating:
		return "run"
	case MultipleGating:
		return "multiple"
	default:
		return "unknown"
	}
}

// allows reports whether a run of count spaces may be erased.
func (g EraseGating) allows(count, indentSize int) bool {
	if count <= 1 {
		return false
	}
	if g == MultipleGating {
		return count%indentSize == 0
	}
	return true
}

// ParseEraseGating parses "run" or "multiple".
func ParseEraseGating(s string) (EraseGating, error) {
	switch s {
	case "", "run":
		return RunGating, nil
	case "multiple":
		return MultipleGating, nil
	default:
		return RunGating, fmt.Errorf("unknown erase gating %q", s)
	}
}

// VerticalSnap selects how a vertical move lands inside the leading
// indentation of the target line.
type VerticalSnap uint8

const (
	// SnapNearest rounds the saved column to the nearest stop when the
	// stop stays within the leading spaces.
	SnapNearest VerticalSnap = iota
	// SnapExact always lands on the saved column.
	SnapExact
)

// String returns the configuration name of the policy.
func (v VerticalSnap) String() string {
	switch v {
	case SnapNearest:
		return "nearest"
	case SnapExact:
		return "exact"
	default:
		return "unknown"
	}
}

// ParseVerticalSnap parses "nearest" or "exact".
func ParseVerticalSnap(s string) (VerticalSnap, error) {
	switch s {
	case "", "nearest":
		return SnapNearest, nil
	case "exact":
		return SnapExact, nil
	default:
		return SnapNearest, fmt.Errorf("unknown vertical snap %q", s)
	}
}
