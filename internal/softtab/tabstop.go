package softtab

// NearestStop rounds column to the nearest multiple of indentSize.
// A remainder of exactly half the indent size rounds up. For odd sizes
// the comparison is made against the exact half so no column moves by
// more than indentSize/2.
// A non-positive indentSize returns column unchanged.
func NearestStop(column, indentSize int) int {
	if indentSize <= 0 {
		return column
	}
	rem := column % indentSize
	if rem == 0 {
		return column
	}
	if 2*rem < indentSize {
		return column - rem
	}
	return column - rem + indentSize
}

// PreviousStop returns the stop strictly below column, or 0.
func PreviousStop(column, indentSize int) int {
	if indentSize <= 0 || column <= 0 {
		return 0
	}
	return ((column - 1) / indentSize) * indentSize
}

// NextStop returns the stop strictly above column.
func NextStop(column, indentSize int) int {
	if indentSize <= 0 {
		return column
	}
	if column < 0 {
		return 0
	}
	return (column/indentSize + 1) * indentSize
}

// TabStops computes stops for a fixed indent size.
type TabStops struct {
	IndentSize int
}

// Nearest returns NearestStop(column, s.IndentSize).
func (s TabStops) Nearest(column int) int { return NearestStop(column, s.IndentSize) }

// Previous returns PreviousStop(column, s.IndentSize).
func (s TabStops) Previous(column int) int { return PreviousStop(column, s.IndentSize) }

// Next returns NextStop(column, s.IndentSize).
func (s TabStops) Next(column int) int { return NextStop(column, s.IndentSize) }

// IsStop reports whether column sits on a stop.
func (s TabStops) IsStop(column int) bool {
	return s.IndentSize > 0 && column%s.IndentSize == 0
}
