package softtab

import "errors"

// Errors reported to the logger when a move is abandoned.
// They never reach the host.
var (
	// ErrNoTargetLine indicates a vertical move past the first or last line.
	ErrNoTargetLine = errors.New("softtab: no target line")

	// ErrHostPanic indicates a host capability panicked during a keystroke.
	ErrHostPanic = errors.New("softtab: host capability panicked")
)
