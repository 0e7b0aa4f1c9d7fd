package softtab

// Result tells the host whether a keystroke was consumed.
type Result uint8

const (
	// Unhandled means the host should run its default behavior.
	Unhandled Result = iota
	// Handled means the engine consumed the keystroke.
	Handled
)

// String returns a string representation of the result.
func (r Result) String() string {
	switch r {
	case Unhandled:
		return "unhandled"
	case Handled:
		return "handled"
	default:
		return "unknown"
	}
}

// Command identifies the editor command behind a keystroke.
type Command uint8

const (
	// CmdOther is any command the engine does not handle.
	CmdOther Command = iota
	CmdLeft
	CmdRight
	CmdUp
	CmdDown
	CmdBackspace
	CmdDelete
)

// String returns the command name.
func (c Command) String() string {
	switch c {
	case CmdLeft:
		return "left"
	case CmdRight:
		return "right"
	case CmdUp:
		return "up"
	case CmdDown:
		return "down"
	case CmdBackspace:
		return "backspace"
	case CmdDelete:
		return "delete"
	default:
		return "other"
	}
}

// IsVertical reports whether the command is an up or down move.
func (c Command) IsVertical() bool {
	return c == CmdUp || c == CmdDown
}

// Keystroke is one key event as seen by the engine.
type Keystroke struct {
	Command Command
	// Extend is set for shift-modified moves that extend the selection.
	Extend bool
}
