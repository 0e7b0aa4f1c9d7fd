package handler

import "fmt"

// Status indicates the outcome of a link.
type Status uint8

const (
	// StatusForward passes the event to the next link.
	StatusForward Status = iota
	// StatusHandled stops the chain; the event was consumed.
	StatusHandled
	// StatusError stops the chain with an error.
	StatusError
)

// String returns a string representation of the status.
func (s Status) String() string {
	switch s {
	case StatusForward:
		return "forward"
	case StatusHandled:
		return "handled"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// Result is the outcome of a link or a whole dispatch.
type Result struct {
	Status Status

	// Error is set for StatusError.
	Error error

	// Message is an optional status-line message.
	Message string

	// Redraw asks the host to repaint the view.
	Redraw bool
}

// Handled returns a handled result.
func Handled() Result {
	return Result{Status: StatusHandled}
}

// Forward returns a forward result.
func Forward() Result {
	return Result{Status: StatusForward}
}

// Error returns an error result.
func Error(err error) Result {
	return Result{Status: StatusError, Error: err}
}

// Errorf returns an error result with a formatted error.
func Errorf(format string, args ...any) Result {
	return Error(fmt.Errorf(format, args...))
}

// WithMessage returns a copy with the message set.
func (r Result) WithMessage(msg string) Result {
	r.Message = msg
	return r
}

// WithRedraw returns a copy that requests a redraw.
func (r Result) WithRedraw() Result {
	r.Redraw = true
	return r
}

// IsHandled reports whether the event was consumed.
func (r Result) IsHandled() bool {
	return r.Status == StatusHandled
}

// IsForward reports whether every link forwarded the event.
func (r Result) IsForward() bool {
	return r.Status == StatusForward
}
