package lua

import "errors"

// Errors for Lua script execution.
var (
	// ErrStateClosed is returned when operating on a closed state.
	ErrStateClosed = errors.New("lua state is closed")

	// ErrExecutionTimeout is returned when a script runs past its deadline.
	ErrExecutionTimeout = errors.New("lua execution timeout")

	// ErrAlreadyRunning is returned when a script starts another script.
	ErrAlreadyRunning = errors.New("lua script already running")
)
