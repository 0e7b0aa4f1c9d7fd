package app

import (
	"errors"
	"fmt"
)

// Application errors.
var (
	// ErrQuit signals that the event loop should exit normally.
	ErrQuit = errors.New("quit requested")

	// ErrAlreadyRunning indicates Run was called twice.
	ErrAlreadyRunning = errors.New("application already running")

	// ErrNoActiveDocument indicates no document is open.
	ErrNoActiveDocument = errors.New("no active document")

	// ErrDocumentNotFound indicates an unknown document id.
	ErrDocumentNotFound = errors.New("document not found")

	// ErrNoFilePath indicates a save of a scratch document.
	ErrNoFilePath = errors.New("document has no file path")

	// ErrUnsavedChanges indicates modified documents block the operation.
	ErrUnsavedChanges = errors.New("unsaved changes")
)

// OperationError records the operation and target that failed.
type OperationError struct {
	Op     string // open, save, script, ...
	Target string // file path, if any
	Err    error
}

func (e *OperationError) Error() string {
	if e.Target == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Target, e.Err)
}

func (e *OperationError) Unwrap() error {
	return e.Err
}

// InitError reports a component that failed to start.
type InitError struct {
	Component string
	Err       error
}

func (e *InitError) Error() string {
	return fmt.Sprintf("initialize %s: %v", e.Component, e.Err)
}

func (e *InitError) Unwrap() error {
	return e.Err
}
