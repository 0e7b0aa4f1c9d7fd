package loader

import (
	"errors"
	"fmt"
)

// ErrUnknownFormat is returned for unsupported file extensions.
var ErrUnknownFormat = errors.New("unknown config format")

// FormatError reports a path with an unsupported extension.
type FormatError struct {
	Path string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("%s: %v (want .toml, .yaml or .yml)", e.Path, ErrUnknownFormat)
}

func (e *FormatError) Unwrap() error {
	return ErrUnknownFormat
}

// ReadError represents a failure to read a configuration file.
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("reading config file %s: %v", e.Path, e.Err)
}

func (e *ReadError) Unwrap() error {
	return e.Err
}

// ParseError represents an error while parsing a configuration file.
type ParseError struct {
	Path    string
	Line    int
	Column  int
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	if e.Line > 0 && e.Column > 0 {
		return fmt.Sprintf("parse error in %s at line %d, column %d: %s", e.Path, e.Line, e.Column, e.Message)
	}
	if e.Line > 0 {
		return fmt.Sprintf("parse error in %s at line %d: %s", e.Path, e.Line, e.Message)
	}
	return fmt.Sprintf("parse error in %s: %s", e.Path, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
