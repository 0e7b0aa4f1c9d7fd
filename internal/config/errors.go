package config

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidType is returned when a setting has the wrong type.
	ErrInvalidType = errors.New("invalid setting type")

	// ErrInvalidValue is returned when a setting has an unsupported value.
	ErrInvalidValue = errors.New("invalid setting value")

	// ErrClosed is returned by operations on a closed manager.
	ErrClosed = errors.New("config manager closed")
)

// SettingError describes a problem with a single setting.
type SettingError struct {
	Path string
	Err  error
}

func (e *SettingError) Error() string {
	return fmt.Sprintf("setting %s: %v", e.Path, e.Err)
}

func (e *SettingError) Unwrap() error {
	return e.Err
}

func typeError(path string, want string, got any) error {
	return &SettingError{Path: path, Err: fmt.Errorf("%w: want %s, got %T", ErrInvalidType, want, got)}
}

func valueError(path string, err error) error {
	return &SettingError{Path: path, Err: fmt.Errorf("%w: %v", ErrInvalidValue, err)}
}
