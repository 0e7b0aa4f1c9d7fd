package dispatcher

import "errors"

// Dispatcher errors.
var (
	// ErrPanic indicates a link panicked.
	ErrPanic = errors.New("dispatcher: link panic")

	// ErrDuplicateLink indicates a link name is already in the chain.
	ErrDuplicateLink = errors.New("dispatcher: duplicate link")

	// ErrLinkNotFound indicates no link has the given name.
	ErrLinkNotFound = errors.New("dispatcher: link not found")
)
