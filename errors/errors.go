package errors

import (
	"errors"
	"fmt"
)

// Common error types for categorization and handling

var (
	// ErrNotFound indicates a requested node, edge, or session was not found
	ErrNotFound = errors.New("resource not found")

	// ErrInvalidInput indicates invalid user input
	ErrInvalidInput = errors.New("invalid input")

	// ErrMalformedGraph indicates a flat graph payload failed referential
	// integrity validation
	ErrMalformedGraph = errors.New("malformed graph")

	// ErrNotAdmin indicates an operation requiring admin mode was attempted
	// without it
	ErrNotAdmin = errors.New("admin mode required")

	// ErrNoSelection indicates an inspector operation was attempted with no
	// node or edge selected
	ErrNoSelection = errors.New("no selection")

	// ErrSessionLimit indicates the session store refused a new session
	ErrSessionLimit = errors.New("session limit reached")
)

// WrapError wraps an error with a context message
func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// WrapErrorf wraps an error with a formatted context message
func WrapErrorf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// IsNotFound checks if error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsInvalidInput checks if error is an invalid input error
func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsMalformedGraph checks if error is a malformed graph error
func IsMalformedGraph(err error) bool {
	return errors.Is(err, ErrMalformedGraph)
}

// IsNotAdmin checks if error is an admin gating error
func IsNotAdmin(err error) bool {
	return errors.Is(err, ErrNotAdmin)
}

// IsNoSelection checks if error is a missing selection error
func IsNoSelection(err error) bool {
	return errors.Is(err, ErrNoSelection)
}
