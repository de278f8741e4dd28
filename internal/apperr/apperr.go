// Package apperr defines the two sentinel error categories used across
// gearrange-cli.
//
// Error taxonomy
//
//	InvalidInputError – a constructor or query was given values that violate
//	                    its constraints (empty cog set, non-positive wheel
//	                    diameter, malformed cadence). Raised synchronously,
//	                    surfaced to the caller as-is; no retry, no partial
//	                    result. Exit code: 1.
//
//	ErrCancelled – the user deliberately aborted an interactive flow
//	               (configuration form, session browser).
//	               Exit code: 0 (not a failure).
//
// Everything else is a plain Go error (file I/O, HTTP, YAML parsing, …)
// and is propagated with fmt.Errorf("context: %w", err) wrapping.
package apperr

import (
	"errors"
	"fmt"
)

// ErrCancelled is returned when the user explicitly aborts an interactive
// operation. The CLI should exit 0 rather than 1 when it sees this error.
var ErrCancelled = errors.New("operation cancelled")

// InvalidInputError represents a constraint violation in user-supplied
// values. Constructors return this instead of a bare fmt.Errorf so that
// presentation code can tell bad input apart from internal failures and
// refuse the configuration without aborting.
type InvalidInputError struct {
	Message string
}

func (e *InvalidInputError) Error() string { return e.Message }

// Invalid creates an InvalidInputError with the given message.
func Invalid(msg string) error { return &InvalidInputError{Message: msg} }

// Invalidf creates a formatted InvalidInputError.
func Invalidf(format string, args ...any) error {
	return &InvalidInputError{Message: fmt.Sprintf(format, args...)}
}

// IsInvalidInput reports whether err is (or wraps) an *InvalidInputError.
func IsInvalidInput(err error) bool {
	var e *InvalidInputError
	return errors.As(err, &e)
}
