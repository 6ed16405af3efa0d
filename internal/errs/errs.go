// Package errs defines the error taxonomy shared by the API layer and the
// repositories. Handlers translate kinds into HTTP status codes in one
// place instead of matching on message strings.
package errs

import (
	"errors"
	"fmt"
)

// Sentinel kinds. Wrap them with %w so callers can match via errors.Is.
var (
	ErrValidation = errors.New("validation failed")
	ErrConflict   = errors.New("conflict")
	ErrNotFound   = errors.New("not found")
)

// Validationf returns a validation error with a caller-facing message.
func Validationf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, prepend(ErrValidation, args)...)
}

// Conflictf returns a conflict error with a caller-facing message.
func Conflictf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, prepend(ErrConflict, args)...)
}

// NotFoundf returns a not-found error with a caller-facing message.
func NotFoundf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, prepend(ErrNotFound, args)...)
}

func prepend(err error, args []any) []any {
	return append([]any{err}, args...)
}

// Message extracts the caller-facing part of a taxonomy error: the text
// after the sentinel prefix. For errors outside the taxonomy it returns
// the empty string, so handlers know not to leak internals.
func Message(err error) string {
	for _, sentinel := range []error{ErrValidation, ErrConflict, ErrNotFound} {
		if errors.Is(err, sentinel) {
			msg := err.Error()
			prefix := sentinel.Error() + ": "
			if len(msg) > len(prefix) && msg[:len(prefix)] == prefix {
				return msg[len(prefix):]
			}
			return msg
		}
	}
	return ""
}
