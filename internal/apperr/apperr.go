// Package apperr defines the error taxonomy shared by services and handlers.
// Services return these; the HTTP layer maps them to status codes.
package apperr

import "errors"

var (
	// ErrNotFound means the target task does not exist (HTTP 404).
	ErrNotFound = errors.New("task not found")

	// ErrForbidden means the requester is not the owner of the task
	// (HTTP 403). Kept distinct from ErrNotFound so callers can tell an
	// ownership failure from a missing row.
	ErrForbidden = errors.New("not allowed")

	// ErrInvalidCredentials covers both unknown email and wrong password
	// so login failures stay uniform (HTTP 401).
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// ValidationError reports malformed or missing input (HTTP 400).
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

// Validation builds a ValidationError with the given message.
func Validation(msg string) error {
	return &ValidationError{Msg: msg}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}
