package model

import (
	"errors"
	"fmt"
)

var (
	// ErrNotAuthenticated means the caller has no valid credential.
	ErrNotAuthenticated = errors.New("not authenticated")
	// ErrNotFound means the requested record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrNotAuthorized means the caller does not own the record.
	ErrNotAuthorized = errors.New("not authorized")
	// ErrConflict means a uniqueness constraint was violated.
	ErrConflict = errors.New("already exists")
	// ErrInvalidCredentials means a login did not match a stored user.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// ValidationError reports a missing or malformed input field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

// Required returns a ValidationError for a missing field.
func Required(field string) *ValidationError {
	return &ValidationError{Field: field, Reason: "is required"}
}
