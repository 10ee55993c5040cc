package domain

import (
	"errors"
	"fmt"
)

var (
	ErrUserNotFound          = errors.New("user not found")
	ErrUserExists            = errors.New("username already registered")
	ErrInvalidCredentials    = errors.New("incorrect username or password")
	ErrInvalidRole           = errors.New("invalid role")
	ErrAdvertisementNotFound = errors.New("advertisement not found")

	// ErrUnauthorized means the caller has no usable identity: the token is
	// missing where required, malformed, expired, or names a deleted user.
	ErrUnauthorized = errors.New("could not validate credentials")

	// ErrForbidden means the caller is known but may not touch the resource.
	ErrForbidden = errors.New("not enough permissions")

	ErrValidation = errors.New("validation failed")
)

// ValidationError describes one rejected input field.
type ValidationError struct {
	Field   string
	Message string
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}
