package domain

import (
	"errors"
	"fmt"
)

// Error kinds. Every error surfaced to a client wraps exactly one of them.
var (
	ErrValidation         = errors.New("validation error")
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidToken       = errors.New("invalid token")
	ErrForbidden          = errors.New("access forbidden")
	ErrNotFound           = errors.New("not found")
)

var (
	ErrUserNotFound    = &Error{Kind: ErrNotFound, Message: "user not found"}
	ErrServiceNotFound = &Error{Kind: ErrNotFound, Message: "service not found"}
)

// Error pairs an error kind with the human-readable message returned to
// clients.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Kind }

// Errorf builds an *Error of the given kind with a formatted message.
func Errorf(kind error, format string, args ...any) error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}
