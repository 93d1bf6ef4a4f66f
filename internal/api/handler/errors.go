package handler

import (
	"errors"
	"net/http"

	"github.com/catalogo/service-catalog/internal/core/domain"
)

// StatusFor maps a domain error kind to its HTTP status. ok is false for
// errors that carry no known kind.
func StatusFor(err error) (code int, ok bool) {
	switch {
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrDuplicateEmail):
		return http.StatusBadRequest, true
	case errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrUnauthorized),
		errors.Is(err, domain.ErrInvalidToken):
		return http.StatusUnauthorized, true
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, true
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, true
	}
	return 0, false
}

// ErrorMessage prefers the message carried by a *domain.Error over the bare
// kind text.
func ErrorMessage(err error) string {
	var de *domain.Error
	if errors.As(err, &de) {
		return de.Message
	}
	return err.Error()
}
