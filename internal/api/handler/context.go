package handler

import (
	"errors"

	"github.com/labstack/echo/v4"

	"github.com/catalogo/service-catalog/internal/api/middleware"
	"github.com/catalogo/service-catalog/internal/core/domain"
)

// currentUser returns the user injected by the Auth middleware and fails
// fast when it is missing, which means the route was wired without Auth.
func currentUser(c echo.Context) (*domain.User, error) {
	u := middleware.UserFrom(c)
	if u == nil {
		return nil, &domain.Error{Kind: domain.ErrUnauthorized, Message: "user not authenticated"}
	}
	return u, nil
}

// outcome labels an operation result for metrics.
func outcome(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, domain.ErrValidation):
		return "validation"
	case errors.Is(err, domain.ErrDuplicateEmail):
		return "duplicate_email"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return "invalid_credentials"
	case errors.Is(err, domain.ErrForbidden):
		return "forbidden"
	default:
		return "error"
	}
}
