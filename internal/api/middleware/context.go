package middleware

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/catalogo/service-catalog/internal/core/domain"
)

const userKey = "user"

// SetUser attaches the authenticated user to the request.
func SetUser(c echo.Context, u *domain.User) { c.Set(userKey, u) }

// UserFrom returns the user attached by Auth or OptionalAuth, or nil.
func UserFrom(c echo.Context) *domain.User {
	u, _ := c.Get(userKey).(*domain.User)
	return u
}

// ServiceID parses the :id path parameter. Anything that is not a positive
// integer cannot name a stored service.
func ServiceID(c echo.Context) (uint64, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, domain.ErrServiceNotFound
	}
	return id, nil
}
