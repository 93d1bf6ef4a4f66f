package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/catalogo/service-catalog/internal/api/metrics"
	"github.com/catalogo/service-catalog/internal/core/domain"
)

// RBAC enforces role-based access control. It must run after Auth.
func RBAC(allowedRoles ...domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user := UserFrom(c)
			if user == nil {
				return &domain.Error{Kind: domain.ErrUnauthorized, Message: "user not authenticated"}
			}
			if !domain.HasRole(user.Role, allowedRoles...) {
				metrics.AuthorizationDenialsTotal.WithLabelValues("role").Inc()
				return &domain.Error{Kind: domain.ErrForbidden, Message: domain.RequiredRolesMessage(allowedRoles...)}
			}
			return next(c)
		}
	}
}

func SuperadminOnly() echo.MiddlewareFunc {
	return RBAC(domain.RoleSuperadmin)
}

func AdminOrSuperadmin() echo.MiddlewareFunc {
	return RBAC(domain.RoleAdmin, domain.RoleSuperadmin)
}
