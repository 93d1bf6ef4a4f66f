package middleware

import (
	"context"

	"github.com/labstack/echo/v4"

	"github.com/catalogo/service-catalog/internal/api/metrics"
	"github.com/catalogo/service-catalog/internal/core/domain"
)

// ServiceLookup loads a service by id.
type ServiceLookup interface {
	Get(ctx context.Context, id uint64) (*domain.Service, error)
}

// ServiceOwner gates routes addressing a single service by :id. Superadmins
// always pass, admins only for services they own, every other role is
// refused.
func ServiceOwner(lookup ServiceLookup) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user := UserFrom(c)
			if user == nil {
				return &domain.Error{Kind: domain.ErrUnauthorized, Message: "user not authenticated"}
			}

			switch user.Role {
			case domain.RoleSuperadmin:
				return next(c)
			case domain.RoleAdmin:
			default:
				metrics.AuthorizationDenialsTotal.WithLabelValues("role").Inc()
				return &domain.Error{
					Kind:    domain.ErrForbidden,
					Message: domain.RequiredRolesMessage(domain.RoleAdmin, domain.RoleSuperadmin),
				}
			}

			id, err := ServiceID(c)
			if err != nil {
				return err
			}
			svc, err := lookup.Get(c.Request().Context(), id)
			if err != nil {
				return err
			}
			if err := domain.CanManageService(user, svc); err != nil {
				metrics.AuthorizationDenialsTotal.WithLabelValues("ownership").Inc()
				return err
			}
			return next(c)
		}
	}
}
