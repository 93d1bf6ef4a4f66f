package middleware

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/catalogo/service-catalog/internal/core/domain"
)

func TestRBAC_Allows(t *testing.T) {
	c, rec := newCtx(nil)
	SetUser(c, &domain.User{ID: 1, Role: domain.RoleAdmin})

	called := false
	handler := AdminOrSuperadmin()(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next handler not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRBAC_Forbids(t *testing.T) {
	c, _ := newCtx(nil)
	SetUser(c, &domain.User{ID: 1, Role: domain.RoleClient})

	handler := AdminOrSuperadmin()(func(c echo.Context) error {
		t.Fatalf("should not reach next handler")
		return nil
	})

	err := handler(c)
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
	if messageOf(err) != "access denied, required role: admin or superadmin" {
		t.Fatalf("unexpected message %q", messageOf(err))
	}
}

func TestSuperadminOnly(t *testing.T) {
	for role, allowed := range map[domain.Role]bool{
		domain.RoleSuperadmin: true,
		domain.RoleAdmin:      false,
		domain.RoleClient:     false,
	} {
		c, _ := newCtx(nil)
		SetUser(c, &domain.User{ID: 1, Role: role})
		err := SuperadminOnly()(func(c echo.Context) error { return nil })(c)
		if allowed != (err == nil) {
			t.Fatalf("%s: allowed=%v, err=%v", role, allowed, err)
		}
	}
}

func TestRBAC_RequiresUser(t *testing.T) {
	c, _ := newCtx(nil)
	err := RBAC(domain.RoleClient)(func(c echo.Context) error { return nil })(c)
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

type lookupFunc func(ctx context.Context, id uint64) (*domain.Service, error)

func (f lookupFunc) Get(ctx context.Context, id uint64) (*domain.Service, error) { return f(ctx, id) }

func TestServiceOwner(t *testing.T) {
	lookup := lookupFunc(func(ctx context.Context, id uint64) (*domain.Service, error) {
		if id == 10 {
			return &domain.Service{ID: 10, OwnerID: 2}, nil
		}
		return nil, domain.ErrServiceNotFound
	})

	cases := []struct {
		name string
		user *domain.User
		id   string
		kind error
	}{
		{"superadmin any", &domain.User{ID: 1, Role: domain.RoleSuperadmin}, "10", nil},
		{"superadmin missing passes through", &domain.User{ID: 1, Role: domain.RoleSuperadmin}, "99", nil},
		{"owner admin", &domain.User{ID: 2, Role: domain.RoleAdmin}, "10", nil},
		{"other admin", &domain.User{ID: 3, Role: domain.RoleAdmin}, "10", domain.ErrForbidden},
		{"admin missing service", &domain.User{ID: 2, Role: domain.RoleAdmin}, "99", domain.ErrNotFound},
		{"admin bad id", &domain.User{ID: 2, Role: domain.RoleAdmin}, "x", domain.ErrNotFound},
		{"client", &domain.User{ID: 2, Role: domain.RoleClient}, "10", domain.ErrForbidden},
		{"anonymous", nil, "10", domain.ErrUnauthorized},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := newCtx(nil)
			c.SetParamNames("id")
			c.SetParamValues(tc.id)
			if tc.user != nil {
				SetUser(c, tc.user)
			}

			called := false
			err := ServiceOwner(lookup)(func(c echo.Context) error {
				called = true
				return nil
			})(c)

			if tc.kind == nil {
				if err != nil || !called {
					t.Fatalf("expected pass, got %v", err)
				}
				return
			}
			if called || !errors.Is(err, tc.kind) {
				t.Fatalf("expected %v, got %v (called=%v)", tc.kind, err, called)
			}
		})
	}
}
