package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/catalogo/service-catalog/internal/api/metrics"
	"github.com/catalogo/service-catalog/internal/core/domain"
	"github.com/catalogo/service-catalog/internal/core/ports"
)

const tokenCookie = "token"

// Auth requires a valid token belonging to an active user and attaches that
// user to the context.
func Auth(auth ports.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := bearerToken(c)
			if token == "" {
				metrics.AuthorizationDenialsTotal.WithLabelValues("missing_token").Inc()
				return &domain.Error{Kind: domain.ErrUnauthorized, Message: "access token required"}
			}
			if err := authenticate(c, auth, token); err != nil {
				return err
			}
			return next(c)
		}
	}
}

// OptionalAuth resolves the caller when a token is present. Requests without
// one continue anonymously; a token that fails verification is still
// rejected.
func OptionalAuth(auth ports.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if token := bearerToken(c); token != "" {
				if err := authenticate(c, auth, token); err != nil {
					return err
				}
			}
			return next(c)
		}
	}
}

func authenticate(c echo.Context, auth ports.AuthService, token string) error {
	user, err := auth.Authenticate(c.Request().Context(), token)
	if err != nil {
		metrics.AuthorizationDenialsTotal.WithLabelValues("invalid_token").Inc()
		return err
	}
	SetUser(c, user)
	return nil
}

// bearerToken reads the Authorization header, falling back to the token
// cookie.
func bearerToken(c echo.Context) string {
	if h := c.Request().Header.Get(echo.HeaderAuthorization); h != "" {
		parts := strings.SplitN(h, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			return strings.TrimSpace(parts[1])
		}
		return ""
	}
	if ck, err := c.Cookie(tokenCookie); err == nil {
		return ck.Value
	}
	return ""
}
