package ports

import (
	"context"

	"github.com/catalogo/service-catalog/internal/core/domain"
)

// RegisterInput carries a self-service registration request. Role is
// accepted for compatibility but always downgraded to client.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     string
}

// CreateUserInput carries a superadmin-issued account creation.
type CreateUserInput struct {
	Name     string
	Email    string
	Password string
	Role     string
}

// AuthResult is returned by flows that hand out a token.
type AuthResult struct {
	User  *domain.User
	Token string
}

// AuthService covers registration, login and per-request authentication.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	CreateUser(ctx context.Context, actor *domain.User, in CreateUserInput) (*domain.User, error)
	// Authenticate verifies token and re-fetches its user, refusing
	// unknown or inactive accounts.
	Authenticate(ctx context.Context, token string) (*domain.User, error)
}
