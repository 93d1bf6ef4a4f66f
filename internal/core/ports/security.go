package ports

import "github.com/catalogo/service-catalog/internal/core/domain"

// PasswordHasher is a salted one-way hash for credentials.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	// Verify never errors: an empty plaintext or a mismatch yields false.
	Verify(plain, digest string) bool
}

// TokenManager issues and verifies stateless bearer tokens.
type TokenManager interface {
	Issue(user *domain.User) (string, error)
	Verify(token string) (*domain.TokenClaims, error)
}
