package ports

import (
	"context"

	"github.com/catalogo/service-catalog/internal/core/domain"
)

// UserRepository defines persistence operations for users.
//
// Create and Update hash user.Password (when non-empty) before writing and
// clear it afterwards; implementations map unique-email violations to
// domain.ErrDuplicateEmail.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	Update(ctx context.Context, user *domain.User) error
	FindByID(ctx context.Context, id uint64) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// FindFirstByRole returns the oldest user holding role.
	FindFirstByRole(ctx context.Context, role domain.Role) (*domain.User, error)
	Count(ctx context.Context) (int64, error)
}
