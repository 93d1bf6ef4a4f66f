package gormdb

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/catalogo/service-catalog/internal/core/domain"
	"github.com/catalogo/service-catalog/internal/core/ports"
)

// UserRepository implements ports.UserRepository with GORM.
type UserRepository struct {
	db     *gorm.DB
	hasher ports.PasswordHasher
}

func NewUserRepository(db *gorm.DB, hasher ports.PasswordHasher) *UserRepository {
	return &UserRepository{db: db, hasher: hasher}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	rec := newUserRecord(user, r.hasher)
	rec.ID = 0
	if err := r.db.WithContext(ctx).Create(rec).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrDuplicateEmail
		}
		return fmt.Errorf("insert user: %w", err)
	}

	user.ID = rec.ID
	user.PasswordHash = rec.Password
	user.Password = ""
	user.CreatedAt = rec.CreatedAt.UTC()
	user.UpdatedAt = rec.UpdatedAt.UTC()
	return nil
}

// Update rewrites the mutable user columns. A non-empty user.Password is
// rehashed on the way in.
func (r *UserRepository) Update(ctx context.Context, user *domain.User) error {
	if _, err := r.FindByID(ctx, user.ID); err != nil {
		return err
	}

	rec := newUserRecord(user, r.hasher)
	err := r.db.WithContext(ctx).
		Model(rec).
		Select("name", "email", "password", "role", "active", "updated_at").
		Updates(rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrDuplicateEmail
		}
		return fmt.Errorf("update user: %w", err)
	}

	user.PasswordHash = rec.Password
	user.Password = ""
	user.UpdatedAt = rec.UpdatedAt.UTC()
	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uint64) (*domain.User, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.first(ctx, "email = ?", email)
}

func (r *UserRepository) FindFirstByRole(ctx context.Context, role domain.Role) (*domain.User, error) {
	return r.first(ctx, "role = ?", string(role))
}

func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&userRecord{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return n, nil
}

func (r *UserRepository) first(ctx context.Context, query string, args ...any) (*domain.User, error) {
	var rec userRecord
	err := r.db.WithContext(ctx).Where(query, args...).Order("id").First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return rec.toDomain(), nil
}
