package ports

import (
	"context"

	"github.com/catalogo/service-catalog/internal/core/domain"
)

// CreateServiceInput carries the fields of a new catalog service.
type CreateServiceInput struct {
	Name        string
	Description string
	Price       *float64
}

// UpdateServiceInput carries a partial update; nil fields are left as-is.
type UpdateServiceInput struct {
	Name        *string
	Description *string
	Price       *float64
}

// CatalogService defines the use cases over catalog services.
type CatalogService interface {
	// List scopes the result by viewer: admins only see their own services,
	// everybody else (including a nil viewer) sees all of them.
	List(ctx context.Context, viewer *domain.User) ([]*domain.Service, error)
	ListPublic(ctx context.Context) ([]*domain.Service, error)
	Get(ctx context.Context, id uint64) (*domain.Service, error)
	Create(ctx context.Context, actor *domain.User, in CreateServiceInput) (*domain.Service, error)
	Update(ctx context.Context, actor *domain.User, id uint64, in UpdateServiceInput) (*domain.Service, error)
	Delete(ctx context.Context, actor *domain.User, id uint64) error
}
