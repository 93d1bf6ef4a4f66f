package ports

import (
	"context"

	"github.com/catalogo/service-catalog/internal/core/domain"
)

// ListServicesFilter narrows a service listing.
type ListServicesFilter struct {
	OwnerID uint64 // 0 = every owner
}

// ServiceRepository defines persistence operations for catalog services.
// Reads attach the owner projection to every returned service.
type ServiceRepository interface {
	Create(ctx context.Context, svc *domain.Service) error
	Update(ctx context.Context, svc *domain.Service) error
	Delete(ctx context.Context, id uint64) error
	FindByID(ctx context.Context, id uint64) (*domain.Service, error)
	// List returns services newest first.
	List(ctx context.Context, filter ListServicesFilter) ([]*domain.Service, error)
	Count(ctx context.Context) (int64, error)
}
