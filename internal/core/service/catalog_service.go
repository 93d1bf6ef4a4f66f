package service

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"

	"github.com/catalogo/service-catalog/internal/core/domain"
	"github.com/catalogo/service-catalog/internal/core/ports"
	"github.com/catalogo/service-catalog/pkg/logger"
)

const maxServiceNameLength = 150

// CatalogService implements the catalog use cases.
type CatalogService struct {
	services ports.ServiceRepository
	users    ports.UserRepository
}

func NewCatalogService(services ports.ServiceRepository, users ports.UserRepository) *CatalogService {
	return &CatalogService{services: services, users: users}
}

func (s *CatalogService) List(ctx context.Context, viewer *domain.User) ([]*domain.Service, error) {
	var filter ports.ListServicesFilter
	if viewer != nil && viewer.Role == domain.RoleAdmin {
		filter.OwnerID = viewer.ID
	}
	return s.services.List(ctx, filter)
}

func (s *CatalogService) ListPublic(ctx context.Context) ([]*domain.Service, error) {
	return s.services.List(ctx, ports.ListServicesFilter{})
}

func (s *CatalogService) Get(ctx context.Context, id uint64) (*domain.Service, error) {
	return s.services.FindByID(ctx, id)
}

// Create adds a service owned by actor.
func (s *CatalogService) Create(ctx context.Context, actor *domain.User, in ports.CreateServiceInput) (*domain.Service, error) {
	if actor == nil {
		return nil, domain.Errorf(domain.ErrUnauthorized, "user not authenticated")
	}
	if !domain.HasRole(actor.Role, domain.RoleAdmin, domain.RoleSuperadmin) {
		return nil, &domain.Error{Kind: domain.ErrForbidden, Message: domain.RequiredRolesMessage(domain.RoleAdmin, domain.RoleSuperadmin)}
	}

	name := strings.TrimSpace(in.Name)
	if name == "" || in.Price == nil {
		return nil, domain.Errorf(domain.ErrValidation, "name and price are required")
	}
	if err := validateName(name); err != nil {
		return nil, err
	}
	if err := validatePrice(*in.Price); err != nil {
		return nil, err
	}

	if _, err := s.users.FindByID(ctx, actor.ID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.Errorf(domain.ErrValidation, "service owner does not exist")
		}
		return nil, err
	}

	now := time.Now().UTC()
	svc := &domain.Service{
		Name:        name,
		Description: in.Description,
		Price:       *in.Price,
		OwnerID:     actor.ID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.services.Create(ctx, svc); err != nil {
		return nil, err
	}

	logger.Ctx(ctx).Info().Uint64("service_id", svc.ID).Uint64("owner_id", actor.ID).Msg("service created")
	return s.services.FindByID(ctx, svc.ID)
}

// Update applies a partial update when actor owns the service or is a
// superadmin.
func (s *CatalogService) Update(ctx context.Context, actor *domain.User, id uint64, in ports.UpdateServiceInput) (*domain.Service, error) {
	svc, err := s.authorize(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		if name := strings.TrimSpace(*in.Name); name != "" {
			if err := validateName(name); err != nil {
				return nil, err
			}
			svc.Name = name
		}
	}
	if in.Description != nil {
		svc.Description = *in.Description
	}
	if in.Price != nil {
		if err := validatePrice(*in.Price); err != nil {
			return nil, err
		}
		svc.Price = *in.Price
	}
	svc.UpdatedAt = time.Now().UTC()

	if err := s.services.Update(ctx, svc); err != nil {
		return nil, err
	}

	logger.Ctx(ctx).Info().Uint64("service_id", id).Uint64("actor_id", actor.ID).Msg("service updated")
	return s.services.FindByID(ctx, id)
}

// Delete permanently removes a service under the same rule as Update.
func (s *CatalogService) Delete(ctx context.Context, actor *domain.User, id uint64) error {
	if _, err := s.authorize(ctx, actor, id); err != nil {
		return err
	}
	if err := s.services.Delete(ctx, id); err != nil {
		return err
	}

	logger.Ctx(ctx).Info().Uint64("service_id", id).Uint64("actor_id", actor.ID).Msg("service deleted")
	return nil
}

func (s *CatalogService) authorize(ctx context.Context, actor *domain.User, id uint64) (*domain.Service, error) {
	if actor == nil {
		return nil, domain.Errorf(domain.ErrUnauthorized, "user not authenticated")
	}
	svc, err := s.services.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := domain.CanManageService(actor, svc); err != nil {
		logger.Ctx(ctx).Debug().Uint64("service_id", id).Uint64("actor_id", actor.ID).Msg("service mutation denied")
		return nil, err
	}
	return svc, nil
}

func validateName(name string) error {
	if len([]rune(name)) > maxServiceNameLength {
		return domain.Errorf(domain.ErrValidation, "name must be at most %d characters", maxServiceNameLength)
	}
	return nil
}

func validatePrice(price float64) error {
	if math.IsNaN(price) || math.IsInf(price, 0) || price < 0 {
		return domain.Errorf(domain.ErrValidation, "price must be a non-negative number")
	}
	return nil
}
