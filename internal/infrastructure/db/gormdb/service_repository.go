package gormdb

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/catalogo/service-catalog/internal/core/domain"
	"github.com/catalogo/service-catalog/internal/core/ports"
)

// ServiceRepository implements ports.ServiceRepository with GORM.
type ServiceRepository struct {
	db *gorm.DB
}

func NewServiceRepository(db *gorm.DB) *ServiceRepository {
	return &ServiceRepository{db: db}
}

// withOwner preloads the minimal owner projection.
func withOwner(tx *gorm.DB) *gorm.DB {
	return tx.Preload("Owner", func(db *gorm.DB) *gorm.DB {
		return db.Select("id", "name", "role")
	})
}

func (r *ServiceRepository) Create(ctx context.Context, svc *domain.Service) error {
	rec := newServiceRecord(svc)
	rec.ID = 0
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(rec).Error; err != nil {
		return fmt.Errorf("insert service: %w", err)
	}
	svc.ID = rec.ID
	svc.CreatedAt = rec.CreatedAt.UTC()
	svc.UpdatedAt = rec.UpdatedAt.UTC()
	return nil
}

func (r *ServiceRepository) Update(ctx context.Context, svc *domain.Service) error {
	if _, err := r.FindByID(ctx, svc.ID); err != nil {
		return err
	}
	rec := newServiceRecord(svc)
	err := r.db.WithContext(ctx).
		Model(rec).
		Select("name", "description", "price", "updated_at").
		Updates(rec).Error
	if err != nil {
		return fmt.Errorf("update service: %w", err)
	}
	svc.UpdatedAt = rec.UpdatedAt.UTC()
	return nil
}

func (r *ServiceRepository) Delete(ctx context.Context, id uint64) error {
	res := r.db.WithContext(ctx).Delete(&serviceRecord{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete service: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrServiceNotFound
	}
	return nil
}

func (r *ServiceRepository) FindByID(ctx context.Context, id uint64) (*domain.Service, error) {
	var rec serviceRecord
	err := withOwner(r.db.WithContext(ctx)).First(&rec, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrServiceNotFound
		}
		return nil, fmt.Errorf("find service: %w", err)
	}
	return rec.toDomain(), nil
}

func (r *ServiceRepository) List(ctx context.Context, filter ports.ListServicesFilter) ([]*domain.Service, error) {
	tx := withOwner(r.db.WithContext(ctx)).Order("created_at DESC").Order("id DESC")
	if filter.OwnerID != 0 {
		tx = tx.Where("owner_id = ?", filter.OwnerID)
	}

	var recs []serviceRecord
	if err := tx.Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("list services: %w", err)
	}

	out := make([]*domain.Service, len(recs))
	for i := range recs {
		out[i] = recs[i].toDomain()
	}
	return out, nil
}

func (r *ServiceRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&serviceRecord{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count services: %w", err)
	}
	return n, nil
}
