package gormdb

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/catalogo/service-catalog/internal/core/domain"
	"github.com/catalogo/service-catalog/internal/core/ports"
)

var errNoHasher = errors.New("gormdb: password hasher not configured")

type userRecord struct {
	ID        uint64 `gorm:"primaryKey;autoIncrement"`
	Name      string `gorm:"size:100;not null"`
	Email     string `gorm:"size:191;uniqueIndex;not null"`
	Password  string `gorm:"size:255;not null"`
	Role      string `gorm:"size:16;not null;index"`
	Active    bool   `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time

	plainPassword string
	hasher        ports.PasswordHasher
}

func (userRecord) TableName() string { return "users" }

// BeforeSave hashes a newly supplied plaintext password so that only the
// digest ever reaches the table.
func (r *userRecord) BeforeSave(tx *gorm.DB) error {
	if r.plainPassword == "" {
		return nil
	}
	if r.hasher == nil {
		return errNoHasher
	}
	digest, err := r.hasher.Hash(r.plainPassword)
	if err != nil {
		return err
	}
	r.Password = digest
	r.plainPassword = ""
	tx.Statement.SetColumn("Password", digest)
	return nil
}

func newUserRecord(u *domain.User, hasher ports.PasswordHasher) *userRecord {
	return &userRecord{
		ID:            u.ID,
		Name:          u.Name,
		Email:         u.Email,
		Password:      u.PasswordHash,
		Role:          string(u.Role),
		Active:        u.Active,
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
		plainPassword: u.Password,
		hasher:        hasher,
	}
}

func (r *userRecord) toDomain() *domain.User {
	return &domain.User{
		ID:           r.ID,
		Name:         r.Name,
		Email:        r.Email,
		PasswordHash: r.Password,
		Role:         domain.Role(r.Role),
		Active:       r.Active,
		CreatedAt:    r.CreatedAt.UTC(),
		UpdatedAt:    r.UpdatedAt.UTC(),
	}
}

type serviceRecord struct {
	ID          uint64      `gorm:"primaryKey;autoIncrement"`
	Name        string      `gorm:"size:150;not null"`
	Description string      `gorm:"type:text"`
	Price       float64     `gorm:"type:decimal(12,2);not null"`
	OwnerID     uint64      `gorm:"not null;index"`
	Owner       *userRecord `gorm:"foreignKey:OwnerID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	CreatedAt   time.Time   `gorm:"index"`
	UpdatedAt   time.Time
}

func (serviceRecord) TableName() string { return "services" }

func newServiceRecord(s *domain.Service) *serviceRecord {
	return &serviceRecord{
		ID:          s.ID,
		Name:        s.Name,
		Description: s.Description,
		Price:       s.Price,
		OwnerID:     s.OwnerID,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

func (r *serviceRecord) toDomain() *domain.Service {
	s := &domain.Service{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
		OwnerID:     r.OwnerID,
		CreatedAt:   r.CreatedAt.UTC(),
		UpdatedAt:   r.UpdatedAt.UTC(),
	}
	if r.Owner != nil {
		s.Owner = &domain.Owner{ID: r.Owner.ID, Name: r.Owner.Name, Role: domain.Role(r.Owner.Role)}
	}
	return s
}
