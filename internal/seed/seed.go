// Package seed provisions the first superadmin and the sample catalog.
// Both operations are idempotent and run only from the CLI, never on boot.
package seed

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/catalogo/service-catalog/internal/core/domain"
	"github.com/catalogo/service-catalog/internal/core/ports"
)

var validation = validator.New()

// ErrNoOwner is returned by Services when no active admin or superadmin can
// own the sample catalog.
var ErrNoOwner = errors.New("seed: no active admin or superadmin to own the sample services")

// Superadmin describes the account EnsureSuperadmin creates.
type Superadmin struct {
	Name     string
	Email    string
	Password string
}

func (s Superadmin) validate() error {
	if n := len([]rune(strings.TrimSpace(s.Name))); n < 2 || n > 100 {
		return domain.Errorf(domain.ErrValidation, "name must be between 2 and 100 characters")
	}
	if err := validation.Var(s.Email, "required,email"); err != nil {
		return domain.Errorf(domain.ErrValidation, "email must be a valid email")
	}
	return domain.CheckPasswordLength(s.Password)
}

// EnsureSuperadmin creates a superadmin unless one already exists. It
// returns the superadmin found or created, and whether it was created.
func EnsureSuperadmin(ctx context.Context, users ports.UserRepository, in Superadmin, log zerolog.Logger) (*domain.User, bool, error) {
	existing, err := users.FindFirstByRole(ctx, domain.RoleSuperadmin)
	if err == nil {
		log.Info().Uint64("user_id", existing.ID).Str("email", existing.Email).Msg("superadmin already exists")
		return existing, false, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, false, err
	}

	in.Email = domain.NormalizeEmail(in.Email)
	if err := in.validate(); err != nil {
		return nil, false, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Name:      strings.TrimSpace(in.Name),
		Email:     in.Email,
		Password:  in.Password,
		Role:      domain.RoleSuperadmin,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := users.Create(ctx, user); err != nil {
		return nil, false, err
	}
	log.Info().Uint64("user_id", user.ID).Str("email", user.Email).Msg("superadmin created")
	return user, true, nil
}

// Services inserts the sample catalog when no service exists yet and
// returns how many were inserted. ownerEmail picks the owner; when empty the
// oldest superadmin (or else the oldest admin) owns them.
func Services(ctx context.Context, users ports.UserRepository, services ports.ServiceRepository, ownerEmail string, log zerolog.Logger) (int, error) {
	count, err := services.Count(ctx)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		log.Info().Int64("existing", count).Msg("catalog already has services, skipping seed")
		return 0, nil
	}

	owner, err := resolveOwner(ctx, users, ownerEmail)
	if err != nil {
		return 0, err
	}

	now := time.Now().UTC()
	for i, s := range SampleServices {
		// Distinct timestamps keep the newest-first listing stable.
		at := now.Add(time.Duration(i) * time.Millisecond)
		svc := &domain.Service{
			Name:        s.Name,
			Description: s.Description,
			Price:       s.Price,
			OwnerID:     owner.ID,
			CreatedAt:   at,
			UpdatedAt:   at,
		}
		if err := services.Create(ctx, svc); err != nil {
			return i, err
		}
	}
	log.Info().Int("inserted", len(SampleServices)).Uint64("owner_id", owner.ID).Msg("sample catalog seeded")
	return len(SampleServices), nil
}

func resolveOwner(ctx context.Context, users ports.UserRepository, email string) (*domain.User, error) {
	if email != "" {
		u, err := users.FindByEmail(ctx, domain.NormalizeEmail(email))
		if err != nil {
			return nil, err
		}
		if !u.Active || !domain.HasRole(u.Role, domain.RoleAdmin, domain.RoleSuperadmin) {
			return nil, ErrNoOwner
		}
		return u, nil
	}

	for _, role := range []domain.Role{domain.RoleSuperadmin, domain.RoleAdmin} {
		u, err := users.FindFirstByRole(ctx, role)
		switch {
		case err == nil && u.Active:
			return u, nil
		case err != nil && !errors.Is(err, domain.ErrNotFound):
			return nil, err
		}
	}
	return nil, ErrNoOwner
}
