package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/catalogo/service-catalog/internal/core/domain"
	"github.com/catalogo/service-catalog/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories
// ---------------------------------------------------------------------------

type fakeHasher struct{}

func (fakeHasher) Hash(plain string) (string, error) { return "hashed:" + plain, nil }

func (fakeHasher) Verify(plain, digest string) bool {
	return plain != "" && digest == "hashed:"+plain
}

type stubUserRepo struct {
	hasher    ports.PasswordHasher
	users     map[uint64]*domain.User
	nextID    uint64
	createErr error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{hasher: fakeHasher{}, users: make(map[uint64]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, u *domain.User) error {
	if r.createErr != nil {
		return r.createErr
	}
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return domain.ErrDuplicateEmail
		}
	}
	if u.Password != "" {
		digest, _ := r.hasher.Hash(u.Password)
		u.PasswordHash = digest
		u.Password = ""
	}
	r.nextID++
	u.ID = r.nextID
	r.users[u.ID] = cloneUser(u)
	return nil
}

func (r *stubUserRepo) Update(_ context.Context, u *domain.User) error {
	if _, ok := r.users[u.ID]; !ok {
		return domain.ErrUserNotFound
	}
	if u.Password != "" {
		digest, _ := r.hasher.Hash(u.Password)
		u.PasswordHash = digest
		u.Password = ""
	}
	r.users[u.ID] = cloneUser(u)
	return nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id uint64) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindFirstByRole(_ context.Context, role domain.Role) (*domain.User, error) {
	var found *domain.User
	for _, u := range r.users {
		if u.Role == role && (found == nil || u.ID < found.ID) {
			found = u
		}
	}
	if found == nil {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(found), nil
}

func (r *stubUserRepo) Count(context.Context) (int64, error) { return int64(len(r.users)), nil }

// add inserts a user directly, bypassing the service layer.
func (r *stubUserRepo) add(name string, role domain.Role) *domain.User {
	u := &domain.User{
		Name:     name,
		Email:    strings.ToLower(strings.ReplaceAll(name, " ", ".")) + "@example.com",
		Password: "Secret1",
		Role:     role,
		Active:   true,
	}
	_ = r.Create(context.Background(), u)
	return cloneUser(u)
}

type stubServiceRepo struct {
	users    *stubUserRepo
	services map[uint64]*domain.Service
	nextID   uint64
	clock    time.Time
}

func newStubServiceRepo(users *stubUserRepo) *stubServiceRepo {
	return &stubServiceRepo{
		users:    users,
		services: make(map[uint64]*domain.Service),
		clock:    time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (r *stubServiceRepo) withOwner(s *domain.Service) *domain.Service {
	clone := *s
	if u, ok := r.users.users[s.OwnerID]; ok {
		owner := u.AsOwner()
		clone.Owner = &owner
	}
	return &clone
}

func (r *stubServiceRepo) Create(_ context.Context, s *domain.Service) error {
	r.nextID++
	r.clock = r.clock.Add(time.Second)
	s.ID = r.nextID
	s.CreatedAt = r.clock
	clone := *s
	r.services[s.ID] = &clone
	return nil
}

func (r *stubServiceRepo) Update(_ context.Context, s *domain.Service) error {
	if _, ok := r.services[s.ID]; !ok {
		return domain.ErrServiceNotFound
	}
	clone := *s
	clone.Owner = nil
	r.services[s.ID] = &clone
	return nil
}

func (r *stubServiceRepo) Delete(_ context.Context, id uint64) error {
	if _, ok := r.services[id]; !ok {
		return domain.ErrServiceNotFound
	}
	delete(r.services, id)
	return nil
}

func (r *stubServiceRepo) FindByID(_ context.Context, id uint64) (*domain.Service, error) {
	s, ok := r.services[id]
	if !ok {
		return nil, domain.ErrServiceNotFound
	}
	return r.withOwner(s), nil
}

func (r *stubServiceRepo) List(_ context.Context, f ports.ListServicesFilter) ([]*domain.Service, error) {
	out := make([]*domain.Service, 0, len(r.services))
	for _, s := range r.services {
		if f.OwnerID != 0 && s.OwnerID != f.OwnerID {
			continue
		}
		out = append(out, r.withOwner(s))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *stubServiceRepo) Count(context.Context) (int64, error) { return int64(len(r.services)), nil }

func ptr[T any](v T) *T { return &v }
