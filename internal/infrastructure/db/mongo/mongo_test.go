package mongo

import (
	"testing"
	"time"

	"github.com/catalogo/service-catalog/internal/core/domain"
)

func TestUserDoc_ToDomain(t *testing.T) {
	ts := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	d := userDoc{ID: 7, Name: "Ana", Email: "ana@example.com", Password: "digest", Role: "admin", Active: true, CreatedAt: ts, UpdatedAt: ts}

	u := d.toDomain()
	if u.ID != 7 || u.Role != domain.RoleAdmin || u.PasswordHash != "digest" || u.Password != "" {
		t.Fatalf("unexpected user: %+v", u)
	}
	if !u.Active || !u.CreatedAt.Equal(ts) {
		t.Fatalf("unexpected user: %+v", u)
	}
}

func TestServiceDoc_ToDomain(t *testing.T) {
	d := serviceDoc{ID: 3, Name: "Wash", Price: 9.5, OwnerID: 7}
	owner := &domain.Owner{ID: 7, Name: "Ana", Role: domain.RoleAdmin}

	s := d.toDomain(owner)
	if s.ID != 3 || s.OwnerID != 7 || s.Owner != owner || s.Price != 9.5 {
		t.Fatalf("unexpected service: %+v", s)
	}
	if d.toDomain(nil).Owner != nil {
		t.Fatalf("expected nil owner when the user is gone")
	}
}

func TestOwnerIDs_Deduplicates(t *testing.T) {
	docs := []serviceDoc{{OwnerID: 1}, {OwnerID: 2}, {OwnerID: 1}, {OwnerID: 3}}
	got := ownerIDs(docs)
	want := []int64{1, 2, 3}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}
