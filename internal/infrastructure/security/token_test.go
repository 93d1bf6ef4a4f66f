package security

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/catalogo/service-catalog/internal/core/domain"
)

func newTestManager(t *testing.T, opts ...Option) *JWTManager {
	t.Helper()
	m, err := NewJWTManager("test-secret", time.Hour*24, opts...)
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}
	return m
}

func TestJWTManager_RoundTrip(t *testing.T) {
	m := newTestManager(t)
	user := &domain.User{ID: 7, Email: "ana@x.com", Role: domain.RoleAdmin}

	token, err := m.Issue(user)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if parts := strings.Split(token, "."); len(parts) != 3 {
		t.Fatalf("expected three token segments, got %d", len(parts))
	}

	claims, err := m.Verify(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.UserID != 7 || claims.Email != "ana@x.com" || claims.Role != domain.RoleAdmin {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if !claims.ExpiresAt.After(time.Now()) {
		t.Fatalf("expiry should be in the future: %v", claims.ExpiresAt)
	}
	if d := claims.ExpiresAt.Sub(claims.IssuedAt); d != 24*time.Hour {
		t.Fatalf("expected 24h lifetime, got %v", d)
	}
	if claims.TokenID == "" {
		t.Fatalf("expected a token id")
	}
}

func TestJWTManager_UniqueTokens(t *testing.T) {
	m := newTestManager(t)
	user := &domain.User{ID: 1, Email: "a@x.com", Role: domain.RoleClient}

	t1, _ := m.Issue(user)
	t2, _ := m.Issue(user)
	if t1 == t2 {
		t.Fatalf("expected distinct tokens for repeated issuance")
	}
}

func TestJWTManager_Expired(t *testing.T) {
	past := time.Now().Add(-25 * time.Hour)
	issuer := newTestManager(t, WithClock(func() time.Time { return past }))
	verifier := newTestManager(t)

	token, err := issuer.Issue(&domain.User{ID: 1, Email: "a@x.com", Role: domain.RoleClient})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := verifier.Verify(token); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestJWTManager_WrongSecret(t *testing.T) {
	m := newTestManager(t)
	other, _ := NewJWTManager("other-secret", time.Hour)

	token, _ := other.Issue(&domain.User{ID: 1, Email: "a@x.com", Role: domain.RoleClient})
	if _, err := m.Verify(token); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestJWTManager_RejectsForeignAlgorithmAndPayloads(t *testing.T) {
	m := newTestManager(t)
	exp := jwt.NewNumericDate(time.Now().Add(time.Hour))

	hs512, _ := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.MapClaims{
		"id": 1, "email": "a@x.com", "role": "client", "exp": exp,
	}).SignedString([]byte("test-secret"))

	noExp, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id": 1, "email": "a@x.com", "role": "client",
	}).SignedString([]byte("test-secret"))

	badRole, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id": 1, "email": "a@x.com", "role": "administrador", "exp": exp,
	}).SignedString([]byte("test-secret"))

	for name, token := range map[string]string{
		"hs512":     hs512,
		"no expiry": noExp,
		"bad role":  badRole,
		"garbage":   "not-a-token",
		"empty":     "",
	} {
		if _, err := m.Verify(token); !errors.Is(err, domain.ErrInvalidToken) {
			t.Fatalf("%s: expected ErrInvalidToken, got %v", name, err)
		}
	}
}

func TestNewJWTManager_RequiresSecret(t *testing.T) {
	if _, err := NewJWTManager("", time.Hour); !errors.Is(err, ErrEmptySecret) {
		t.Fatalf("expected ErrEmptySecret, got %v", err)
	}
}
