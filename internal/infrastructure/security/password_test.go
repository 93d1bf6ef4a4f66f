package security

import (
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher_SaltedDigests(t *testing.T) {
	h := NewBcryptHasher(bcrypt.DefaultCost)

	d1, err := h.Hash("Secret1")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	d2, err := h.Hash("Secret1")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}

	if d1 == d2 {
		t.Fatalf("expected different digests for repeated hashing")
	}
	if !h.Verify("Secret1", d1) || !h.Verify("Secret1", d2) {
		t.Fatalf("both digests should verify")
	}
	if h.Verify("secret1", d1) {
		t.Fatalf("wrong password verified")
	}
	if !strings.HasPrefix(d1, "$2a$10$") {
		t.Fatalf("digest is not self-describing: %s", d1)
	}
}

func TestBcryptHasher_FailsClosed(t *testing.T) {
	h := NewBcryptHasher(bcrypt.DefaultCost)
	digest, err := h.Hash("Secret1")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}

	if h.Verify("", digest) {
		t.Fatalf("empty plaintext must not verify")
	}
	if h.Verify("Secret1", "") {
		t.Fatalf("empty digest must not verify")
	}
	if h.Verify("Secret1", "not-a-bcrypt-digest") {
		t.Fatalf("garbage digest must not verify")
	}
	if _, err := h.Hash(""); err == nil {
		t.Fatalf("expected error hashing empty password")
	}
}

func TestNewBcryptHasher_MinimumCost(t *testing.T) {
	if got := NewBcryptHasher(4).Cost(); got != MinBcryptCost {
		t.Fatalf("expected cost raised to %d, got %d", MinBcryptCost, got)
	}
	if got := NewBcryptHasher(12).Cost(); got != 12 {
		t.Fatalf("expected cost 12, got %d", got)
	}
}
