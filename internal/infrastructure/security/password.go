package security

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// MinBcryptCost is the lowest cost accepted for password hashing.
const MinBcryptCost = 10

// BcryptHasher hashes passwords with bcrypt. Digests embed algorithm, cost
// and salt, so Verify needs no other state.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher returns a hasher using cost, raised to MinBcryptCost when
// lower and capped at bcrypt.MaxCost.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < MinBcryptCost {
		cost = MinBcryptCost
	}
	if cost > bcrypt.MaxCost {
		cost = bcrypt.MaxCost
	}
	return &BcryptHasher{cost: cost}
}

// Cost reports the configured bcrypt cost.
func (h *BcryptHasher) Cost() int { return h.cost }

func (h *BcryptHasher) Hash(plain string) (string, error) {
	if plain == "" {
		return "", errors.New("security: empty password")
	}
	digest, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

func (h *BcryptHasher) Verify(plain, digest string) bool {
	if plain == "" || digest == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plain)) == nil
}
