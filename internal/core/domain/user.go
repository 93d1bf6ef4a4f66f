package domain

import (
	"strings"
	"time"
)

// User models an authenticated actor in the system.
//
// Password carries a new plaintext password between the service layer and
// the repository, which hashes it before persistence. Neither Password nor
// PasswordHash is ever serialized.
type User struct {
	ID           uint64    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Password     string    `json:"-"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Owner is the minimal projection of a user attached to services.
type Owner struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
	Role Role   `json:"role"`
}

// AsOwner returns the public projection of u.
func (u *User) AsOwner() Owner {
	return Owner{ID: u.ID, Name: u.Name, Role: u.Role}
}

// NormalizeEmail trims and lower-cases an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Password length bounds. bcrypt only accepts up to 72 bytes.
const (
	MinPasswordLength = 6
	MaxPasswordBytes  = 72
)

// CheckPasswordLength rejects passwords outside the accepted bounds.
func CheckPasswordLength(password string) error {
	if len(password) < MinPasswordLength {
		return Errorf(ErrValidation, "password must be at least %d characters", MinPasswordLength)
	}
	if len(password) > MaxPasswordBytes {
		return Errorf(ErrValidation, "password must be at most %d bytes", MaxPasswordBytes)
	}
	return nil
}
