package domain

import "time"

// TokenClaims is the verified content of a bearer token.
type TokenClaims struct {
	UserID    uint64
	Email     string
	Role      Role
	TokenID   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}
