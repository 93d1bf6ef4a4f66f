package domain

import (
	"fmt"
	"strings"
)

// Role is the closed set of roles a user can hold.
type Role string

const (
	RoleSuperadmin Role = "superadmin"
	RoleAdmin      Role = "admin"
	RoleClient     Role = "client"
)

// Roles lists every known role, most privileged first.
var Roles = []Role{RoleSuperadmin, RoleAdmin, RoleClient}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleSuperadmin, RoleAdmin, RoleClient:
		return true
	}
	return false
}

func (r Role) String() string { return string(r) }

// ParseRole converts a raw role string into a Role. An empty string yields
// RoleClient, the default role.
func ParseRole(s string) (Role, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return RoleClient, nil
	}
	r := Role(s)
	if !r.Valid() {
		return "", Errorf(ErrValidation, "role must be one of: %s", joinRoles(Roles, ", "))
	}
	return r, nil
}

// HasRole reports whether r is contained in allowed.
func HasRole(r Role, allowed ...Role) bool {
	for _, a := range allowed {
		if a == r {
			return true
		}
	}
	return false
}

func joinRoles(roles []Role, sep string) string {
	parts := make([]string, len(roles))
	for i, r := range roles {
		parts[i] = string(r)
	}
	return strings.Join(parts, sep)
}

// RequiredRolesMessage renders the denial message used by role gates.
func RequiredRolesMessage(roles ...Role) string {
	return fmt.Sprintf("access denied, required role: %s", joinRoles(roles, " or "))
}
