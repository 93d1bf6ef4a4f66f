package domain

import "time"

// Service is a catalog offering owned by exactly one user.
type Service struct {
	ID          uint64    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	OwnerID     uint64    `json:"owner_id"`
	Owner       *Owner    `json:"owner,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CanManageService decides whether actor may update or delete svc.
// Superadmins manage everything, admins manage what they own, and every
// other role is refused.
func CanManageService(actor *User, svc *Service) error {
	if actor == nil {
		return Errorf(ErrUnauthorized, "user not authenticated")
	}
	switch actor.Role {
	case RoleSuperadmin:
		return nil
	case RoleAdmin:
		if svc.OwnerID == actor.ID {
			return nil
		}
		return Errorf(ErrForbidden, "you do not have permission to manage this service")
	default:
		return &Error{Kind: ErrForbidden, Message: RequiredRolesMessage(RoleAdmin, RoleSuperadmin)}
	}
}
