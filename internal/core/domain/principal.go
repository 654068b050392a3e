package domain

import "github.com/google/uuid"

type Role string

const (
	RoleAdmin   Role = "admin"
	RoleVisitor Role = "visitor"
)

// Principal is the acting user as resolved by the identity provider.
type Principal struct {
	ID   uuid.UUID `json:"id"`
	Role Role      `json:"role"`
}

func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}
