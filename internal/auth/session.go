package auth

import (
	"github.com/google/uuid"
)

// Role enum constants
const (
	RoleAdmin        = "ADMIN"
	RoleGestionnaire = "GESTIONNAIRE"
)

// ValidRole reports whether role is one of the two known roles.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleGestionnaire
}

// Session is the authenticated caller of a request, extracted once from the
// JWT by the middleware and passed explicitly to services.
type Session struct {
	UserID     uuid.UUID
	Role       string
	BoutiqueID *uuid.UUID
}

// IsAdmin reports whether the session holds the cross-tenant role.
func (s Session) IsAdmin() bool {
	return s.Role == RoleAdmin
}
