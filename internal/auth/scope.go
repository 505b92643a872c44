package auth

import (
	"github.com/Drasasse/gestion-commerce-sub002/pkg/apperror"
	"github.com/google/uuid"
)

// Scope is the effective tenant of a request. A nil BoutiqueID means
// "all boutiques" and is only ever produced for ADMIN sessions.
type Scope struct {
	Session    Session
	BoutiqueID *uuid.UUID
}

// Resolve computes the effective tenant for a session and an optional
// requested boutique (query parameter):
//
//   - ADMIN with a requested boutique operates on that boutique.
//   - Any session bound to a boutique operates on its own boutique;
//     a requested boutique is ignored for GESTIONNAIRE.
//   - ADMIN with neither operates on all boutiques.
//   - GESTIONNAIRE without a boutique assignment is an inconsistent
//     account state and is refused, never crashed on.
func Resolve(s Session, requested string) (Scope, error) {
	if !ValidRole(s.Role) {
		return Scope{}, apperror.Authentication("invalid session role")
	}

	if s.IsAdmin() && requested != "" {
		id, err := uuid.Parse(requested)
		if err != nil {
			return Scope{}, apperror.ValidationMsg("invalid boutiqueId")
		}
		return Scope{Session: s, BoutiqueID: &id}, nil
	}

	if s.BoutiqueID != nil {
		return Scope{Session: s, BoutiqueID: s.BoutiqueID}, nil
	}

	if s.IsAdmin() {
		return Scope{Session: s}, nil
	}

	return Scope{}, apperror.Authentication("no boutique assigned to this account")
}

// Tenant returns the single boutique this scope targets. Operations that must
// stamp a tenant (creates) call this; an all-boutiques admin scope fails with
// "tenant not specified".
func (sc Scope) Tenant() (uuid.UUID, error) {
	if sc.BoutiqueID == nil {
		return uuid.Nil, apperror.Authentication("tenant not specified")
	}
	return *sc.BoutiqueID, nil
}

// CanAccess reports whether the scope may touch a record owned by boutiqueID.
func (sc Scope) CanAccess(boutiqueID uuid.UUID) bool {
	return sc.BoutiqueID == nil || *sc.BoutiqueID == boutiqueID
}

// RequireAdmin gates admin-only operations (boutique management, capital
// injection). The failure is a typed authorization error, surfaced as a
// rejected request, regardless of how well-formed the payload is.
func RequireAdmin(s Session) error {
	if !s.IsAdmin() {
		return apperror.Authorization("reserved for administrators")
	}
	return nil
}
