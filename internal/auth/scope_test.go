package auth

import (
	"testing"

	"github.com/Drasasse/gestion-commerce-sub002/pkg/apperror"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveAdmin(t *testing.T) {
	admin := Session{UserID: uuid.New(), Role: RoleAdmin}
	target := uuid.New()

	// Requested boutique wins
	scope, err := Resolve(admin, target.String())
	require.NoError(t, err)
	require.NotNil(t, scope.BoutiqueID)
	assert.Equal(t, target, *scope.BoutiqueID)

	// No request means all boutiques
	scope, err = Resolve(admin, "")
	require.NoError(t, err)
	assert.Nil(t, scope.BoutiqueID)

	// A garbage boutiqueId is a validation error, not a fallback
	_, err = Resolve(admin, "pas-un-uuid")
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))
}

func TestResolveAdminWithOwnBoutique(t *testing.T) {
	own := uuid.New()
	admin := Session{UserID: uuid.New(), Role: RoleAdmin, BoutiqueID: &own}

	scope, err := Resolve(admin, "")
	require.NoError(t, err)
	require.NotNil(t, scope.BoutiqueID)
	assert.Equal(t, own, *scope.BoutiqueID)
}

func TestResolveGestionnaire(t *testing.T) {
	own := uuid.New()
	other := uuid.New()
	gest := Session{UserID: uuid.New(), Role: RoleGestionnaire, BoutiqueID: &own}

	// A requested boutique is ignored for gestionnaires
	scope, err := Resolve(gest, other.String())
	require.NoError(t, err)
	require.NotNil(t, scope.BoutiqueID)
	assert.Equal(t, own, *scope.BoutiqueID)
}

func TestResolveGestionnaireWithoutBoutique(t *testing.T) {
	gest := Session{UserID: uuid.New(), Role: RoleGestionnaire}

	_, err := Resolve(gest, "")
	assert.True(t, apperror.IsKind(err, apperror.KindAuthentication))
}

func TestResolveInvalidRole(t *testing.T) {
	_, err := Resolve(Session{UserID: uuid.New(), Role: "SUPERVISEUR"}, "")
	assert.True(t, apperror.IsKind(err, apperror.KindAuthentication))
}

func TestScopeTenant(t *testing.T) {
	id := uuid.New()

	got, err := Scope{BoutiqueID: &id}.Tenant()
	require.NoError(t, err)
	assert.Equal(t, id, got)

	_, err = Scope{}.Tenant()
	assert.True(t, apperror.IsKind(err, apperror.KindAuthentication))
}

func TestScopeCanAccess(t *testing.T) {
	id := uuid.New()
	other := uuid.New()

	assert.True(t, Scope{}.CanAccess(id))
	assert.True(t, Scope{BoutiqueID: &id}.CanAccess(id))
	assert.False(t, Scope{BoutiqueID: &id}.CanAccess(other))
}

func TestRequireAdmin(t *testing.T) {
	assert.NoError(t, RequireAdmin(Session{Role: RoleAdmin}))

	err := RequireAdmin(Session{Role: RoleGestionnaire})
	assert.True(t, apperror.IsKind(err, apperror.KindAuthorization))
}
