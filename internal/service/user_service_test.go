package service

import (
	"context"
	"testing"

	"github.com/Drasasse/gestion-commerce-sub002/internal/auth"
	"github.com/Drasasse/gestion-commerce-sub002/internal/model"
	"github.com/Drasasse/gestion-commerce-sub002/internal/repository"
	"github.com/Drasasse/gestion-commerce-sub002/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var testJWTSecret = []byte("test_secret")

func newUserService(db *gorm.DB) UserService {
	return NewUserService(repository.NewUserRepository(db), repository.NewBoutiqueRepository(db), testJWTSecret)
}

func seedUser(t *testing.T, db *gorm.DB, email, password, role string, boutiqueID *model.Boutique) *model.User {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	user := &model.User{Nom: "Test User", Email: email, Password: string(hashed), Role: role}
	if boutiqueID != nil {
		user.BoutiqueID = &boutiqueID.ID
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func TestLogin(t *testing.T) {
	db := setupTestDB(t)
	svc := newUserService(db)
	ctx := context.Background()

	seedUser(t, db, "admin@example.com", "secret123", auth.RoleAdmin, nil)

	res, err := svc.Login(ctx, LoginRequest{Email: "admin@example.com", Password: "secret123"})
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
	assert.Equal(t, auth.RoleAdmin, res.User.Role)

	// The issued token parses back into the same identity
	session, err := auth.ParseToken(testJWTSecret, res.Token)
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, session.UserID)

	// Wrong password and unknown email fail identically
	_, badPass := svc.Login(ctx, LoginRequest{Email: "admin@example.com", Password: "wrong"})
	_, badEmail := svc.Login(ctx, LoginRequest{Email: "nobody@example.com", Password: "secret123"})
	require.True(t, apperror.IsKind(badPass, apperror.KindAuthentication))
	require.True(t, apperror.IsKind(badEmail, apperror.KindAuthentication))
	assert.Equal(t, apperror.From(badPass).Message, apperror.From(badEmail).Message)
}

func TestCreateUser(t *testing.T) {
	db := setupTestDB(t)
	svc := newUserService(db)
	ctx := context.Background()
	boutique := createTestBoutique(t, db, "Boutique Centre")

	admin := adminSession()

	// A gestionnaire must be bound to a boutique
	_, err := svc.CreateUser(ctx, admin, CreateUserRequest{
		Nom: "Gestionnaire", Email: "gest@example.com", Password: "secret123", Role: auth.RoleGestionnaire,
	})
	require.True(t, apperror.IsKind(err, apperror.KindValidation))

	created, err := svc.CreateUser(ctx, admin, CreateUserRequest{
		Nom: "Gestionnaire", Email: "gest@example.com", Password: "secret123",
		Role: auth.RoleGestionnaire, BoutiqueID: boutique.ID.String(),
	})
	require.NoError(t, err)
	require.NotNil(t, created.BoutiqueID)
	assert.Equal(t, boutique.ID, *created.BoutiqueID)

	// Emails are unique across all users
	_, err = svc.CreateUser(ctx, admin, CreateUserRequest{
		Nom: "Doublon", Email: "gest@example.com", Password: "secret123", Role: auth.RoleAdmin,
	})
	assert.True(t, apperror.IsKind(err, apperror.KindConflict))

	// Non-admins cannot manage accounts
	_, err = svc.CreateUser(ctx, gestionnaireSession(boutique.ID), CreateUserRequest{
		Nom: "Intrus", Email: "intrus@example.com", Password: "secret123", Role: auth.RoleAdmin,
	})
	assert.True(t, apperror.IsKind(err, apperror.KindAuthorization))
}

func TestUpdateUserRoleConsistency(t *testing.T) {
	db := setupTestDB(t)
	svc := newUserService(db)
	ctx := context.Background()
	boutique := createTestBoutique(t, db, "Boutique Centre")

	user := seedUser(t, db, "gest@example.com", "secret123", auth.RoleGestionnaire, boutique)
	admin := adminSession()

	// Unassigning the boutique of a gestionnaire is inconsistent
	empty := ""
	_, err := svc.UpdateUser(ctx, admin, user.ID.String(), UpdateUserRequest{BoutiqueID: &empty})
	require.True(t, apperror.IsKind(err, apperror.KindValidation))

	// Promoting to admin first makes the unassignment legal
	role := auth.RoleAdmin
	updated, err := svc.UpdateUser(ctx, admin, user.ID.String(), UpdateUserRequest{Role: &role, BoutiqueID: &empty})
	require.NoError(t, err)
	assert.Nil(t, updated.BoutiqueID)
	assert.Equal(t, auth.RoleAdmin, updated.Role)
}

func TestDeleteUserSelf(t *testing.T) {
	db := setupTestDB(t)
	svc := newUserService(db)
	ctx := context.Background()

	user := seedUser(t, db, "admin@example.com", "secret123", auth.RoleAdmin, nil)
	session := auth.Session{UserID: user.ID, Role: auth.RoleAdmin}

	err := svc.DeleteUser(ctx, session, user.ID.String())
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))

	other := seedUser(t, db, "other@example.com", "secret123", auth.RoleAdmin, nil)
	assert.NoError(t, svc.DeleteUser(ctx, session, other.ID.String()))
}

func TestGetMe(t *testing.T) {
	db := setupTestDB(t)
	svc := newUserService(db)
	ctx := context.Background()
	boutique := createTestBoutique(t, db, "Boutique Centre")

	user := seedUser(t, db, "gest@example.com", "secret123", auth.RoleGestionnaire, boutique)

	me, err := svc.GetMe(ctx, auth.Session{UserID: user.ID, Role: user.Role, BoutiqueID: user.BoutiqueID})
	require.NoError(t, err)
	assert.Equal(t, "gest@example.com", me.Email)
	assert.Equal(t, "Boutique Centre", me.BoutiqueNom)
}
