package service

import (
	"fmt"
	"testing"

	"github.com/Drasasse/gestion-commerce-sub002/internal/auth"
	"github.com/Drasasse/gestion-commerce-sub002/internal/database"
	"github.com/Drasasse/gestion-commerce-sub002/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	// unique in-memory DB per test name to avoid leakage via shared cache
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func createTestBoutique(t *testing.T, db *gorm.DB, nom string) *model.Boutique {
	boutique := &model.Boutique{Nom: nom}
	require.NoError(t, db.Create(boutique).Error)
	return boutique
}

func adminSession() auth.Session {
	return auth.Session{UserID: uuid.New(), Role: auth.RoleAdmin}
}

func gestionnaireSession(boutiqueID uuid.UUID) auth.Session {
	return auth.Session{UserID: uuid.New(), Role: auth.RoleGestionnaire, BoutiqueID: &boutiqueID}
}

func scopeFor(s auth.Session, boutiqueID uuid.UUID) auth.Scope {
	return auth.Scope{Session: s, BoutiqueID: &boutiqueID}
}

// allScope is the all-boutiques scope an unrestricted admin resolves to.
func allScope() auth.Scope {
	return auth.Scope{Session: adminSession()}
}
