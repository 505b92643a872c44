package service

import (
	"context"
	"testing"

	"github.com/Drasasse/gestion-commerce-sub002/internal/model"
	"github.com/Drasasse/gestion-commerce-sub002/internal/repository"
	"github.com/Drasasse/gestion-commerce-sub002/pkg/apperror"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newFournisseurService(db *gorm.DB) FournisseurService {
	return NewFournisseurService(repository.NewFournisseurRepository(db))
}

func TestCreateFournisseur(t *testing.T) {
	db := setupTestDB(t)
	boutique := createTestBoutique(t, db, "Boutique Nord")
	svc := newFournisseurService(db)
	scope := scopeFor(gestionnaireSession(boutique.ID), boutique.ID)

	fournisseur, err := svc.CreateFournisseur(context.Background(), scope, CreateFournisseurRequest{
		Nom:   "Grossiste Dupont",
		Email: "contact@dupont.fr",
	})
	require.NoError(t, err)
	assert.Equal(t, "Grossiste Dupont", fournisseur.Nom)
	assert.Equal(t, boutique.ID, fournisseur.BoutiqueID)

	_, err = svc.CreateFournisseur(context.Background(), scope, CreateFournisseurRequest{
		Nom:   "",
		Email: "pas-un-email",
	})
	require.Error(t, err)
	appErr := apperror.From(err)
	assert.Equal(t, apperror.KindValidation, appErr.Kind)
	assert.Len(t, appErr.Violations, 2)
}

func TestDeleteFournisseurWithProduits(t *testing.T) {
	db := setupTestDB(t)
	boutique := createTestBoutique(t, db, "Boutique Nord")
	svc := newFournisseurService(db)
	scope := scopeFor(gestionnaireSession(boutique.ID), boutique.ID)

	fournisseur, err := svc.CreateFournisseur(context.Background(), scope, CreateFournisseurRequest{Nom: "Grossiste Dupont"})
	require.NoError(t, err)

	produit := &model.Produit{
		Nom:           "Casque",
		PrixAchat:     decimal.NewFromInt(20),
		PrixVente:     decimal.NewFromInt(35),
		Stock:         4,
		SeuilAlerte:   2,
		FournisseurID: &fournisseur.ID,
		BoutiqueID:    boutique.ID,
	}
	require.NoError(t, db.Create(produit).Error)

	err = svc.DeleteFournisseur(context.Background(), scope, fournisseur.ID.String())
	assert.True(t, apperror.IsKind(err, apperror.KindConflict))

	require.NoError(t, db.Delete(produit).Error)
	require.NoError(t, svc.DeleteFournisseur(context.Background(), scope, fournisseur.ID.String()))

	_, err = svc.GetFournisseur(context.Background(), scope, fournisseur.ID.String())
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
}

func TestGetFournisseurCrossTenant(t *testing.T) {
	db := setupTestDB(t)
	nord := createTestBoutique(t, db, "Boutique Nord")
	sud := createTestBoutique(t, db, "Boutique Sud")
	svc := newFournisseurService(db)

	fournisseur, err := svc.CreateFournisseur(context.Background(), scopeFor(gestionnaireSession(sud.ID), sud.ID), CreateFournisseurRequest{Nom: "Grossiste Dupont"})
	require.NoError(t, err)

	_, err = svc.GetFournisseur(context.Background(), scopeFor(gestionnaireSession(nord.ID), nord.ID), fournisseur.ID.String())
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))

	_, err = svc.GetFournisseur(context.Background(), allScope(), fournisseur.ID.String())
	require.NoError(t, err)
}
