package service

import (
	"context"
	"testing"

	"github.com/Drasasse/gestion-commerce-sub002/internal/model"
	"github.com/Drasasse/gestion-commerce-sub002/internal/repository"
	"github.com/Drasasse/gestion-commerce-sub002/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCategorie(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCategorieService(repository.NewCategorieRepository(db))
	boutique := createTestBoutique(t, db, "Boutique Centre")
	scope := scopeFor(gestionnaireSession(boutique.ID), boutique.ID)
	ctx := context.Background()

	created, err := svc.CreateCategorie(ctx, scope, CreateCategorieRequest{Nom: "Électronique", Description: "Téléphones et accessoires"})
	require.NoError(t, err)
	assert.Equal(t, "Électronique", created.Nom)
	assert.Equal(t, boutique.ID, created.BoutiqueID)

	// Same nom in the same boutique is refused
	_, err = svc.CreateCategorie(ctx, scope, CreateCategorieRequest{Nom: "Électronique"})
	assert.True(t, apperror.IsKind(err, apperror.KindConflict))

	// Missing nom aggregates a field violation
	_, err = svc.CreateCategorie(ctx, scope, CreateCategorieRequest{})
	require.True(t, apperror.IsKind(err, apperror.KindValidation))
	assert.Equal(t, "nom", apperror.From(err).Violations[0].Field)
}

func TestCreateCategorieSameNomAcrossBoutiques(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCategorieService(repository.NewCategorieRepository(db))
	b1 := createTestBoutique(t, db, "Boutique Nord")
	b2 := createTestBoutique(t, db, "Boutique Sud")
	ctx := context.Background()

	_, err := svc.CreateCategorie(ctx, scopeFor(gestionnaireSession(b1.ID), b1.ID), CreateCategorieRequest{Nom: "Électronique"})
	require.NoError(t, err)

	// The same nom in another boutique does not conflict
	_, err = svc.CreateCategorie(ctx, scopeFor(gestionnaireSession(b2.ID), b2.ID), CreateCategorieRequest{Nom: "Électronique"})
	assert.NoError(t, err)
}

func TestGetCategorieCrossTenant(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCategorieService(repository.NewCategorieRepository(db))
	b1 := createTestBoutique(t, db, "Boutique Nord")
	b2 := createTestBoutique(t, db, "Boutique Sud")
	ctx := context.Background()

	created, err := svc.CreateCategorie(ctx, scopeFor(gestionnaireSession(b1.ID), b1.ID), CreateCategorieRequest{Nom: "Alimentation"})
	require.NoError(t, err)

	// A gestionnaire of another boutique sees not-found, not forbidden
	_, err = svc.GetCategorie(ctx, scopeFor(gestionnaireSession(b2.ID), b2.ID), created.ID.String())
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))

	// An unscoped admin reads it fine
	got, err := svc.GetCategorie(ctx, allScope(), created.ID.String())
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
}

func TestUpdateCategorieRenameConflict(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCategorieService(repository.NewCategorieRepository(db))
	boutique := createTestBoutique(t, db, "Boutique Centre")
	scope := scopeFor(gestionnaireSession(boutique.ID), boutique.ID)
	ctx := context.Background()

	_, err := svc.CreateCategorie(ctx, scope, CreateCategorieRequest{Nom: "Boissons"})
	require.NoError(t, err)
	snacks, err := svc.CreateCategorie(ctx, scope, CreateCategorieRequest{Nom: "Snacks"})
	require.NoError(t, err)

	nom := "Boissons"
	_, err = svc.UpdateCategorie(ctx, scope, snacks.ID.String(), UpdateCategorieRequest{Nom: &nom})
	assert.True(t, apperror.IsKind(err, apperror.KindConflict))

	// Renaming to itself is a no-op, not a conflict
	same := "Snacks"
	_, err = svc.UpdateCategorie(ctx, scope, snacks.ID.String(), UpdateCategorieRequest{Nom: &same})
	assert.NoError(t, err)
}

func TestDeleteCategorieWithProduits(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCategorieService(repository.NewCategorieRepository(db))
	boutique := createTestBoutique(t, db, "Boutique Centre")
	scope := scopeFor(gestionnaireSession(boutique.ID), boutique.ID)
	ctx := context.Background()

	created, err := svc.CreateCategorie(ctx, scope, CreateCategorieRequest{Nom: "Électronique"})
	require.NoError(t, err)

	produit := &model.Produit{Nom: "Casque", BoutiqueID: boutique.ID, CategorieID: &created.ID}
	require.NoError(t, db.Create(produit).Error)

	err = svc.DeleteCategorie(ctx, scope, created.ID.String())
	assert.True(t, apperror.IsKind(err, apperror.KindConflict))

	// Detach the produit and the delete goes through
	require.NoError(t, db.Model(produit).Update("categorie_id", nil).Error)
	require.NoError(t, svc.DeleteCategorie(ctx, scope, created.ID.String()))

	_, err = svc.GetCategorie(ctx, scope, created.ID.String())
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
}

func TestListCategoriesScoped(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCategorieService(repository.NewCategorieRepository(db))
	b1 := createTestBoutique(t, db, "Boutique Nord")
	b2 := createTestBoutique(t, db, "Boutique Sud")
	ctx := context.Background()

	_, err := svc.CreateCategorie(ctx, scopeFor(gestionnaireSession(b1.ID), b1.ID), CreateCategorieRequest{Nom: "Boissons"})
	require.NoError(t, err)
	_, err = svc.CreateCategorie(ctx, scopeFor(gestionnaireSession(b2.ID), b2.ID), CreateCategorieRequest{Nom: "Snacks"})
	require.NoError(t, err)

	list, total, err := svc.ListCategories(ctx, scopeFor(gestionnaireSession(b1.ID), b1.ID), "", 1, 20)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, list, 1)
	assert.Equal(t, "Boissons", list[0].Nom)

	// All-boutiques admin scope sees both
	_, total, err = svc.ListCategories(ctx, allScope(), "", 1, 20)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
}

func TestRecreateCategorieAfterDelete(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCategorieService(repository.NewCategorieRepository(db))
	boutique := createTestBoutique(t, db, "Boutique Centre")
	scope := scopeFor(gestionnaireSession(boutique.ID), boutique.ID)
	ctx := context.Background()

	created, err := svc.CreateCategorie(ctx, scope, CreateCategorieRequest{Nom: "Boissons"})
	require.NoError(t, err)
	require.NoError(t, svc.DeleteCategorie(ctx, scope, created.ID.String()))

	// A deleted category no longer occupies its nom
	recreated, err := svc.CreateCategorie(ctx, scope, CreateCategorieRequest{Nom: "Boissons"})
	require.NoError(t, err)
	assert.NotEqual(t, created.ID, recreated.ID)

	// And the recreated one conflicts again
	_, err = svc.CreateCategorie(ctx, scope, CreateCategorieRequest{Nom: "Boissons"})
	assert.True(t, apperror.IsKind(err, apperror.KindConflict))
}
