package service

import (
	"context"
	"testing"

	"github.com/Drasasse/gestion-commerce-sub002/internal/repository"
	"github.com/Drasasse/gestion-commerce-sub002/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newStatsService(db *gorm.DB) StatsService {
	return NewStatsService(repository.NewVenteRepository(db), repository.NewProduitRepository(db))
}

func TestDashboard(t *testing.T) {
	db := setupTestDB(t)
	statsSvc := newStatsService(db)
	venteSvc := newVenteService(db, nil)
	boutique := createTestBoutique(t, db, "Boutique Centre")
	scope := scopeFor(gestionnaireSession(boutique.ID), boutique.ID)
	ctx := context.Background()

	casque := createTestProduit(t, db, boutique, "Casque", 50, 20, 2)
	stylo := createTestProduit(t, db, boutique, "Stylo", 5, 100, 2)

	_, err := venteSvc.CreateVente(ctx, scope, CreateVenteRequest{
		Items: []VenteItemRequest{
			{ProduitID: casque.ID.String(), Quantite: 2},
			{ProduitID: stylo.ID.String(), Quantite: 10},
		},
		MontantPaye: "100",
	})
	require.NoError(t, err)

	stats, err := statsSvc.Dashboard(ctx, scope, "", "")
	require.NoError(t, err)

	assert.Equal(t, "150", stats.TotalVentes.String())
	assert.Equal(t, "100", stats.TotalEncaisse.String())
	assert.Equal(t, "50", stats.TotalImpayes.String())
	assert.EqualValues(t, 1, stats.NbVentes)

	// Ranked by quantity sold
	require.NotEmpty(t, stats.TopProduits)
	assert.Equal(t, "Stylo", stats.TopProduits[0].ProduitNom)
	assert.EqualValues(t, 10, stats.TopProduits[0].QuantiteTotale)
}

func TestDashboardDateRange(t *testing.T) {
	db := setupTestDB(t)
	statsSvc := newStatsService(db)
	boutique := createTestBoutique(t, db, "Boutique Centre")
	scope := scopeFor(gestionnaireSession(boutique.ID), boutique.ID)
	ctx := context.Background()

	_, err := statsSvc.Dashboard(ctx, scope, "pas-une-date", "")
	require.True(t, apperror.IsKind(err, apperror.KindValidation))

	_, err = statsSvc.Dashboard(ctx, scope, "2026-02-01", "2026-01-01")
	require.True(t, apperror.IsKind(err, apperror.KindValidation))

	// An empty range reports zero-valued aggregates
	stats, err := statsSvc.Dashboard(ctx, scope, "2020-01-01", "2020-01-31")
	require.NoError(t, err)
	assert.True(t, stats.TotalVentes.IsZero())
	assert.Zero(t, stats.NbVentes)
	assert.Empty(t, stats.TopProduits)
}

func TestDashboardTenantIsolation(t *testing.T) {
	db := setupTestDB(t)
	statsSvc := newStatsService(db)
	venteSvc := newVenteService(db, nil)
	b1 := createTestBoutique(t, db, "Boutique Nord")
	b2 := createTestBoutique(t, db, "Boutique Sud")
	ctx := context.Background()

	produit := createTestProduit(t, db, b1, "Casque", 50, 20, 2)
	_, err := venteSvc.CreateVente(ctx, scopeFor(gestionnaireSession(b1.ID), b1.ID), CreateVenteRequest{
		Items: []VenteItemRequest{{ProduitID: produit.ID.String(), Quantite: 1}},
	})
	require.NoError(t, err)

	other, err := statsSvc.Dashboard(ctx, scopeFor(gestionnaireSession(b2.ID), b2.ID), "", "")
	require.NoError(t, err)
	assert.Zero(t, other.NbVentes)

	// The all-boutiques admin scope folds every tenant in
	all, err := statsSvc.Dashboard(ctx, allScope(), "", "")
	require.NoError(t, err)
	assert.EqualValues(t, 1, all.NbVentes)
}
