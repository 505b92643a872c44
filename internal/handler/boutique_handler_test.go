package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoutiqueAdminOnly(t *testing.T) {
	router, db := setupTestRouter(t)
	boutique := seedBoutique(t, db, "Boutique Nord")
	gerant := seedUser(t, db, "gerant@exemple.com", "motdepasse", "GESTIONNAIRE", boutique)
	admin := seedUser(t, db, "admin@exemple.com", "motdepasse", "ADMIN", nil)

	payload := map[string]string{
		"nom":             "Boutique Sud",
		"adresse":         "12 rue du Marché",
		"capital_initial": "5000.00",
	}

	// A well-formed payload changes nothing for a gestionnaire
	rec := doRequest(t, router, http.MethodPost, "/api/boutiques", tokenFor(t, gerant), payload)
	requireStatus(t, rec, http.StatusForbidden)
	assert.Equal(t, "reserved for administrators", decodeBody(t, rec)["error"])

	rec = doRequest(t, router, http.MethodPost, "/api/boutiques", tokenFor(t, admin), payload)
	requireStatus(t, rec, http.StatusCreated)
	created := decodeBody(t, rec)
	assert.Equal(t, "Boutique Sud", created["nom"])
	assert.Equal(t, "5000.00", created["capital_initial"])
}

func TestBoutiqueGestionnaireSeesOnlyOwn(t *testing.T) {
	router, db := setupTestRouter(t)
	nord := seedBoutique(t, db, "Boutique Nord")
	sud := seedBoutique(t, db, "Boutique Sud")
	gerant := seedUser(t, db, "gerant@exemple.com", "motdepasse", "GESTIONNAIRE", nord)
	token := tokenFor(t, gerant)

	rec := doRequest(t, router, http.MethodGet, "/api/boutiques/"+nord.ID.String(), token, nil)
	requireStatus(t, rec, http.StatusOK)

	rec = doRequest(t, router, http.MethodGet, "/api/boutiques/"+sud.ID.String(), token, nil)
	requireStatus(t, rec, http.StatusForbidden)
}

func TestTransactionAdminOnly(t *testing.T) {
	router, db := setupTestRouter(t)
	boutique := seedBoutique(t, db, "Boutique Nord")
	gerant := seedUser(t, db, "gerant@exemple.com", "motdepasse", "GESTIONNAIRE", boutique)
	admin := seedUser(t, db, "admin@exemple.com", "motdepasse", "ADMIN", nil)

	payload := map[string]string{
		"boutique_id": boutique.ID.String(),
		"type":        "INJECTION",
		"montant":     "500.00",
		"description": "Apport initial",
	}

	rec := doRequest(t, router, http.MethodPost, "/api/transactions", tokenFor(t, gerant), payload)
	requireStatus(t, rec, http.StatusForbidden)

	rec = doRequest(t, router, http.MethodPost, "/api/transactions", tokenFor(t, admin), payload)
	requireStatus(t, rec, http.StatusCreated)
	created := decodeBody(t, rec)
	assert.Equal(t, "INJECTION", created["type"])
	assert.Equal(t, "500.00", created["montant"])
}

func TestTransactionValidationOverHTTP(t *testing.T) {
	router, db := setupTestRouter(t)
	boutique := seedBoutique(t, db, "Boutique Nord")
	admin := seedUser(t, db, "admin@exemple.com", "motdepasse", "ADMIN", nil)

	rec := doRequest(t, router, http.MethodPost, "/api/transactions", tokenFor(t, admin), map[string]string{
		"boutique_id": boutique.ID.String(),
		"type":        "VIREMENT",
		"montant":     "-10",
	})
	requireStatus(t, rec, http.StatusBadRequest)

	body := decodeBody(t, rec)
	details, ok := body["details"].([]interface{})
	require.True(t, ok)
	assert.Len(t, details, 2)
}
