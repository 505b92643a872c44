package handler

import (
	"net/http"
	"testing"

	"github.com/Drasasse/gestion-commerce-sub002/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategorieCRUDOverHTTP(t *testing.T) {
	router, db := setupTestRouter(t)
	boutique := seedBoutique(t, db, "Boutique Nord")
	gerant := seedUser(t, db, "gerant@exemple.com", "motdepasse", "GESTIONNAIRE", boutique)
	token := tokenFor(t, gerant)

	rec := doRequest(t, router, http.MethodPost, "/api/categories", token, map[string]string{
		"nom":         "Boissons",
		"description": "Jus et sodas",
	})
	requireStatus(t, rec, http.StatusCreated)
	created := decodeBody(t, rec)
	id, _ := created["id"].(string)
	require.NotEmpty(t, id)
	assert.Equal(t, "Boissons", created["nom"])

	rec = doRequest(t, router, http.MethodGet, "/api/categories/"+id, token, nil)
	requireStatus(t, rec, http.StatusOK)

	rec = doRequest(t, router, http.MethodGet, "/api/categories?search=bois", token, nil)
	requireStatus(t, rec, http.StatusOK)
	listed := decodeBody(t, rec)
	items, ok := listed["categories"].([]interface{})
	require.True(t, ok)
	assert.Len(t, items, 1)

	p, ok := listed["pagination"].(map[string]interface{})
	require.True(t, ok)
	assert.EqualValues(t, 1, p["total"])
	assert.EqualValues(t, 1, p["page"])

	rec = doRequest(t, router, http.MethodDelete, "/api/categories/"+id, token, nil)
	requireStatus(t, rec, http.StatusOK)
	assert.Equal(t, true, decodeBody(t, rec)["success"])

	rec = doRequest(t, router, http.MethodGet, "/api/categories/"+id, token, nil)
	requireStatus(t, rec, http.StatusNotFound)
}

func TestCategorieTenantIsolation(t *testing.T) {
	router, db := setupTestRouter(t)
	nord := seedBoutique(t, db, "Boutique Nord")
	sud := seedBoutique(t, db, "Boutique Sud")

	categorie := &model.Categorie{Nom: "Boissons", BoutiqueID: sud.ID}
	require.NoError(t, db.Create(categorie).Error)

	gerant := seedUser(t, db, "nord@exemple.com", "motdepasse", "GESTIONNAIRE", nord)
	admin := seedUser(t, db, "admin@exemple.com", "motdepasse", "ADMIN", nil)

	// A gestionnaire of another boutique cannot see the record at all
	rec := doRequest(t, router, http.MethodGet, "/api/categories/"+categorie.ID.String(), tokenFor(t, gerant), nil)
	requireStatus(t, rec, http.StatusNotFound)

	// An admin can
	rec = doRequest(t, router, http.MethodGet, "/api/categories/"+categorie.ID.String(), tokenFor(t, admin), nil)
	requireStatus(t, rec, http.StatusOK)

	// The admin list narrows to a tenant through boutiqueId
	rec = doRequest(t, router, http.MethodGet, "/api/categories?boutiqueId="+nord.ID.String(), tokenFor(t, admin), nil)
	requireStatus(t, rec, http.StatusOK)
	items, ok := decodeBody(t, rec)["categories"].([]interface{})
	require.True(t, ok)
	assert.Empty(t, items)
}

func TestCategorieValidationDetails(t *testing.T) {
	router, db := setupTestRouter(t)
	boutique := seedBoutique(t, db, "Boutique Nord")
	gerant := seedUser(t, db, "gerant@exemple.com", "motdepasse", "GESTIONNAIRE", boutique)

	rec := doRequest(t, router, http.MethodPost, "/api/categories", tokenFor(t, gerant), map[string]string{
		"nom": "",
	})
	requireStatus(t, rec, http.StatusBadRequest)

	body := decodeBody(t, rec)
	assert.Equal(t, "invalid request payload", body["error"])
	details, ok := body["details"].([]interface{})
	require.True(t, ok)
	require.Len(t, details, 1)
	violation := details[0].(map[string]interface{})
	assert.Equal(t, "nom", violation["field"])
}

func TestCategorieDuplicateNomConflict(t *testing.T) {
	router, db := setupTestRouter(t)
	boutique := seedBoutique(t, db, "Boutique Nord")
	gerant := seedUser(t, db, "gerant@exemple.com", "motdepasse", "GESTIONNAIRE", boutique)
	token := tokenFor(t, gerant)

	rec := doRequest(t, router, http.MethodPost, "/api/categories", token, map[string]string{"nom": "Boissons"})
	requireStatus(t, rec, http.StatusCreated)

	rec = doRequest(t, router, http.MethodPost, "/api/categories", token, map[string]string{"nom": "Boissons"})
	requireStatus(t, rec, http.StatusConflict)
}
