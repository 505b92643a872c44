package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginFlow(t *testing.T) {
	router, db := setupTestRouter(t)
	boutique := seedBoutique(t, db, "Boutique Centre")
	seedUser(t, db, "gerant@exemple.com", "motdepasse", "GESTIONNAIRE", boutique)

	rec := doRequest(t, router, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "gerant@exemple.com",
		"password": "motdepasse",
	})
	requireStatus(t, rec, http.StatusOK)

	body := decodeBody(t, rec)
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)

	user, ok := body["user"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "gerant@exemple.com", user["email"])

	// The issued token also carries a session cookie
	cookies := rec.Result().Cookies()
	var found bool
	for _, c := range cookies {
		if c.Name == "access_token" && c.Value != "" {
			found = true
		}
	}
	assert.True(t, found, "expected an access_token cookie")

	// The token authenticates /me
	rec = doRequest(t, router, http.MethodGet, "/api/auth/me", token, nil)
	requireStatus(t, rec, http.StatusOK)
	me := decodeBody(t, rec)
	assert.Equal(t, "gerant@exemple.com", me["email"])
	assert.Equal(t, "Boutique Centre", me["boutique_nom"])
}

func TestLoginBadCredentials(t *testing.T) {
	router, db := setupTestRouter(t)
	seedUser(t, db, "gerant@exemple.com", "motdepasse", "ADMIN", nil)

	rec := doRequest(t, router, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "gerant@exemple.com",
		"password": "mauvais",
	})
	requireStatus(t, rec, http.StatusUnauthorized)
	wrongPassword := decodeBody(t, rec)["error"]

	rec = doRequest(t, router, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "inconnu@exemple.com",
		"password": "motdepasse",
	})
	requireStatus(t, rec, http.StatusUnauthorized)

	// Unknown email and wrong password are indistinguishable
	assert.Equal(t, wrongPassword, decodeBody(t, rec)["error"])
}

func TestAuthRequired(t *testing.T) {
	router, _ := setupTestRouter(t)

	rec := doRequest(t, router, http.MethodGet, "/api/categories", "", nil)
	requireStatus(t, rec, http.StatusUnauthorized)

	rec = doRequest(t, router, http.MethodGet, "/api/categories", "pas-un-token", nil)
	requireStatus(t, rec, http.StatusUnauthorized)
}

func TestLogoutClearsCookie(t *testing.T) {
	router, _ := setupTestRouter(t)

	rec := doRequest(t, router, http.MethodPost, "/api/auth/logout", "", nil)
	requireStatus(t, rec, http.StatusOK)
	assert.Equal(t, true, decodeBody(t, rec)["success"])

	var cleared bool
	for _, c := range rec.Result().Cookies() {
		if c.Name == "access_token" && c.MaxAge < 0 {
			cleared = true
		}
	}
	assert.True(t, cleared, "expected the access_token cookie to be expired")
}
