package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/Drasasse/gestion-commerce-sub002/internal/auth"
	"github.com/Drasasse/gestion-commerce-sub002/internal/database"
	"github.com/Drasasse/gestion-commerce-sub002/internal/model"
	"github.com/Drasasse/gestion-commerce-sub002/internal/repository"
	"github.com/Drasasse/gestion-commerce-sub002/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var testJWTSecret = []byte("handler_test_secret")

func init() {
	gin.SetMode(gin.TestMode)
}

type noopNotifier struct{}

func (noopNotifier) NotifyLowStock(model.Produit) {}

// setupTestRouter builds the full API router over a per-test in-memory
// database, the same wiring main performs.
func setupTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	log := zap.NewNop()

	txManager := repository.NewTransactionManager(db)
	userRepo := repository.NewUserRepository(db)
	boutiqueRepo := repository.NewBoutiqueRepository(db)
	categorieRepo := repository.NewCategorieRepository(db)
	fournisseurRepo := repository.NewFournisseurRepository(db)
	clientRepo := repository.NewClientRepository(db)
	produitRepo := repository.NewProduitRepository(db)
	venteRepo := repository.NewVenteRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)

	userService := service.NewUserService(userRepo, boutiqueRepo, testJWTSecret)
	boutiqueService := service.NewBoutiqueService(boutiqueRepo, txManager)
	categorieService := service.NewCategorieService(categorieRepo)
	fournisseurService := service.NewFournisseurService(fournisseurRepo)
	clientService := service.NewClientService(clientRepo)
	produitService := service.NewProduitService(produitRepo, categorieRepo, fournisseurRepo)
	venteService := service.NewVenteService(venteRepo, produitRepo, clientRepo, txManager, noopNotifier{})
	transactionService := service.NewTransactionService(transactionRepo, boutiqueRepo)
	statsService := service.NewStatsService(venteRepo, produitRepo)

	router := gin.New()
	root := router.Group("")
	NewAuthHandler(userService, testJWTSecret, log).RegisterRoutes(root)
	NewUserHandler(userService, testJWTSecret, log).RegisterRoutes(root)
	NewBoutiqueHandler(boutiqueService, testJWTSecret, log).RegisterRoutes(root)
	NewCategorieHandler(categorieService, testJWTSecret, log).RegisterRoutes(root)
	NewFournisseurHandler(fournisseurService, testJWTSecret, log).RegisterRoutes(root)
	NewClientHandler(clientService, testJWTSecret, log).RegisterRoutes(root)
	NewProduitHandler(produitService, testJWTSecret, log).RegisterRoutes(root)
	NewVenteHandler(venteService, testJWTSecret, log).RegisterRoutes(root)
	NewTransactionHandler(transactionService, testJWTSecret, log).RegisterRoutes(root)
	NewStatsHandler(statsService, testJWTSecret, log).RegisterRoutes(root)

	return router, db
}

func seedBoutique(t *testing.T, db *gorm.DB, nom string) *model.Boutique {
	t.Helper()
	boutique := &model.Boutique{Nom: nom}
	require.NoError(t, db.Create(boutique).Error)
	return boutique
}

func seedUser(t *testing.T, db *gorm.DB, email, password, role string, boutique *model.Boutique) *model.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	user := &model.User{Nom: "Testeur", Email: email, Password: string(hash), Role: role}
	if boutique != nil {
		user.BoutiqueID = &boutique.ID
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func tokenFor(t *testing.T, user *model.User) string {
	t.Helper()
	token, err := auth.IssueToken(testJWTSecret, auth.Session{
		UserID:     user.ID,
		Role:       user.Role,
		BoutiqueID: user.BoutiqueID,
	})
	require.NoError(t, err)
	return token
}

func doRequest(t *testing.T, router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func requireStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	require.Equal(t, want, rec.Code, rec.Body.String())
}
