package database

import (
	"github.com/Drasasse/gestion-commerce-sub002/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// NewConnection initializes a new connection pool using GORM.
// TranslateError maps driver duplicate-key failures onto gorm.ErrDuplicatedKey.
func NewConnection(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

// Migrate runs the schema migration for all models.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Boutique{},
		&model.User{},
		&model.Categorie{},
		&model.Fournisseur{},
		&model.Client{},
		&model.Produit{},
		&model.Vente{},
		&model.VenteItem{},
		&model.Paiement{},
		&model.Transaction{},
	)
}
