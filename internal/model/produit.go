package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Produit is a sellable article with tracked stock.
type Produit struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	Nom           string          `gorm:"type:varchar(255);not null" json:"nom"`
	Description   string          `gorm:"type:text" json:"description"`
	PrixAchat     decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"prix_achat"`
	PrixVente     decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"prix_vente"`
	Stock         int             `gorm:"not null;default:0" json:"stock"`
	SeuilAlerte   int             `gorm:"not null;default:5" json:"seuil_alerte"`
	CategorieID   *uuid.UUID      `gorm:"type:uuid;index" json:"categorie_id"`
	Categorie     *Categorie      `gorm:"foreignKey:CategorieID" json:"categorie,omitempty"`
	FournisseurID *uuid.UUID      `gorm:"type:uuid;index" json:"fournisseur_id"`
	BoutiqueID    uuid.UUID       `gorm:"type:uuid;not null;index" json:"boutique_id"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	DeletedAt     gorm.DeletedAt  `gorm:"index" json:"-"`
}

func (p *Produit) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
