package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Boutique is the tenant root: every scoped resource carries its ID.
type Boutique struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	Nom            string          `gorm:"type:varchar(255);not null;uniqueIndex:idx_boutiques_nom,where:deleted_at IS NULL" json:"nom"`
	Adresse        string          `gorm:"type:text" json:"adresse"`
	Telephone      string          `gorm:"type:varchar(50)" json:"telephone"`
	CapitalInitial decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"capital_initial"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
	DeletedAt      gorm.DeletedAt  `gorm:"index" json:"-"`
}

func (b *Boutique) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}
