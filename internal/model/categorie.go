package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Categorie groups produits. Nom is unique within one boutique; the composite
// index is the storage-level backstop behind the service-level duplicate check.
// The index covers live rows only, so a soft-deleted category frees its nom.
type Categorie struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Nom         string         `gorm:"type:varchar(255);not null;uniqueIndex:idx_categories_boutique_nom,where:deleted_at IS NULL" json:"nom"`
	Description string         `gorm:"type:text" json:"description"`
	BoutiqueID  uuid.UUID      `gorm:"type:uuid;not null;index;uniqueIndex:idx_categories_boutique_nom" json:"boutique_id"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (c *Categorie) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
