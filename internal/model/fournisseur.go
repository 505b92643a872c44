package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Fournisseur is a boutique supplier.
type Fournisseur struct {
	ID         uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Nom        string         `gorm:"type:varchar(255);not null" json:"nom"`
	Telephone  string         `gorm:"type:varchar(50)" json:"telephone"`
	Email      string         `gorm:"type:varchar(255)" json:"email"`
	Adresse    string         `gorm:"type:text" json:"adresse"`
	BoutiqueID uuid.UUID      `gorm:"type:uuid;not null;index" json:"boutique_id"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

func (f *Fournisseur) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}
