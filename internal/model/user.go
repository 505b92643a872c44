package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is an account: ADMIN (cross-tenant) or GESTIONNAIRE bound to one boutique.
type User struct {
	ID         uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Nom        string         `gorm:"type:varchar(255);not null" json:"nom"`
	Email      string         `gorm:"type:varchar(255);uniqueIndex:idx_users_email,where:deleted_at IS NULL;not null" json:"email"`
	Password   string         `gorm:"type:varchar(255);not null" json:"-"` // Omit password from JSON requests/responses
	Role       string         `gorm:"type:varchar(20);not null" json:"role"`
	BoutiqueID *uuid.UUID     `gorm:"type:uuid;index" json:"boutique_id"`
	Boutique   *Boutique      `gorm:"foreignKey:BoutiqueID" json:"boutique,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
