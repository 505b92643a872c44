package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Client is a boutique customer. Email is optional and, when present, unique
// within the boutique; an absent email (NULL) never collides. The unique
// index covers live rows only, so a soft-deleted client frees its email.
type Client struct {
	ID         uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Nom        string         `gorm:"type:varchar(255);not null" json:"nom"`
	Email      *string        `gorm:"type:varchar(255);uniqueIndex:idx_clients_boutique_email,where:deleted_at IS NULL" json:"email"`
	Telephone  string         `gorm:"type:varchar(50)" json:"telephone"`
	Adresse    string         `gorm:"type:text" json:"adresse"`
	BoutiqueID uuid.UUID      `gorm:"type:uuid;not null;index;uniqueIndex:idx_clients_boutique_email" json:"boutique_id"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

func (c *Client) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
