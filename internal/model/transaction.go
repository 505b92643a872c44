package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TransactionType enum constants
const (
	TransactionTypeInjection = "INJECTION"
	TransactionTypeRetrait   = "RETRAIT"
)

// Transaction is a capital movement on a boutique. Creation is reserved for
// administrators.
type Transaction struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	BoutiqueID  uuid.UUID       `gorm:"type:uuid;not null;index" json:"boutique_id"`
	Type        string          `gorm:"type:varchar(20);not null" json:"type"`
	Montant     decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"montant"`
	Description string          `gorm:"type:text" json:"description"`
	UserID      uuid.UUID       `gorm:"type:uuid;not null;index" json:"user_id"`
	CreatedAt   time.Time       `json:"created_at"`
	DeletedAt   gorm.DeletedAt  `gorm:"index" json:"-"`
}

func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
