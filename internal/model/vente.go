package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// VenteStatut enum constants
const (
	VenteStatutPayee     = "PAYEE"
	VenteStatutPartielle = "PARTIELLE"
	VenteStatutImpayee   = "IMPAYEE"
)

// PaiementMode enum constants
const (
	PaiementModeEspeces     = "ESPECES"
	PaiementModeCarte       = "CARTE"
	PaiementModeMobileMoney = "MOBILE_MONEY"
	PaiementModeVirement    = "VIREMENT"
)

// Vente is a sale: line items, running payment totals and a derived statut.
type Vente struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	BoutiqueID     uuid.UUID       `gorm:"type:uuid;not null;index" json:"boutique_id"`
	ClientID       *uuid.UUID      `gorm:"type:uuid;index" json:"client_id"`
	Client         *Client         `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	UserID         uuid.UUID       `gorm:"type:uuid;not null;index" json:"user_id"`
	MontantTotal   decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"montant_total"`
	MontantPaye    decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"montant_paye"`
	MontantRestant decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"montant_restant"`
	Statut         string          `gorm:"type:varchar(20);not null" json:"statut"`
	Items          []VenteItem     `gorm:"foreignKey:VenteID;constraint:OnDelete:CASCADE" json:"items"`
	Paiements      []Paiement      `gorm:"foreignKey:VenteID;constraint:OnDelete:CASCADE" json:"paiements"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
	DeletedAt      gorm.DeletedAt  `gorm:"index" json:"-"`
}

func (v *Vente) BeforeCreate(tx *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}

// VenteItem is one sold line of a vente.
type VenteItem struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	VenteID      uuid.UUID       `gorm:"type:uuid;not null;index" json:"vente_id"`
	ProduitID    uuid.UUID       `gorm:"type:uuid;not null;index" json:"produit_id"`
	Produit      *Produit        `gorm:"foreignKey:ProduitID" json:"produit,omitempty"`
	Quantite     int             `gorm:"not null" json:"quantite"`
	PrixUnitaire decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"prix_unitaire"`
	MontantLigne decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"montant_ligne"`
	CreatedAt    time.Time       `json:"created_at"`
}

func (i *VenteItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// Paiement is a payment applied against a vente.
type Paiement struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	VenteID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"vente_id"`
	Montant   decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"montant"`
	Mode      string          `gorm:"type:varchar(30);not null" json:"mode"`
	CreatedAt time.Time       `json:"created_at"`
}

func (p *Paiement) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
