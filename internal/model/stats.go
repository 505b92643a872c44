package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BoutiqueStats are derived figures aggregated on read, never stored. Sums
// come back zero-valued for boutiques with no related records.
type BoutiqueStats struct {
	TotalVentes   decimal.Decimal `json:"totalVentes"`
	TotalImpayes  decimal.Decimal `json:"totalImpayes"`
	CapitalActuel decimal.Decimal `json:"capitalActuel"`
	NbUsers       int64           `json:"nbUsers"`
	NbProduits    int64           `json:"nbProduits"`
	NbVentes      int64           `json:"nbVentes"`
	NbClients     int64           `json:"nbClients"`
}

// ProduitRanking ranks a produit by quantity sold over a period.
type ProduitRanking struct {
	ProduitID      uuid.UUID       `json:"produit_id"`
	ProduitNom     string          `json:"produit_nom"`
	QuantiteTotale int64           `json:"quantite_totale"`
	MontantTotal   decimal.Decimal `json:"montant_total"`
}

// DashboardStats is the read-side aggregation served to the dashboard for the
// effective tenant over a date range.
type DashboardStats struct {
	StartDate      time.Time        `json:"start_date"`
	EndDate        time.Time        `json:"end_date"`
	TotalVentes    decimal.Decimal  `json:"total_ventes"`
	TotalEncaisse  decimal.Decimal  `json:"total_encaisse"`
	TotalImpayes   decimal.Decimal  `json:"total_impayes"`
	NbVentes       int64            `json:"nb_ventes"`
	TopProduits    []ProduitRanking `json:"top_produits"`
	ProduitsAlerte []Produit        `json:"produits_alerte"`
}
