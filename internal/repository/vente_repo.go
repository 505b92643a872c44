package repository

import (
	"context"
	"time"

	"github.com/Drasasse/gestion-commerce-sub002/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// VenteFilter narrows a vente listing.
type VenteFilter struct {
	Statut string
	Page   int
	Limit  int
}

type VenteRepository interface {
	Create(ctx context.Context, vente *model.Vente) error
	Update(ctx context.Context, vente *model.Vente) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, boutiqueID *uuid.UUID, id uuid.UUID) (*model.Vente, error)
	List(ctx context.Context, boutiqueID *uuid.UUID, filter VenteFilter) ([]model.Vente, int64, error)
	CreatePaiement(ctx context.Context, paiement *model.Paiement) error
	Totals(ctx context.Context, boutiqueID *uuid.UUID, start, end time.Time) (totalVentes, totalEncaisse, totalImpayes decimal.Decimal, nbVentes int64, err error)
	TopProduits(ctx context.Context, boutiqueID *uuid.UUID, start, end time.Time, limit int) ([]model.ProduitRanking, error)
}

type venteRepository struct {
	db *gorm.DB
}

func NewVenteRepository(db *gorm.DB) VenteRepository {
	return &venteRepository{db: db}
}

func (r *venteRepository) Create(ctx context.Context, vente *model.Vente) error {
	return GetDB(ctx, r.db).Create(vente).Error
}

func (r *venteRepository) Update(ctx context.Context, vente *model.Vente) error {
	return GetDB(ctx, r.db).Omit("Items", "Paiements", "Client").Save(vente).Error
}

func (r *venteRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.Vente{}).Error
}

func (r *venteRepository) FindByID(ctx context.Context, boutiqueID *uuid.UUID, id uuid.UUID) (*model.Vente, error) {
	var vente model.Vente
	query := GetDB(ctx, r.db).
		Preload("Items").Preload("Items.Produit").Preload("Paiements").Preload("Client").
		Where("id = ?", id)
	if boutiqueID != nil {
		query = query.Where("boutique_id = ?", *boutiqueID)
	}
	if err := query.First(&vente).Error; err != nil {
		return nil, err
	}
	return &vente, nil
}

func (r *venteRepository) List(ctx context.Context, boutiqueID *uuid.UUID, filter VenteFilter) ([]model.Vente, int64, error) {
	var ventes []model.Vente
	var total int64

	query := GetDB(ctx, r.db).Model(&model.Vente{})
	if boutiqueID != nil {
		query = query.Where("boutique_id = ?", *boutiqueID)
	}
	if filter.Statut != "" {
		query = query.Where("statut = ?", filter.Statut)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := query.Preload("Items").Preload("Client").
		Order("created_at DESC").Offset(offset).Limit(filter.Limit).Find(&ventes).Error
	if err != nil {
		return nil, 0, err
	}

	return ventes, total, nil
}

func (r *venteRepository) CreatePaiement(ctx context.Context, paiement *model.Paiement) error {
	return GetDB(ctx, r.db).Create(paiement).Error
}

func (r *venteRepository) Totals(ctx context.Context, boutiqueID *uuid.UUID, start, end time.Time) (decimal.Decimal, decimal.Decimal, decimal.Decimal, int64, error) {
	var totals struct {
		TotalVentes   decimal.Decimal
		TotalEncaisse decimal.Decimal
		TotalImpayes  decimal.Decimal
		NbVentes      int64
	}

	query := GetDB(ctx, r.db).Model(&model.Vente{}).
		Select("COALESCE(SUM(montant_total), 0) as total_ventes, COALESCE(SUM(montant_paye), 0) as total_encaisse, COALESCE(SUM(montant_restant), 0) as total_impayes, COUNT(*) as nb_ventes").
		Where("created_at >= ? AND created_at <= ?", start, end)
	if boutiqueID != nil {
		query = query.Where("boutique_id = ?", *boutiqueID)
	}
	if err := query.Scan(&totals).Error; err != nil {
		return decimal.Zero, decimal.Zero, decimal.Zero, 0, err
	}

	return totals.TotalVentes, totals.TotalEncaisse, totals.TotalImpayes, totals.NbVentes, nil
}

func (r *venteRepository) TopProduits(ctx context.Context, boutiqueID *uuid.UUID, start, end time.Time, limit int) ([]model.ProduitRanking, error) {
	var rankings []model.ProduitRanking

	query := GetDB(ctx, r.db).Table("vente_items").
		Select("produits.id as produit_id, produits.nom as produit_nom, SUM(vente_items.quantite) as quantite_totale, SUM(vente_items.montant_ligne) as montant_total").
		Joins("JOIN produits ON produits.id = vente_items.produit_id").
		Joins("JOIN ventes ON ventes.id = vente_items.vente_id").
		Where("ventes.created_at >= ? AND ventes.created_at <= ?", start, end)
	if boutiqueID != nil {
		query = query.Where("ventes.boutique_id = ?", *boutiqueID)
	}

	err := query.Group("produits.id, produits.nom").
		Order("quantite_totale DESC").
		Limit(limit).
		Scan(&rankings).Error
	if err != nil {
		return nil, err
	}

	return rankings, nil
}
