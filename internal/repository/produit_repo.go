package repository

import (
	"context"

	"github.com/Drasasse/gestion-commerce-sub002/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProduitRepository interface {
	Create(ctx context.Context, produit *model.Produit) error
	Update(ctx context.Context, produit *model.Produit) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, boutiqueID *uuid.UUID, id uuid.UUID) (*model.Produit, error)
	List(ctx context.Context, boutiqueID *uuid.UUID, search string, page, limit int) ([]model.Produit, int64, error)
	ListLowStock(ctx context.Context, boutiqueID *uuid.UUID) ([]model.Produit, error)
	CountVenteItems(ctx context.Context, id uuid.UUID) (int64, error)
}

type produitRepository struct {
	db *gorm.DB
}

func NewProduitRepository(db *gorm.DB) ProduitRepository {
	return &produitRepository{db: db}
}

func (r *produitRepository) Create(ctx context.Context, produit *model.Produit) error {
	return GetDB(ctx, r.db).Create(produit).Error
}

func (r *produitRepository) Update(ctx context.Context, produit *model.Produit) error {
	return GetDB(ctx, r.db).Save(produit).Error
}

func (r *produitRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.Produit{}).Error
}

func (r *produitRepository) FindByID(ctx context.Context, boutiqueID *uuid.UUID, id uuid.UUID) (*model.Produit, error) {
	var produit model.Produit
	query := GetDB(ctx, r.db).Preload("Categorie").Where("id = ?", id)
	if boutiqueID != nil {
		query = query.Where("boutique_id = ?", *boutiqueID)
	}
	if err := query.First(&produit).Error; err != nil {
		return nil, err
	}
	return &produit, nil
}

func (r *produitRepository) List(ctx context.Context, boutiqueID *uuid.UUID, search string, page, limit int) ([]model.Produit, int64, error) {
	var produits []model.Produit
	var total int64

	query := GetDB(ctx, r.db).Model(&model.Produit{})
	if boutiqueID != nil {
		query = query.Where("boutique_id = ?", *boutiqueID)
	}
	if search != "" {
		query = query.Where("LOWER(nom) LIKE LOWER(?)", "%"+search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := query.Preload("Categorie").Order("created_at DESC").Offset(offset).Limit(limit).Find(&produits).Error; err != nil {
		return nil, 0, err
	}

	return produits, total, nil
}

func (r *produitRepository) ListLowStock(ctx context.Context, boutiqueID *uuid.UUID) ([]model.Produit, error) {
	var produits []model.Produit
	query := GetDB(ctx, r.db).Where("stock <= seuil_alerte")
	if boutiqueID != nil {
		query = query.Where("boutique_id = ?", *boutiqueID)
	}
	if err := query.Order("stock ASC").Find(&produits).Error; err != nil {
		return nil, err
	}
	return produits, nil
}

func (r *produitRepository) CountVenteItems(ctx context.Context, id uuid.UUID) (int64, error) {
	var count int64
	err := GetDB(ctx, r.db).Model(&model.VenteItem{}).Where("produit_id = ?", id).Count(&count).Error
	return count, err
}
