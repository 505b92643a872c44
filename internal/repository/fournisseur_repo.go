package repository

import (
	"context"

	"github.com/Drasasse/gestion-commerce-sub002/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FournisseurRepository interface {
	Create(ctx context.Context, fournisseur *model.Fournisseur) error
	Update(ctx context.Context, fournisseur *model.Fournisseur) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, boutiqueID *uuid.UUID, id uuid.UUID) (*model.Fournisseur, error)
	List(ctx context.Context, boutiqueID *uuid.UUID, search string, page, limit int) ([]model.Fournisseur, int64, error)
	CountProduits(ctx context.Context, id uuid.UUID) (int64, error)
}

type fournisseurRepository struct {
	db *gorm.DB
}

func NewFournisseurRepository(db *gorm.DB) FournisseurRepository {
	return &fournisseurRepository{db: db}
}

func (r *fournisseurRepository) Create(ctx context.Context, fournisseur *model.Fournisseur) error {
	return GetDB(ctx, r.db).Create(fournisseur).Error
}

func (r *fournisseurRepository) Update(ctx context.Context, fournisseur *model.Fournisseur) error {
	return GetDB(ctx, r.db).Save(fournisseur).Error
}

func (r *fournisseurRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.Fournisseur{}).Error
}

func (r *fournisseurRepository) FindByID(ctx context.Context, boutiqueID *uuid.UUID, id uuid.UUID) (*model.Fournisseur, error) {
	var fournisseur model.Fournisseur
	query := GetDB(ctx, r.db).Where("id = ?", id)
	if boutiqueID != nil {
		query = query.Where("boutique_id = ?", *boutiqueID)
	}
	if err := query.First(&fournisseur).Error; err != nil {
		return nil, err
	}
	return &fournisseur, nil
}

func (r *fournisseurRepository) List(ctx context.Context, boutiqueID *uuid.UUID, search string, page, limit int) ([]model.Fournisseur, int64, error) {
	var fournisseurs []model.Fournisseur
	var total int64

	query := GetDB(ctx, r.db).Model(&model.Fournisseur{})
	if boutiqueID != nil {
		query = query.Where("boutique_id = ?", *boutiqueID)
	}
	if search != "" {
		pattern := "%" + search + "%"
		query = query.Where("LOWER(nom) LIKE LOWER(?) OR LOWER(email) LIKE LOWER(?) OR telephone LIKE ?", pattern, pattern, pattern)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&fournisseurs).Error; err != nil {
		return nil, 0, err
	}

	return fournisseurs, total, nil
}

func (r *fournisseurRepository) CountProduits(ctx context.Context, id uuid.UUID) (int64, error) {
	var count int64
	err := GetDB(ctx, r.db).Model(&model.Produit{}).Where("fournisseur_id = ?", id).Count(&count).Error
	return count, err
}
