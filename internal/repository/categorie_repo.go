package repository

import (
	"context"

	"github.com/Drasasse/gestion-commerce-sub002/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CategorieRepository interface {
	Create(ctx context.Context, categorie *model.Categorie) error
	Update(ctx context.Context, categorie *model.Categorie) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, boutiqueID *uuid.UUID, id uuid.UUID) (*model.Categorie, error)
	List(ctx context.Context, boutiqueID *uuid.UUID, search string, page, limit int) ([]model.Categorie, int64, error)
	ExistsByNom(ctx context.Context, boutiqueID uuid.UUID, nom string, excludeID *uuid.UUID) (bool, error)
	CountProduits(ctx context.Context, id uuid.UUID) (int64, error)
}

type categorieRepository struct {
	db *gorm.DB
}

func NewCategorieRepository(db *gorm.DB) CategorieRepository {
	return &categorieRepository{db: db}
}

func (r *categorieRepository) Create(ctx context.Context, categorie *model.Categorie) error {
	return GetDB(ctx, r.db).Create(categorie).Error
}

func (r *categorieRepository) Update(ctx context.Context, categorie *model.Categorie) error {
	return GetDB(ctx, r.db).Save(categorie).Error
}

func (r *categorieRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.Categorie{}).Error
}

func (r *categorieRepository) FindByID(ctx context.Context, boutiqueID *uuid.UUID, id uuid.UUID) (*model.Categorie, error) {
	var categorie model.Categorie
	query := GetDB(ctx, r.db).Where("id = ?", id)
	if boutiqueID != nil {
		query = query.Where("boutique_id = ?", *boutiqueID)
	}
	if err := query.First(&categorie).Error; err != nil {
		return nil, err
	}
	return &categorie, nil
}

func (r *categorieRepository) List(ctx context.Context, boutiqueID *uuid.UUID, search string, page, limit int) ([]model.Categorie, int64, error) {
	var categories []model.Categorie
	var total int64

	query := GetDB(ctx, r.db).Model(&model.Categorie{})
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
	if err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&categories).Error; err != nil {
		return nil, 0, err
	}

	return categories, total, nil
}

func (r *categorieRepository) ExistsByNom(ctx context.Context, boutiqueID uuid.UUID, nom string, excludeID *uuid.UUID) (bool, error) {
	query := GetDB(ctx, r.db).Model(&model.Categorie{}).
		Where("boutique_id = ? AND LOWER(nom) = LOWER(?)", boutiqueID, nom)
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *categorieRepository) CountProduits(ctx context.Context, id uuid.UUID) (int64, error) {
	var count int64
	err := GetDB(ctx, r.db).Model(&model.Produit{}).Where("categorie_id = ?", id).Count(&count).Error
	return count, err
}
