package repository

import (
	"context"

	"github.com/Drasasse/gestion-commerce-sub002/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ClientRepository interface {
	Create(ctx context.Context, client *model.Client) error
	Update(ctx context.Context, client *model.Client) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, boutiqueID *uuid.UUID, id uuid.UUID) (*model.Client, error)
	List(ctx context.Context, boutiqueID *uuid.UUID, search string, page, limit int) ([]model.Client, int64, error)
	ExistsByEmail(ctx context.Context, boutiqueID uuid.UUID, email string, excludeID *uuid.UUID) (bool, error)
	CountVentes(ctx context.Context, id uuid.UUID) (int64, error)
}

type clientRepository struct {
	db *gorm.DB
}

func NewClientRepository(db *gorm.DB) ClientRepository {
	return &clientRepository{db: db}
}

func (r *clientRepository) Create(ctx context.Context, client *model.Client) error {
	return GetDB(ctx, r.db).Create(client).Error
}

func (r *clientRepository) Update(ctx context.Context, client *model.Client) error {
	return GetDB(ctx, r.db).Save(client).Error
}

func (r *clientRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.Client{}).Error
}

func (r *clientRepository) FindByID(ctx context.Context, boutiqueID *uuid.UUID, id uuid.UUID) (*model.Client, error) {
	var client model.Client
	query := GetDB(ctx, r.db).Where("id = ?", id)
	if boutiqueID != nil {
		query = query.Where("boutique_id = ?", *boutiqueID)
	}
	if err := query.First(&client).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

func (r *clientRepository) List(ctx context.Context, boutiqueID *uuid.UUID, search string, page, limit int) ([]model.Client, int64, error) {
	var clients []model.Client
	var total int64

	query := GetDB(ctx, r.db).Model(&model.Client{})
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
	if err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&clients).Error; err != nil {
		return nil, 0, err
	}

	return clients, total, nil
}

func (r *clientRepository) ExistsByEmail(ctx context.Context, boutiqueID uuid.UUID, email string, excludeID *uuid.UUID) (bool, error) {
	query := GetDB(ctx, r.db).Model(&model.Client{}).
		Where("boutique_id = ? AND LOWER(email) = LOWER(?)", boutiqueID, email)
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *clientRepository) CountVentes(ctx context.Context, id uuid.UUID) (int64, error) {
	var count int64
	err := GetDB(ctx, r.db).Model(&model.Vente{}).Where("client_id = ?", id).Count(&count).Error
	return count, err
}
