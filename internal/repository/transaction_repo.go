package repository

import (
	"context"

	"github.com/Drasasse/gestion-commerce-sub002/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TransactionRepository interface {
	Create(ctx context.Context, transaction *model.Transaction) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, boutiqueID *uuid.UUID, id uuid.UUID) (*model.Transaction, error)
	List(ctx context.Context, boutiqueID *uuid.UUID, transactionType string, page, limit int) ([]model.Transaction, int64, error)
}

type transactionRepository struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) TransactionRepository {
	return &transactionRepository{db: db}
}

func (r *transactionRepository) Create(ctx context.Context, transaction *model.Transaction) error {
	return GetDB(ctx, r.db).Create(transaction).Error
}

func (r *transactionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.Transaction{}).Error
}

func (r *transactionRepository) FindByID(ctx context.Context, boutiqueID *uuid.UUID, id uuid.UUID) (*model.Transaction, error) {
	var transaction model.Transaction
	query := GetDB(ctx, r.db).Where("id = ?", id)
	if boutiqueID != nil {
		query = query.Where("boutique_id = ?", *boutiqueID)
	}
	if err := query.First(&transaction).Error; err != nil {
		return nil, err
	}
	return &transaction, nil
}

func (r *transactionRepository) List(ctx context.Context, boutiqueID *uuid.UUID, transactionType string, page, limit int) ([]model.Transaction, int64, error) {
	var transactions []model.Transaction
	var total int64

	query := GetDB(ctx, r.db).Model(&model.Transaction{})
	if boutiqueID != nil {
		query = query.Where("boutique_id = ?", *boutiqueID)
	}
	if transactionType != "" {
		query = query.Where("type = ?", transactionType)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&transactions).Error; err != nil {
		return nil, 0, err
	}

	return transactions, total, nil
}
