package repository

import (
	"context"

	"github.com/Drasasse/gestion-commerce-sub002/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// BoutiqueDependents counts the records that block a boutique deletion.
type BoutiqueDependents struct {
	Users    int64
	Produits int64
	Ventes   int64
	Clients  int64
}

func (d BoutiqueDependents) Any() bool {
	return d.Users > 0 || d.Produits > 0 || d.Ventes > 0 || d.Clients > 0
}

type BoutiqueRepository interface {
	Create(ctx context.Context, boutique *model.Boutique) error
	Update(ctx context.Context, boutique *model.Boutique) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Boutique, error)
	List(ctx context.Context, boutiqueID *uuid.UUID, search string, page, limit int) ([]model.Boutique, int64, error)
	ExistsByNom(ctx context.Context, nom string, excludeID *uuid.UUID) (bool, error)
	CountDependents(ctx context.Context, id uuid.UUID) (BoutiqueDependents, error)
	Stats(ctx context.Context, boutique *model.Boutique) (model.BoutiqueStats, error)
}

type boutiqueRepository struct {
	db *gorm.DB
}

func NewBoutiqueRepository(db *gorm.DB) BoutiqueRepository {
	return &boutiqueRepository{db: db}
}

func (r *boutiqueRepository) Create(ctx context.Context, boutique *model.Boutique) error {
	return GetDB(ctx, r.db).Create(boutique).Error
}

func (r *boutiqueRepository) Update(ctx context.Context, boutique *model.Boutique) error {
	return GetDB(ctx, r.db).Save(boutique).Error
}

func (r *boutiqueRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.Boutique{}).Error
}

func (r *boutiqueRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Boutique, error) {
	var boutique model.Boutique
	if err := GetDB(ctx, r.db).First(&boutique, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &boutique, nil
}

func (r *boutiqueRepository) List(ctx context.Context, boutiqueID *uuid.UUID, search string, page, limit int) ([]model.Boutique, int64, error) {
	var boutiques []model.Boutique
	var total int64

	query := GetDB(ctx, r.db).Model(&model.Boutique{})
	if boutiqueID != nil {
		query = query.Where("id = ?", *boutiqueID)
	}
	if search != "" {
		query = query.Where("LOWER(nom) LIKE LOWER(?)", "%"+search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&boutiques).Error; err != nil {
		return nil, 0, err
	}

	return boutiques, total, nil
}

func (r *boutiqueRepository) ExistsByNom(ctx context.Context, nom string, excludeID *uuid.UUID) (bool, error) {
	query := GetDB(ctx, r.db).Model(&model.Boutique{}).Where("LOWER(nom) = LOWER(?)", nom)
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *boutiqueRepository) CountDependents(ctx context.Context, id uuid.UUID) (BoutiqueDependents, error) {
	db := GetDB(ctx, r.db)
	var deps BoutiqueDependents

	if err := db.Model(&model.User{}).Where("boutique_id = ?", id).Count(&deps.Users).Error; err != nil {
		return deps, err
	}
	if err := db.Model(&model.Produit{}).Where("boutique_id = ?", id).Count(&deps.Produits).Error; err != nil {
		return deps, err
	}
	if err := db.Model(&model.Vente{}).Where("boutique_id = ?", id).Count(&deps.Ventes).Error; err != nil {
		return deps, err
	}
	if err := db.Model(&model.Client{}).Where("boutique_id = ?", id).Count(&deps.Clients).Error; err != nil {
		return deps, err
	}
	return deps, nil
}

// Stats folds the boutique's ventes, transactions and related entity counts
// into derived figures. COALESCE keeps sums at zero for empty tenants.
func (r *boutiqueRepository) Stats(ctx context.Context, boutique *model.Boutique) (model.BoutiqueStats, error) {
	db := GetDB(ctx, r.db)
	var stats model.BoutiqueStats

	var totals struct {
		TotalVentes  decimal.Decimal
		TotalImpayes decimal.Decimal
	}
	err := db.Model(&model.Vente{}).
		Select("COALESCE(SUM(montant_total), 0) as total_ventes, COALESCE(SUM(montant_restant), 0) as total_impayes").
		Where("boutique_id = ?", boutique.ID).
		Scan(&totals).Error
	if err != nil {
		return stats, err
	}
	stats.TotalVentes = totals.TotalVentes
	stats.TotalImpayes = totals.TotalImpayes

	var capital struct {
		Injections decimal.Decimal
		Retraits   decimal.Decimal
	}
	err = db.Model(&model.Transaction{}).
		Select("COALESCE(SUM(CASE WHEN type = ? THEN montant ELSE 0 END), 0) as injections, COALESCE(SUM(CASE WHEN type = ? THEN montant ELSE 0 END), 0) as retraits",
			model.TransactionTypeInjection, model.TransactionTypeRetrait).
		Where("boutique_id = ?", boutique.ID).
		Scan(&capital).Error
	if err != nil {
		return stats, err
	}
	stats.CapitalActuel = boutique.CapitalInitial.Add(capital.Injections).Sub(capital.Retraits)

	if err := db.Model(&model.User{}).Where("boutique_id = ?", boutique.ID).Count(&stats.NbUsers).Error; err != nil {
		return stats, err
	}
	if err := db.Model(&model.Produit{}).Where("boutique_id = ?", boutique.ID).Count(&stats.NbProduits).Error; err != nil {
		return stats, err
	}
	if err := db.Model(&model.Vente{}).Where("boutique_id = ?", boutique.ID).Count(&stats.NbVentes).Error; err != nil {
		return stats, err
	}
	if err := db.Model(&model.Client{}).Where("boutique_id = ?", boutique.ID).Count(&stats.NbClients).Error; err != nil {
		return stats, err
	}

	return stats, nil
}
