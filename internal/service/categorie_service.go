package service

import (
	"context"
	"time"

	"github.com/Drasasse/gestion-commerce-sub002/internal/auth"
	"github.com/Drasasse/gestion-commerce-sub002/internal/model"
	"github.com/Drasasse/gestion-commerce-sub002/internal/repository"
	"github.com/Drasasse/gestion-commerce-sub002/pkg/apperror"

	"github.com/google/uuid"
)

// --- DTOs ---

type CreateCategorieRequest struct {
	Nom         string `json:"nom"`
	Description string `json:"description"`
}

type UpdateCategorieRequest struct {
	Nom         *string `json:"nom"`
	Description *string `json:"description"`
}

type CategorieResponse struct {
	ID          uuid.UUID `json:"id"`
	Nom         string    `json:"nom"`
	Description string    `json:"description"`
	BoutiqueID  uuid.UUID `json:"boutique_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// --- Interface ---

type CategorieService interface {
	CreateCategorie(ctx context.Context, scope auth.Scope, req CreateCategorieRequest) (CategorieResponse, error)
	GetCategorie(ctx context.Context, scope auth.Scope, id string) (CategorieResponse, error)
	UpdateCategorie(ctx context.Context, scope auth.Scope, id string, req UpdateCategorieRequest) (CategorieResponse, error)
	DeleteCategorie(ctx context.Context, scope auth.Scope, id string) error
	ListCategories(ctx context.Context, scope auth.Scope, search string, page, limit int) ([]CategorieResponse, int64, error)
}

type categorieService struct {
	categorieRepo repository.CategorieRepository
}

func NewCategorieService(categorieRepo repository.CategorieRepository) CategorieService {
	return &categorieService{categorieRepo: categorieRepo}
}

// --- Implementation ---

func (s *categorieService) CreateCategorie(ctx context.Context, scope auth.Scope, req CreateCategorieRequest) (CategorieResponse, error) {
	boutiqueID, err := scope.Tenant()
	if err != nil {
		return CategorieResponse{}, err
	}

	var violations []apperror.FieldViolation
	if req.Nom == "" {
		violations = append(violations, apperror.FieldViolation{Field: "nom", Message: "nom is required"})
	}
	if len(req.Nom) > 255 {
		violations = append(violations, apperror.FieldViolation{Field: "nom", Message: "nom must be at most 255 characters"})
	}
	if len(violations) > 0 {
		return CategorieResponse{}, apperror.Validation(violations...)
	}

	exists, err := s.categorieRepo.ExistsByNom(ctx, boutiqueID, req.Nom, nil)
	if err != nil {
		return CategorieResponse{}, apperror.Internal(err)
	}
	if exists {
		return CategorieResponse{}, apperror.Conflict("a category with this nom already exists in this boutique")
	}

	categorie := &model.Categorie{
		Nom:         req.Nom,
		Description: req.Description,
		BoutiqueID:  boutiqueID,
	}
	if err := s.categorieRepo.Create(ctx, categorie); err != nil {
		if isDuplicateKey(err) {
			return CategorieResponse{}, apperror.Conflict("a category with this nom already exists in this boutique")
		}
		return CategorieResponse{}, apperror.Internal(err)
	}

	return toCategorieResponse(*categorie), nil
}

func (s *categorieService) GetCategorie(ctx context.Context, scope auth.Scope, id string) (CategorieResponse, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return CategorieResponse{}, apperror.ValidationMsg("invalid category ID")
	}

	categorie, err := s.categorieRepo.FindByID(ctx, scope.BoutiqueID, uid)
	if err != nil {
		return CategorieResponse{}, notFoundOr(err, "category not found")
	}

	return toCategorieResponse(*categorie), nil
}

func (s *categorieService) UpdateCategorie(ctx context.Context, scope auth.Scope, id string, req UpdateCategorieRequest) (CategorieResponse, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return CategorieResponse{}, apperror.ValidationMsg("invalid category ID")
	}

	categorie, err := s.categorieRepo.FindByID(ctx, scope.BoutiqueID, uid)
	if err != nil {
		return CategorieResponse{}, notFoundOr(err, "category not found")
	}

	if req.Nom != nil {
		if *req.Nom == "" {
			return CategorieResponse{}, apperror.Validation(apperror.FieldViolation{Field: "nom", Message: "nom cannot be empty"})
		}
		if *req.Nom != categorie.Nom {
			exists, err := s.categorieRepo.ExistsByNom(ctx, categorie.BoutiqueID, *req.Nom, &categorie.ID)
			if err != nil {
				return CategorieResponse{}, apperror.Internal(err)
			}
			if exists {
				return CategorieResponse{}, apperror.Conflict("a category with this nom already exists in this boutique")
			}
		}
		categorie.Nom = *req.Nom
	}
	if req.Description != nil {
		categorie.Description = *req.Description
	}

	if err := s.categorieRepo.Update(ctx, categorie); err != nil {
		if isDuplicateKey(err) {
			return CategorieResponse{}, apperror.Conflict("a category with this nom already exists in this boutique")
		}
		return CategorieResponse{}, apperror.Internal(err)
	}

	return toCategorieResponse(*categorie), nil
}

func (s *categorieService) DeleteCategorie(ctx context.Context, scope auth.Scope, id string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return apperror.ValidationMsg("invalid category ID")
	}

	categorie, err := s.categorieRepo.FindByID(ctx, scope.BoutiqueID, uid)
	if err != nil {
		return notFoundOr(err, "category not found")
	}

	nbProduits, err := s.categorieRepo.CountProduits(ctx, categorie.ID)
	if err != nil {
		return apperror.Internal(err)
	}
	if nbProduits > 0 {
		return apperror.Conflict("cannot delete category: produits are still assigned to it")
	}

	if err := s.categorieRepo.Delete(ctx, categorie.ID); err != nil {
		return apperror.Internal(err)
	}
	return nil
}

func (s *categorieService) ListCategories(ctx context.Context, scope auth.Scope, search string, page, limit int) ([]CategorieResponse, int64, error) {
	categories, total, err := s.categorieRepo.List(ctx, scope.BoutiqueID, search, page, limit)
	if err != nil {
		return nil, 0, apperror.Internal(err)
	}

	res := make([]CategorieResponse, 0, len(categories))
	for _, c := range categories {
		res = append(res, toCategorieResponse(c))
	}
	return res, total, nil
}

func toCategorieResponse(c model.Categorie) CategorieResponse {
	return CategorieResponse{
		ID:          c.ID,
		Nom:         c.Nom,
		Description: c.Description,
		BoutiqueID:  c.BoutiqueID,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}
