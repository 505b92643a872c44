package service

import (
	"context"
	"time"

	"github.com/Drasasse/gestion-commerce-sub002/internal/auth"
	"github.com/Drasasse/gestion-commerce-sub002/internal/model"
	"github.com/Drasasse/gestion-commerce-sub002/internal/repository"
	"github.com/Drasasse/gestion-commerce-sub002/pkg/apperror"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// --- DTOs ---

type CreateProduitRequest struct {
	Nom           string `json:"nom"`
	Description   string `json:"description"`
	PrixAchat     string `json:"prix_achat"`
	PrixVente     string `json:"prix_vente"`
	Stock         int    `json:"stock"`
	SeuilAlerte   *int   `json:"seuil_alerte"`
	CategorieID   string `json:"categorie_id"`
	FournisseurID string `json:"fournisseur_id"`
}

type UpdateProduitRequest struct {
	Nom         *string `json:"nom"`
	Description *string `json:"description"`
	PrixAchat   *string `json:"prix_achat"`
	PrixVente   *string `json:"prix_vente"`
	Stock       *int    `json:"stock"`
	SeuilAlerte *int    `json:"seuil_alerte"`
	CategorieID *string `json:"categorie_id"` // empty string detaches the category
}

type ProduitResponse struct {
	ID            uuid.UUID  `json:"id"`
	Nom           string     `json:"nom"`
	Description   string     `json:"description"`
	PrixAchat     string     `json:"prix_achat"`
	PrixVente     string     `json:"prix_vente"`
	Stock         int        `json:"stock"`
	SeuilAlerte   int        `json:"seuil_alerte"`
	CategorieID   *uuid.UUID `json:"categorie_id"`
	CategorieNom  string     `json:"categorie_nom,omitempty"`
	FournisseurID *uuid.UUID `json:"fournisseur_id"`
	BoutiqueID    uuid.UUID  `json:"boutique_id"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// --- Interface ---

type ProduitService interface {
	CreateProduit(ctx context.Context, scope auth.Scope, req CreateProduitRequest) (ProduitResponse, error)
	GetProduit(ctx context.Context, scope auth.Scope, id string) (ProduitResponse, error)
	UpdateProduit(ctx context.Context, scope auth.Scope, id string, req UpdateProduitRequest) (ProduitResponse, error)
	DeleteProduit(ctx context.Context, scope auth.Scope, id string) error
	ListProduits(ctx context.Context, scope auth.Scope, search string, page, limit int) ([]ProduitResponse, int64, error)
	ListLowStock(ctx context.Context, scope auth.Scope) ([]ProduitResponse, error)
}

type produitService struct {
	produitRepo     repository.ProduitRepository
	categorieRepo   repository.CategorieRepository
	fournisseurRepo repository.FournisseurRepository
}

func NewProduitService(produitRepo repository.ProduitRepository, categorieRepo repository.CategorieRepository, fournisseurRepo repository.FournisseurRepository) ProduitService {
	return &produitService{produitRepo: produitRepo, categorieRepo: categorieRepo, fournisseurRepo: fournisseurRepo}
}

// --- Implementation ---

func (s *produitService) CreateProduit(ctx context.Context, scope auth.Scope, req CreateProduitRequest) (ProduitResponse, error) {
	boutiqueID, err := scope.Tenant()
	if err != nil {
		return ProduitResponse{}, err
	}

	var violations []apperror.FieldViolation
	if req.Nom == "" {
		violations = append(violations, apperror.FieldViolation{Field: "nom", Message: "nom is required"})
	}

	prixVente := decimal.Zero
	if req.PrixVente == "" {
		violations = append(violations, apperror.FieldViolation{Field: "prix_vente", Message: "prix_vente is required"})
	} else if prixVente, err = decimal.NewFromString(req.PrixVente); err != nil {
		violations = append(violations, apperror.FieldViolation{Field: "prix_vente", Message: "prix_vente must be a decimal number"})
	} else if prixVente.IsNegative() {
		violations = append(violations, apperror.FieldViolation{Field: "prix_vente", Message: "prix_vente cannot be negative"})
	}

	prixAchat := decimal.Zero
	if req.PrixAchat != "" {
		if prixAchat, err = decimal.NewFromString(req.PrixAchat); err != nil {
			violations = append(violations, apperror.FieldViolation{Field: "prix_achat", Message: "prix_achat must be a decimal number"})
		} else if prixAchat.IsNegative() {
			violations = append(violations, apperror.FieldViolation{Field: "prix_achat", Message: "prix_achat cannot be negative"})
		}
	}

	if req.Stock < 0 {
		violations = append(violations, apperror.FieldViolation{Field: "stock", Message: "stock cannot be negative"})
	}
	if req.SeuilAlerte != nil && *req.SeuilAlerte < 0 {
		violations = append(violations, apperror.FieldViolation{Field: "seuil_alerte", Message: "seuil_alerte cannot be negative"})
	}
	if len(violations) > 0 {
		return ProduitResponse{}, apperror.Validation(violations...)
	}

	var categorieID *uuid.UUID
	if req.CategorieID != "" {
		cid, err := uuid.Parse(req.CategorieID)
		if err != nil {
			return ProduitResponse{}, apperror.Validation(apperror.FieldViolation{Field: "categorie_id", Message: "invalid categorie_id"})
		}
		// Category must exist within the same boutique
		if _, err := s.categorieRepo.FindByID(ctx, &boutiqueID, cid); err != nil {
			return ProduitResponse{}, notFoundOr(err, "category not found in this boutique")
		}
		categorieID = &cid
	}

	var fournisseurID *uuid.UUID
	if req.FournisseurID != "" {
		fid, err := uuid.Parse(req.FournisseurID)
		if err != nil {
			return ProduitResponse{}, apperror.Validation(apperror.FieldViolation{Field: "fournisseur_id", Message: "invalid fournisseur_id"})
		}
		if _, err := s.fournisseurRepo.FindByID(ctx, &boutiqueID, fid); err != nil {
			return ProduitResponse{}, notFoundOr(err, "supplier not found in this boutique")
		}
		fournisseurID = &fid
	}

	seuilAlerte := 5
	if req.SeuilAlerte != nil {
		seuilAlerte = *req.SeuilAlerte
	}

	produit := &model.Produit{
		Nom:           req.Nom,
		Description:   req.Description,
		PrixAchat:     prixAchat,
		PrixVente:     prixVente,
		Stock:         req.Stock,
		SeuilAlerte:   seuilAlerte,
		CategorieID:   categorieID,
		FournisseurID: fournisseurID,
		BoutiqueID:    boutiqueID,
	}
	if err := s.produitRepo.Create(ctx, produit); err != nil {
		return ProduitResponse{}, apperror.Internal(err)
	}

	return toProduitResponse(*produit), nil
}

func (s *produitService) GetProduit(ctx context.Context, scope auth.Scope, id string) (ProduitResponse, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return ProduitResponse{}, apperror.ValidationMsg("invalid product ID")
	}

	produit, err := s.produitRepo.FindByID(ctx, scope.BoutiqueID, uid)
	if err != nil {
		return ProduitResponse{}, notFoundOr(err, "product not found")
	}

	return toProduitResponse(*produit), nil
}

func (s *produitService) UpdateProduit(ctx context.Context, scope auth.Scope, id string, req UpdateProduitRequest) (ProduitResponse, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return ProduitResponse{}, apperror.ValidationMsg("invalid product ID")
	}

	produit, err := s.produitRepo.FindByID(ctx, scope.BoutiqueID, uid)
	if err != nil {
		return ProduitResponse{}, notFoundOr(err, "product not found")
	}

	if req.Nom != nil {
		if *req.Nom == "" {
			return ProduitResponse{}, apperror.Validation(apperror.FieldViolation{Field: "nom", Message: "nom cannot be empty"})
		}
		produit.Nom = *req.Nom
	}
	if req.Description != nil {
		produit.Description = *req.Description
	}
	if req.PrixAchat != nil {
		prixAchat, err := decimal.NewFromString(*req.PrixAchat)
		if err != nil || prixAchat.IsNegative() {
			return ProduitResponse{}, apperror.Validation(apperror.FieldViolation{Field: "prix_achat", Message: "prix_achat must be a non-negative decimal number"})
		}
		produit.PrixAchat = prixAchat
	}
	if req.PrixVente != nil {
		prixVente, err := decimal.NewFromString(*req.PrixVente)
		if err != nil || prixVente.IsNegative() {
			return ProduitResponse{}, apperror.Validation(apperror.FieldViolation{Field: "prix_vente", Message: "prix_vente must be a non-negative decimal number"})
		}
		produit.PrixVente = prixVente
	}
	if req.Stock != nil {
		if *req.Stock < 0 {
			return ProduitResponse{}, apperror.Validation(apperror.FieldViolation{Field: "stock", Message: "stock cannot be negative"})
		}
		produit.Stock = *req.Stock
	}
	if req.SeuilAlerte != nil {
		if *req.SeuilAlerte < 0 {
			return ProduitResponse{}, apperror.Validation(apperror.FieldViolation{Field: "seuil_alerte", Message: "seuil_alerte cannot be negative"})
		}
		produit.SeuilAlerte = *req.SeuilAlerte
	}
	if req.CategorieID != nil {
		if *req.CategorieID == "" {
			produit.CategorieID = nil
			produit.Categorie = nil
		} else {
			cid, err := uuid.Parse(*req.CategorieID)
			if err != nil {
				return ProduitResponse{}, apperror.Validation(apperror.FieldViolation{Field: "categorie_id", Message: "invalid categorie_id"})
			}
			if _, err := s.categorieRepo.FindByID(ctx, &produit.BoutiqueID, cid); err != nil {
				return ProduitResponse{}, notFoundOr(err, "category not found in this boutique")
			}
			produit.CategorieID = &cid
		}
	}

	if err := s.produitRepo.Update(ctx, produit); err != nil {
		return ProduitResponse{}, apperror.Internal(err)
	}

	return toProduitResponse(*produit), nil
}

func (s *produitService) DeleteProduit(ctx context.Context, scope auth.Scope, id string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return apperror.ValidationMsg("invalid product ID")
	}

	produit, err := s.produitRepo.FindByID(ctx, scope.BoutiqueID, uid)
	if err != nil {
		return notFoundOr(err, "product not found")
	}

	nbItems, err := s.produitRepo.CountVenteItems(ctx, produit.ID)
	if err != nil {
		return apperror.Internal(err)
	}
	if nbItems > 0 {
		return apperror.Conflict("cannot delete product: it appears in recorded ventes")
	}

	if err := s.produitRepo.Delete(ctx, produit.ID); err != nil {
		return apperror.Internal(err)
	}
	return nil
}

func (s *produitService) ListProduits(ctx context.Context, scope auth.Scope, search string, page, limit int) ([]ProduitResponse, int64, error) {
	produits, total, err := s.produitRepo.List(ctx, scope.BoutiqueID, search, page, limit)
	if err != nil {
		return nil, 0, apperror.Internal(err)
	}

	res := make([]ProduitResponse, 0, len(produits))
	for _, p := range produits {
		res = append(res, toProduitResponse(p))
	}
	return res, total, nil
}

func (s *produitService) ListLowStock(ctx context.Context, scope auth.Scope) ([]ProduitResponse, error) {
	produits, err := s.produitRepo.ListLowStock(ctx, scope.BoutiqueID)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	res := make([]ProduitResponse, 0, len(produits))
	for _, p := range produits {
		res = append(res, toProduitResponse(p))
	}
	return res, nil
}

func toProduitResponse(p model.Produit) ProduitResponse {
	res := ProduitResponse{
		ID:            p.ID,
		Nom:           p.Nom,
		Description:   p.Description,
		PrixAchat:     p.PrixAchat.StringFixed(2),
		PrixVente:     p.PrixVente.StringFixed(2),
		Stock:         p.Stock,
		SeuilAlerte:   p.SeuilAlerte,
		CategorieID:   p.CategorieID,
		FournisseurID: p.FournisseurID,
		BoutiqueID:    p.BoutiqueID,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
	if p.Categorie != nil {
		res.CategorieNom = p.Categorie.Nom
	}
	return res
}
