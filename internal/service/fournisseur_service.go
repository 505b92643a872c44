package service

import (
	"context"
	"net/mail"
	"time"

	"github.com/Drasasse/gestion-commerce-sub002/internal/auth"
	"github.com/Drasasse/gestion-commerce-sub002/internal/model"
	"github.com/Drasasse/gestion-commerce-sub002/internal/repository"
	"github.com/Drasasse/gestion-commerce-sub002/pkg/apperror"

	"github.com/google/uuid"
)

// --- DTOs ---

type CreateFournisseurRequest struct {
	Nom       string `json:"nom"`
	Telephone string `json:"telephone"`
	Email     string `json:"email"`
	Adresse   string `json:"adresse"`
}

type UpdateFournisseurRequest struct {
	Nom       *string `json:"nom"`
	Telephone *string `json:"telephone"`
	Email     *string `json:"email"`
	Adresse   *string `json:"adresse"`
}

type FournisseurResponse struct {
	ID         uuid.UUID `json:"id"`
	Nom        string    `json:"nom"`
	Telephone  string    `json:"telephone"`
	Email      string    `json:"email"`
	Adresse    string    `json:"adresse"`
	BoutiqueID uuid.UUID `json:"boutique_id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// --- Interface ---

type FournisseurService interface {
	CreateFournisseur(ctx context.Context, scope auth.Scope, req CreateFournisseurRequest) (FournisseurResponse, error)
	GetFournisseur(ctx context.Context, scope auth.Scope, id string) (FournisseurResponse, error)
	UpdateFournisseur(ctx context.Context, scope auth.Scope, id string, req UpdateFournisseurRequest) (FournisseurResponse, error)
	DeleteFournisseur(ctx context.Context, scope auth.Scope, id string) error
	ListFournisseurs(ctx context.Context, scope auth.Scope, search string, page, limit int) ([]FournisseurResponse, int64, error)
}

type fournisseurService struct {
	fournisseurRepo repository.FournisseurRepository
}

func NewFournisseurService(fournisseurRepo repository.FournisseurRepository) FournisseurService {
	return &fournisseurService{fournisseurRepo: fournisseurRepo}
}

// --- Implementation ---

func (s *fournisseurService) CreateFournisseur(ctx context.Context, scope auth.Scope, req CreateFournisseurRequest) (FournisseurResponse, error) {
	boutiqueID, err := scope.Tenant()
	if err != nil {
		return FournisseurResponse{}, err
	}

	var violations []apperror.FieldViolation
	if req.Nom == "" {
		violations = append(violations, apperror.FieldViolation{Field: "nom", Message: "nom is required"})
	}
	if req.Email != "" {
		if _, err := mail.ParseAddress(req.Email); err != nil {
			violations = append(violations, apperror.FieldViolation{Field: "email", Message: "invalid email format"})
		}
	}
	if len(violations) > 0 {
		return FournisseurResponse{}, apperror.Validation(violations...)
	}

	fournisseur := &model.Fournisseur{
		Nom:        req.Nom,
		Telephone:  req.Telephone,
		Email:      req.Email,
		Adresse:    req.Adresse,
		BoutiqueID: boutiqueID,
	}
	if err := s.fournisseurRepo.Create(ctx, fournisseur); err != nil {
		return FournisseurResponse{}, apperror.Internal(err)
	}

	return toFournisseurResponse(*fournisseur), nil
}

func (s *fournisseurService) GetFournisseur(ctx context.Context, scope auth.Scope, id string) (FournisseurResponse, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return FournisseurResponse{}, apperror.ValidationMsg("invalid supplier ID")
	}

	fournisseur, err := s.fournisseurRepo.FindByID(ctx, scope.BoutiqueID, uid)
	if err != nil {
		return FournisseurResponse{}, notFoundOr(err, "supplier not found")
	}

	return toFournisseurResponse(*fournisseur), nil
}

func (s *fournisseurService) UpdateFournisseur(ctx context.Context, scope auth.Scope, id string, req UpdateFournisseurRequest) (FournisseurResponse, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return FournisseurResponse{}, apperror.ValidationMsg("invalid supplier ID")
	}

	fournisseur, err := s.fournisseurRepo.FindByID(ctx, scope.BoutiqueID, uid)
	if err != nil {
		return FournisseurResponse{}, notFoundOr(err, "supplier not found")
	}

	if req.Nom != nil {
		if *req.Nom == "" {
			return FournisseurResponse{}, apperror.Validation(apperror.FieldViolation{Field: "nom", Message: "nom cannot be empty"})
		}
		fournisseur.Nom = *req.Nom
	}
	if req.Email != nil {
		if *req.Email != "" {
			if _, err := mail.ParseAddress(*req.Email); err != nil {
				return FournisseurResponse{}, apperror.Validation(apperror.FieldViolation{Field: "email", Message: "invalid email format"})
			}
		}
		fournisseur.Email = *req.Email
	}
	if req.Telephone != nil {
		fournisseur.Telephone = *req.Telephone
	}
	if req.Adresse != nil {
		fournisseur.Adresse = *req.Adresse
	}

	if err := s.fournisseurRepo.Update(ctx, fournisseur); err != nil {
		return FournisseurResponse{}, apperror.Internal(err)
	}

	return toFournisseurResponse(*fournisseur), nil
}

func (s *fournisseurService) DeleteFournisseur(ctx context.Context, scope auth.Scope, id string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return apperror.ValidationMsg("invalid supplier ID")
	}

	fournisseur, err := s.fournisseurRepo.FindByID(ctx, scope.BoutiqueID, uid)
	if err != nil {
		return notFoundOr(err, "supplier not found")
	}

	nbProduits, err := s.fournisseurRepo.CountProduits(ctx, fournisseur.ID)
	if err != nil {
		return apperror.Internal(err)
	}
	if nbProduits > 0 {
		return apperror.Conflict("cannot delete supplier: produits are still attached to it")
	}

	if err := s.fournisseurRepo.Delete(ctx, fournisseur.ID); err != nil {
		return apperror.Internal(err)
	}
	return nil
}

func (s *fournisseurService) ListFournisseurs(ctx context.Context, scope auth.Scope, search string, page, limit int) ([]FournisseurResponse, int64, error) {
	fournisseurs, total, err := s.fournisseurRepo.List(ctx, scope.BoutiqueID, search, page, limit)
	if err != nil {
		return nil, 0, apperror.Internal(err)
	}

	res := make([]FournisseurResponse, 0, len(fournisseurs))
	for _, f := range fournisseurs {
		res = append(res, toFournisseurResponse(f))
	}
	return res, total, nil
}

func toFournisseurResponse(f model.Fournisseur) FournisseurResponse {
	return FournisseurResponse{
		ID:         f.ID,
		Nom:        f.Nom,
		Telephone:  f.Telephone,
		Email:      f.Email,
		Adresse:    f.Adresse,
		BoutiqueID: f.BoutiqueID,
		CreatedAt:  f.CreatedAt,
		UpdatedAt:  f.UpdatedAt,
	}
}
