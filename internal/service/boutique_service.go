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

type CreateBoutiqueRequest struct {
	Nom            string `json:"nom"`
	Adresse        string `json:"adresse"`
	Telephone      string `json:"telephone"`
	CapitalInitial string `json:"capital_initial"`
}

type UpdateBoutiqueRequest struct {
	Nom       *string `json:"nom"`
	Adresse   *string `json:"adresse"`
	Telephone *string `json:"telephone"`
}

type BoutiqueResponse struct {
	ID             uuid.UUID            `json:"id"`
	Nom            string               `json:"nom"`
	Adresse        string               `json:"adresse"`
	Telephone      string               `json:"telephone"`
	CapitalInitial string               `json:"capital_initial"`
	Stats          *model.BoutiqueStats `json:"stats,omitempty"`
	CreatedAt      time.Time            `json:"created_at"`
	UpdatedAt      time.Time            `json:"updated_at"`
}

// --- Interface ---

type BoutiqueService interface {
	CreateBoutique(ctx context.Context, session auth.Session, req CreateBoutiqueRequest) (BoutiqueResponse, error)
	GetBoutique(ctx context.Context, session auth.Session, id string, includeStats bool) (BoutiqueResponse, error)
	UpdateBoutique(ctx context.Context, session auth.Session, id string, req UpdateBoutiqueRequest) (BoutiqueResponse, error)
	DeleteBoutique(ctx context.Context, session auth.Session, id string) error
	ListBoutiques(ctx context.Context, session auth.Session, requestedBoutique, search string, page, limit int, includeStats bool) ([]BoutiqueResponse, int64, error)
}

type boutiqueService struct {
	boutiqueRepo repository.BoutiqueRepository
	txManager    repository.TransactionManager
}

func NewBoutiqueService(boutiqueRepo repository.BoutiqueRepository, txManager repository.TransactionManager) BoutiqueService {
	return &boutiqueService{boutiqueRepo: boutiqueRepo, txManager: txManager}
}

// --- Implementation ---

func (s *boutiqueService) CreateBoutique(ctx context.Context, session auth.Session, req CreateBoutiqueRequest) (BoutiqueResponse, error) {
	if err := auth.RequireAdmin(session); err != nil {
		return BoutiqueResponse{}, err
	}

	var violations []apperror.FieldViolation
	if req.Nom == "" {
		violations = append(violations, apperror.FieldViolation{Field: "nom", Message: "nom is required"})
	}
	capital := decimal.Zero
	if req.CapitalInitial != "" {
		var err error
		if capital, err = decimal.NewFromString(req.CapitalInitial); err != nil {
			violations = append(violations, apperror.FieldViolation{Field: "capital_initial", Message: "capital_initial must be a decimal number"})
		} else if capital.IsNegative() {
			violations = append(violations, apperror.FieldViolation{Field: "capital_initial", Message: "capital_initial cannot be negative"})
		}
	}
	if len(violations) > 0 {
		return BoutiqueResponse{}, apperror.Validation(violations...)
	}

	exists, err := s.boutiqueRepo.ExistsByNom(ctx, req.Nom, nil)
	if err != nil {
		return BoutiqueResponse{}, apperror.Internal(err)
	}
	if exists {
		return BoutiqueResponse{}, apperror.Conflict("a boutique with this nom already exists")
	}

	boutique := &model.Boutique{
		Nom:            req.Nom,
		Adresse:        req.Adresse,
		Telephone:      req.Telephone,
		CapitalInitial: capital,
	}
	if err := s.boutiqueRepo.Create(ctx, boutique); err != nil {
		if isDuplicateKey(err) {
			return BoutiqueResponse{}, apperror.Conflict("a boutique with this nom already exists")
		}
		return BoutiqueResponse{}, apperror.Internal(err)
	}

	return toBoutiqueResponse(*boutique, nil), nil
}

func (s *boutiqueService) GetBoutique(ctx context.Context, session auth.Session, id string, includeStats bool) (BoutiqueResponse, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return BoutiqueResponse{}, apperror.ValidationMsg("invalid boutique ID")
	}

	// A gestionnaire may only read its own boutique
	if !session.IsAdmin() {
		if session.BoutiqueID == nil || *session.BoutiqueID != uid {
			return BoutiqueResponse{}, apperror.Authorization("access to this boutique is not permitted")
		}
	}

	boutique, err := s.boutiqueRepo.FindByID(ctx, uid)
	if err != nil {
		return BoutiqueResponse{}, notFoundOr(err, "boutique not found")
	}

	var stats *model.BoutiqueStats
	if includeStats {
		st, err := s.boutiqueRepo.Stats(ctx, boutique)
		if err != nil {
			return BoutiqueResponse{}, apperror.Internal(err)
		}
		stats = &st
	}

	return toBoutiqueResponse(*boutique, stats), nil
}

func (s *boutiqueService) UpdateBoutique(ctx context.Context, session auth.Session, id string, req UpdateBoutiqueRequest) (BoutiqueResponse, error) {
	if err := auth.RequireAdmin(session); err != nil {
		return BoutiqueResponse{}, err
	}
	uid, err := uuid.Parse(id)
	if err != nil {
		return BoutiqueResponse{}, apperror.ValidationMsg("invalid boutique ID")
	}

	boutique, err := s.boutiqueRepo.FindByID(ctx, uid)
	if err != nil {
		return BoutiqueResponse{}, notFoundOr(err, "boutique not found")
	}

	if req.Nom != nil {
		if *req.Nom == "" {
			return BoutiqueResponse{}, apperror.Validation(apperror.FieldViolation{Field: "nom", Message: "nom cannot be empty"})
		}
		if *req.Nom != boutique.Nom {
			exists, err := s.boutiqueRepo.ExistsByNom(ctx, *req.Nom, &boutique.ID)
			if err != nil {
				return BoutiqueResponse{}, apperror.Internal(err)
			}
			if exists {
				return BoutiqueResponse{}, apperror.Conflict("a boutique with this nom already exists")
			}
		}
		boutique.Nom = *req.Nom
	}
	if req.Adresse != nil {
		boutique.Adresse = *req.Adresse
	}
	if req.Telephone != nil {
		boutique.Telephone = *req.Telephone
	}

	if err := s.boutiqueRepo.Update(ctx, boutique); err != nil {
		return BoutiqueResponse{}, apperror.Internal(err)
	}

	return toBoutiqueResponse(*boutique, nil), nil
}

// DeleteBoutique refuses to delete a tenant that still has dependent records,
// so the caller gets an explanation instead of a cascade surprise.
func (s *boutiqueService) DeleteBoutique(ctx context.Context, session auth.Session, id string) error {
	if err := auth.RequireAdmin(session); err != nil {
		return err
	}
	uid, err := uuid.Parse(id)
	if err != nil {
		return apperror.ValidationMsg("invalid boutique ID")
	}

	return s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		boutique, err := s.boutiqueRepo.FindByID(txCtx, uid)
		if err != nil {
			return notFoundOr(err, "boutique not found")
		}

		deps, err := s.boutiqueRepo.CountDependents(txCtx, boutique.ID)
		if err != nil {
			return apperror.Internal(err)
		}
		if deps.Users > 0 {
			return apperror.Conflict("cannot delete boutique: user accounts are still assigned to it")
		}
		if deps.Any() {
			return apperror.Conflict("cannot delete boutique: produits, ventes or clients still reference it")
		}

		if err := s.boutiqueRepo.Delete(txCtx, boutique.ID); err != nil {
			return apperror.Internal(err)
		}
		return nil
	})
}

func (s *boutiqueService) ListBoutiques(ctx context.Context, session auth.Session, requestedBoutique, search string, page, limit int, includeStats bool) ([]BoutiqueResponse, int64, error) {
	if err := auth.RequireAdmin(session); err != nil {
		return nil, 0, err
	}
	scope, err := auth.Resolve(session, requestedBoutique)
	if err != nil {
		return nil, 0, err
	}

	boutiques, total, err := s.boutiqueRepo.List(ctx, scope.BoutiqueID, search, page, limit)
	if err != nil {
		return nil, 0, apperror.Internal(err)
	}

	res := make([]BoutiqueResponse, 0, len(boutiques))
	for i := range boutiques {
		var stats *model.BoutiqueStats
		if includeStats {
			st, err := s.boutiqueRepo.Stats(ctx, &boutiques[i])
			if err != nil {
				return nil, 0, apperror.Internal(err)
			}
			stats = &st
		}
		res = append(res, toBoutiqueResponse(boutiques[i], stats))
	}
	return res, total, nil
}

func toBoutiqueResponse(b model.Boutique, stats *model.BoutiqueStats) BoutiqueResponse {
	return BoutiqueResponse{
		ID:             b.ID,
		Nom:            b.Nom,
		Adresse:        b.Adresse,
		Telephone:      b.Telephone,
		CapitalInitial: b.CapitalInitial.StringFixed(2),
		Stats:          stats,
		CreatedAt:      b.CreatedAt,
		UpdatedAt:      b.UpdatedAt,
	}
}
