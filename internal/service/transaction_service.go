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

type CreateTransactionRequest struct {
	BoutiqueID  string `json:"boutique_id"`
	Type        string `json:"type"`
	Montant     string `json:"montant"`
	Description string `json:"description"`
}

type TransactionResponse struct {
	ID          uuid.UUID `json:"id"`
	BoutiqueID  uuid.UUID `json:"boutique_id"`
	Type        string    `json:"type"`
	Montant     string    `json:"montant"`
	Description string    `json:"description"`
	UserID      uuid.UUID `json:"user_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// --- Interface ---

type TransactionService interface {
	CreateTransaction(ctx context.Context, session auth.Session, req CreateTransactionRequest) (TransactionResponse, error)
	GetTransaction(ctx context.Context, scope auth.Scope, id string) (TransactionResponse, error)
	DeleteTransaction(ctx context.Context, session auth.Session, id string) error
	ListTransactions(ctx context.Context, scope auth.Scope, transactionType string, page, limit int) ([]TransactionResponse, int64, error)
}

type transactionService struct {
	transactionRepo repository.TransactionRepository
	boutiqueRepo    repository.BoutiqueRepository
}

func NewTransactionService(transactionRepo repository.TransactionRepository, boutiqueRepo repository.BoutiqueRepository) TransactionService {
	return &transactionService{transactionRepo: transactionRepo, boutiqueRepo: boutiqueRepo}
}

// --- Implementation ---

// CreateTransaction records a capital injection or withdrawal. Reserved for
// administrators regardless of how well-formed the payload is.
func (s *transactionService) CreateTransaction(ctx context.Context, session auth.Session, req CreateTransactionRequest) (TransactionResponse, error) {
	if err := auth.RequireAdmin(session); err != nil {
		return TransactionResponse{}, err
	}

	scope, err := auth.Resolve(session, req.BoutiqueID)
	if err != nil {
		return TransactionResponse{}, err
	}
	boutiqueID, err := scope.Tenant()
	if err != nil {
		return TransactionResponse{}, err
	}

	var violations []apperror.FieldViolation
	if req.Type != model.TransactionTypeInjection && req.Type != model.TransactionTypeRetrait {
		violations = append(violations, apperror.FieldViolation{Field: "type", Message: "type must be one of: INJECTION, RETRAIT"})
	}
	montant, err := decimal.NewFromString(req.Montant)
	if err != nil || !montant.IsPositive() {
		violations = append(violations, apperror.FieldViolation{Field: "montant", Message: "montant must be a positive decimal number"})
	}
	if len(violations) > 0 {
		return TransactionResponse{}, apperror.Validation(violations...)
	}

	if _, err := s.boutiqueRepo.FindByID(ctx, boutiqueID); err != nil {
		return TransactionResponse{}, notFoundOr(err, "boutique not found")
	}

	transaction := &model.Transaction{
		BoutiqueID:  boutiqueID,
		Type:        req.Type,
		Montant:     montant,
		Description: req.Description,
		UserID:      session.UserID,
	}
	if err := s.transactionRepo.Create(ctx, transaction); err != nil {
		return TransactionResponse{}, apperror.Internal(err)
	}

	return toTransactionResponse(*transaction), nil
}

func (s *transactionService) GetTransaction(ctx context.Context, scope auth.Scope, id string) (TransactionResponse, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return TransactionResponse{}, apperror.ValidationMsg("invalid transaction ID")
	}

	transaction, err := s.transactionRepo.FindByID(ctx, scope.BoutiqueID, uid)
	if err != nil {
		return TransactionResponse{}, notFoundOr(err, "transaction not found")
	}

	return toTransactionResponse(*transaction), nil
}

func (s *transactionService) DeleteTransaction(ctx context.Context, session auth.Session, id string) error {
	if err := auth.RequireAdmin(session); err != nil {
		return err
	}
	uid, err := uuid.Parse(id)
	if err != nil {
		return apperror.ValidationMsg("invalid transaction ID")
	}

	if _, err := s.transactionRepo.FindByID(ctx, nil, uid); err != nil {
		return notFoundOr(err, "transaction not found")
	}
	if err := s.transactionRepo.Delete(ctx, uid); err != nil {
		return apperror.Internal(err)
	}
	return nil
}

func (s *transactionService) ListTransactions(ctx context.Context, scope auth.Scope, transactionType string, page, limit int) ([]TransactionResponse, int64, error) {
	if transactionType != "" && transactionType != model.TransactionTypeInjection && transactionType != model.TransactionTypeRetrait {
		return nil, 0, apperror.ValidationMsg("type must be one of: INJECTION, RETRAIT")
	}

	transactions, total, err := s.transactionRepo.List(ctx, scope.BoutiqueID, transactionType, page, limit)
	if err != nil {
		return nil, 0, apperror.Internal(err)
	}

	res := make([]TransactionResponse, 0, len(transactions))
	for _, t := range transactions {
		res = append(res, toTransactionResponse(t))
	}
	return res, total, nil
}

func toTransactionResponse(t model.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:          t.ID,
		BoutiqueID:  t.BoutiqueID,
		Type:        t.Type,
		Montant:     t.Montant.StringFixed(2),
		Description: t.Description,
		UserID:      t.UserID,
		CreatedAt:   t.CreatedAt,
	}
}
