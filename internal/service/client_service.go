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

type CreateClientRequest struct {
	Nom       string `json:"nom"`
	Email     string `json:"email"`
	Telephone string `json:"telephone"`
	Adresse   string `json:"adresse"`
}

type UpdateClientRequest struct {
	Nom       *string `json:"nom"`
	Email     *string `json:"email"`
	Telephone *string `json:"telephone"`
	Adresse   *string `json:"adresse"`
}

type ClientResponse struct {
	ID         uuid.UUID `json:"id"`
	Nom        string    `json:"nom"`
	Email      *string   `json:"email"`
	Telephone  string    `json:"telephone"`
	Adresse    string    `json:"adresse"`
	BoutiqueID uuid.UUID `json:"boutique_id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// --- Interface ---

type ClientService interface {
	CreateClient(ctx context.Context, scope auth.Scope, req CreateClientRequest) (ClientResponse, error)
	GetClient(ctx context.Context, scope auth.Scope, id string) (ClientResponse, error)
	UpdateClient(ctx context.Context, scope auth.Scope, id string, req UpdateClientRequest) (ClientResponse, error)
	DeleteClient(ctx context.Context, scope auth.Scope, id string) error
	ListClients(ctx context.Context, scope auth.Scope, search string, page, limit int) ([]ClientResponse, int64, error)
}

type clientService struct {
	clientRepo repository.ClientRepository
}

func NewClientService(clientRepo repository.ClientRepository) ClientService {
	return &clientService{clientRepo: clientRepo}
}

// normalizeEmail maps a semantically empty email to absent (NULL) so it is
// never stored as an empty string and never trips the uniqueness check.
func normalizeEmail(email string) *string {
	if email == "" {
		return nil
	}
	return &email
}

func validateClientFields(nom string, email *string) []apperror.FieldViolation {
	var violations []apperror.FieldViolation
	if nom == "" {
		violations = append(violations, apperror.FieldViolation{Field: "nom", Message: "nom is required"})
	}
	if email != nil {
		if _, err := mail.ParseAddress(*email); err != nil {
			violations = append(violations, apperror.FieldViolation{Field: "email", Message: "invalid email format"})
		}
	}
	return violations
}

// --- Implementation ---

func (s *clientService) CreateClient(ctx context.Context, scope auth.Scope, req CreateClientRequest) (ClientResponse, error) {
	boutiqueID, err := scope.Tenant()
	if err != nil {
		return ClientResponse{}, err
	}

	email := normalizeEmail(req.Email)
	if violations := validateClientFields(req.Nom, email); len(violations) > 0 {
		return ClientResponse{}, apperror.Validation(violations...)
	}

	if email != nil {
		exists, err := s.clientRepo.ExistsByEmail(ctx, boutiqueID, *email, nil)
		if err != nil {
			return ClientResponse{}, apperror.Internal(err)
		}
		if exists {
			return ClientResponse{}, apperror.Conflict("a client with this email already exists in this boutique")
		}
	}

	client := &model.Client{
		Nom:        req.Nom,
		Email:      email,
		Telephone:  req.Telephone,
		Adresse:    req.Adresse,
		BoutiqueID: boutiqueID,
	}
	if err := s.clientRepo.Create(ctx, client); err != nil {
		if isDuplicateKey(err) {
			return ClientResponse{}, apperror.Conflict("a client with this email already exists in this boutique")
		}
		return ClientResponse{}, apperror.Internal(err)
	}

	return toClientResponse(*client), nil
}

func (s *clientService) GetClient(ctx context.Context, scope auth.Scope, id string) (ClientResponse, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return ClientResponse{}, apperror.ValidationMsg("invalid client ID")
	}

	client, err := s.clientRepo.FindByID(ctx, scope.BoutiqueID, uid)
	if err != nil {
		return ClientResponse{}, notFoundOr(err, "client not found")
	}

	return toClientResponse(*client), nil
}

func (s *clientService) UpdateClient(ctx context.Context, scope auth.Scope, id string, req UpdateClientRequest) (ClientResponse, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return ClientResponse{}, apperror.ValidationMsg("invalid client ID")
	}

	client, err := s.clientRepo.FindByID(ctx, scope.BoutiqueID, uid)
	if err != nil {
		return ClientResponse{}, notFoundOr(err, "client not found")
	}

	if req.Nom != nil {
		if *req.Nom == "" {
			return ClientResponse{}, apperror.Validation(apperror.FieldViolation{Field: "nom", Message: "nom cannot be empty"})
		}
		client.Nom = *req.Nom
	}
	if req.Email != nil {
		email := normalizeEmail(*req.Email)
		if email != nil {
			if _, err := mail.ParseAddress(*email); err != nil {
				return ClientResponse{}, apperror.Validation(apperror.FieldViolation{Field: "email", Message: "invalid email format"})
			}
			exists, err := s.clientRepo.ExistsByEmail(ctx, client.BoutiqueID, *email, &client.ID)
			if err != nil {
				return ClientResponse{}, apperror.Internal(err)
			}
			if exists {
				return ClientResponse{}, apperror.Conflict("a client with this email already exists in this boutique")
			}
		}
		client.Email = email
	}
	if req.Telephone != nil {
		client.Telephone = *req.Telephone
	}
	if req.Adresse != nil {
		client.Adresse = *req.Adresse
	}

	if err := s.clientRepo.Update(ctx, client); err != nil {
		if isDuplicateKey(err) {
			return ClientResponse{}, apperror.Conflict("a client with this email already exists in this boutique")
		}
		return ClientResponse{}, apperror.Internal(err)
	}

	return toClientResponse(*client), nil
}

func (s *clientService) DeleteClient(ctx context.Context, scope auth.Scope, id string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return apperror.ValidationMsg("invalid client ID")
	}

	client, err := s.clientRepo.FindByID(ctx, scope.BoutiqueID, uid)
	if err != nil {
		return notFoundOr(err, "client not found")
	}

	nbVentes, err := s.clientRepo.CountVentes(ctx, client.ID)
	if err != nil {
		return apperror.Internal(err)
	}
	if nbVentes > 0 {
		return apperror.Conflict("cannot delete client: ventes are still attached to it")
	}

	if err := s.clientRepo.Delete(ctx, client.ID); err != nil {
		return apperror.Internal(err)
	}
	return nil
}

func (s *clientService) ListClients(ctx context.Context, scope auth.Scope, search string, page, limit int) ([]ClientResponse, int64, error) {
	clients, total, err := s.clientRepo.List(ctx, scope.BoutiqueID, search, page, limit)
	if err != nil {
		return nil, 0, apperror.Internal(err)
	}

	res := make([]ClientResponse, 0, len(clients))
	for _, c := range clients {
		res = append(res, toClientResponse(c))
	}
	return res, total, nil
}

func toClientResponse(c model.Client) ClientResponse {
	return ClientResponse{
		ID:         c.ID,
		Nom:        c.Nom,
		Email:      c.Email,
		Telephone:  c.Telephone,
		Adresse:    c.Adresse,
		BoutiqueID: c.BoutiqueID,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}
}
