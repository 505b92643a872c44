package service

import (
	"context"
	"strconv"
	"time"

	"github.com/Drasasse/gestion-commerce-sub002/internal/auth"
	"github.com/Drasasse/gestion-commerce-sub002/internal/model"
	"github.com/Drasasse/gestion-commerce-sub002/internal/repository"
	"github.com/Drasasse/gestion-commerce-sub002/pkg/apperror"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StockNotifier receives produits whose stock fell to or below their alert
// threshold after a sale. The websocket hub implements it.
type StockNotifier interface {
	NotifyLowStock(produit model.Produit)
}

// --- DTOs ---

type VenteItemRequest struct {
	ProduitID string `json:"produit_id"`
	Quantite  int    `json:"quantite"`
}

type CreateVenteRequest struct {
	ClientID     string             `json:"client_id"`
	Items        []VenteItemRequest `json:"items"`
	MontantPaye  string             `json:"montant_paye"`
	ModePaiement string             `json:"mode_paiement"`
}

type AddPaiementRequest struct {
	Montant string `json:"montant"`
	Mode    string `json:"mode"`
}

type VenteItemResponse struct {
	ID           uuid.UUID `json:"id"`
	ProduitID    uuid.UUID `json:"produit_id"`
	ProduitNom   string    `json:"produit_nom,omitempty"`
	Quantite     int       `json:"quantite"`
	PrixUnitaire string    `json:"prix_unitaire"`
	MontantLigne string    `json:"montant_ligne"`
}

type PaiementResponse struct {
	ID        uuid.UUID `json:"id"`
	Montant   string    `json:"montant"`
	Mode      string    `json:"mode"`
	CreatedAt time.Time `json:"created_at"`
}

type VenteResponse struct {
	ID             uuid.UUID           `json:"id"`
	BoutiqueID     uuid.UUID           `json:"boutique_id"`
	ClientID       *uuid.UUID          `json:"client_id"`
	ClientNom      string              `json:"client_nom,omitempty"`
	UserID         uuid.UUID           `json:"user_id"`
	MontantTotal   string              `json:"montant_total"`
	MontantPaye    string              `json:"montant_paye"`
	MontantRestant string              `json:"montant_restant"`
	Statut         string              `json:"statut"`
	Items          []VenteItemResponse `json:"items"`
	Paiements      []PaiementResponse  `json:"paiements,omitempty"`
	CreatedAt      time.Time           `json:"created_at"`
}

// --- Interface ---

type VenteService interface {
	CreateVente(ctx context.Context, scope auth.Scope, req CreateVenteRequest) (VenteResponse, error)
	GetVente(ctx context.Context, scope auth.Scope, id string) (VenteResponse, error)
	ListVentes(ctx context.Context, scope auth.Scope, statut string, page, limit int) ([]VenteResponse, int64, error)
	AddPaiement(ctx context.Context, scope auth.Scope, id string, req AddPaiementRequest) (VenteResponse, error)
	DeleteVente(ctx context.Context, scope auth.Scope, id string) error
}

type venteService struct {
	venteRepo   repository.VenteRepository
	produitRepo repository.ProduitRepository
	clientRepo  repository.ClientRepository
	txManager   repository.TransactionManager
	notifier    StockNotifier
}

func NewVenteService(
	venteRepo repository.VenteRepository,
	produitRepo repository.ProduitRepository,
	clientRepo repository.ClientRepository,
	txManager repository.TransactionManager,
	notifier StockNotifier,
) VenteService {
	return &venteService{
		venteRepo:   venteRepo,
		produitRepo: produitRepo,
		clientRepo:  clientRepo,
		txManager:   txManager,
		notifier:    notifier,
	}
}

var validPaiementModes = map[string]bool{
	model.PaiementModeEspeces:     true,
	model.PaiementModeCarte:       true,
	model.PaiementModeMobileMoney: true,
	model.PaiementModeVirement:    true,
}

func venteStatut(total, paye decimal.Decimal) string {
	switch {
	case paye.GreaterThanOrEqual(total):
		return model.VenteStatutPayee
	case paye.IsPositive():
		return model.VenteStatutPartielle
	default:
		return model.VenteStatutImpayee
	}
}

// --- Implementation ---

func (s *venteService) CreateVente(ctx context.Context, scope auth.Scope, req CreateVenteRequest) (VenteResponse, error) {
	boutiqueID, err := scope.Tenant()
	if err != nil {
		return VenteResponse{}, err
	}

	var violations []apperror.FieldViolation
	if len(req.Items) == 0 {
		violations = append(violations, apperror.FieldViolation{Field: "items", Message: "at least one item is required"})
	}
	for i, item := range req.Items {
		field := "items[" + strconv.Itoa(i) + "]"
		if item.Quantite <= 0 {
			violations = append(violations, apperror.FieldViolation{Field: field + ".quantite", Message: "quantite must be positive"})
		}
		if _, err := uuid.Parse(item.ProduitID); err != nil {
			violations = append(violations, apperror.FieldViolation{Field: field + ".produit_id", Message: "invalid produit_id"})
		}
	}

	montantPaye := decimal.Zero
	if req.MontantPaye != "" {
		if montantPaye, err = decimal.NewFromString(req.MontantPaye); err != nil {
			violations = append(violations, apperror.FieldViolation{Field: "montant_paye", Message: "montant_paye must be a decimal number"})
		} else if montantPaye.IsNegative() {
			violations = append(violations, apperror.FieldViolation{Field: "montant_paye", Message: "montant_paye cannot be negative"})
		}
	}

	mode := req.ModePaiement
	if mode == "" {
		mode = model.PaiementModeEspeces
	}
	if !validPaiementModes[mode] {
		violations = append(violations, apperror.FieldViolation{Field: "mode_paiement", Message: "mode_paiement must be one of: ESPECES, CARTE, MOBILE_MONEY, VIREMENT"})
	}
	if len(violations) > 0 {
		return VenteResponse{}, apperror.Validation(violations...)
	}

	var clientID *uuid.UUID
	if req.ClientID != "" {
		cid, err := uuid.Parse(req.ClientID)
		if err != nil {
			return VenteResponse{}, apperror.Validation(apperror.FieldViolation{Field: "client_id", Message: "invalid client_id"})
		}
		if _, err := s.clientRepo.FindByID(ctx, &boutiqueID, cid); err != nil {
			return VenteResponse{}, notFoundOr(err, "client not found in this boutique")
		}
		clientID = &cid
	}

	var created *model.Vente
	var lowStock []model.Produit

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		total := decimal.Zero
		items := make([]model.VenteItem, 0, len(req.Items))

		for _, item := range req.Items {
			pid, _ := uuid.Parse(item.ProduitID)
			produit, err := s.produitRepo.FindByID(txCtx, &boutiqueID, pid)
			if err != nil {
				return notFoundOr(err, "product not found in this boutique")
			}
			if produit.Stock < item.Quantite {
				return apperror.ValidationMsg("insufficient stock for product " + produit.Nom)
			}

			produit.Stock -= item.Quantite
			if err := s.produitRepo.Update(txCtx, produit); err != nil {
				return apperror.Internal(err)
			}
			if produit.Stock <= produit.SeuilAlerte {
				lowStock = append(lowStock, *produit)
			}

			montantLigne := produit.PrixVente.Mul(decimal.NewFromInt(int64(item.Quantite)))
			total = total.Add(montantLigne)
			items = append(items, model.VenteItem{
				ProduitID:    produit.ID,
				Quantite:     item.Quantite,
				PrixUnitaire: produit.PrixVente,
				MontantLigne: montantLigne,
			})
		}

		if montantPaye.GreaterThan(total) {
			return apperror.ValidationMsg("montant_paye cannot exceed the sale total")
		}

		vente := &model.Vente{
			BoutiqueID:     boutiqueID,
			ClientID:       clientID,
			UserID:         scope.Session.UserID,
			MontantTotal:   total,
			MontantPaye:    montantPaye,
			MontantRestant: total.Sub(montantPaye),
			Statut:         venteStatut(total, montantPaye),
			Items:          items,
		}
		if err := s.venteRepo.Create(txCtx, vente); err != nil {
			return apperror.Internal(err)
		}

		if montantPaye.IsPositive() {
			paiement := &model.Paiement{VenteID: vente.ID, Montant: montantPaye, Mode: mode}
			if err := s.venteRepo.CreatePaiement(txCtx, paiement); err != nil {
				return apperror.Internal(err)
			}
			vente.Paiements = append(vente.Paiements, *paiement)
		}

		created = vente
		return nil
	})
	if err != nil {
		return VenteResponse{}, err
	}

	// Alerts only after the transaction committed
	if s.notifier != nil {
		for _, p := range lowStock {
			s.notifier.NotifyLowStock(p)
		}
	}

	return toVenteResponse(*created), nil
}

func (s *venteService) GetVente(ctx context.Context, scope auth.Scope, id string) (VenteResponse, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return VenteResponse{}, apperror.ValidationMsg("invalid sale ID")
	}

	vente, err := s.venteRepo.FindByID(ctx, scope.BoutiqueID, uid)
	if err != nil {
		return VenteResponse{}, notFoundOr(err, "sale not found")
	}

	return toVenteResponse(*vente), nil
}

func (s *venteService) ListVentes(ctx context.Context, scope auth.Scope, statut string, page, limit int) ([]VenteResponse, int64, error) {
	if statut != "" && statut != model.VenteStatutPayee && statut != model.VenteStatutPartielle && statut != model.VenteStatutImpayee {
		return nil, 0, apperror.ValidationMsg("statut must be one of: PAYEE, PARTIELLE, IMPAYEE")
	}

	ventes, total, err := s.venteRepo.List(ctx, scope.BoutiqueID, repository.VenteFilter{Statut: statut, Page: page, Limit: limit})
	if err != nil {
		return nil, 0, apperror.Internal(err)
	}

	res := make([]VenteResponse, 0, len(ventes))
	for _, v := range ventes {
		res = append(res, toVenteResponse(v))
	}
	return res, total, nil
}

func (s *venteService) AddPaiement(ctx context.Context, scope auth.Scope, id string, req AddPaiementRequest) (VenteResponse, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return VenteResponse{}, apperror.ValidationMsg("invalid sale ID")
	}

	montant, err := decimal.NewFromString(req.Montant)
	if err != nil || !montant.IsPositive() {
		return VenteResponse{}, apperror.Validation(apperror.FieldViolation{Field: "montant", Message: "montant must be a positive decimal number"})
	}
	mode := req.Mode
	if mode == "" {
		mode = model.PaiementModeEspeces
	}
	if !validPaiementModes[mode] {
		return VenteResponse{}, apperror.Validation(apperror.FieldViolation{Field: "mode", Message: "mode must be one of: ESPECES, CARTE, MOBILE_MONEY, VIREMENT"})
	}

	var updated *model.Vente
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		vente, err := s.venteRepo.FindByID(txCtx, scope.BoutiqueID, uid)
		if err != nil {
			return notFoundOr(err, "sale not found")
		}

		if montant.GreaterThan(vente.MontantRestant) {
			return apperror.ValidationMsg("montant exceeds the remaining balance")
		}

		vente.MontantPaye = vente.MontantPaye.Add(montant)
		vente.MontantRestant = vente.MontantTotal.Sub(vente.MontantPaye)
		vente.Statut = venteStatut(vente.MontantTotal, vente.MontantPaye)
		if err := s.venteRepo.Update(txCtx, vente); err != nil {
			return apperror.Internal(err)
		}

		paiement := &model.Paiement{VenteID: vente.ID, Montant: montant, Mode: mode}
		if err := s.venteRepo.CreatePaiement(txCtx, paiement); err != nil {
			return apperror.Internal(err)
		}
		vente.Paiements = append(vente.Paiements, *paiement)

		updated = vente
		return nil
	})
	if err != nil {
		return VenteResponse{}, err
	}

	return toVenteResponse(*updated), nil
}

// DeleteVente cancels a sale and restores the sold quantities to stock.
func (s *venteService) DeleteVente(ctx context.Context, scope auth.Scope, id string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return apperror.ValidationMsg("invalid sale ID")
	}

	return s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		vente, err := s.venteRepo.FindByID(txCtx, scope.BoutiqueID, uid)
		if err != nil {
			return notFoundOr(err, "sale not found")
		}

		for _, item := range vente.Items {
			produit, err := s.produitRepo.FindByID(txCtx, &vente.BoutiqueID, item.ProduitID)
			if err != nil {
				return apperror.Internal(err)
			}
			produit.Stock += item.Quantite
			if err := s.produitRepo.Update(txCtx, produit); err != nil {
				return apperror.Internal(err)
			}
		}

		if err := s.venteRepo.Delete(txCtx, vente.ID); err != nil {
			return apperror.Internal(err)
		}
		return nil
	})
}

func toVenteResponse(v model.Vente) VenteResponse {
	items := make([]VenteItemResponse, 0, len(v.Items))
	for _, item := range v.Items {
		res := VenteItemResponse{
			ID:           item.ID,
			ProduitID:    item.ProduitID,
			Quantite:     item.Quantite,
			PrixUnitaire: item.PrixUnitaire.StringFixed(2),
			MontantLigne: item.MontantLigne.StringFixed(2),
		}
		if item.Produit != nil {
			res.ProduitNom = item.Produit.Nom
		}
		items = append(items, res)
	}

	paiements := make([]PaiementResponse, 0, len(v.Paiements))
	for _, p := range v.Paiements {
		paiements = append(paiements, PaiementResponse{
			ID:        p.ID,
			Montant:   p.Montant.StringFixed(2),
			Mode:      p.Mode,
			CreatedAt: p.CreatedAt,
		})
	}

	res := VenteResponse{
		ID:             v.ID,
		BoutiqueID:     v.BoutiqueID,
		ClientID:       v.ClientID,
		UserID:         v.UserID,
		MontantTotal:   v.MontantTotal.StringFixed(2),
		MontantPaye:    v.MontantPaye.StringFixed(2),
		MontantRestant: v.MontantRestant.StringFixed(2),
		Statut:         v.Statut,
		Items:          items,
		Paiements:      paiements,
		CreatedAt:      v.CreatedAt,
	}
	if v.Client != nil {
		res.ClientNom = v.Client.Nom
	}
	return res
}
