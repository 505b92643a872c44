package service

import (
	"context"
	"time"

	"github.com/Drasasse/gestion-commerce-sub002/internal/auth"
	"github.com/Drasasse/gestion-commerce-sub002/internal/model"
	"github.com/Drasasse/gestion-commerce-sub002/internal/repository"
	"github.com/Drasasse/gestion-commerce-sub002/pkg/apperror"
)

const dateLayout = "2006-01-02"

type StatsService interface {
	Dashboard(ctx context.Context, scope auth.Scope, startDate, endDate string) (model.DashboardStats, error)
}

type statsService struct {
	venteRepo   repository.VenteRepository
	produitRepo repository.ProduitRepository
}

func NewStatsService(venteRepo repository.VenteRepository, produitRepo repository.ProduitRepository) StatsService {
	return &statsService{venteRepo: venteRepo, produitRepo: produitRepo}
}

// Dashboard aggregates sales figures for the scope's tenant over a date
// range. The range defaults to the last 30 days and end dates are inclusive
// of the whole day.
func (s *statsService) Dashboard(ctx context.Context, scope auth.Scope, startDate, endDate string) (model.DashboardStats, error) {
	now := time.Now()
	start := now.AddDate(0, 0, -30)
	end := now

	if startDate != "" {
		parsed, err := time.Parse(dateLayout, startDate)
		if err != nil {
			return model.DashboardStats{}, apperror.Validation(apperror.FieldViolation{Field: "startDate", Message: "expected YYYY-MM-DD"})
		}
		start = parsed
	}
	if endDate != "" {
		parsed, err := time.Parse(dateLayout, endDate)
		if err != nil {
			return model.DashboardStats{}, apperror.Validation(apperror.FieldViolation{Field: "endDate", Message: "expected YYYY-MM-DD"})
		}
		end = parsed.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}
	if end.Before(start) {
		return model.DashboardStats{}, apperror.ValidationMsg("endDate must not be before startDate")
	}

	totalVentes, totalEncaisse, totalImpayes, nbVentes, err := s.venteRepo.Totals(ctx, scope.BoutiqueID, start, end)
	if err != nil {
		return model.DashboardStats{}, apperror.Internal(err)
	}

	topProduits, err := s.venteRepo.TopProduits(ctx, scope.BoutiqueID, start, end, 5)
	if err != nil {
		return model.DashboardStats{}, apperror.Internal(err)
	}

	produitsAlerte, err := s.produitRepo.ListLowStock(ctx, scope.BoutiqueID)
	if err != nil {
		return model.DashboardStats{}, apperror.Internal(err)
	}

	return model.DashboardStats{
		StartDate:      start,
		EndDate:        end,
		TotalVentes:    totalVentes,
		TotalEncaisse:  totalEncaisse,
		TotalImpayes:   totalImpayes,
		NbVentes:       nbVentes,
		TopProduits:    topProduits,
		ProduitsAlerte: produitsAlerte,
	}, nil
}
