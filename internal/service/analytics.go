package service

import (
	"context"

	"github.com/akashad48/DnaikEquipRent-sub000/internal/domain"
	"github.com/akashad48/DnaikEquipRent-sub000/internal/repository"
)

type analyticsService struct {
	analyticsRepo repository.AnalyticsRepository
}

func NewAnalyticsService(analyticsRepo repository.AnalyticsRepository) AnalyticsService {
	return &analyticsService{analyticsRepo: analyticsRepo}
}

func (s *analyticsService) GetDashboardSummary(ctx context.Context) (*domain.DashboardSummary, error) {
	return s.analyticsRepo.DashboardSummary(ctx)
}

func (s *analyticsService) GetMonthlyRevenue(ctx context.Context, months int) ([]domain.MonthlyRevenue, error) {
	return s.analyticsRepo.MonthlyRevenue(ctx, months)
}

func (s *analyticsService) GetOutstandingByCustomer(ctx context.Context) ([]domain.CustomerOutstanding, error) {
	return s.analyticsRepo.OutstandingByCustomer(ctx)
}
