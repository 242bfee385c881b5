package service

import (
	"context"

	"github.com/tuanvm/stockwise-api/internal/domain/repository"
)

// DashboardService aggregates headline numbers for the dashboard
type DashboardService struct {
	analyticsRepo repository.AnalyticsRepository
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(analyticsRepo repository.AnalyticsRepository) *DashboardService {
	return &DashboardService{analyticsRepo: analyticsRepo}
}

// DashboardSummary holds everything the dashboard page renders in one payload
type DashboardSummary struct {
	Counts         *repository.CountsResult         `json:"counts"`
	TotalRevenue   float64                          `json:"total_revenue"`
	TotalSpend     float64                          `json:"total_spend"`
	DailyRevenue   []repository.DailyRevenueResult  `json:"daily_revenue"`
	TopProducts    []repository.TopProductResult    `json:"top_products"`
	PaymentMethods []repository.PaymentMethodResult `json:"payment_methods"`
}

// GetSummary builds the dashboard payload. Only approved orders count toward
// the financial figures.
func (s *DashboardService) GetSummary(ctx context.Context, days int) (*DashboardSummary, error) {
	if days <= 0 {
		days = 30
	}

	counts, err := s.analyticsRepo.GetCounts(ctx)
	if err != nil {
		return nil, err
	}

	totalRevenue, err := s.analyticsRepo.GetTotalRevenue(ctx)
	if err != nil {
		return nil, err
	}

	totalSpend, err := s.analyticsRepo.GetTotalSpend(ctx)
	if err != nil {
		return nil, err
	}

	dailyRevenue, err := s.analyticsRepo.GetDailyRevenue(ctx, days)
	if err != nil {
		return nil, err
	}

	topProducts, err := s.analyticsRepo.GetTopProducts(ctx, 10)
	if err != nil {
		return nil, err
	}

	paymentMethods, err := s.analyticsRepo.GetRevenueByPaymentMethod(ctx)
	if err != nil {
		return nil, err
	}

	return &DashboardSummary{
		Counts:         counts,
		TotalRevenue:   totalRevenue,
		TotalSpend:     totalSpend,
		DailyRevenue:   dailyRevenue,
		TopProducts:    topProducts,
		PaymentMethods: paymentMethods,
	}, nil
}
