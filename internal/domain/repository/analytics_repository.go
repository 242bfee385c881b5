package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// DailyRevenueResult represents approved trade totals for a single day
type DailyRevenueResult struct {
	Date    time.Time
	Revenue float64
	Spend   float64
}

// TopProductResult represents a product's sales performance
type TopProductResult struct {
	ProductID    uuid.UUID
	ProductName  string
	QuantitySold int
	Revenue      float64
}

// PaymentMethodResult represents revenue aggregated by payment method
type PaymentMethodResult struct {
	PaymentMethod string
	Total         float64
	InvoiceCount  int
}

// CountsResult represents the headline entity counts on the dashboard
type CountsResult struct {
	Products         int64
	Suppliers        int64
	Customers        int64
	PendingPurchases int64
	PendingInvoices  int64
}

// AnalyticsRepository defines interface for dashboard aggregation queries.
// All aggregates only count approved orders; pending drafts have no
// financial effect yet.
type AnalyticsRepository interface {
	// GetCounts returns the headline entity counts
	GetCounts(ctx context.Context) (*CountsResult, error)

	// GetDailyRevenue returns per-day revenue and spend for the last N days
	GetDailyRevenue(ctx context.Context, days int) ([]DailyRevenueResult, error)

	// GetTopProducts returns top selling products by revenue
	GetTopProducts(ctx context.Context, limit int) ([]TopProductResult, error)

	// GetRevenueByPaymentMethod returns revenue grouped by payment method
	GetRevenueByPaymentMethod(ctx context.Context) ([]PaymentMethodResult, error)

	// GetTotalRevenue returns total revenue from approved invoices
	GetTotalRevenue(ctx context.Context) (float64, error)

	// GetTotalSpend returns total spend from approved purchases
	GetTotalSpend(ctx context.Context) (float64, error)
}
