package repository

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/tuanvm/stockwise-api/internal/domain/entity"
	"github.com/tuanvm/stockwise-api/internal/domain/enum"
	domainRepo "github.com/tuanvm/stockwise-api/internal/domain/repository"
	"gorm.io/gorm"
)

type analyticsRepository struct {
	db *gorm.DB
}

// NewAnalyticsRepository creates a new analytics repository
func NewAnalyticsRepository(db *gorm.DB) domainRepo.AnalyticsRepository {
	return &analyticsRepository{db: db}
}

func (r *analyticsRepository) GetCounts(ctx context.Context) (*domainRepo.CountsResult, error) {
	var counts domainRepo.CountsResult

	type countQuery struct {
		model interface{}
		dest  *int64
		conds []interface{}
	}
	queries := []countQuery{
		{&entity.Product{}, &counts.Products, nil},
		{&entity.Supplier{}, &counts.Suppliers, nil},
		{&entity.Customer{}, &counts.Customers, nil},
		{&entity.Purchase{}, &counts.PendingPurchases, []interface{}{"status = ?", enum.OrderStatusPending}},
		{&entity.Invoice{}, &counts.PendingInvoices, []interface{}{"status = ?", enum.OrderStatusPending}},
	}

	for _, q := range queries {
		query := r.db.WithContext(ctx).Model(q.model)
		if len(q.conds) > 0 {
			query = query.Where(q.conds[0], q.conds[1:]...)
		}
		if err := query.Count(q.dest).Error; err != nil {
			return nil, err
		}
	}

	return &counts, nil
}

func (r *analyticsRepository) GetDailyRevenue(ctx context.Context, days int) ([]domainRepo.DailyRevenueResult, error) {
	since := time.Now().AddDate(0, 0, -days)

	type dailyRow struct {
		Date       time.Time
		GrandTotal int64
	}

	var revenueRows []dailyRow
	err := r.db.WithContext(ctx).
		Table("invoices").
		Select("date, grand_total").
		Where("status = ? AND date >= ? AND deleted_at IS NULL", enum.OrderStatusApproved, since).
		Scan(&revenueRows).Error
	if err != nil {
		return nil, err
	}

	var spendRows []dailyRow
	err = r.db.WithContext(ctx).
		Table("purchases").
		Select("date, grand_total").
		Where("status = ? AND date >= ? AND deleted_at IS NULL", enum.OrderStatusApproved, since).
		Scan(&spendRows).Error
	if err != nil {
		return nil, err
	}

	// Bucket by calendar day. The window is small enough that aggregating
	// here keeps the query portable across drivers.
	merged := make(map[string]*domainRepo.DailyRevenueResult)
	var keys []string
	bucket := func(t time.Time) *domainRepo.DailyRevenueResult {
		key := t.Format("2006-01-02")
		if entry, ok := merged[key]; ok {
			return entry
		}
		day, _ := time.Parse("2006-01-02", key)
		entry := &domainRepo.DailyRevenueResult{Date: day}
		merged[key] = entry
		keys = append(keys, key)
		return entry
	}

	for _, row := range revenueRows {
		bucket(row.Date).Revenue += float64(row.GrandTotal) / 100
	}
	for _, row := range spendRows {
		bucket(row.Date).Spend += float64(row.GrandTotal) / 100
	}

	sort.Strings(keys)
	results := make([]domainRepo.DailyRevenueResult, 0, len(keys))
	for _, key := range keys {
		results = append(results, *merged[key])
	}
	return results, nil
}

func (r *analyticsRepository) GetTopProducts(ctx context.Context, limit int) ([]domainRepo.TopProductResult, error) {
	type topRow struct {
		ProductID    string
		ProductName  string
		QuantitySold int
		Revenue      int64
	}

	var rows []topRow
	err := r.db.WithContext(ctx).
		Table("invoice_items").
		Select("invoice_items.product_id, invoice_items.name as product_name, SUM(invoice_items.quantity) as quantity_sold, SUM(invoice_items.total) as revenue").
		Joins("JOIN invoices ON invoices.id = invoice_items.invoice_id").
		Where("invoices.status = ? AND invoices.deleted_at IS NULL", enum.OrderStatusApproved).
		Group("invoice_items.product_id, invoice_items.name").
		Order("revenue DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	results := make([]domainRepo.TopProductResult, 0, len(rows))
	for _, row := range rows {
		result := domainRepo.TopProductResult{
			ProductName:  row.ProductName,
			QuantitySold: row.QuantitySold,
			Revenue:      float64(row.Revenue) / 100,
		}
		if id, err := uuid.Parse(row.ProductID); err == nil {
			result.ProductID = id
		}
		results = append(results, result)
	}
	return results, nil
}

func (r *analyticsRepository) GetRevenueByPaymentMethod(ctx context.Context) ([]domainRepo.PaymentMethodResult, error) {
	type methodRow struct {
		PaymentMethod string
		Total         int64
		InvoiceCount  int
	}

	var rows []methodRow
	err := r.db.WithContext(ctx).
		Table("invoices").
		Select("payment_method, COALESCE(SUM(grand_total), 0) as total, COUNT(*) as invoice_count").
		Where("status = ? AND deleted_at IS NULL", enum.OrderStatusApproved).
		Group("payment_method").
		Order("total DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	results := make([]domainRepo.PaymentMethodResult, 0, len(rows))
	for _, row := range rows {
		results = append(results, domainRepo.PaymentMethodResult{
			PaymentMethod: row.PaymentMethod,
			Total:         float64(row.Total) / 100,
			InvoiceCount:  row.InvoiceCount,
		})
	}
	return results, nil
}

func (r *analyticsRepository) GetTotalRevenue(ctx context.Context) (float64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Table("invoices").
		Where("status = ? AND deleted_at IS NULL", enum.OrderStatusApproved).
		Select("COALESCE(SUM(grand_total), 0)").
		Scan(&total).Error
	return float64(total) / 100, err
}

func (r *analyticsRepository) GetTotalSpend(ctx context.Context) (float64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Table("purchases").
		Where("status = ? AND deleted_at IS NULL", enum.OrderStatusApproved).
		Select("COALESCE(SUM(grand_total), 0)").
		Scan(&total).Error
	return float64(total) / 100, err
}
