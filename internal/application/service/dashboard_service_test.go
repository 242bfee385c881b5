package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tuanvm/stockwise-api/internal/domain/enum"
	infraRepo "github.com/tuanvm/stockwise-api/internal/infrastructure/repository"
)

func TestDashboardSummary(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	purchaseSvc := NewPurchaseService(
		infraRepo.NewPurchaseRepository(db),
		infraRepo.NewProductRepository(db),
		infraRepo.NewSupplierRepository(db),
	)
	invoiceSvc := NewInvoiceService(
		infraRepo.NewInvoiceRepository(db),
		infraRepo.NewProductRepository(db),
		infraRepo.NewCustomerRepository(db),
	)
	dashboardSvc := NewDashboardService(infraRepo.NewAnalyticsRepository(db))

	supplier := seedSupplier(t, db, "Acme Wholesale")
	customer := seedCustomer(t, db, "Corner Shop")
	rice := seedProduct(t, db, "Rice 5kg", supplier, 50, 1000)
	oil := seedProduct(t, db, "Olive Oil 1L", supplier, 50, 7500)
	user := seedUser(t, db, "staff@example.com", enum.RoleEmployee)

	// One approved purchase: 50.00 spend.
	purchase, err := purchaseSvc.CreatePurchase(ctx, &CreatePurchaseInput{
		Date:       time.Now(),
		SupplierID: &supplier.ID,
		CreatedBy:  user.ID,
		Items:      []PurchaseItemInput{{ProductID: &rice.ID, Quantity: 5, Price: 10}},
	})
	require.NoError(t, err)
	_, err = purchaseSvc.ApprovePurchase(ctx, purchase.ID)
	require.NoError(t, err)

	// Two approved invoices: 20.00 cash and 5.00 transfer.
	approve := func(items []InvoiceItemInput, method string) {
		inv, err := invoiceSvc.CreateInvoice(ctx, &CreateInvoiceInput{
			Date:          time.Now(),
			CustomerID:    &customer.ID,
			PaymentMethod: method,
			CreatedBy:     user.ID,
			Items:         items,
		})
		require.NoError(t, err)
		_, err = invoiceSvc.ApproveInvoice(ctx, inv.ID)
		require.NoError(t, err)
	}
	approve([]InvoiceItemInput{{ProductID: rice.ID, Quantity: 2, Price: 10}}, "cash")
	approve([]InvoiceItemInput{{ProductID: oil.ID, Quantity: 1, Price: 5}}, "transfer")

	// One invoice left pending; it must not count toward revenue.
	_, err = invoiceSvc.CreateInvoice(ctx, &CreateInvoiceInput{
		Date:          time.Now(),
		PaymentMethod: "cash",
		CreatedBy:     user.ID,
		Items:         []InvoiceItemInput{{ProductID: rice.ID, Quantity: 1, Price: 10}},
	})
	require.NoError(t, err)

	summary, err := dashboardSvc.GetSummary(ctx, 30)
	require.NoError(t, err)

	assert.Equal(t, int64(2), summary.Counts.Products)
	assert.Equal(t, int64(1), summary.Counts.Suppliers)
	assert.Equal(t, int64(1), summary.Counts.Customers)
	assert.Equal(t, int64(0), summary.Counts.PendingPurchases)
	assert.Equal(t, int64(1), summary.Counts.PendingInvoices)

	assert.Equal(t, 25.0, summary.TotalRevenue)
	assert.Equal(t, 50.0, summary.TotalSpend)

	require.Len(t, summary.DailyRevenue, 1, "all orders land on today")
	assert.Equal(t, 25.0, summary.DailyRevenue[0].Revenue)
	assert.Equal(t, 50.0, summary.DailyRevenue[0].Spend)

	require.Len(t, summary.TopProducts, 2)
	assert.Equal(t, "Rice 5kg", summary.TopProducts[0].ProductName)
	assert.Equal(t, 20.0, summary.TopProducts[0].Revenue)
	assert.Equal(t, rice.ID, summary.TopProducts[0].ProductID)

	require.Len(t, summary.PaymentMethods, 2)
	assert.Equal(t, "cash", summary.PaymentMethods[0].PaymentMethod)
	assert.Equal(t, 20.0, summary.PaymentMethods[0].Total)
	assert.Equal(t, 1, summary.PaymentMethods[0].InvoiceCount)
}

func TestDashboardSummary_EmptyDatabase(t *testing.T) {
	db := newTestDB(t)
	svc := NewDashboardService(infraRepo.NewAnalyticsRepository(db))

	summary, err := svc.GetSummary(context.Background(), 0)
	require.NoError(t, err)

	assert.Equal(t, int64(0), summary.Counts.Products)
	assert.Equal(t, 0.0, summary.TotalRevenue)
	assert.Equal(t, 0.0, summary.TotalSpend)
	assert.Empty(t, summary.DailyRevenue)
	assert.Empty(t, summary.TopProducts)
	assert.Empty(t, summary.PaymentMethods)
}
