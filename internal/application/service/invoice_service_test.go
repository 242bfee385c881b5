package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tuanvm/stockwise-api/internal/domain/entity"
	"github.com/tuanvm/stockwise-api/internal/domain/enum"
	domainRepo "github.com/tuanvm/stockwise-api/internal/domain/repository"
	infraRepo "github.com/tuanvm/stockwise-api/internal/infrastructure/repository"
	"github.com/tuanvm/stockwise-api/pkg/apperror"
	"gorm.io/gorm"
)

func newInvoiceService(t *testing.T) (*InvoiceService, *gorm.DB) {
	db := newTestDB(t)
	return NewInvoiceService(
		infraRepo.NewInvoiceRepository(db),
		infraRepo.NewProductRepository(db),
		infraRepo.NewCustomerRepository(db),
	), db
}

func seedCustomer(t *testing.T, db *gorm.DB, name string) *entity.Customer {
	t.Helper()
	customer := &entity.Customer{Name: name}
	require.NoError(t, db.Create(customer).Error)
	return customer
}

func TestApproveInvoice_DecrementsStock(t *testing.T) {
	svc, db := newInvoiceService(t)
	ctx := context.Background()

	product := seedProduct(t, db, "Rice 5kg", nil, 10, 1000)
	customer := seedCustomer(t, db, "Corner Shop")
	user := seedUser(t, db, "staff@example.com", enum.RoleEmployee)

	invoice, err := svc.CreateInvoice(ctx, &CreateInvoiceInput{
		Date:          time.Now(),
		CustomerID:    &customer.ID,
		PaymentMethod: "cash",
		CreatedBy:     user.ID,
		Items: []InvoiceItemInput{
			{ProductID: product.ID, Quantity: 3, Price: 15},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, enum.OrderStatusPending, invoice.Status)
	assert.Equal(t, customer.Name, invoice.CustomerName)
	assert.Equal(t, int64(4500), invoice.GrandTotal)

	approved, err := svc.ApproveInvoice(ctx, invoice.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.OrderStatusApproved, approved.Status)

	var stored entity.Product
	require.NoError(t, db.First(&stored, "id = ?", product.ID).Error)
	assert.Equal(t, 7, stored.Quantity)
}

func TestApproveInvoice_InsufficientStockRollsBackEverything(t *testing.T) {
	svc, db := newInvoiceService(t)
	ctx := context.Background()

	plenty := seedProduct(t, db, "Rice 5kg", nil, 100, 1000)
	scarce := seedProduct(t, db, "Saffron 10g", nil, 5, 9000)
	user := seedUser(t, db, "staff@example.com", enum.RoleEmployee)

	invoice, err := svc.CreateInvoice(ctx, &CreateInvoiceInput{
		Date:          time.Now(),
		PaymentMethod: "cash",
		CreatedBy:     user.ID,
		Items: []InvoiceItemInput{
			{ProductID: plenty.ID, Quantity: 10, Price: 15},
			{ProductID: scarce.ID, Quantity: 5, Price: 100},
		},
	})
	require.NoError(t, err)

	// Stock drains between drafting and approval.
	require.NoError(t, db.Model(&entity.Product{}).
		Where("id = ?", scarce.ID).
		Update("quantity", 2).Error)

	_, err = svc.ApproveInvoice(ctx, invoice.ID)
	require.Error(t, err)
	appErr := apperror.GetAppError(err)
	assert.Equal(t, 409, appErr.Code)
	assert.Contains(t, appErr.Message, "Saffron 10g")

	// The successful line was rolled back too.
	var storedPlenty, storedScarce entity.Product
	require.NoError(t, db.First(&storedPlenty, "id = ?", plenty.ID).Error)
	require.NoError(t, db.First(&storedScarce, "id = ?", scarce.ID).Error)
	assert.Equal(t, 100, storedPlenty.Quantity)
	assert.Equal(t, 2, storedScarce.Quantity)

	// The invoice is still pending and can be approved once stock returns.
	var storedInvoice entity.Invoice
	require.NoError(t, db.First(&storedInvoice, "id = ?", invoice.ID).Error)
	assert.Equal(t, enum.OrderStatusPending, storedInvoice.Status)
}

func TestCreateInvoice_RefusesOverselling(t *testing.T) {
	svc, db := newInvoiceService(t)
	ctx := context.Background()

	product := seedProduct(t, db, "Rice 5kg", nil, 2, 1000)
	user := seedUser(t, db, "staff@example.com", enum.RoleEmployee)

	_, err := svc.CreateInvoice(ctx, &CreateInvoiceInput{
		Date:          time.Now(),
		PaymentMethod: "cash",
		CreatedBy:     user.ID,
		Items: []InvoiceItemInput{
			{ProductID: product.ID, Quantity: 3, Price: 15},
		},
	})
	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetAppError(err).Code)
}

func TestApproveInvoice_AlreadyApprovedRefused(t *testing.T) {
	svc, db := newInvoiceService(t)
	ctx := context.Background()

	product := seedProduct(t, db, "Rice 5kg", nil, 10, 1000)
	user := seedUser(t, db, "staff@example.com", enum.RoleEmployee)

	invoice, err := svc.CreateInvoice(ctx, &CreateInvoiceInput{
		Date:          time.Now(),
		PaymentMethod: "cash",
		CreatedBy:     user.ID,
		Items: []InvoiceItemInput{
			{ProductID: product.ID, Quantity: 3, Price: 15},
		},
	})
	require.NoError(t, err)

	_, err = svc.ApproveInvoice(ctx, invoice.ID)
	require.NoError(t, err)

	_, err = svc.ApproveInvoice(ctx, invoice.ID)
	require.Error(t, err)
	assert.Equal(t, 409, apperror.GetAppError(err).Code)

	// Decremented exactly once.
	var stored entity.Product
	require.NoError(t, db.First(&stored, "id = ?", product.ID).Error)
	assert.Equal(t, 7, stored.Quantity)
}

// racedInvoiceRepo simulates an approval that loses the guarded status flip
// to a concurrent winner after the service's pending pre-check passed.
type racedInvoiceRepo struct {
	domainRepo.InvoiceRepository
	invoice *entity.Invoice
}

func (r *racedInvoiceRepo) GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	return r.invoice, nil
}

func (r *racedInvoiceRepo) Approve(ctx context.Context, invoice *entity.Invoice) ([]uuid.UUID, error) {
	return nil, domainRepo.ErrOrderNotPending
}

func TestApproveInvoice_LostStatusFlipIsConflict(t *testing.T) {
	svc, db := newInvoiceService(t)
	ctx := context.Background()

	product := seedProduct(t, db, "Rice 5kg", nil, 10, 1000)
	user := seedUser(t, db, "staff@example.com", enum.RoleEmployee)

	invoice, err := svc.CreateInvoice(ctx, &CreateInvoiceInput{
		Date:          time.Now(),
		PaymentMethod: "cash",
		CreatedBy:     user.ID,
		Items: []InvoiceItemInput{
			{ProductID: product.ID, Quantity: 3, Price: 15},
		},
	})
	require.NoError(t, err)

	repo := infraRepo.NewInvoiceRepository(db)
	stale, err := repo.GetWithItems(ctx, invoice.ID)
	require.NoError(t, err)

	_, err = svc.ApproveInvoice(ctx, invoice.ID)
	require.NoError(t, err)

	// The loser re-applies its decrements inside the transaction, then fails
	// the guarded flip; the whole transaction must roll back.
	_, err = repo.Approve(ctx, stale)
	assert.ErrorIs(t, err, domainRepo.ErrOrderNotPending)

	var stored entity.Product
	require.NoError(t, db.First(&stored, "id = ?", product.ID).Error)
	assert.Equal(t, 7, stored.Quantity, "stock applied exactly once")

	// The service reports the lost race as the same conflict the pre-check
	// would have raised.
	racedSvc := NewInvoiceService(&racedInvoiceRepo{invoice: stale}, infraRepo.NewProductRepository(db), nil)
	_, err = racedSvc.ApproveInvoice(ctx, stale.ID)
	require.Error(t, err)
	assert.Equal(t, 409, apperror.GetAppError(err).Code)
}

func TestRejectInvoice_PendingOnly(t *testing.T) {
	svc, db := newInvoiceService(t)
	ctx := context.Background()

	product := seedProduct(t, db, "Rice 5kg", nil, 10, 1000)
	user := seedUser(t, db, "staff@example.com", enum.RoleEmployee)

	invoice, err := svc.CreateInvoice(ctx, &CreateInvoiceInput{
		Date:          time.Now(),
		PaymentMethod: "transfer",
		CreatedBy:     user.ID,
		Items: []InvoiceItemInput{
			{ProductID: product.ID, Quantity: 3, Price: 15},
		},
	})
	require.NoError(t, err)

	require.NoError(t, svc.RejectInvoice(ctx, invoice.ID))

	_, err = svc.GetInvoice(ctx, invoice.ID)
	require.Error(t, err)
	assert.Equal(t, 404, apperror.GetAppError(err).Code)

	var stored entity.Product
	require.NoError(t, db.First(&stored, "id = ?", product.ID).Error)
	assert.Equal(t, 10, stored.Quantity)
}
