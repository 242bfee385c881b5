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

func newPurchaseService(t *testing.T) (*PurchaseService, *gorm.DB) {
	db := newTestDB(t)
	return NewPurchaseService(
		infraRepo.NewPurchaseRepository(db),
		infraRepo.NewProductRepository(db),
		infraRepo.NewSupplierRepository(db),
	), db
}

func seedSupplier(t *testing.T, db *gorm.DB, name string) *entity.Supplier {
	t.Helper()
	supplier := &entity.Supplier{Name: name}
	require.NoError(t, db.Create(supplier).Error)
	return supplier
}

func seedProduct(t *testing.T, db *gorm.DB, name string, supplier *entity.Supplier, quantity int, lastImportPrice int64) *entity.Product {
	t.Helper()
	product := &entity.Product{
		Name:            name,
		Quantity:        quantity,
		LastImportPrice: lastImportPrice,
	}
	if supplier != nil {
		product.SupplierID = &supplier.ID
		product.SupplierName = supplier.Name
	}
	require.NoError(t, db.Create(product).Error)
	return product
}

func seedUser(t *testing.T, db *gorm.DB, email string, role enum.UserRole) *entity.User {
	t.Helper()
	user := &entity.User{
		DisplayName: "Test User",
		Email:       email,
		Password:    "irrelevant",
		Role:        role,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func TestCreatePurchase_DraftHasNoStockEffect(t *testing.T) {
	svc, db := newPurchaseService(t)
	ctx := context.Background()

	supplier := seedSupplier(t, db, "Acme Wholesale")
	product := seedProduct(t, db, "Rice 5kg", supplier, 4, 1000)
	user := seedUser(t, db, "staff@example.com", enum.RoleEmployee)

	purchase, err := svc.CreatePurchase(ctx, &CreatePurchaseInput{
		Date:       time.Now(),
		SupplierID: &supplier.ID,
		CreatedBy:  user.ID,
		Items: []PurchaseItemInput{
			{ProductID: &product.ID, Quantity: 10, Price: 12.50},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, enum.OrderStatusPending, purchase.Status)
	assert.NotEmpty(t, purchase.PurchaseNo)
	assert.Equal(t, supplier.Name, purchase.SupplierName)
	assert.Equal(t, int64(12500), purchase.GrandTotal)

	var stored entity.Product
	require.NoError(t, db.First(&stored, "id = ?", product.ID).Error)
	assert.Equal(t, 4, stored.Quantity, "drafting must not move stock")
	assert.Equal(t, int64(1000), stored.LastImportPrice)
}

func TestApprovePurchase_IncrementsStockAndOverwritesImportPrice(t *testing.T) {
	svc, db := newPurchaseService(t)
	ctx := context.Background()

	supplier := seedSupplier(t, db, "Acme Wholesale")
	product := seedProduct(t, db, "Rice 5kg", supplier, 4, 1000)
	user := seedUser(t, db, "staff@example.com", enum.RoleEmployee)

	purchase, err := svc.CreatePurchase(ctx, &CreatePurchaseInput{
		Date:       time.Now(),
		SupplierID: &supplier.ID,
		CreatedBy:  user.ID,
		Items: []PurchaseItemInput{
			{ProductID: &product.ID, Quantity: 10, Price: 12.50},
		},
	})
	require.NoError(t, err)

	approved, err := svc.ApprovePurchase(ctx, purchase.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.OrderStatusApproved, approved.Status)

	var stored entity.Product
	require.NoError(t, db.First(&stored, "id = ?", product.ID).Error)
	assert.Equal(t, 14, stored.Quantity)
	assert.Equal(t, int64(1250), stored.LastImportPrice)
}

func TestApprovePurchase_NewProductLineCreatesProduct(t *testing.T) {
	svc, db := newPurchaseService(t)
	ctx := context.Background()

	supplier := seedSupplier(t, db, "Acme Wholesale")
	user := seedUser(t, db, "staff@example.com", enum.RoleEmployee)

	category := &entity.Category{Name: "Grains"}
	require.NoError(t, db.Create(category).Error)

	purchase, err := svc.CreatePurchase(ctx, &CreatePurchaseInput{
		Date:       time.Now(),
		SupplierID: &supplier.ID,
		CreatedBy:  user.ID,
		Items: []PurchaseItemInput{
			{Name: "Quinoa 1kg", CategoryID: &category.ID, UnitName: "bag", Quantity: 6, Price: 8},
		},
	})
	require.NoError(t, err)

	_, err = svc.ApprovePurchase(ctx, purchase.ID)
	require.NoError(t, err)

	var created entity.Product
	require.NoError(t, db.First(&created, "name = ?", "Quinoa 1kg").Error)
	assert.Equal(t, 6, created.Quantity)
	assert.Equal(t, int64(800), created.LastImportPrice)
	assert.Equal(t, supplier.Name, created.SupplierName)
	assert.Equal(t, "Grains", created.CategoryName)
	assert.Equal(t, "bag", created.UnitName)

	// The stored line now references the product it created.
	var item entity.PurchaseItem
	require.NoError(t, db.First(&item, "purchase_id = ?", purchase.ID).Error)
	require.NotNil(t, item.ProductID)
	assert.Equal(t, created.ID, *item.ProductID)
}

func TestApprovePurchase_AlreadyApprovedRefused(t *testing.T) {
	svc, db := newPurchaseService(t)
	ctx := context.Background()

	supplier := seedSupplier(t, db, "Acme Wholesale")
	product := seedProduct(t, db, "Rice 5kg", supplier, 0, 0)
	user := seedUser(t, db, "staff@example.com", enum.RoleEmployee)

	purchase, err := svc.CreatePurchase(ctx, &CreatePurchaseInput{
		Date:       time.Now(),
		SupplierID: &supplier.ID,
		CreatedBy:  user.ID,
		Items: []PurchaseItemInput{
			{ProductID: &product.ID, Quantity: 5, Price: 2},
		},
	})
	require.NoError(t, err)

	_, err = svc.ApprovePurchase(ctx, purchase.ID)
	require.NoError(t, err)

	_, err = svc.ApprovePurchase(ctx, purchase.ID)
	require.Error(t, err)
	assert.Equal(t, 409, apperror.GetAppError(err).Code)

	// Stock applied exactly once.
	var stored entity.Product
	require.NoError(t, db.First(&stored, "id = ?", product.ID).Error)
	assert.Equal(t, 5, stored.Quantity)
}

func TestRejectPurchase_PendingDeletedApprovedProtected(t *testing.T) {
	svc, db := newPurchaseService(t)
	ctx := context.Background()

	supplier := seedSupplier(t, db, "Acme Wholesale")
	product := seedProduct(t, db, "Rice 5kg", supplier, 0, 0)
	user := seedUser(t, db, "staff@example.com", enum.RoleEmployee)

	input := &CreatePurchaseInput{
		Date:       time.Now(),
		SupplierID: &supplier.ID,
		CreatedBy:  user.ID,
		Items: []PurchaseItemInput{
			{ProductID: &product.ID, Quantity: 5, Price: 2},
		},
	}

	pending, err := svc.CreatePurchase(ctx, input)
	require.NoError(t, err)

	require.NoError(t, svc.RejectPurchase(ctx, pending.ID))

	_, err = svc.GetPurchase(ctx, pending.ID)
	require.Error(t, err)
	assert.Equal(t, 404, apperror.GetAppError(err).Code)

	// No stock effect from the rejected draft.
	var stored entity.Product
	require.NoError(t, db.First(&stored, "id = ?", product.ID).Error)
	assert.Equal(t, 0, stored.Quantity)

	approvedDraft, err := svc.CreatePurchase(ctx, input)
	require.NoError(t, err)
	_, err = svc.ApprovePurchase(ctx, approvedDraft.ID)
	require.NoError(t, err)

	err = svc.RejectPurchase(ctx, approvedDraft.ID)
	require.Error(t, err)
	assert.Equal(t, 409, apperror.GetAppError(err).Code)
}

func TestApprovePurchase_MidBatchFailureRollsBackEverything(t *testing.T) {
	svc, db := newPurchaseService(t)
	ctx := context.Background()

	supplier := seedSupplier(t, db, "Acme Wholesale")
	rice := seedProduct(t, db, "Rice 5kg", supplier, 4, 1000)
	doomed := seedProduct(t, db, "Flour 1kg", supplier, 7, 250)
	user := seedUser(t, db, "staff@example.com", enum.RoleEmployee)

	purchase, err := svc.CreatePurchase(ctx, &CreatePurchaseInput{
		Date:       time.Now(),
		SupplierID: &supplier.ID,
		CreatedBy:  user.ID,
		Items: []PurchaseItemInput{
			{ProductID: &rice.ID, Quantity: 10, Price: 12.50},
			{Name: "Quinoa 1kg", UnitName: "bag", Quantity: 6, Price: 8},
			{ProductID: &doomed.ID, Quantity: 5, Price: 2},
		},
	})
	require.NoError(t, err)

	// One referenced product disappears between drafting and approval, so
	// that line's increment hits zero rows mid-transaction.
	require.NoError(t, db.Delete(&entity.Product{}, "id = ?", doomed.ID).Error)

	_, err = svc.ApprovePurchase(ctx, purchase.ID)
	require.Error(t, err)

	// The earlier increment and the new-product insert rolled back with it.
	var storedRice entity.Product
	require.NoError(t, db.First(&storedRice, "id = ?", rice.ID).Error)
	assert.Equal(t, 4, storedRice.Quantity)
	assert.Equal(t, int64(1000), storedRice.LastImportPrice)

	err = db.First(&entity.Product{}, "name = ?", "Quinoa 1kg").Error
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	var storedPurchase entity.Purchase
	require.NoError(t, db.First(&storedPurchase, "id = ?", purchase.ID).Error)
	assert.Equal(t, enum.OrderStatusPending, storedPurchase.Status)
}

// racedPurchaseRepo simulates an approval that loses the guarded status flip
// to a concurrent winner after the service's pending pre-check passed.
type racedPurchaseRepo struct {
	domainRepo.PurchaseRepository
	purchase *entity.Purchase
}

func (r *racedPurchaseRepo) GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Purchase, error) {
	return r.purchase, nil
}

func (r *racedPurchaseRepo) Approve(ctx context.Context, purchase *entity.Purchase) error {
	return domainRepo.ErrOrderNotPending
}

func TestApprovePurchase_LostStatusFlipIsConflict(t *testing.T) {
	svc, db := newPurchaseService(t)
	ctx := context.Background()

	supplier := seedSupplier(t, db, "Acme Wholesale")
	product := seedProduct(t, db, "Rice 5kg", supplier, 0, 0)
	user := seedUser(t, db, "staff@example.com", enum.RoleEmployee)

	purchase, err := svc.CreatePurchase(ctx, &CreatePurchaseInput{
		Date:       time.Now(),
		SupplierID: &supplier.ID,
		CreatedBy:  user.ID,
		Items: []PurchaseItemInput{
			{ProductID: &product.ID, Quantity: 5, Price: 2},
		},
	})
	require.NoError(t, err)

	repo := infraRepo.NewPurchaseRepository(db)
	stale, err := repo.GetWithItems(ctx, purchase.ID)
	require.NoError(t, err)

	_, err = svc.ApprovePurchase(ctx, purchase.ID)
	require.NoError(t, err)

	// The loser re-applies its increments inside the transaction, then fails
	// the guarded flip; the whole transaction must roll back.
	err = repo.Approve(ctx, stale)
	assert.ErrorIs(t, err, domainRepo.ErrOrderNotPending)

	var stored entity.Product
	require.NoError(t, db.First(&stored, "id = ?", product.ID).Error)
	assert.Equal(t, 5, stored.Quantity, "stock applied exactly once")

	// The service reports the lost race as the same conflict the pre-check
	// would have raised.
	racedSvc := NewPurchaseService(&racedPurchaseRepo{purchase: stale}, nil, nil)
	_, err = racedSvc.ApprovePurchase(ctx, stale.ID)
	require.Error(t, err)
	assert.Equal(t, 409, apperror.GetAppError(err).Code)
}

func TestCreatePurchase_Validation(t *testing.T) {
	svc, db := newPurchaseService(t)
	ctx := context.Background()

	user := seedUser(t, db, "staff@example.com", enum.RoleEmployee)

	_, err := svc.CreatePurchase(ctx, &CreatePurchaseInput{
		Date:      time.Now(),
		CreatedBy: user.ID,
	})
	require.Error(t, err, "empty item list refused")

	_, err = svc.CreatePurchase(ctx, &CreatePurchaseInput{
		Date:      time.Now(),
		CreatedBy: user.ID,
		Items:     []PurchaseItemInput{{Name: "Thing", Quantity: 0, Price: 1}},
	})
	require.Error(t, err, "zero quantity refused")

	_, err = svc.CreatePurchase(ctx, &CreatePurchaseInput{
		Date:      time.Now(),
		CreatedBy: user.ID,
		Items:     []PurchaseItemInput{{Quantity: 1, Price: 1}},
	})
	require.Error(t, err, "new-product line without a name refused")
}
