package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tuanvm/stockwise-api/internal/domain/entity"
	infraRepo "github.com/tuanvm/stockwise-api/internal/infrastructure/repository"
	"github.com/tuanvm/stockwise-api/pkg/apperror"
	"gorm.io/gorm"
)

func newProductService(t *testing.T) (*ProductService, *gorm.DB) {
	db := newTestDB(t)
	return NewProductService(
		infraRepo.NewProductRepository(db),
		infraRepo.NewSupplierRepository(db),
		infraRepo.NewCategoryRepository(db),
		infraRepo.NewUnitRepository(db),
	), db
}

func TestCreateProduct_StartsWithZeroStock(t *testing.T) {
	svc, db := newProductService(t)
	ctx := context.Background()

	supplier := seedSupplier(t, db, "Acme Wholesale")
	category := &entity.Category{Name: "Grains"}
	require.NoError(t, db.Create(category).Error)
	unit := &entity.Unit{Name: "bag"}
	require.NoError(t, db.Create(unit).Error)

	product, err := svc.CreateProduct(ctx, &ProductInput{
		Name:       "Rice 5kg",
		SupplierID: &supplier.ID,
		CategoryID: &category.ID,
		UnitID:     &unit.ID,
	})
	require.NoError(t, err)

	assert.Equal(t, 0, product.Quantity)
	assert.Equal(t, int64(0), product.LastImportPrice)
	assert.Equal(t, "Acme Wholesale", product.SupplierName)
	assert.Equal(t, "Grains", product.CategoryName)
	assert.Equal(t, "bag", product.UnitName)
}

func TestCreateProduct_UnknownReferenceRefused(t *testing.T) {
	svc, _ := newProductService(t)
	ctx := context.Background()

	missing := uuid.New()
	_, err := svc.CreateProduct(ctx, &ProductInput{
		Name:       "Rice 5kg",
		SupplierID: &missing,
	})
	require.Error(t, err)
	assert.Equal(t, 404, apperror.GetAppError(err).Code)
}

func TestUpdateProduct_NeverTouchesStock(t *testing.T) {
	svc, db := newProductService(t)
	ctx := context.Background()

	supplier := seedSupplier(t, db, "Acme Wholesale")
	product := seedProduct(t, db, "Rice 5kg", supplier, 42, 1000)

	updated, err := svc.UpdateProduct(ctx, product.ID, &ProductInput{Name: "Rice 5kg Premium"})
	require.NoError(t, err)
	assert.Equal(t, "Rice 5kg Premium", updated.Name)
	assert.Equal(t, 42, updated.Quantity)
	assert.Equal(t, int64(1000), updated.LastImportPrice)
}

func TestDeleteProduct(t *testing.T) {
	svc, db := newProductService(t)
	ctx := context.Background()

	product := seedProduct(t, db, "Rice 5kg", nil, 0, 0)

	require.NoError(t, svc.DeleteProduct(ctx, product.ID))

	_, err := svc.GetProduct(ctx, product.ID)
	require.Error(t, err)
	assert.Equal(t, 404, apperror.GetAppError(err).Code)

	err = svc.DeleteProduct(ctx, product.ID)
	require.Error(t, err, "deleting twice is a not-found")
}
