package service

import (
	"bytes"
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	infraRepo "github.com/tuanvm/stockwise-api/internal/infrastructure/repository"
	"gorm.io/gorm"
)

func newInventoryService(t *testing.T) (*InventoryService, *gorm.DB) {
	db := newTestDB(t)
	return NewInventoryService(
		infraRepo.NewProductRepository(db),
		infraRepo.NewSupplierRepository(db),
	), db
}

func TestExportWorkbook_SheetPerSupplier(t *testing.T) {
	svc, db := newInventoryService(t)
	ctx := context.Background()

	acme := seedSupplier(t, db, "Acme Wholesale")
	globex := seedSupplier(t, db, "Globex")
	seedProduct(t, db, "Rice 5kg", acme, 12, 1000)
	seedProduct(t, db, "Flour 1kg", acme, 30, 250)
	seedProduct(t, db, "Olive Oil 1L", globex, 8, 7500)
	seedProduct(t, db, "Mystery Box", nil, 1, 0)

	f, err := svc.ExportWorkbook(ctx)
	require.NoError(t, err)
	defer f.Close()

	sheets := f.GetSheetList()
	assert.ElementsMatch(t, []string{"Acme Wholesale", "Globex", "Unassigned"}, sheets)

	rows, err := f.GetRows("Acme Wholesale")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, exportHeaders, rows[0])
	assert.Equal(t, "Flour 1kg", rows[1][0])
	assert.Equal(t, "30", rows[1][3])
	assert.Equal(t, "Rice 5kg", rows[2][0])

	rows, err = f.GetRows("Unassigned")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Mystery Box", rows[1][0])
}

func TestSanitizeSheetName(t *testing.T) {
	assert.Equal(t, "AB Trading", sanitizeSheetName("A[B] Trading:*?"))
	assert.Equal(t, "Sheet", sanitizeSheetName("  "))
	long := sanitizeSheetName("A supplier with an unreasonably long company name")
	assert.Len(t, long, 31)
}

func TestImportDraft_RoundTrip(t *testing.T) {
	svc, db := newInventoryService(t)
	ctx := context.Background()

	acme := seedSupplier(t, db, "Acme Wholesale")
	rice := seedProduct(t, db, "Rice 5kg", acme, 12, 1000)
	seedProduct(t, db, "Flour 1kg", acme, 30, 250)

	f, err := svc.ExportWorkbook(ctx)
	require.NoError(t, err)

	// Staff fill in import quantities: flour with an explicit price, rice
	// left blank so the last import price applies, plus a product that is
	// not in the catalog yet.
	require.NoError(t, f.SetCellValue("Acme Wholesale", "E2", 20)) // Flour
	require.NoError(t, f.SetCellValue("Acme Wholesale", "F2", 2.75))
	require.NoError(t, f.SetCellValue("Acme Wholesale", "E3", 5)) // Rice
	require.NoError(t, f.SetCellValue("Acme Wholesale", "A4", "Quinoa 1kg"))
	require.NoError(t, f.SetCellValue("Acme Wholesale", "C4", "bag"))
	require.NoError(t, f.SetCellValue("Acme Wholesale", "E4", 6))
	require.NoError(t, f.SetCellValue("Acme Wholesale", "F4", 8))

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	require.NoError(t, f.Close())

	items, err := svc.ImportDraft(ctx, acme.ID, &buf)
	require.NoError(t, err)
	require.Len(t, items, 3)

	flour := items[0]
	require.NotNil(t, flour.ProductID)
	assert.Equal(t, "Flour 1kg", flour.Name)
	assert.Equal(t, 20, flour.Quantity)
	assert.Equal(t, 2.75, flour.Price)

	riceItem := items[1]
	require.NotNil(t, riceItem.ProductID)
	assert.Equal(t, rice.ID, *riceItem.ProductID)
	assert.Equal(t, 5, riceItem.Quantity)
	assert.Equal(t, 10.0, riceItem.Price, "blank price falls back to the last import price")

	quinoa := items[2]
	assert.Nil(t, quinoa.ProductID, "unknown names become new-product lines")
	assert.Equal(t, "Quinoa 1kg", quinoa.Name)
	assert.Equal(t, "bag", quinoa.UnitName)
	assert.Equal(t, 6, quinoa.Quantity)
	assert.Equal(t, 8.0, quinoa.Price)
}

func TestImportDraft_MatchesNamesCaseInsensitively(t *testing.T) {
	svc, db := newInventoryService(t)
	ctx := context.Background()

	acme := seedSupplier(t, db, "Acme Wholesale")
	rice := seedProduct(t, db, "Rice 5kg", acme, 12, 1000)

	f, err := svc.ExportWorkbook(ctx)
	require.NoError(t, err)
	require.NoError(t, f.SetCellValue("Acme Wholesale", "A2", "RICE 5KG"))
	require.NoError(t, f.SetCellValue("Acme Wholesale", "E2", 3))

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	require.NoError(t, f.Close())

	items, err := svc.ImportDraft(ctx, acme.ID, &buf)
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.NotNil(t, items[0].ProductID)
	assert.Equal(t, rice.ID, *items[0].ProductID)
}

func TestImportDraft_Rejections(t *testing.T) {
	svc, db := newInventoryService(t)
	ctx := context.Background()

	acme := seedSupplier(t, db, "Acme Wholesale")
	seedProduct(t, db, "Rice 5kg", acme, 12, 1000)

	// Not an xlsx payload.
	_, err := svc.ImportDraft(ctx, acme.ID, bytes.NewBufferString("not a workbook"))
	require.Error(t, err)

	// A workbook with no filled rows has nothing to import.
	f, err := svc.ExportWorkbook(ctx)
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	require.NoError(t, f.Close())

	_, err = svc.ImportDraft(ctx, acme.ID, &buf)
	require.Error(t, err)

	// Unknown supplier.
	_, err = svc.ImportDraft(ctx, uuid.New(), bytes.NewBuffer(nil))
	require.Error(t, err)
}
