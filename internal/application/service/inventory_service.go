package service

import (
	"context"
	"io"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/tuanvm/stockwise-api/internal/domain/entity"
	"github.com/tuanvm/stockwise-api/internal/domain/repository"
	"github.com/tuanvm/stockwise-api/pkg/apperror"
	"github.com/xuri/excelize/v2"
)

// InventoryService handles the inventory snapshot and its spreadsheet
// interchange: an export workbook staff fill in at the warehouse and an
// import path that turns the filled workbook back into purchase draft lines.
type InventoryService struct {
	productRepo  repository.ProductRepository
	supplierRepo repository.SupplierRepository
}

// NewInventoryService creates a new inventory service
func NewInventoryService(productRepo repository.ProductRepository, supplierRepo repository.SupplierRepository) *InventoryService {
	return &InventoryService{
		productRepo:  productRepo,
		supplierRepo: supplierRepo,
	}
}

// GetSnapshot returns the full product list with denormalized names, ordered
// by supplier then product name. This backs the printable stock view.
func (s *InventoryService) GetSnapshot(ctx context.Context) ([]entity.Product, error) {
	return s.productRepo.ListAll(ctx)
}

var exportHeaders = []string{"Product", "Category", "Unit", "Current Quantity", "Import Quantity", "Import Price"}

// sanitizeSheetName strips the characters Excel forbids in sheet names and
// truncates to the 31-character limit.
func sanitizeSheetName(name string) string {
	replacer := strings.NewReplacer(":", "", "\\", "", "/", "", "?", "", "*", "", "[", "", "]", "")
	name = strings.TrimSpace(replacer.Replace(name))
	if name == "" {
		name = "Sheet"
	}
	if len(name) > 31 {
		name = name[:31]
	}
	return name
}

// ExportWorkbook builds an xlsx workbook with one sheet per supplier. Each
// sheet lists that supplier's products with their current quantity and two
// blank columns ("Import Quantity", "Import Price") for staff to fill in;
// the filled workbook feeds ImportDraft. Products without a supplier land
// on an "Unassigned" sheet.
func (s *InventoryService) ExportWorkbook(ctx context.Context) (*excelize.File, error) {
	products, err := s.productRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defaultSheet := f.GetSheetName(0)

	writeSheet := func(sheet string, rows []entity.Product) error {
		if _, err := f.NewSheet(sheet); err != nil {
			return err
		}
		for col, header := range exportHeaders {
			cell, err := excelize.CoordinatesToCellName(col+1, 1)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, header); err != nil {
				return err
			}
		}
		for i, p := range rows {
			rowNum := i + 2
			values := []interface{}{p.Name, p.CategoryName, p.UnitName, p.Quantity}
			for col, value := range values {
				cell, err := excelize.CoordinatesToCellName(col+1, rowNum)
				if err != nil {
					return err
				}
				if err := f.SetCellValue(sheet, cell, value); err != nil {
					return err
				}
			}
		}
		return nil
	}

	// Group by supplier preserving the supplier-name ordering from ListAll.
	var sheetOrder []string
	grouped := make(map[string][]entity.Product)
	for _, p := range products {
		name := p.SupplierName
		if name == "" {
			name = "Unassigned"
		}
		sheet := sanitizeSheetName(name)
		if _, ok := grouped[sheet]; !ok {
			sheetOrder = append(sheetOrder, sheet)
		}
		grouped[sheet] = append(grouped[sheet], p)
	}

	for _, sheet := range sheetOrder {
		if err := writeSheet(sheet, grouped[sheet]); err != nil {
			return nil, err
		}
	}

	if len(sheetOrder) > 0 {
		if err := f.DeleteSheet(defaultSheet); err != nil {
			return nil, err
		}
	}

	return f, nil
}

// ImportDraft parses a filled export workbook and returns purchase draft
// lines for one supplier. It does not create the purchase; the caller reviews
// the lines and submits them through the normal draft flow.
func (s *InventoryService) ImportDraft(ctx context.Context, supplierID uuid.UUID, r io.Reader) ([]PurchaseItemInput, error) {
	supplier, err := s.supplierRepo.GetByID(ctx, supplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, apperror.NewNotFoundError("Supplier")
	}

	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, apperror.NewBadRequestError("File is not a valid xlsx workbook")
	}
	defer f.Close()

	// Prefer the sheet named after the supplier; fall back to the first one.
	sheet := sanitizeSheetName(supplier.Name)
	if idx, err := f.GetSheetIndex(sheet); err != nil || idx < 0 {
		sheet = f.GetSheetName(0)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, apperror.NewBadRequestError("Could not read worksheet")
	}

	var items []PurchaseItemInput
	for i, row := range rows {
		if i == 0 {
			continue // header
		}
		if len(row) == 0 || strings.TrimSpace(row[0]) == "" {
			continue
		}

		name := strings.TrimSpace(row[0])
		quantity := parseIntCell(row, 4)
		if quantity <= 0 {
			continue
		}
		price := parseFloatCell(row, 5)

		product, err := s.productRepo.GetByNameAndSupplier(ctx, name, supplierID)
		if err != nil {
			return nil, err
		}

		item := PurchaseItemInput{
			Name:     name,
			Quantity: quantity,
			Price:    price,
		}
		if product != nil {
			id := product.ID
			item.ProductID = &id
			item.Name = product.Name
			item.UnitName = product.UnitName
			if price == 0 {
				item.Price = float64(product.LastImportPrice) / 100
			}
		} else if len(row) > 2 {
			item.UnitName = strings.TrimSpace(row[2])
		}

		items = append(items, item)
	}

	if len(items) == 0 {
		return nil, apperror.NewBadRequestError("Workbook contains no importable rows")
	}

	return items, nil
}

func parseIntCell(row []string, col int) int {
	if col >= len(row) {
		return 0
	}
	v, err := strconv.Atoi(strings.TrimSpace(row[col]))
	if err != nil {
		return 0
	}
	return v
}

func parseFloatCell(row []string, col int) float64 {
	if col >= len(row) {
		return 0
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(row[col]), 64)
	if err != nil {
		return 0
	}
	return v
}
