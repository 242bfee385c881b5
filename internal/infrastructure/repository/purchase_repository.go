package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/tuanvm/stockwise-api/internal/domain/entity"
	"github.com/tuanvm/stockwise-api/internal/domain/enum"
	domainRepo "github.com/tuanvm/stockwise-api/internal/domain/repository"
	"github.com/tuanvm/stockwise-api/pkg/pagination"
	"gorm.io/gorm"
)

type purchaseRepository struct {
	db *gorm.DB
}

// NewPurchaseRepository creates a new purchase repository
func NewPurchaseRepository(db *gorm.DB) domainRepo.PurchaseRepository {
	return &purchaseRepository{db: db}
}

func (r *purchaseRepository) Create(ctx context.Context, purchase *entity.Purchase) error {
	return r.db.WithContext(ctx).Create(purchase).Error
}

func (r *purchaseRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Purchase, error) {
	var purchase entity.Purchase
	err := r.db.WithContext(ctx).First(&purchase, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &purchase, err
}

func (r *purchaseRepository) GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Purchase, error) {
	var purchase entity.Purchase
	err := r.db.WithContext(ctx).
		Preload("Items").
		First(&purchase, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &purchase, err
}

func (r *purchaseRepository) List(ctx context.Context, params *domainRepo.PurchaseFilterParams) ([]entity.Purchase, int64, error) {
	var purchases []entity.Purchase
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Purchase{})

	if params.Search != "" {
		query = query.Where("purchase_no ILIKE ? OR supplier_name ILIKE ?",
			"%"+params.Search+"%", "%"+params.Search+"%")
	}
	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}
	if params.SupplierID != nil {
		query = query.Where("supplier_id = ?", *params.SupplierID)
	}
	if params.StartDate != nil {
		query = query.Where("date >= ?", *params.StartDate)
	}
	if params.EndDate != nil {
		query = query.Where("date <= ?", *params.EndDate)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sortBy := params.SortBy
	switch sortBy {
	case "date", "grand_total", "created_at":
	default:
		sortBy = "date"
	}
	sortOrder := "DESC"
	if params.SortOrder == "asc" {
		sortOrder = "ASC"
	}

	params.Pagination.Validate()
	err := query.
		Preload("Items").
		Offset(params.Pagination.Offset()).
		Limit(params.Pagination.PerPage).
		Order(fmt.Sprintf("%s %s", sortBy, sortOrder)).
		Find(&purchases).Error

	return purchases, total, err
}

func (r *purchaseRepository) GetPending(ctx context.Context, params *pagination.PaginationParams) ([]entity.Purchase, int64, error) {
	var purchases []entity.Purchase
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Purchase{}).
		Where("status = ?", enum.OrderStatusPending)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.
		Preload("Items").
		Offset(params.Offset()).Limit(params.PerPage).
		Order("created_at ASC").
		Find(&purchases).Error

	return purchases, total, err
}

// Approve applies the whole stock effect of a purchase and flips its status
// in a single transaction. The status update is guarded on the row still
// being pending so two concurrent approvals cannot both commit.
func (r *purchaseRepository) Approve(ctx context.Context, purchase *entity.Purchase) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range purchase.Items {
			item := &purchase.Items[i]

			if item.ProductID != nil {
				result := tx.Model(&entity.Product{}).
					Where("id = ?", *item.ProductID).
					Updates(map[string]interface{}{
						"quantity":          gorm.Expr("quantity + ?", item.Quantity),
						"last_import_price": item.Price,
					})
				if result.Error != nil {
					return result.Error
				}
				if result.RowsAffected == 0 {
					return fmt.Errorf("product %s not found", item.ProductID)
				}
				continue
			}

			// New-product line: the item carries everything needed to seed a
			// catalog row except the category name, which lives on the
			// category itself.
			product := entity.Product{
				Name:            item.Name,
				SupplierID:      purchase.SupplierID,
				SupplierName:    purchase.SupplierName,
				CategoryID:      item.CategoryID,
				UnitID:          item.UnitID,
				UnitName:        item.UnitName,
				Quantity:        item.Quantity,
				LastImportPrice: item.Price,
			}
			if item.CategoryID != nil {
				var category entity.Category
				if err := tx.First(&category, "id = ?", *item.CategoryID).Error; err == nil {
					product.CategoryName = category.Name
				}
			}
			if err := tx.Create(&product).Error; err != nil {
				return err
			}

			// Backfill the item so the stored document points at the product
			// it created.
			item.ProductID = &product.ID
			if err := tx.Model(&entity.PurchaseItem{}).
				Where("id = ?", item.ID).
				Update("product_id", product.ID).Error; err != nil {
				return err
			}
		}

		result := tx.Model(&entity.Purchase{}).
			Where("id = ? AND status = ?", purchase.ID, enum.OrderStatusPending).
			Update("status", enum.OrderStatusApproved)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domainRepo.ErrOrderNotPending
		}
		return nil
	})
}

func (r *purchaseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&entity.PurchaseItem{}, "purchase_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&entity.Purchase{}, "id = ?", id).Error
	})
}
