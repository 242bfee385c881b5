package service

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/tuanvm/stockwise-api/internal/domain/entity"
	"github.com/tuanvm/stockwise-api/internal/domain/enum"
	"github.com/tuanvm/stockwise-api/internal/domain/repository"
	"github.com/tuanvm/stockwise-api/pkg/apperror"
	"github.com/tuanvm/stockwise-api/pkg/pagination"
	"github.com/tuanvm/stockwise-api/pkg/utils"
)

// PurchaseService handles inbound stock orders and their approval workflow
type PurchaseService struct {
	purchaseRepo repository.PurchaseRepository
	productRepo  repository.ProductRepository
	supplierRepo repository.SupplierRepository
}

// NewPurchaseService creates a new purchase service
func NewPurchaseService(
	purchaseRepo repository.PurchaseRepository,
	productRepo repository.ProductRepository,
	supplierRepo repository.SupplierRepository,
) *PurchaseService {
	return &PurchaseService{
		purchaseRepo: purchaseRepo,
		productRepo:  productRepo,
		supplierRepo: supplierRepo,
	}
}

// PurchaseItemInput represents one line of a purchase draft. Lines without a
// product id describe a product that does not exist yet; approval will create
// it under the purchase's supplier.
type PurchaseItemInput struct {
	ProductID  *uuid.UUID
	Name       string
	CategoryID *uuid.UUID
	UnitID     *uuid.UUID
	UnitName   string
	Quantity   int
	Price      float64
}

// CreatePurchaseInput represents the purchase draft input
type CreatePurchaseInput struct {
	Date       time.Time
	SupplierID *uuid.UUID
	CreatedBy  uuid.UUID
	Items      []PurchaseItemInput
}

// toCents converts a decimal amount to its cent representation
func toCents(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// CreatePurchase creates a pending purchase draft. Nothing touches stock
// until the draft is approved.
func (s *PurchaseService) CreatePurchase(ctx context.Context, input *CreatePurchaseInput) (*entity.Purchase, error) {
	if len(input.Items) == 0 {
		return nil, apperror.NewBadRequestError("A purchase needs at least one item")
	}

	purchase := &entity.Purchase{
		PurchaseNo:  utils.GeneratePurchaseNo(),
		Date:        input.Date,
		Status:      enum.OrderStatusPending,
		CreatedByID: &input.CreatedBy,
	}

	if input.SupplierID != nil {
		supplier, err := s.supplierRepo.GetByID(ctx, *input.SupplierID)
		if err != nil {
			return nil, err
		}
		if supplier == nil {
			return nil, apperror.NewNotFoundError("Supplier")
		}
		purchase.SupplierID = input.SupplierID
		purchase.SupplierName = supplier.Name
	}

	var grandTotal int64
	for _, item := range input.Items {
		if item.Quantity <= 0 {
			return nil, apperror.NewBadRequestError("Item quantity must be positive")
		}
		if item.Price < 0 {
			return nil, apperror.NewBadRequestError("Item price cannot be negative")
		}

		line := entity.PurchaseItem{
			ProductID:  item.ProductID,
			Name:       item.Name,
			CategoryID: item.CategoryID,
			UnitID:     item.UnitID,
			UnitName:   item.UnitName,
			Quantity:   item.Quantity,
			Price:      toCents(item.Price),
		}

		if item.ProductID != nil {
			product, err := s.productRepo.GetByID(ctx, *item.ProductID)
			if err != nil {
				return nil, err
			}
			if product == nil {
				return nil, apperror.NewNotFoundError("Product")
			}
			line.Name = product.Name
			line.UnitName = product.UnitName
		} else if line.Name == "" {
			return nil, apperror.NewBadRequestError("New-product lines need a name")
		}

		line.Total = line.Price * int64(line.Quantity)
		grandTotal += line.Total
		purchase.Items = append(purchase.Items, line)
	}
	purchase.GrandTotal = grandTotal

	if err := s.purchaseRepo.Create(ctx, purchase); err != nil {
		return nil, err
	}
	return purchase, nil
}

// GetPurchase returns a purchase with its items
func (s *PurchaseService) GetPurchase(ctx context.Context, id uuid.UUID) (*entity.Purchase, error) {
	purchase, err := s.purchaseRepo.GetWithItems(ctx, id)
	if err != nil {
		return nil, err
	}
	if purchase == nil {
		return nil, apperror.NewNotFoundError("Purchase")
	}
	return purchase, nil
}

// ListPurchases returns a filtered, paginated list of purchases
func (s *PurchaseService) ListPurchases(ctx context.Context, params *repository.PurchaseFilterParams) (*pagination.PaginatedResult[entity.Purchase], error) {
	if params.Pagination == nil {
		params.Pagination = pagination.DefaultPagination()
	}

	purchases, total, err := s.purchaseRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	return pagination.NewPaginatedResult(purchases, pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)), nil
}

// ListPendingPurchases returns pending purchases awaiting a decision
func (s *PurchaseService) ListPendingPurchases(ctx context.Context, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.Purchase], error) {
	purchases, total, err := s.purchaseRepo.GetPending(ctx, params)
	if err != nil {
		return nil, err
	}

	return pagination.NewPaginatedResult(purchases, pagination.NewPagination(params.Page, params.PerPage, total)), nil
}

// ApprovePurchase applies the purchase's stock effect: every existing
// product line is incremented and has its last import price overwritten,
// every new-product line becomes a product row. All of it commits in one
// transaction together with the status flip.
func (s *PurchaseService) ApprovePurchase(ctx context.Context, id uuid.UUID) (*entity.Purchase, error) {
	purchase, err := s.purchaseRepo.GetWithItems(ctx, id)
	if err != nil {
		return nil, err
	}
	if purchase == nil {
		return nil, apperror.NewNotFoundError("Purchase")
	}
	if purchase.Status != enum.OrderStatusPending {
		return nil, apperror.NewConflictError("Purchase has already been approved")
	}

	if err := s.purchaseRepo.Approve(ctx, purchase); err != nil {
		// A concurrent approval can win the status flip between our read and
		// the transaction; that is the same conflict as the pre-check above.
		if errors.Is(err, repository.ErrOrderNotPending) {
			return nil, apperror.NewConflictError("Purchase has already been approved")
		}
		return nil, err
	}

	purchase.Status = enum.OrderStatusApproved
	return purchase, nil
}

// RejectPurchase discards a pending draft. Approved purchases are part of
// the stock history and cannot be removed.
func (s *PurchaseService) RejectPurchase(ctx context.Context, id uuid.UUID) error {
	purchase, err := s.purchaseRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if purchase == nil {
		return apperror.NewNotFoundError("Purchase")
	}
	if purchase.Status != enum.OrderStatusPending {
		return apperror.NewConflictError("Approved purchases cannot be rejected")
	}

	return s.purchaseRepo.Delete(ctx, id)
}
