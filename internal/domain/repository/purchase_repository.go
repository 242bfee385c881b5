package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/tuanvm/stockwise-api/internal/domain/entity"
	"github.com/tuanvm/stockwise-api/internal/domain/enum"
	"github.com/tuanvm/stockwise-api/pkg/pagination"
)

// ErrOrderNotPending is returned by Approve when the order's guarded status
// flip affects zero rows: a concurrent approval already decided the order.
// The losing transaction rolls back in full.
var ErrOrderNotPending = errors.New("order is not pending")

// PurchaseFilterParams represents filtering options for listing purchases
type PurchaseFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	Status     *enum.OrderStatus
	SupplierID *uuid.UUID
	StartDate  *time.Time
	EndDate    *time.Time
	SortBy     string
	SortOrder  string
}

// PurchaseRepository defines the interface for purchase data access
type PurchaseRepository interface {
	// Create persists the purchase together with its line items.
	Create(ctx context.Context, purchase *entity.Purchase) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Purchase, error)
	GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Purchase, error)
	List(ctx context.Context, params *PurchaseFilterParams) ([]entity.Purchase, int64, error)
	GetPending(ctx context.Context, params *pagination.PaginationParams) ([]entity.Purchase, int64, error)
	// Approve applies the purchase's stock effect and flips its status to
	// approved in one transaction: existing product lines are incremented and
	// get their last import price overwritten, new-product lines are inserted
	// as product rows. Either everything commits or nothing does.
	Approve(ctx context.Context, purchase *entity.Purchase) error
	// Delete removes the purchase and its items (pending rejection path).
	Delete(ctx context.Context, id uuid.UUID) error
}
