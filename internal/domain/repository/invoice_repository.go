package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tuanvm/stockwise-api/internal/domain/entity"
	"github.com/tuanvm/stockwise-api/internal/domain/enum"
	"github.com/tuanvm/stockwise-api/pkg/pagination"
)

// InvoiceFilterParams represents filtering options for listing invoices
type InvoiceFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	Status     *enum.OrderStatus
	CustomerID *uuid.UUID
	StartDate  *time.Time
	EndDate    *time.Time
	SortBy     string
	SortOrder  string
}

// InvoiceRepository defines the interface for invoice data access
type InvoiceRepository interface {
	// Create persists the invoice together with its line items.
	Create(ctx context.Context, invoice *entity.Invoice) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Invoice, error)
	GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Invoice, error)
	List(ctx context.Context, params *InvoiceFilterParams) ([]entity.Invoice, int64, error)
	GetPending(ctx context.Context, params *pagination.PaginationParams) ([]entity.Invoice, int64, error)
	// Approve decrements stock for every line item and flips the invoice to
	// approved in one transaction. Each decrement is conditional on
	// sufficient quantity; products that would go negative are returned as
	// failed ids and the whole transaction is rolled back.
	Approve(ctx context.Context, invoice *entity.Invoice) ([]uuid.UUID, error)
	// Delete removes the invoice and its items (pending rejection path).
	Delete(ctx context.Context, id uuid.UUID) error
}
