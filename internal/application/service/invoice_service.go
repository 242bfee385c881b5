package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tuanvm/stockwise-api/internal/domain/entity"
	"github.com/tuanvm/stockwise-api/internal/domain/enum"
	"github.com/tuanvm/stockwise-api/internal/domain/repository"
	"github.com/tuanvm/stockwise-api/pkg/apperror"
	"github.com/tuanvm/stockwise-api/pkg/pagination"
	"github.com/tuanvm/stockwise-api/pkg/utils"
)

// InvoiceService handles outbound sales orders and their approval workflow
type InvoiceService struct {
	invoiceRepo  repository.InvoiceRepository
	productRepo  repository.ProductRepository
	customerRepo repository.CustomerRepository
}

// NewInvoiceService creates a new invoice service
func NewInvoiceService(
	invoiceRepo repository.InvoiceRepository,
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
) *InvoiceService {
	return &InvoiceService{
		invoiceRepo:  invoiceRepo,
		productRepo:  productRepo,
		customerRepo: customerRepo,
	}
}

// InvoiceItemInput represents one line of an invoice draft
type InvoiceItemInput struct {
	ProductID uuid.UUID
	Quantity  int
	Price     float64
}

// CreateInvoiceInput represents the invoice draft input
type CreateInvoiceInput struct {
	Date          time.Time
	CustomerID    *uuid.UUID
	PaymentMethod string
	Note          *string
	CreatedBy     uuid.UUID
	Items         []InvoiceItemInput
}

// CreateInvoice creates a pending invoice draft. Stock is checked here only
// as an early courtesy; the authoritative check happens at approval.
func (s *InvoiceService) CreateInvoice(ctx context.Context, input *CreateInvoiceInput) (*entity.Invoice, error) {
	if len(input.Items) == 0 {
		return nil, apperror.NewBadRequestError("An invoice needs at least one item")
	}

	invoice := &entity.Invoice{
		InvoiceNo:     utils.GenerateInvoiceNo(),
		Date:          input.Date,
		PaymentMethod: input.PaymentMethod,
		Note:          input.Note,
		Status:        enum.OrderStatusPending,
		CreatedByID:   &input.CreatedBy,
	}

	if input.CustomerID != nil {
		customer, err := s.customerRepo.GetByID(ctx, *input.CustomerID)
		if err != nil {
			return nil, err
		}
		if customer == nil {
			return nil, apperror.NewNotFoundError("Customer")
		}
		invoice.CustomerID = input.CustomerID
		invoice.CustomerName = customer.Name
	}

	ids := make([]uuid.UUID, 0, len(input.Items))
	for _, item := range input.Items {
		ids = append(ids, item.ProductID)
	}
	products, err := s.productRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	productByID := make(map[uuid.UUID]*entity.Product, len(products))
	for i := range products {
		productByID[products[i].ID] = &products[i]
	}

	var grandTotal int64
	for _, item := range input.Items {
		if item.Quantity <= 0 {
			return nil, apperror.NewBadRequestError("Item quantity must be positive")
		}
		if item.Price < 0 {
			return nil, apperror.NewBadRequestError("Item price cannot be negative")
		}

		product, ok := productByID[item.ProductID]
		if !ok {
			return nil, apperror.NewNotFoundError("Product")
		}
		if product.Quantity < item.Quantity {
			return nil, apperror.NewBadRequestError(
				fmt.Sprintf("Not enough stock for %s (%d available)", product.Name, product.Quantity))
		}

		line := entity.InvoiceItem{
			ProductID: item.ProductID,
			Name:      product.Name,
			UnitName:  product.UnitName,
			Quantity:  item.Quantity,
			Price:     toCents(item.Price),
		}
		line.Total = line.Price * int64(line.Quantity)
		grandTotal += line.Total
		invoice.Items = append(invoice.Items, line)
	}
	invoice.GrandTotal = grandTotal

	if err := s.invoiceRepo.Create(ctx, invoice); err != nil {
		return nil, err
	}
	return invoice, nil
}

// GetInvoice returns an invoice with its items
func (s *InvoiceService) GetInvoice(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	invoice, err := s.invoiceRepo.GetWithItems(ctx, id)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, apperror.NewNotFoundError("Invoice")
	}
	return invoice, nil
}

// ListInvoices returns a filtered, paginated list of invoices
func (s *InvoiceService) ListInvoices(ctx context.Context, params *repository.InvoiceFilterParams) (*pagination.PaginatedResult[entity.Invoice], error) {
	if params.Pagination == nil {
		params.Pagination = pagination.DefaultPagination()
	}

	invoices, total, err := s.invoiceRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	return pagination.NewPaginatedResult(invoices, pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)), nil
}

// ListPendingInvoices returns pending invoices awaiting a decision
func (s *InvoiceService) ListPendingInvoices(ctx context.Context, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.Invoice], error) {
	invoices, total, err := s.invoiceRepo.GetPending(ctx, params)
	if err != nil {
		return nil, err
	}

	return pagination.NewPaginatedResult(invoices, pagination.NewPagination(params.Page, params.PerPage, total)), nil
}

// ApproveInvoice decrements stock for every line and marks the invoice
// approved, all in one transaction. If any product no longer holds enough
// stock the whole approval is refused and the error names the products.
func (s *InvoiceService) ApproveInvoice(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	invoice, err := s.invoiceRepo.GetWithItems(ctx, id)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, apperror.NewNotFoundError("Invoice")
	}
	if invoice.Status != enum.OrderStatusPending {
		return nil, apperror.NewConflictError("Invoice has already been approved")
	}

	failedIDs, err := s.invoiceRepo.Approve(ctx, invoice)
	if err != nil {
		// A concurrent approval can win the status flip between our read and
		// the transaction; that is the same conflict as the pre-check above.
		if errors.Is(err, repository.ErrOrderNotPending) {
			return nil, apperror.NewConflictError("Invoice has already been approved")
		}
		return nil, err
	}
	if len(failedIDs) > 0 {
		names := make([]string, 0, len(failedIDs))
		products, err := s.productRepo.GetByIDs(ctx, failedIDs)
		if err == nil {
			for _, p := range products {
				names = append(names, p.Name)
			}
		}
		msg := "Not enough stock"
		if len(names) > 0 {
			msg = "Not enough stock for: " + strings.Join(names, ", ")
		}
		return nil, apperror.NewConflictError(msg)
	}

	invoice.Status = enum.OrderStatusApproved
	return invoice, nil
}

// RejectInvoice discards a pending draft. Approved invoices are part of the
// sales history and cannot be removed.
func (s *InvoiceService) RejectInvoice(ctx context.Context, id uuid.UUID) error {
	invoice, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if invoice == nil {
		return apperror.NewNotFoundError("Invoice")
	}
	if invoice.Status != enum.OrderStatusPending {
		return apperror.NewConflictError("Approved invoices cannot be rejected")
	}

	return s.invoiceRepo.Delete(ctx, id)
}
