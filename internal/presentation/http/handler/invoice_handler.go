package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/tuanvm/stockwise-api/internal/application/service"
	"github.com/tuanvm/stockwise-api/internal/domain/enum"
	"github.com/tuanvm/stockwise-api/internal/domain/repository"
	"github.com/tuanvm/stockwise-api/internal/presentation/http/dto/request"
	"github.com/tuanvm/stockwise-api/internal/presentation/http/dto/response"
)

// InvoiceHandler handles sales invoice endpoints
type InvoiceHandler struct {
	invoiceService *service.InvoiceService
}

// NewInvoiceHandler creates a new invoice handler
func NewInvoiceHandler(invoiceService *service.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService}
}

// List handles GET /invoices
func (h *InvoiceHandler) List(c *gin.Context) {
	params := &repository.InvoiceFilterParams{
		Pagination: parsePagination(c),
		Search:     c.Query("search"),
		SortBy:     c.Query("sort_by"),
		SortOrder:  c.Query("sort_order"),
	}

	if v := c.Query("status"); v != "" {
		status, err := enum.ParseOrderStatus(v)
		if err != nil {
			response.BadRequest(c, "Invalid status")
			return
		}
		params.Status = &status
	}
	if v := c.Query("customer_id"); v != "" {
		id, ok := parseOptionalUUID(&v)
		if !ok {
			response.BadRequest(c, "Invalid customer ID")
			return
		}
		params.CustomerID = id
	}
	if v := c.Query("start_date"); v != "" {
		t, ok := parseDate(v)
		if !ok {
			response.BadRequest(c, "Invalid start date")
			return
		}
		params.StartDate = &t
	}
	if v := c.Query("end_date"); v != "" {
		t, ok := parseDate(v)
		if !ok {
			response.BadRequest(c, "Invalid end date")
			return
		}
		params.EndDate = &t
	}

	result, err := h.invoiceService.ListInvoices(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Invoices retrieved", result)
}

// ListPending handles GET /invoices/pending
func (h *InvoiceHandler) ListPending(c *gin.Context) {
	params := parsePagination(c)

	result, err := h.invoiceService.ListPendingInvoices(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Pending invoices retrieved", result)
}

// Get handles GET /invoices/:id
func (h *InvoiceHandler) Get(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	invoice, err := h.invoiceService.GetInvoice(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice retrieved", invoice)
}

// Create handles POST /invoices
func (h *InvoiceHandler) Create(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "Not authenticated")
		return
	}

	var req request.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request payload")
		return
	}

	date, ok := parseDate(req.Date)
	if !ok {
		response.BadRequest(c, "Invalid date, expected YYYY-MM-DD")
		return
	}

	input := &service.CreateInvoiceInput{
		Date:          date,
		PaymentMethod: req.PaymentMethod,
		Note:          req.Note,
		CreatedBy:     *userID,
	}
	if input.CustomerID, ok = parseOptionalUUID(req.CustomerID); !ok {
		response.BadRequest(c, "Invalid customer ID")
		return
	}

	for _, item := range req.Items {
		productID := item.ProductID
		id, ok := parseOptionalUUID(&productID)
		if !ok || id == nil {
			response.BadRequest(c, "Invalid product ID in items")
			return
		}
		input.Items = append(input.Items, service.InvoiceItemInput{
			ProductID: *id,
			Quantity:  item.Quantity,
			Price:     item.Price,
		})
	}

	invoice, err := h.invoiceService.CreateInvoice(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Invoice draft created", invoice)
}

// Approve handles POST /invoices/:id/approve
func (h *InvoiceHandler) Approve(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	invoice, err := h.invoiceService.ApproveInvoice(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice approved", invoice)
}

// Reject handles DELETE /invoices/:id
func (h *InvoiceHandler) Reject(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	if err := h.invoiceService.RejectInvoice(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice rejected", nil)
}
