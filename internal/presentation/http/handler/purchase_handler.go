package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/tuanvm/stockwise-api/internal/application/service"
	"github.com/tuanvm/stockwise-api/internal/domain/enum"
	"github.com/tuanvm/stockwise-api/internal/domain/repository"
	"github.com/tuanvm/stockwise-api/internal/presentation/http/dto/request"
	"github.com/tuanvm/stockwise-api/internal/presentation/http/dto/response"
)

// PurchaseHandler handles purchase order endpoints
type PurchaseHandler struct {
	purchaseService *service.PurchaseService
}

// NewPurchaseHandler creates a new purchase handler
func NewPurchaseHandler(purchaseService *service.PurchaseService) *PurchaseHandler {
	return &PurchaseHandler{purchaseService: purchaseService}
}

// List handles GET /purchases
func (h *PurchaseHandler) List(c *gin.Context) {
	params := &repository.PurchaseFilterParams{
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
	if v := c.Query("supplier_id"); v != "" {
		id, ok := parseOptionalUUID(&v)
		if !ok {
			response.BadRequest(c, "Invalid supplier ID")
			return
		}
		params.SupplierID = id
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

	result, err := h.purchaseService.ListPurchases(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Purchases retrieved", result)
}

// ListPending handles GET /purchases/pending
func (h *PurchaseHandler) ListPending(c *gin.Context) {
	params := parsePagination(c)

	result, err := h.purchaseService.ListPendingPurchases(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Pending purchases retrieved", result)
}

// Get handles GET /purchases/:id
func (h *PurchaseHandler) Get(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid purchase ID")
		return
	}

	purchase, err := h.purchaseService.GetPurchase(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Purchase retrieved", purchase)
}

// Create handles POST /purchases
func (h *PurchaseHandler) Create(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "Not authenticated")
		return
	}

	var req request.CreatePurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request payload")
		return
	}

	date, ok := parseDate(req.Date)
	if !ok {
		response.BadRequest(c, "Invalid date, expected YYYY-MM-DD")
		return
	}

	input := &service.CreatePurchaseInput{
		Date:      date,
		CreatedBy: *userID,
	}
	if input.SupplierID, ok = parseOptionalUUID(req.SupplierID); !ok {
		response.BadRequest(c, "Invalid supplier ID")
		return
	}

	for _, item := range req.Items {
		line := service.PurchaseItemInput{
			Name:     item.Name,
			UnitName: item.UnitName,
			Quantity: item.Quantity,
			Price:    item.Price,
		}
		if line.ProductID, ok = parseOptionalUUID(item.ProductID); !ok {
			response.BadRequest(c, "Invalid product ID in items")
			return
		}
		if line.CategoryID, ok = parseOptionalUUID(item.CategoryID); !ok {
			response.BadRequest(c, "Invalid category ID in items")
			return
		}
		if line.UnitID, ok = parseOptionalUUID(item.UnitID); !ok {
			response.BadRequest(c, "Invalid unit ID in items")
			return
		}
		input.Items = append(input.Items, line)
	}

	purchase, err := h.purchaseService.CreatePurchase(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Purchase draft created", purchase)
}

// Approve handles POST /purchases/:id/approve
func (h *PurchaseHandler) Approve(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid purchase ID")
		return
	}

	purchase, err := h.purchaseService.ApprovePurchase(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Purchase approved", purchase)
}

// Reject handles DELETE /purchases/:id
func (h *PurchaseHandler) Reject(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid purchase ID")
		return
	}

	if err := h.purchaseService.RejectPurchase(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Purchase rejected", nil)
}
