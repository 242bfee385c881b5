package handler

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tuanvm/stockwise-api/internal/application/service"
	"github.com/tuanvm/stockwise-api/internal/presentation/http/dto/response"
)

// InventoryHandler handles inventory snapshot and spreadsheet endpoints
type InventoryHandler struct {
	inventoryService *service.InventoryService
}

// NewInventoryHandler creates a new inventory handler
func NewInventoryHandler(inventoryService *service.InventoryService) *InventoryHandler {
	return &InventoryHandler{inventoryService: inventoryService}
}

// Snapshot handles GET /inventory
func (h *InventoryHandler) Snapshot(c *gin.Context) {
	products, err := h.inventoryService.GetSnapshot(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Inventory snapshot", products)
}

// Export handles GET /inventory/export and streams an xlsx workbook
func (h *InventoryHandler) Export(c *gin.Context) {
	workbook, err := h.inventoryService.ExportWorkbook(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	defer workbook.Close()

	filename := fmt.Sprintf("inventory-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")

	if err := workbook.Write(c.Writer); err != nil {
		response.Error(c, err)
		return
	}
}

// Import handles POST /inventory/import. It parses a filled export workbook
// and returns purchase draft lines; the client then submits them through the
// normal purchase creation flow.
func (h *InventoryHandler) Import(c *gin.Context) {
	supplierIDStr := c.PostForm("supplier_id")
	supplierID, ok := parseOptionalUUID(&supplierIDStr)
	if !ok || supplierID == nil {
		response.BadRequest(c, "supplier_id form field is required")
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "file form field is required")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.BadRequest(c, "Could not open uploaded file")
		return
	}
	defer file.Close()

	items, err := h.inventoryService.ImportDraft(c.Request.Context(), *supplierID, file)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Workbook parsed", gin.H{"items": items})
}
