package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/tuanvm/stockwise-api/internal/application/service"
	"github.com/tuanvm/stockwise-api/internal/domain/repository"
	"github.com/tuanvm/stockwise-api/internal/presentation/http/dto/request"
	"github.com/tuanvm/stockwise-api/internal/presentation/http/dto/response"
)

// ProductHandler handles product catalog endpoints
type ProductHandler struct {
	productService *service.ProductService
}

// NewProductHandler creates a new product handler
func NewProductHandler(productService *service.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// List handles GET /products
func (h *ProductHandler) List(c *gin.Context) {
	params := &repository.ProductFilterParams{
		Pagination: parsePagination(c),
		Search:     c.Query("search"),
		SortBy:     c.Query("sort_by"),
		SortOrder:  c.Query("sort_order"),
	}

	if v := c.Query("supplier_id"); v != "" {
		id, ok := parseOptionalUUID(&v)
		if !ok {
			response.BadRequest(c, "Invalid supplier ID")
			return
		}
		params.SupplierID = id
	}
	if v := c.Query("category_id"); v != "" {
		id, ok := parseOptionalUUID(&v)
		if !ok {
			response.BadRequest(c, "Invalid category ID")
			return
		}
		params.CategoryID = id
	}

	result, err := h.productService.ListProducts(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Products retrieved", result)
}

// Get handles GET /products/:id
func (h *ProductHandler) Get(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid product ID")
		return
	}

	product, err := h.productService.GetProduct(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Product retrieved", product)
}

// Create handles POST /products
func (h *ProductHandler) Create(c *gin.Context) {
	var req request.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request payload")
		return
	}

	input := &service.ProductInput{Name: req.Name}
	var ok bool
	if input.SupplierID, ok = parseOptionalUUID(req.SupplierID); !ok {
		response.BadRequest(c, "Invalid supplier ID")
		return
	}
	if input.CategoryID, ok = parseOptionalUUID(req.CategoryID); !ok {
		response.BadRequest(c, "Invalid category ID")
		return
	}
	if input.UnitID, ok = parseOptionalUUID(req.UnitID); !ok {
		response.BadRequest(c, "Invalid unit ID")
		return
	}

	product, err := h.productService.CreateProduct(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Product created", product)
}

// Update handles PUT /products/:id
func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid product ID")
		return
	}

	var req request.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request payload")
		return
	}

	input := &service.ProductInput{Name: req.Name}
	if input.SupplierID, ok = parseOptionalUUID(req.SupplierID); !ok {
		response.BadRequest(c, "Invalid supplier ID")
		return
	}
	if input.CategoryID, ok = parseOptionalUUID(req.CategoryID); !ok {
		response.BadRequest(c, "Invalid category ID")
		return
	}
	if input.UnitID, ok = parseOptionalUUID(req.UnitID); !ok {
		response.BadRequest(c, "Invalid unit ID")
		return
	}

	product, err := h.productService.UpdateProduct(c.Request.Context(), id, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Product updated", product)
}

// Delete handles DELETE /products/:id
func (h *ProductHandler) Delete(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid product ID")
		return
	}

	if err := h.productService.DeleteProduct(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Product deleted", nil)
}
