package request

// CreateProductRequest represents the product creation payload
type CreateProductRequest struct {
	Name       string  `json:"name" binding:"required,min=1,max=255"`
	SupplierID *string `json:"supplier_id,omitempty" binding:"omitempty,uuid"`
	CategoryID *string `json:"category_id,omitempty" binding:"omitempty,uuid"`
	UnitID     *string `json:"unit_id,omitempty" binding:"omitempty,uuid"`
}

// UpdateProductRequest represents the product update payload
type UpdateProductRequest struct {
	Name       string  `json:"name,omitempty"`
	SupplierID *string `json:"supplier_id,omitempty" binding:"omitempty,uuid"`
	CategoryID *string `json:"category_id,omitempty" binding:"omitempty,uuid"`
	UnitID     *string `json:"unit_id,omitempty" binding:"omitempty,uuid"`
}
