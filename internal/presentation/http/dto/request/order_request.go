package request

// PurchaseItemRequest represents one line of a purchase draft. Omitting
// product_id marks a new-product line; approval will create the product.
type PurchaseItemRequest struct {
	ProductID  *string `json:"product_id,omitempty" binding:"omitempty,uuid"`
	Name       string  `json:"name,omitempty"`
	CategoryID *string `json:"category_id,omitempty" binding:"omitempty,uuid"`
	UnitID     *string `json:"unit_id,omitempty" binding:"omitempty,uuid"`
	UnitName   string  `json:"unit_name,omitempty"`
	Quantity   int     `json:"quantity" binding:"required,gt=0"`
	Price      float64 `json:"price" binding:"gte=0"`
}

// CreatePurchaseRequest represents the purchase draft payload
type CreatePurchaseRequest struct {
	Date       string                `json:"date" binding:"required"`
	SupplierID *string               `json:"supplier_id,omitempty" binding:"omitempty,uuid"`
	Items      []PurchaseItemRequest `json:"items" binding:"required,min=1,dive"`
}

// InvoiceItemRequest represents one line of an invoice draft
type InvoiceItemRequest struct {
	ProductID string  `json:"product_id" binding:"required,uuid"`
	Quantity  int     `json:"quantity" binding:"required,gt=0"`
	Price     float64 `json:"price" binding:"gte=0"`
}

// CreateInvoiceRequest represents the invoice draft payload
type CreateInvoiceRequest struct {
	Date          string               `json:"date" binding:"required"`
	CustomerID    *string              `json:"customer_id,omitempty" binding:"omitempty,uuid"`
	PaymentMethod string               `json:"payment_method" binding:"required"`
	Note          *string              `json:"note,omitempty"`
	Items         []InvoiceItemRequest `json:"items" binding:"required,min=1,dive"`
}
