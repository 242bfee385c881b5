package request

// PartnerRequest represents supplier/customer create and update payloads.
// Both carry the same contact fields.
type PartnerRequest struct {
	Name    string  `json:"name" binding:"required,min=1,max=255"`
	Phone   *string `json:"phone,omitempty"`
	Email   *string `json:"email,omitempty" binding:"omitempty,email"`
	Address *string `json:"address,omitempty"`
}

// NameRequest represents category/unit create and update payloads
type NameRequest struct {
	Name string `json:"name" binding:"required,min=1,max=255"`
}
