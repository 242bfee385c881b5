package request

// UpdateRoleRequest represents the role assignment payload
type UpdateRoleRequest struct {
	Role string `json:"role" binding:"required"`
}
