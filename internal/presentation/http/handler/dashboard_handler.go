package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/tuanvm/stockwise-api/internal/application/service"
	"github.com/tuanvm/stockwise-api/internal/presentation/http/dto/response"
)

// DashboardHandler handles dashboard endpoints
type DashboardHandler struct {
	dashboardService *service.DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// Summary handles GET /dashboard
func (h *DashboardHandler) Summary(c *gin.Context) {
	days := 30
	if v := c.Query("days"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed <= 0 || parsed > 365 {
			response.BadRequest(c, "Invalid days parameter")
			return
		}
		days = parsed
	}

	summary, err := h.dashboardService.GetSummary(c.Request.Context(), days)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Dashboard summary", summary)
}
