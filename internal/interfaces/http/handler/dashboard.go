package handler

import (
	dashboardapp "github.com/RaymondAkiiki/property-management-webapp-sub001/internal/application/dashboard"
	"github.com/gin-gonic/gin"
)

// DashboardHandler serves the owner dashboard
type DashboardHandler struct {
	BaseHandler
	dashboardService *dashboardapp.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(dashboardService *dashboardapp.DashboardService) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
	}
}

// Summary godoc
// @ID           getDashboardSummary
// @Summary      Dashboard summary
// @Description  Occupancy and tenant counts, open maintenance requests, upcoming lease ends and appointments, and recent activity
// @Tags         dashboard
// @Produce      json
// @Success      200 {object} APIResponse[dashboardapp.SummaryResponse]
// @Failure      401 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /dashboard [get]
func (h *DashboardHandler) Summary(c *gin.Context) {
	callerID, ok := h.callerID(c)
	if !ok {
		return
	}

	summary, err := h.dashboardService.Summary(c.Request.Context(), callerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, summary)
}
