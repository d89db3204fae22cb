package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/veldtlabs/agencydesk-backend/internal/http/response"
	"github.com/veldtlabs/agencydesk-backend/internal/services"
)

type DashboardHandler struct {
	dashboardService services.DashboardService
}

func NewDashboardHandler(dashboardService services.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

func (h *DashboardHandler) Summary(c *gin.Context) {
	agencyID, ok := queryAgencyID(c)
	if !ok {
		return
	}
	summary, err := h.dashboardService.Summary(c.Request.Context(), agencyID)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, summary)
}
