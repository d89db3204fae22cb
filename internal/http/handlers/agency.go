package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/veldtlabs/agencydesk-backend/internal/http/response"
	"github.com/veldtlabs/agencydesk-backend/internal/services"
)

type AgencyHandler struct {
	agencyService services.AgencyService
}

func NewAgencyHandler(agencyService services.AgencyService) *AgencyHandler {
	return &AgencyHandler{agencyService: agencyService}
}

func (h *AgencyHandler) Get(c *gin.Context) {
	agencyID, ok := queryAgencyID(c)
	if !ok {
		return
	}
	agency, err := h.agencyService.Get(c.Request.Context(), agencyID)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, agency)
}

func (h *AgencyHandler) Update(c *gin.Context) {
	agencyID, ok := queryAgencyID(c)
	if !ok {
		return
	}
	var req services.AgencyUpdateInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	agency, err := h.agencyService.Update(c.Request.Context(), agencyID, req)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, agency)
}

func (h *AgencyHandler) Create(c *gin.Context) {
	var req services.AgencyCreateInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	agency, err := h.agencyService.Create(c.Request.Context(), req)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondCreated(c, agency)
}

func (h *AgencyHandler) List(c *gin.Context) {
	rows, err := h.agencyService.List(c.Request.Context())
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"agencies": rows})
}
