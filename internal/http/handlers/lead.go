package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/veldtlabs/agencydesk-backend/internal/http/response"
	"github.com/veldtlabs/agencydesk-backend/internal/services"
)

type LeadHandler struct {
	leadService services.LeadService
}

func NewLeadHandler(leadService services.LeadService) *LeadHandler {
	return &LeadHandler{leadService: leadService}
}

func (h *LeadHandler) Create(c *gin.Context) {
	var req services.LeadCreateInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	lead, err := h.leadService.Create(c.Request.Context(), req)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondCreated(c, lead)
}

func (h *LeadHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	agencyID, ok := queryAgencyID(c)
	if !ok {
		return
	}
	lead, err := h.leadService.Get(c.Request.Context(), agencyID, id)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, lead)
}

func (h *LeadHandler) List(c *gin.Context) {
	agencyID, ok := queryAgencyID(c)
	if !ok {
		return
	}
	rows, err := h.leadService.List(c.Request.Context(), agencyID)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"leads": rows})
}

func (h *LeadHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req services.LeadUpdateInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	lead, err := h.leadService.Update(c.Request.Context(), id, req)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, lead)
}

func (h *LeadHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	agencyID, ok := queryAgencyID(c)
	if !ok {
		return
	}
	if err := h.leadService.Delete(c.Request.Context(), agencyID, id); err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}
