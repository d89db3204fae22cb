package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/veldtlabs/agencydesk-backend/internal/http/response"
	"github.com/veldtlabs/agencydesk-backend/internal/services"
)

type ContactHandler struct {
	contactService services.ContactService
}

func NewContactHandler(contactService services.ContactService) *ContactHandler {
	return &ContactHandler{contactService: contactService}
}

func (h *ContactHandler) Create(c *gin.Context) {
	var req services.ContactCreateInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	contact, err := h.contactService.Create(c.Request.Context(), req)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondCreated(c, contact)
}

func (h *ContactHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	agencyID, ok := queryAgencyID(c)
	if !ok {
		return
	}
	contact, err := h.contactService.Get(c.Request.Context(), agencyID, id)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, contact)
}

func (h *ContactHandler) List(c *gin.Context) {
	agencyID, ok := queryAgencyID(c)
	if !ok {
		return
	}
	rows, err := h.contactService.List(c.Request.Context(), agencyID)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"contacts": rows})
}

func (h *ContactHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req services.ContactUpdateInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	contact, err := h.contactService.Update(c.Request.Context(), id, req)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, contact)
}

func (h *ContactHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	agencyID, ok := queryAgencyID(c)
	if !ok {
		return
	}
	if err := h.contactService.Delete(c.Request.Context(), agencyID, id); err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}
