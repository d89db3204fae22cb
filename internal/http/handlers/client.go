package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/veldtlabs/agencydesk-backend/internal/http/response"
	"github.com/veldtlabs/agencydesk-backend/internal/services"
)

type ClientHandler struct {
	clientService services.ClientService
}

func NewClientHandler(clientService services.ClientService) *ClientHandler {
	return &ClientHandler{clientService: clientService}
}

func (h *ClientHandler) Create(c *gin.Context) {
	var req services.ClientCreateInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	client, err := h.clientService.Create(c.Request.Context(), req)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondCreated(c, client)
}

func (h *ClientHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	agencyID, ok := queryAgencyID(c)
	if !ok {
		return
	}
	client, err := h.clientService.Get(c.Request.Context(), agencyID, id)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, client)
}

func (h *ClientHandler) List(c *gin.Context) {
	agencyID, ok := queryAgencyID(c)
	if !ok {
		return
	}
	rows, err := h.clientService.List(c.Request.Context(), agencyID)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"clients": rows})
}

func (h *ClientHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req services.ClientUpdateInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	client, err := h.clientService.Update(c.Request.Context(), id, req)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, client)
}

func (h *ClientHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	agencyID, ok := queryAgencyID(c)
	if !ok {
		return
	}
	if err := h.clientService.Delete(c.Request.Context(), agencyID, id); err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}
