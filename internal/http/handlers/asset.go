package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/veldtlabs/agencydesk-backend/internal/http/response"
	"github.com/veldtlabs/agencydesk-backend/internal/services"
)

type AssetHandler struct {
	assetService services.AssetService
}

func NewAssetHandler(assetService services.AssetService) *AssetHandler {
	return &AssetHandler{assetService: assetService}
}

func (h *AssetHandler) Create(c *gin.Context) {
	var req services.AssetCreateInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	asset, err := h.assetService.Create(c.Request.Context(), req)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondCreated(c, asset)
}

func (h *AssetHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	agencyID, ok := queryAgencyID(c)
	if !ok {
		return
	}
	asset, err := h.assetService.Get(c.Request.Context(), agencyID, id)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, asset)
}

func (h *AssetHandler) List(c *gin.Context) {
	agencyID, ok := queryAgencyID(c)
	if !ok {
		return
	}
	rows, err := h.assetService.List(c.Request.Context(), agencyID)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"assets": rows})
}

func (h *AssetHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req services.AssetUpdateInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	asset, err := h.assetService.Update(c.Request.Context(), id, req)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, asset)
}

func (h *AssetHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	agencyID, ok := queryAgencyID(c)
	if !ok {
		return
	}
	if err := h.assetService.Delete(c.Request.Context(), agencyID, id); err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}
