package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/veldtlabs/agencydesk-backend/internal/http/response"
	"github.com/veldtlabs/agencydesk-backend/internal/services"
)

type UserHandler struct {
	userService    services.UserService
	cascadeService services.CascadeService
}

func NewUserHandler(userService services.UserService, cascadeService services.CascadeService) *UserHandler {
	return &UserHandler{userService: userService, cascadeService: cascadeService}
}

func (h *UserHandler) GetMe(c *gin.Context) {
	user, err := h.userService.GetMe(c.Request.Context())
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, user)
}

func (h *UserHandler) ListTeam(c *gin.Context) {
	agencyID, ok := queryAgencyID(c)
	if !ok {
		return
	}
	rows, err := h.userService.ListTeam(c.Request.Context(), agencyID)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"members": rows})
}

func (h *UserHandler) GetTeamMember(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	agencyID, ok := queryAgencyID(c)
	if !ok {
		return
	}
	user, err := h.userService.GetTeamMember(c.Request.Context(), agencyID, id)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, user)
}

func (h *UserHandler) CreateTeamMember(c *gin.Context) {
	var req services.TeamMemberCreateInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	user, err := h.userService.CreateTeamMember(c.Request.Context(), req)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondCreated(c, user)
}

func (h *UserHandler) UpdateTeamMember(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req services.TeamMemberUpdateInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	user, err := h.userService.UpdateTeamMember(c.Request.Context(), id, req)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, user)
}

// DeleteTeamMember removes a member; when the member was the last one
// in the agency, the whole tenant goes with them and the response
// reports per-table deletion counts.
func (h *UserHandler) DeleteTeamMember(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	agencyID, ok := queryAgencyID(c)
	if !ok {
		return
	}
	result, err := h.cascadeService.DeleteTeamMember(c.Request.Context(), agencyID, id)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, result)
}

// DeleteUserByEmail is the email-addressed variant of member removal.
func (h *UserHandler) DeleteUserByEmail(c *gin.Context) {
	var req struct {
		Email string `json:"email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	result, err := h.cascadeService.DeleteUserByEmail(c.Request.Context(), req.Email)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, result)
}
