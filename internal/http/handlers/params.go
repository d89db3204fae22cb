package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/veldtlabs/agencydesk-backend/internal/http/response"
)

// pathID parses the :id path segment. Reports its own 400 and returns
// false when the segment is not a uuid.
func pathID(c *gin.Context) (uuid.UUID, bool) {
	raw := strings.TrimSpace(c.Param("id"))
	id, err := uuid.Parse(raw)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return uuid.Nil, false
	}
	return id, true
}

// queryAgencyID reads the optional agency_id query parameter used by
// super_admin callers to name a target tenant. Absent means nil.
func queryAgencyID(c *gin.Context) (*uuid.UUID, bool) {
	raw := strings.TrimSpace(c.Query("agency_id"))
	if raw == "" {
		return nil, true
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_agency_id", err)
		return nil, false
	}
	return &id, true
}

func queryUUID(c *gin.Context, name string) (*uuid.UUID, bool) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, true
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_"+name, err)
		return nil, false
	}
	return &id, true
}
