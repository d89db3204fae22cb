package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/veldtlabs/agencydesk-backend/internal/authz"
	"github.com/veldtlabs/agencydesk-backend/internal/platform/apperr"
	"github.com/veldtlabs/agencydesk-backend/internal/platform/ctxutil"
)

// identityFrom pulls the authenticated identity off the context. Every
// service entrypoint goes through here first; a missing identity is a
// permission failure, not an internal one.
func identityFrom(ctx context.Context, op string) (*ctxutil.RequestData, error) {
	rd := ctxutil.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, apperr.PermissionDenied(op, "not authenticated")
	}
	return rd, nil
}

// tenantScope resolves the agency a request operates on. Regular roles
// are pinned to their own agency and any explicit agency_id is ignored.
// super_admin carries no agency of its own, so it must name one.
func tenantScope(rd *ctxutil.RequestData, explicit *uuid.UUID, op string) (uuid.UUID, error) {
	if rd.Role.RequiresAgency() {
		if rd.AgencyID == nil || *rd.AgencyID == uuid.Nil {
			return uuid.Nil, apperr.PermissionDenied(op, "account is not attached to an agency")
		}
		return *rd.AgencyID, nil
	}
	if explicit == nil || *explicit == uuid.Nil {
		return uuid.Nil, apperr.Validation(op, "agency_id is required")
	}
	return *explicit, nil
}

func requireCapability(rd *ctxutil.RequestData, cap authz.Capability, op string) error {
	if !authz.Can(rd.Role, cap) {
		return apperr.PermissionDenied(op, "role "+string(rd.Role)+" lacks "+string(cap))
	}
	return nil
}
