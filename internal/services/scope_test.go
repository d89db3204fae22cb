package services

import (
	"testing"

	"github.com/google/uuid"

	"github.com/veldtlabs/agencydesk-backend/internal/authz"
	"github.com/veldtlabs/agencydesk-backend/internal/domain"
	"github.com/veldtlabs/agencydesk-backend/internal/platform/apperr"
	"github.com/veldtlabs/agencydesk-backend/internal/platform/ctxutil"
)

func TestTenantScope(t *testing.T) {
	agencyA := uuid.New()
	agencyB := uuid.New()

	t.Run("regular role pinned to own agency", func(t *testing.T) {
		rd := &ctxutil.RequestData{UserID: uuid.New(), Role: domain.RoleAgencyAdmin, AgencyID: &agencyA}
		got, err := tenantScope(rd, &agencyB, "test")
		if err != nil {
			t.Fatalf("tenantScope: %v", err)
		}
		if got != agencyA {
			t.Fatalf("explicit agency must be ignored for regular roles, got %s", got)
		}
	})

	t.Run("regular role without agency is denied", func(t *testing.T) {
		rd := &ctxutil.RequestData{UserID: uuid.New(), Role: domain.RoleTeamMember}
		_, err := tenantScope(rd, nil, "test")
		if !apperr.IsKind(err, apperr.KindPermissionDenied) {
			t.Fatalf("want permission_denied, got %v", err)
		}
	})

	t.Run("super_admin must name an agency", func(t *testing.T) {
		rd := &ctxutil.RequestData{UserID: uuid.New(), Role: domain.RoleSuperAdmin}
		_, err := tenantScope(rd, nil, "test")
		if !apperr.IsKind(err, apperr.KindValidation) {
			t.Fatalf("want validation, got %v", err)
		}
		got, err := tenantScope(rd, &agencyB, "test")
		if err != nil {
			t.Fatalf("tenantScope: %v", err)
		}
		if got != agencyB {
			t.Fatalf("super_admin scope = %s, want %s", got, agencyB)
		}
	})
}

func TestRequireCapability(t *testing.T) {
	rd := &ctxutil.RequestData{UserID: uuid.New(), Role: domain.RoleTeamMember}
	if err := requireCapability(rd, authz.CapManageTasks, "test"); err != nil {
		t.Fatalf("team_member should manage tasks: %v", err)
	}
	err := requireCapability(rd, authz.CapManageTeam, "test")
	if !apperr.IsKind(err, apperr.KindPermissionDenied) {
		t.Fatalf("want permission_denied, got %v", err)
	}

	rd.Role = domain.RoleClient
	err = requireCapability(rd, authz.CapManageClients, "test")
	if !apperr.IsKind(err, apperr.KindPermissionDenied) {
		t.Fatalf("client role must be read-only, got %v", err)
	}
}
