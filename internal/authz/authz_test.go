package authz

import (
	"testing"

	"github.com/veldtlabs/agencydesk-backend/internal/domain"
)

func TestCanMatchesGrantTable(t *testing.T) {
	want := map[domain.Role]map[Capability]bool{
		domain.RoleSuperAdmin: {
			CapManageClients: true, CapManageProjects: true, CapManageTasks: true,
			CapManageTeam: true, CapManageAssets: true,
		},
		domain.RoleAgencyAdmin: {
			CapManageClients: true, CapManageProjects: true, CapManageTasks: true,
			CapManageTeam: true, CapManageAssets: true,
		},
		domain.RoleTeamMember: {
			CapManageClients: true, CapManageProjects: true, CapManageTasks: true,
			CapManageTeam: false, CapManageAssets: true,
		},
		domain.RoleClient: {
			CapManageClients: false, CapManageProjects: false, CapManageTasks: false,
			CapManageTeam: false, CapManageAssets: false,
		},
	}
	for role, caps := range want {
		for cap, allowed := range caps {
			if got := Can(role, cap); got != allowed {
				t.Errorf("Can(%s, %s) = %v, want %v", role, cap, got, allowed)
			}
		}
	}
}

func TestCanDeniesUnknownRole(t *testing.T) {
	for _, role := range []domain.Role{"", "admin", "root", "SUPER_ADMIN", "agency-admin"} {
		for _, cap := range AllCapabilities() {
			if Can(role, cap) {
				t.Errorf("Can(%q, %s) must deny unrecognized roles", role, cap)
			}
		}
	}
}

func TestCanDeniesUnknownCapability(t *testing.T) {
	if Can(domain.RoleSuperAdmin, Capability("manage-everything")) {
		t.Fatalf("unknown capability must deny even for super_admin")
	}
}

func TestCapabilitiesFor(t *testing.T) {
	caps := CapabilitiesFor(domain.RoleTeamMember)
	if len(caps) != 4 {
		t.Fatalf("team_member capabilities: got %v", caps)
	}
	for _, cap := range caps {
		if cap == CapManageTeam {
			t.Fatalf("team_member must not hold manage-team")
		}
	}
	if CapabilitiesFor(domain.Role("ghost")) != nil {
		t.Fatalf("unknown role must have no capabilities")
	}
	if len(CapabilitiesFor(domain.RoleClient)) != 0 {
		t.Fatalf("client role must have no capabilities")
	}
}
