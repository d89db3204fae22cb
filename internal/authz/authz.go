// Package authz is the role-capability gate. It is a pure table lookup:
// no session state, no storage, total over every input including role
// values that do not exist.
package authz

import (
	"sort"

	"github.com/veldtlabs/agencydesk-backend/internal/domain"
)

type Capability string

const (
	CapManageClients  Capability = "manage-clients"
	CapManageProjects Capability = "manage-projects"
	CapManageTasks    Capability = "manage-tasks"
	CapManageTeam     Capability = "manage-team"
	CapManageAssets   Capability = "manage-assets"
)

// AllCapabilities lists every known capability in stable order.
func AllCapabilities() []Capability {
	return []Capability{
		CapManageClients,
		CapManageProjects,
		CapManageTasks,
		CapManageTeam,
		CapManageAssets,
	}
}

var grants = map[domain.Role]map[Capability]bool{
	domain.RoleSuperAdmin: {
		CapManageClients:  true,
		CapManageProjects: true,
		CapManageTasks:    true,
		CapManageTeam:     true,
		CapManageAssets:   true,
	},
	domain.RoleAgencyAdmin: {
		CapManageClients:  true,
		CapManageProjects: true,
		CapManageTasks:    true,
		CapManageTeam:     true,
		CapManageAssets:   true,
	},
	domain.RoleTeamMember: {
		CapManageClients:  true,
		CapManageProjects: true,
		CapManageTasks:    true,
		CapManageTeam:     false,
		CapManageAssets:   true,
	},
	domain.RoleClient: {},
}

// Can reports whether role may exercise cap. Unrecognized roles and
// capabilities always deny.
func Can(role domain.Role, cap Capability) bool {
	caps, ok := grants[role]
	if !ok {
		return false
	}
	return caps[cap]
}

// CapabilitiesFor returns the granted capabilities of a role, sorted.
func CapabilitiesFor(role domain.Role) []Capability {
	caps, ok := grants[role]
	if !ok {
		return nil
	}
	var out []Capability
	for cap, allowed := range caps {
		if allowed {
			out = append(out, cap)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
