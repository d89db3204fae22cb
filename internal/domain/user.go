package domain

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleSuperAdmin  Role = "super_admin"
	RoleAgencyAdmin Role = "agency_admin"
	RoleTeamMember  Role = "team_member"
	RoleClient      Role = "client"
)

func (r Role) Valid() bool {
	switch r {
	case RoleSuperAdmin, RoleAgencyAdmin, RoleTeamMember, RoleClient:
		return true
	}
	return false
}

// RequiresAgency reports whether users with this role must belong to an
// agency. Only super_admin may have a null agency_id.
func (r Role) RequiresAgency() bool {
	return r != RoleSuperAdmin
}

type User struct {
	ID       uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Email    string     `gorm:"uniqueIndex;not null;column:email" json:"email"`
	Password string     `gorm:"not null;column:password" json:"-"`
	FullName string     `gorm:"not null;column:full_name" json:"full_name"`
	Role     Role       `gorm:"not null;column:role" json:"role"`
	AgencyID *uuid.UUID `gorm:"type:uuid;index;column:agency_id" json:"agency_id"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (User) TableName() string { return "user" }
