package domain

import (
	"time"

	"github.com/google/uuid"
)

// Agency is the tenant root. Every other business record hangs off one
// agency and dies with it.
type Agency struct {
	ID       uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Name     string    `gorm:"not null;column:name" json:"name"`
	Slug     string    `gorm:"uniqueIndex;not null;column:slug" json:"slug"`
	Industry string    `gorm:"column:industry" json:"industry"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (Agency) TableName() string { return "agency" }
