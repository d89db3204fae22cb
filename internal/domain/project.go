package domain

import (
	"time"

	"github.com/google/uuid"
)

const (
	ProjectStatusPlanning  = "planning"
	ProjectStatusActive    = "active"
	ProjectStatusOnHold    = "on_hold"
	ProjectStatusCompleted = "completed"
	ProjectStatusCanceled  = "canceled"
)

const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
	PriorityUrgent = "urgent"
)

// Project references a Client and its creating User; both must live in
// the project's agency.
type Project struct {
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	AgencyID    uuid.UUID `gorm:"type:uuid;index;not null;column:agency_id" json:"agency_id"`
	ClientID    uuid.UUID `gorm:"type:uuid;index;not null;column:client_id" json:"client_id"`
	Name        string    `gorm:"not null;column:name" json:"name"`
	Description string    `gorm:"column:description" json:"description"`
	Status      string    `gorm:"not null;default:planning;column:status" json:"status"`
	Priority    string    `gorm:"not null;default:medium;column:priority" json:"priority"`
	Budget      float64   `gorm:"column:budget" json:"budget"`
	CreatedBy   uuid.UUID `gorm:"type:uuid;not null;column:created_by" json:"created_by"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (Project) TableName() string { return "project" }
