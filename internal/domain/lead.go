package domain

import (
	"time"

	"github.com/google/uuid"
)

const (
	LeadStatusNew       = "new"
	LeadStatusContacted = "contacted"
	LeadStatusQualified = "qualified"
	LeadStatusWon       = "won"
	LeadStatusLost      = "lost"
)

type Lead struct {
	ID             uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	AgencyID       uuid.UUID `gorm:"type:uuid;index;not null;column:agency_id" json:"agency_id"`
	Name           string    `gorm:"not null;column:name" json:"name"`
	Email          string    `gorm:"column:email" json:"email"`
	Phone          string    `gorm:"column:phone" json:"phone"`
	Company        string    `gorm:"column:company" json:"company"`
	Source         string    `gorm:"column:source" json:"source"`
	Status         string    `gorm:"not null;default:new;column:status" json:"status"`
	EstimatedValue float64   `gorm:"column:estimated_value" json:"estimated_value"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (Lead) TableName() string { return "lead" }
