package domain

import (
	"time"

	"github.com/google/uuid"
)

const (
	ClientStatusActive   = "active"
	ClientStatusInactive = "inactive"
	ClientStatusArchived = "archived"
)

type Client struct {
	ID           uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	AgencyID     uuid.UUID `gorm:"type:uuid;index;not null;column:agency_id" json:"agency_id"`
	Name         string    `gorm:"not null;column:name" json:"name"`
	ContactName  string    `gorm:"column:contact_name" json:"contact_name"`
	ContactEmail string    `gorm:"column:contact_email" json:"contact_email"`
	ContactPhone string    `gorm:"column:contact_phone" json:"contact_phone"`
	Industry     string    `gorm:"column:industry" json:"industry"`
	Status       string    `gorm:"not null;default:active;column:status" json:"status"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (Client) TableName() string { return "client" }
