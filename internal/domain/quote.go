package domain

import (
	"time"

	"github.com/google/uuid"
)

const (
	QuoteStatusDraft    = "draft"
	QuoteStatusSent     = "sent"
	QuoteStatusAccepted = "accepted"
	QuoteStatusRejected = "rejected"
	QuoteStatusExpired  = "expired"
)

type Quote struct {
	ID         uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	AgencyID   uuid.UUID  `gorm:"type:uuid;index;not null;column:agency_id" json:"agency_id"`
	LeadID     *uuid.UUID `gorm:"type:uuid;index;column:lead_id" json:"lead_id"`
	ClientID   *uuid.UUID `gorm:"type:uuid;index;column:client_id" json:"client_id"`
	Title      string     `gorm:"not null;column:title" json:"title"`
	Amount     float64    `gorm:"not null;column:amount" json:"amount"`
	Status     string     `gorm:"not null;default:draft;column:status" json:"status"`
	ValidUntil *time.Time `gorm:"column:valid_until" json:"valid_until"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (Quote) TableName() string { return "quote" }
