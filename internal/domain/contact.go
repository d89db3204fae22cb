package domain

import (
	"time"

	"github.com/google/uuid"
)

type Contact struct {
	ID       uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	AgencyID uuid.UUID  `gorm:"type:uuid;index;not null;column:agency_id" json:"agency_id"`
	ClientID *uuid.UUID `gorm:"type:uuid;index;column:client_id" json:"client_id"`
	Name     string     `gorm:"not null;column:name" json:"name"`
	Email    string     `gorm:"column:email" json:"email"`
	Phone    string     `gorm:"column:phone" json:"phone"`
	Title    string     `gorm:"column:title" json:"title"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (Contact) TableName() string { return "contact" }
