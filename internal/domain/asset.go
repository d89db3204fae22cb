package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Asset struct {
	ID         uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	AgencyID   uuid.UUID      `gorm:"type:uuid;index;not null;column:agency_id" json:"agency_id"`
	Name       string         `gorm:"not null;column:name" json:"name"`
	Kind       string         `gorm:"column:kind" json:"kind"`
	StorageKey string         `gorm:"column:storage_key" json:"storage_key"`
	SizeBytes  int64          `gorm:"column:size_bytes" json:"size_bytes"`
	UploadedBy uuid.UUID      `gorm:"type:uuid;not null;column:uploaded_by" json:"uploaded_by"`
	Metadata   datatypes.JSON `gorm:"type:jsonb;column:metadata" json:"metadata"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (Asset) TableName() string { return "asset" }
