package domain

import "time"

// SchemaMigration records every applied ledger entry; a version present
// here is never re-run.
type SchemaMigration struct {
	Version   int       `gorm:"primaryKey;column:version" json:"version"`
	Name      string    `gorm:"not null;column:name" json:"name"`
	AppliedAt time.Time `gorm:"not null;default:now();column:applied_at" json:"applied_at"`
}

func (SchemaMigration) TableName() string { return "schema_migration" }
