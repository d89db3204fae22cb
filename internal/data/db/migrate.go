package db

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/veldtlabs/agencydesk-backend/internal/domain"
	"github.com/veldtlabs/agencydesk-backend/internal/observability"
	"github.com/veldtlabs/agencydesk-backend/internal/platform/logger"
)

// AutoMigrateAll creates the base schema for every tenant table.
func AutoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(
		// Tenant root + identity
		&domain.Agency{},
		&domain.User{},
		&domain.UserToken{},

		// Agency-scoped business records
		&domain.Client{},
		&domain.Project{},
		&domain.Lead{},
		&domain.Quote{},
		&domain.Contact{},
		&domain.Task{},
		&domain.Asset{},

		// Ledger bookkeeping
		&domain.SchemaMigration{},
	)
}

// EnsureTenantIndexes adds the indexes the scoped queries lean on.
// Safe to re-run.
func EnsureTenantIndexes(db *gorm.DB) error {
	stmts := []string{
		`CREATE INDEX IF NOT EXISTS idx_user_agency_role ON "user"(agency_id, role);`,
		`CREATE INDEX IF NOT EXISTS idx_project_agency_client ON project(agency_id, client_id);`,
		`CREATE INDEX IF NOT EXISTS idx_task_agency_status ON task(agency_id, status);`,
		`CREATE INDEX IF NOT EXISTS idx_quote_agency_status ON quote(agency_id, status);`,
	}
	for _, stmt := range stmts {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("ensure tenant index: %w", err)
		}
	}
	return nil
}

type migration struct {
	Version int
	Name    string
	Run     func(tx *gorm.DB) error
}

// ledger is the ordered history of schema changes beyond the base
// AutoMigrate schema. Entries are applied exactly once, in version
// order, and recorded in schema_migration. Additive column changes use
// IF NOT EXISTS so a replayed entry is a no-op rather than an error.
var ledger = []migration{
	{Version: 1, Name: "project_budget_column", Run: addColumn("project", "budget", "numeric")},
	{Version: 2, Name: "lead_source_column", Run: addColumn("lead", "source", "text")},
	{Version: 3, Name: "quote_valid_until_column", Run: addColumn("quote", "valid_until", "timestamptz")},
	{Version: 4, Name: "client_industry_column", Run: addColumn("client", "industry", "text")},
	{Version: 5, Name: "task_due_date_column", Run: addColumn("task", "due_date", "timestamptz")},
	{Version: 6, Name: "asset_metadata_column", Run: addColumn("asset", "metadata", "jsonb")},
}

func addColumn(table, column, columnType string) func(tx *gorm.DB) error {
	return func(tx *gorm.DB) error {
		stmt := fmt.Sprintf(`ALTER TABLE %q ADD COLUMN IF NOT EXISTS %q %s`, table, column, columnType)
		return tx.Exec(stmt).Error
	}
}

// Ledger exposes the migration history for inspection (tests, tooling).
func Ledger() []migration {
	out := make([]migration, len(ledger))
	copy(out, ledger)
	return out
}

// RunLedger applies every unapplied ledger entry inside its own
// transaction, recording the version alongside the change so a crash
// between entries never replays one.
func RunLedger(db *gorm.DB, log *logger.Logger) error {
	if err := db.AutoMigrate(&domain.SchemaMigration{}); err != nil {
		return fmt.Errorf("migrate schema_migration table: %w", err)
	}

	applied := map[int]bool{}
	var rows []domain.SchemaMigration
	if err := db.Find(&rows).Error; err != nil {
		return fmt.Errorf("load applied migrations: %w", err)
	}
	for _, row := range rows {
		applied[row.Version] = true
	}

	for _, m := range ledger {
		if applied[m.Version] {
			continue
		}
		entry := m
		err := db.Transaction(func(tx *gorm.DB) error {
			if err := entry.Run(tx); err != nil {
				return err
			}
			record := domain.SchemaMigration{
				Version:   entry.Version,
				Name:      entry.Name,
				AppliedAt: time.Now().UTC(),
			}
			return tx.Create(&record).Error
		})
		if err != nil {
			return fmt.Errorf("apply migration %d (%s): %w", entry.Version, entry.Name, err)
		}
		observability.Current().IncMigrationApplied()
		if log != nil {
			log.Info("applied schema migration", "version", entry.Version, "name", entry.Name)
		}
	}
	return nil
}
