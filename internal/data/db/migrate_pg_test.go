package db_test

import (
	"testing"

	"github.com/veldtlabs/agencydesk-backend/internal/data/db"
	"github.com/veldtlabs/agencydesk-backend/internal/data/repos/testutil"
	"github.com/veldtlabs/agencydesk-backend/internal/domain"
)

// Applying the ledger a second time must change nothing: no new
// schema_migration rows, no errors from replayed ADD COLUMN steps.
func TestRunLedgerIdempotent(t *testing.T) {
	handle := testutil.DB(t)
	log := testutil.Logger(t)

	if err := db.RunLedger(handle, log); err != nil {
		t.Fatalf("first RunLedger: %v", err)
	}
	var before int64
	if err := handle.Model(&domain.SchemaMigration{}).Count(&before).Error; err != nil {
		t.Fatalf("count applied migrations: %v", err)
	}
	if want := int64(len(db.Ledger())); before != want {
		t.Fatalf("applied migrations = %d, want %d", before, want)
	}

	if err := db.RunLedger(handle, log); err != nil {
		t.Fatalf("second RunLedger: %v", err)
	}
	var after int64
	if err := handle.Model(&domain.SchemaMigration{}).Count(&after).Error; err != nil {
		t.Fatalf("count applied migrations: %v", err)
	}
	if after != before {
		t.Fatalf("second run recorded %d new migrations", after-before)
	}
}

// A ledger entry's column must survive a replay of the raw statement,
// which is what makes the additive changes safe to re-apply.
func TestAdditiveColumnReplay(t *testing.T) {
	handle := testutil.DB(t)

	const stmt = `ALTER TABLE "project" ADD COLUMN IF NOT EXISTS "budget" numeric`
	if err := handle.Exec(stmt).Error; err != nil {
		t.Fatalf("first apply: %v", err)
	}
	if err := handle.Exec(stmt).Error; err != nil {
		t.Fatalf("replay: %v", err)
	}
	if !handle.Migrator().HasColumn(&domain.Project{}, "budget") {
		t.Fatalf("budget column missing after replay")
	}
}
