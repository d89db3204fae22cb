package tenant

import (
	"context"
	"testing"

	"github.com/veldtlabs/agencydesk-backend/internal/data/repos/testutil"
	"github.com/veldtlabs/agencydesk-backend/internal/domain"
	"github.com/veldtlabs/agencydesk-backend/internal/platform/dbctx"
)

func TestClientRepoScoping(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}

	repo := NewClientRepo(db, testutil.Logger(t))

	agencyA := testutil.SeedAgency(t, ctx, tx, "alpha")
	agencyB := testutil.SeedAgency(t, ctx, tx, "beta")
	clientA := testutil.SeedClient(t, ctx, tx, agencyA.ID, "Acme")

	got, err := repo.GetByID(dbc, agencyA.ID, clientA.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got == nil || got.ID != clientA.ID {
		t.Fatalf("GetByID: unexpected result %+v", got)
	}

	// Cross-tenant read must look exactly like absence.
	got, err = repo.GetByID(dbc, agencyB.ID, clientA.ID)
	if err != nil {
		t.Fatalf("GetByID cross-tenant: %v", err)
	}
	if got != nil {
		t.Fatalf("GetByID cross-tenant: leaked %+v", got)
	}

	rows, err := repo.List(dbc, agencyB.ID)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("List cross-tenant: expected empty, got %d", len(rows))
	}

	clientA.Name = "Acme Renamed"
	affected, err := repo.Update(dbc, agencyB.ID, clientA)
	if err != nil {
		t.Fatalf("Update cross-tenant: %v", err)
	}
	if affected != 0 {
		t.Fatalf("Update cross-tenant: affected %d rows", affected)
	}

	affected, err = repo.Delete(dbc, agencyB.ID, clientA.ID)
	if err != nil {
		t.Fatalf("Delete cross-tenant: %v", err)
	}
	if affected != 0 {
		t.Fatalf("Delete cross-tenant: affected %d rows", affected)
	}

	affected, err = repo.Delete(dbc, agencyA.ID, clientA.ID)
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if affected != 1 {
		t.Fatalf("Delete: affected %d rows, want 1", affected)
	}
}

func TestClientRepoDeleteByAgency(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}

	repo := NewClientRepo(db, testutil.Logger(t))

	agency := testutil.SeedAgency(t, ctx, tx, "gamma")
	other := testutil.SeedAgency(t, ctx, tx, "delta")
	testutil.SeedClient(t, ctx, tx, agency.ID, "one")
	testutil.SeedClient(t, ctx, tx, agency.ID, "two")
	keep := testutil.SeedClient(t, ctx, tx, other.ID, "keep")

	deleted, err := repo.DeleteByAgency(dbc, agency.ID)
	if err != nil {
		t.Fatalf("DeleteByAgency: %v", err)
	}
	if deleted != 2 {
		t.Fatalf("DeleteByAgency: deleted %d rows, want 2", deleted)
	}

	var count int64
	if err := tx.WithContext(ctx).Model(&domain.Client{}).
		Where("agency_id = ?", other.ID).Count(&count).Error; err != nil {
		t.Fatalf("count other tenant: %v", err)
	}
	if count != 1 {
		t.Fatalf("other tenant rows changed: %d", count)
	}
	got, err := repo.GetByID(dbc, other.ID, keep.ID)
	if err != nil || got == nil {
		t.Fatalf("other tenant client must survive: %+v err=%v", got, err)
	}
}
