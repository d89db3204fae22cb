package tenant

import (
	"context"
	"testing"

	"github.com/veldtlabs/agencydesk-backend/internal/data/repos/testutil"
	"github.com/veldtlabs/agencydesk-backend/internal/domain"
	"github.com/veldtlabs/agencydesk-backend/internal/platform/dbctx"
)

func TestUserRepoCountByAgencyExcluding(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}

	repo := NewUserRepo(db, testutil.Logger(t))

	agency := testutil.SeedAgency(t, ctx, tx, "counts")
	admin := testutil.SeedUser(t, ctx, tx, testutil.PtrUUID(agency.ID), "admin@counts.test", domain.RoleAgencyAdmin)

	remaining, err := repo.CountByAgencyExcluding(dbc, agency.ID, admin.ID)
	if err != nil {
		t.Fatalf("CountByAgencyExcluding: %v", err)
	}
	if remaining != 0 {
		t.Fatalf("sole member: remaining = %d, want 0", remaining)
	}

	member := testutil.SeedUser(t, ctx, tx, testutil.PtrUUID(agency.ID), "member@counts.test", domain.RoleTeamMember)

	remaining, err = repo.CountByAgencyExcluding(dbc, agency.ID, admin.ID)
	if err != nil {
		t.Fatalf("CountByAgencyExcluding: %v", err)
	}
	if remaining != 1 {
		t.Fatalf("two members: remaining = %d, want 1", remaining)
	}

	remaining, err = repo.CountByAgencyExcluding(dbc, agency.ID, member.ID)
	if err != nil {
		t.Fatalf("CountByAgencyExcluding: %v", err)
	}
	if remaining != 1 {
		t.Fatalf("excluding member: remaining = %d, want 1", remaining)
	}
}

func TestUserRepoScopedLookup(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}

	repo := NewUserRepo(db, testutil.Logger(t))

	agencyA := testutil.SeedAgency(t, ctx, tx, "scope-a")
	agencyB := testutil.SeedAgency(t, ctx, tx, "scope-b")
	user := testutil.SeedUser(t, ctx, tx, testutil.PtrUUID(agencyA.ID), "scoped@a.test", domain.RoleTeamMember)

	got, err := repo.GetScoped(dbc, agencyA.ID, user.ID)
	if err != nil {
		t.Fatalf("GetScoped: %v", err)
	}
	if got == nil || got.ID != user.ID {
		t.Fatalf("GetScoped: unexpected result %+v", got)
	}

	got, err = repo.GetScoped(dbc, agencyB.ID, user.ID)
	if err != nil {
		t.Fatalf("GetScoped cross-tenant: %v", err)
	}
	if got != nil {
		t.Fatalf("GetScoped cross-tenant: leaked %+v", got)
	}

	got, err = repo.GetByEmail(dbc, "nobody@a.test")
	if err != nil {
		t.Fatalf("GetByEmail absent: %v", err)
	}
	if got != nil {
		t.Fatalf("GetByEmail absent: got %+v", got)
	}

	exists, err := repo.EmailExists(dbc, "scoped@a.test")
	if err != nil {
		t.Fatalf("EmailExists: %v", err)
	}
	if !exists {
		t.Fatalf("EmailExists: existing email reported absent")
	}
}
