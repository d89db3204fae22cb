package services

import (
	"context"
	"testing"

	"github.com/veldtlabs/agencydesk-backend/internal/data/repos"
	"github.com/veldtlabs/agencydesk-backend/internal/data/repos/testutil"
	"github.com/veldtlabs/agencydesk-backend/internal/domain"
	"github.com/veldtlabs/agencydesk-backend/internal/platform/apperr"
)

func TestProjectCreateRejectsForeignClient(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()
	log := testutil.Logger(t)
	svc := NewProjectService(db, log, repos.NewProjectRepo(db, log), repos.NewClientRepo(db, log))
	cascade := newCascadeService(t, db)

	agencyA := testutil.SeedAgency(t, ctx, db, "proj-a")
	agencyB := testutil.SeedAgency(t, ctx, db, "proj-b")
	adminA := testutil.SeedUser(t, ctx, db, testutil.PtrUUID(agencyA.ID), uniqueEmail("proj-a"), domain.RoleAgencyAdmin)
	adminB := testutil.SeedUser(t, ctx, db, testutil.PtrUUID(agencyB.ID), uniqueEmail("proj-b"), domain.RoleAgencyAdmin)
	clientB := testutil.SeedClient(t, ctx, db, agencyB.ID, "foreign-client")

	_, err := svc.Create(asCaller(ctx, adminA), ProjectCreateInput{
		ClientID: clientB.ID,
		Name:     "cross-tenant",
	})
	if !apperr.IsKind(err, apperr.KindValidation) {
		t.Fatalf("foreign client reference must fail validation, got %v", err)
	}
	if n := countScoped(t, db, &domain.Project{}, agencyA.ID); n != 0 {
		t.Fatalf("rejected create left %d project rows", n)
	}

	// Same reference from the owning agency is fine.
	project, err := svc.Create(asCaller(ctx, adminB), ProjectCreateInput{
		ClientID: clientB.ID,
		Name:     "in-tenant",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if project.AgencyID != agencyB.ID || project.CreatedBy != adminB.ID {
		t.Fatalf("unexpected project %+v", project)
	}

	for _, admin := range []*domain.User{adminA, adminB} {
		if _, err := cascade.DeleteUserByEmail(asCaller(ctx, admin), admin.Email); err != nil {
			t.Fatalf("cleanup: %v", err)
		}
	}
}
