package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/veldtlabs/agencydesk-backend/internal/data/repos"
	"github.com/veldtlabs/agencydesk-backend/internal/data/repos/testutil"
	"github.com/veldtlabs/agencydesk-backend/internal/domain"
	"github.com/veldtlabs/agencydesk-backend/internal/platform/apperr"
	"github.com/veldtlabs/agencydesk-backend/internal/platform/ctxutil"
)

// The cascade service drives its own transactions, so these tests run
// against the shared database and rely on the cascade itself to leave
// nothing behind.

func newCascadeService(tb testing.TB, db *gorm.DB) CascadeService {
	tb.Helper()
	log := testutil.Logger(tb)
	return NewCascadeService(
		db, log,
		repos.NewAgencyRepo(db, log),
		repos.NewUserRepo(db, log),
		repos.NewUserTokenRepo(db, log),
		repos.NewClientRepo(db, log),
		repos.NewProjectRepo(db, log),
		repos.NewLeadRepo(db, log),
		repos.NewQuoteRepo(db, log),
		repos.NewContactRepo(db, log),
		repos.NewTaskRepo(db, log),
		repos.NewAssetRepo(db, log),
	)
}

func asCaller(ctx context.Context, u *domain.User) context.Context {
	return ctxutil.WithRequestData(ctx, &ctxutil.RequestData{
		UserID:   u.ID,
		Role:     u.Role,
		AgencyID: u.AgencyID,
	})
}

func uniqueEmail(prefix string) string {
	return fmt.Sprintf("%s-%s@cascade.test", prefix, uuid.New().String()[:8])
}

func countScoped(tb testing.TB, db *gorm.DB, model interface{}, agencyID uuid.UUID) int64 {
	tb.Helper()
	var n int64
	if err := db.Model(model).Where("agency_id = ?", agencyID).Count(&n).Error; err != nil {
		tb.Fatalf("count: %v", err)
	}
	return n
}

func TestCascadeKeepsAgencyWithRemainingMembers(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()
	svc := newCascadeService(t, db)

	agency := testutil.SeedAgency(t, ctx, db, "remaining")
	admin := testutil.SeedUser(t, ctx, db, testutil.PtrUUID(agency.ID), uniqueEmail("admin"), domain.RoleAgencyAdmin)
	member := testutil.SeedUser(t, ctx, db, testutil.PtrUUID(agency.ID), uniqueEmail("member"), domain.RoleTeamMember)
	client := testutil.SeedClient(t, ctx, db, agency.ID, "survivor-client")

	res, err := svc.DeleteUserByEmail(asCaller(ctx, admin), member.Email)
	if err != nil {
		t.Fatalf("DeleteUserByEmail: %v", err)
	}
	if res.AgencyDeleted {
		t.Fatalf("agency must survive while members remain")
	}
	if res.UserID != member.ID || res.AgencyID != agency.ID {
		t.Fatalf("unexpected result %+v", res)
	}

	var gone int64
	if err := db.Model(&domain.User{}).Where("id = ?", member.ID).Count(&gone).Error; err != nil {
		t.Fatalf("count member: %v", err)
	}
	if gone != 0 {
		t.Fatalf("member row still present")
	}
	if n := countScoped(t, db, &domain.Client{}, agency.ID); n != 1 {
		t.Fatalf("client rows = %d, want 1 (agency data must be untouched)", n)
	}
	_ = client

	// Removing the now-sole admin tears the agency down and cleans up.
	res, err = svc.DeleteUserByEmail(asCaller(ctx, admin), admin.Email)
	if err != nil {
		t.Fatalf("cleanup cascade: %v", err)
	}
	if !res.AgencyDeleted {
		t.Fatalf("sole member removal must delete the agency")
	}
}

func TestCascadeDeletesSoleMemberAgency(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()
	svc := newCascadeService(t, db)

	agency := testutil.SeedAgency(t, ctx, db, "solo")
	admin := testutil.SeedUser(t, ctx, db, testutil.PtrUUID(agency.ID), uniqueEmail("solo"), domain.RoleAgencyAdmin)
	client := testutil.SeedClient(t, ctx, db, agency.ID, "solo-client")
	testutil.SeedProject(t, ctx, db, agency.ID, client.ID, admin.ID, "solo-project")
	testutil.SeedLead(t, ctx, db, agency.ID, "solo-lead")
	testutil.SeedTask(t, ctx, db, agency.ID, admin.ID, "solo-task")
	testutil.SeedQuote(t, ctx, db, agency.ID, "solo-quote")
	testutil.SeedContact(t, ctx, db, agency.ID, "solo-contact")

	res, err := svc.DeleteUserByEmail(asCaller(ctx, admin), admin.Email)
	if err != nil {
		t.Fatalf("DeleteUserByEmail: %v", err)
	}
	if !res.AgencyDeleted {
		t.Fatalf("sole member removal must delete the agency")
	}
	want := map[string]int64{
		"client":  1,
		"project": 1,
		"lead":    1,
		"task":    1,
		"quote":   1,
		"contact": 1,
		"asset":   0,
		"agency":  1,
		"user":    1,
	}
	for table, n := range want {
		if res.Deleted[table] != n {
			t.Fatalf("deleted[%s] = %d, want %d (full: %v)", table, res.Deleted[table], n, res.Deleted)
		}
	}

	// Zero rows may remain for the dead tenant, anywhere.
	for _, model := range []interface{}{
		&domain.Client{}, &domain.Project{}, &domain.Lead{},
		&domain.Quote{}, &domain.Contact{}, &domain.Task{}, &domain.Asset{},
	} {
		if n := countScoped(t, db, model, agency.ID); n != 0 {
			t.Fatalf("%T rows remain after cascade: %d", model, n)
		}
	}
	var agencies int64
	if err := db.Model(&domain.Agency{}).Where("id = ?", agency.ID).Count(&agencies).Error; err != nil {
		t.Fatalf("count agency: %v", err)
	}
	if agencies != 0 {
		t.Fatalf("agency row remains after cascade")
	}
	var users int64
	if err := db.Model(&domain.User{}).Where("id = ?", admin.ID).Count(&users).Error; err != nil {
		t.Fatalf("count user: %v", err)
	}
	if users != 0 {
		t.Fatalf("user row remains after cascade")
	}
}

func TestCascadeRequiresManageTeam(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()
	svc := newCascadeService(t, db)

	agency := testutil.SeedAgency(t, ctx, db, "gated")
	admin := testutil.SeedUser(t, ctx, db, testutil.PtrUUID(agency.ID), uniqueEmail("gated-admin"), domain.RoleAgencyAdmin)
	member := testutil.SeedUser(t, ctx, db, testutil.PtrUUID(agency.ID), uniqueEmail("gated-member"), domain.RoleTeamMember)

	_, err := svc.DeleteUserByEmail(asCaller(ctx, member), admin.Email)
	if !apperr.IsKind(err, apperr.KindPermissionDenied) {
		t.Fatalf("team_member must not remove members, got %v", err)
	}

	// Cross-agency removal is indistinguishable from absence.
	other := testutil.SeedAgency(t, ctx, db, "gated-other")
	outsider := testutil.SeedUser(t, ctx, db, testutil.PtrUUID(other.ID), uniqueEmail("outsider"), domain.RoleAgencyAdmin)
	_, err = svc.DeleteUserByEmail(asCaller(ctx, outsider), member.Email)
	if !apperr.IsKind(err, apperr.KindNotFound) {
		t.Fatalf("cross-agency removal must read as not_found, got %v", err)
	}

	// Cleanup: cascade every seeded agency away.
	if _, err := svc.DeleteUserByEmail(asCaller(ctx, admin), member.Email); err != nil {
		t.Fatalf("cleanup member: %v", err)
	}
	if _, err := svc.DeleteUserByEmail(asCaller(ctx, admin), admin.Email); err != nil {
		t.Fatalf("cleanup admin: %v", err)
	}
	if _, err := svc.DeleteUserByEmail(asCaller(ctx, outsider), outsider.Email); err != nil {
		t.Fatalf("cleanup outsider: %v", err)
	}
}

func TestDetachedUserDeletesWithoutCascade(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()
	svc := newCascadeService(t, db)

	super := testutil.SeedUser(t, ctx, db, nil, uniqueEmail("super"), domain.RoleSuperAdmin)
	detached := testutil.SeedUser(t, ctx, db, nil, uniqueEmail("detached"), domain.RoleSuperAdmin)

	// A detached user is invisible to agency-bound callers.
	agency := testutil.SeedAgency(t, ctx, db, "detached-bystander")
	admin := testutil.SeedUser(t, ctx, db, testutil.PtrUUID(agency.ID), uniqueEmail("bystander-admin"), domain.RoleAgencyAdmin)
	_, err := svc.DeleteUserByEmail(asCaller(ctx, admin), detached.Email)
	if !apperr.IsKind(err, apperr.KindNotFound) {
		t.Fatalf("agency-bound caller must see not_found for a detached user, got %v", err)
	}

	res, err := svc.DeleteUserByEmail(asCaller(ctx, super), detached.Email)
	if err != nil {
		t.Fatalf("DeleteUserByEmail: %v", err)
	}
	if res.AgencyDeleted {
		t.Fatalf("a detached user must never trigger a cascade")
	}
	if res.UserID != detached.ID || res.AgencyID != uuid.Nil {
		t.Fatalf("unexpected result %+v", res)
	}
	if len(res.Deleted) != 0 {
		t.Fatalf("no per-table counts expected, got %v", res.Deleted)
	}

	var gone int64
	if err := db.Model(&domain.User{}).Where("id = ?", detached.ID).Count(&gone).Error; err != nil {
		t.Fatalf("count detached: %v", err)
	}
	if gone != 0 {
		t.Fatalf("detached user row still present")
	}
	if n := countScoped(t, db, &domain.User{}, agency.ID); n != 1 {
		t.Fatalf("bystander agency members = %d, want 1", n)
	}

	// Cleanup: cascade the bystander agency, then the super caller removes itself.
	if _, err := svc.DeleteUserByEmail(asCaller(ctx, admin), admin.Email); err != nil {
		t.Fatalf("cleanup admin: %v", err)
	}
	if _, err := svc.DeleteUserByEmail(asCaller(ctx, super), super.Email); err != nil {
		t.Fatalf("cleanup super: %v", err)
	}
}
