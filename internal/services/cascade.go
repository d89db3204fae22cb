package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/veldtlabs/agencydesk-backend/internal/authz"
	"github.com/veldtlabs/agencydesk-backend/internal/observability"
	"github.com/veldtlabs/agencydesk-backend/internal/data/repos"
	"github.com/veldtlabs/agencydesk-backend/internal/domain"
	"github.com/veldtlabs/agencydesk-backend/internal/platform/apperr"
	"github.com/veldtlabs/agencydesk-backend/internal/platform/dbctx"
	"github.com/veldtlabs/agencydesk-backend/internal/platform/logger"
)

// CascadeResult reports what a member removal actually deleted. Deleted
// holds per-table row counts and is only populated when the whole
// agency went with the user.
type CascadeResult struct {
	UserID        uuid.UUID        `json:"user_id"`
	AgencyID      uuid.UUID        `json:"agency_id"`
	AgencyDeleted bool             `json:"agency_deleted"`
	Deleted       map[string]int64 `json:"deleted,omitempty"`
}

type CascadeService interface {
	// DeleteUserByEmail removes the user identified by email. When that
	// user is the last member of their agency, the agency and every row
	// it owns are hard-deleted in the same transaction.
	DeleteUserByEmail(ctx context.Context, email string) (*CascadeResult, error)
	// DeleteTeamMember is the scoped entrypoint: the target is resolved
	// by id inside the caller's agency, then removed the same way.
	DeleteTeamMember(ctx context.Context, explicitAgencyID *uuid.UUID, id uuid.UUID) (*CascadeResult, error)
}

type cascadeService struct {
	db            *gorm.DB
	log           *logger.Logger
	agencyRepo    repos.AgencyRepo
	userRepo      repos.UserRepo
	userTokenRepo repos.UserTokenRepo
	clientRepo    repos.ClientRepo
	projectRepo   repos.ProjectRepo
	leadRepo      repos.LeadRepo
	quoteRepo     repos.QuoteRepo
	contactRepo   repos.ContactRepo
	taskRepo      repos.TaskRepo
	assetRepo     repos.AssetRepo
}

func NewCascadeService(
	db *gorm.DB,
	log *logger.Logger,
	agencyRepo repos.AgencyRepo,
	userRepo repos.UserRepo,
	userTokenRepo repos.UserTokenRepo,
	clientRepo repos.ClientRepo,
	projectRepo repos.ProjectRepo,
	leadRepo repos.LeadRepo,
	quoteRepo repos.QuoteRepo,
	contactRepo repos.ContactRepo,
	taskRepo repos.TaskRepo,
	assetRepo repos.AssetRepo,
) CascadeService {
	return &cascadeService{
		db:            db,
		log:           log.With("service", "CascadeService"),
		agencyRepo:    agencyRepo,
		userRepo:      userRepo,
		userTokenRepo: userTokenRepo,
		clientRepo:    clientRepo,
		projectRepo:   projectRepo,
		leadRepo:      leadRepo,
		quoteRepo:     quoteRepo,
		contactRepo:   contactRepo,
		taskRepo:      taskRepo,
		assetRepo:     assetRepo,
	}
}

func (s *cascadeService) DeleteUserByEmail(ctx context.Context, email string) (*CascadeResult, error) {
	const op = "cascade.DeleteUserByEmail"

	rd, err := identityFrom(ctx, op)
	if err != nil {
		return nil, err
	}
	if err := requireCapability(rd, authz.CapManageTeam, op); err != nil {
		return nil, err
	}
	email = normalizeEmail(email)
	if email == "" {
		return nil, apperr.Validation(op, "email is required")
	}

	target, err := s.userRepo.GetByEmail(dbctx.Context{Ctx: ctx}, email)
	if err != nil {
		return nil, apperr.MapDB(op, err)
	}
	if target == nil {
		return nil, apperr.NotFound(op, "no user with that email")
	}
	return s.remove(ctx, op, rd.Role, rd.AgencyID, target)
}

func (s *cascadeService) DeleteTeamMember(ctx context.Context, explicitAgencyID *uuid.UUID, id uuid.UUID) (*CascadeResult, error) {
	const op = "cascade.DeleteTeamMember"

	rd, err := identityFrom(ctx, op)
	if err != nil {
		return nil, err
	}
	if err := requireCapability(rd, authz.CapManageTeam, op); err != nil {
		return nil, err
	}
	agencyID, err := tenantScope(rd, explicitAgencyID, op)
	if err != nil {
		return nil, err
	}
	target, err := s.userRepo.GetScoped(dbctx.Context{Ctx: ctx}, agencyID, id)
	if err != nil {
		return nil, apperr.MapDB(op, err)
	}
	if target == nil {
		return nil, apperr.NotFound(op, "team member not found")
	}
	return s.remove(ctx, op, rd.Role, rd.AgencyID, target)
}

func (s *cascadeService) remove(ctx context.Context, op string, callerRole domain.Role, callerAgency *uuid.UUID, target *domain.User) (*CascadeResult, error) {
	// Non-super callers may only remove members of their own agency.
	if callerRole != domain.RoleSuperAdmin {
		if target.AgencyID == nil || callerAgency == nil || *callerAgency != *target.AgencyID {
			return nil, apperr.NotFound(op, "team member not found")
		}
	}
	if target.AgencyID == nil {
		return s.removeDetached(ctx, op, target)
	}

	start := time.Now()
	result, err := s.attempt(ctx, op, target)
	if apperr.IsKind(err, apperr.KindAborted) {
		s.log.Warn("cascade aborted, retrying once", "user_id", target.ID, "error", err)
		observability.Current().IncCascadeRetry()
		result, err = s.attempt(ctx, op, target)
		if apperr.IsKind(err, apperr.KindAborted) {
			observability.Current().ObserveCascade("aborted", time.Since(start), nil)
			return nil, apperr.Wrap(apperr.KindConflict, op, "cascade kept aborting under concurrent activity", err)
		}
	}
	if err != nil {
		observability.Current().ObserveCascade("failed", time.Since(start), nil)
		return nil, err
	}
	outcome := "member_only"
	if result.AgencyDeleted {
		outcome = "agency_deleted"
	}
	observability.Current().ObserveCascade(outcome, time.Since(start), result.Deleted)
	s.log.Info("member removed",
		"user_id", result.UserID,
		"agency_id", result.AgencyID,
		"agency_deleted", result.AgencyDeleted)
	return result, nil
}

// removeDetached handles a target with no agency (super_admin): there
// is no membership to count and nothing to cascade, so only the user
// row and its sessions are removed.
func (s *cascadeService) removeDetached(ctx context.Context, op string, target *domain.User) (*CascadeResult, error) {
	start := time.Now()
	result := &CascadeResult{UserID: target.ID}
	txErr := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		if _, err := s.userTokenRepo.DeleteByUserID(dbc, target.ID); err != nil {
			return apperr.MapDB(op, err)
		}
		n, err := s.userRepo.Delete(dbc, target.ID)
		if err != nil {
			return apperr.MapDB(op, err)
		}
		if n == 0 {
			return apperr.NotFound(op, "user no longer exists")
		}
		return nil
	})
	if txErr != nil {
		observability.Current().ObserveCascade("failed", time.Since(start), nil)
		return nil, txErr
	}
	observability.Current().ObserveCascade("member_only", time.Since(start), nil)
	s.log.Info("detached user removed", "user_id", target.ID)
	return result, nil
}

// attempt runs the whole protocol in one transaction. The agency row is
// locked FOR UPDATE before any count, and the membership count is taken
// again immediately before the destructive deletes; a mismatch means a
// concurrent writer slipped in and the attempt aborts.
func (s *cascadeService) attempt(ctx context.Context, op string, target *domain.User) (*CascadeResult, error) {
	agencyID := *target.AgencyID
	result := &CascadeResult{UserID: target.ID, AgencyID: agencyID}

	txErr := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}

		agency, err := s.agencyRepo.LockByID(dbc, agencyID)
		if err != nil {
			return apperr.MapDB(op, err)
		}
		if agency == nil {
			return apperr.NotFound(op, "agency no longer exists")
		}

		current, err := s.userRepo.GetByID(dbc, target.ID)
		if err != nil {
			return apperr.MapDB(op, err)
		}
		if current == nil {
			return apperr.NotFound(op, "user no longer exists")
		}
		if current.AgencyID == nil || *current.AgencyID != agencyID {
			return apperr.Aborted(op, "user changed agency during removal")
		}

		remaining, err := s.userRepo.CountByAgencyExcluding(dbc, agencyID, target.ID)
		if err != nil {
			return apperr.MapDB(op, err)
		}

		if remaining > 0 {
			// Other members stay; only the user and their sessions go.
			if _, err := s.userTokenRepo.DeleteByUserID(dbc, target.ID); err != nil {
				return apperr.MapDB(op, err)
			}
			affected, err := s.userRepo.Delete(dbc, target.ID)
			if err != nil {
				return apperr.MapDB(op, err)
			}
			if affected == 0 {
				return apperr.Aborted(op, "user vanished during removal")
			}
			return nil
		}

		// Sole member: the agency goes too. Re-check the count right
		// before destroying anything; a new member registered between
		// the two counts aborts the cascade.
		recheck, err := s.userRepo.CountByAgencyExcluding(dbc, agencyID, target.ID)
		if err != nil {
			return apperr.MapDB(op, err)
		}
		if recheck != 0 {
			return apperr.Aborted(op, "agency gained a member during removal")
		}

		deleted := make(map[string]int64, 9)
		steps := []struct {
			table string
			fn    func(dbctx.Context, uuid.UUID) (int64, error)
		}{
			{domain.Asset{}.TableName(), s.assetRepo.DeleteByAgency},
			{domain.Task{}.TableName(), s.taskRepo.DeleteByAgency},
			{domain.Quote{}.TableName(), s.quoteRepo.DeleteByAgency},
			{domain.Project{}.TableName(), s.projectRepo.DeleteByAgency},
			{domain.Lead{}.TableName(), s.leadRepo.DeleteByAgency},
			{domain.Contact{}.TableName(), s.contactRepo.DeleteByAgency},
			{domain.Client{}.TableName(), s.clientRepo.DeleteByAgency},
		}
		for _, step := range steps {
			n, err := step.fn(dbc, agencyID)
			if err != nil {
				return apperr.MapDB(op, err)
			}
			deleted[step.table] = n
		}

		n, err := s.agencyRepo.Delete(dbc, agencyID)
		if err != nil {
			return apperr.MapDB(op, err)
		}
		if n == 0 {
			return apperr.Aborted(op, "agency vanished during removal")
		}
		deleted[domain.Agency{}.TableName()] = n

		if _, err := s.userTokenRepo.DeleteByUserID(dbc, target.ID); err != nil {
			return apperr.MapDB(op, err)
		}
		n, err = s.userRepo.Delete(dbc, target.ID)
		if err != nil {
			return apperr.MapDB(op, err)
		}
		if n == 0 {
			return apperr.Aborted(op, "user vanished during removal")
		}
		deleted[domain.User{}.TableName()] = n

		result.AgencyDeleted = true
		result.Deleted = deleted
		return nil
	})
	if txErr != nil {
		if apperr.KindOf(txErr) == apperr.KindInternal {
			return nil, apperr.MapDB(op, txErr)
		}
		return nil, txErr
	}
	return result, nil
}
