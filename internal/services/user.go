package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/veldtlabs/agencydesk-backend/internal/authz"
	"github.com/veldtlabs/agencydesk-backend/internal/data/repos"
	"github.com/veldtlabs/agencydesk-backend/internal/domain"
	"github.com/veldtlabs/agencydesk-backend/internal/platform/apperr"
	"github.com/veldtlabs/agencydesk-backend/internal/platform/dbctx"
	"github.com/veldtlabs/agencydesk-backend/internal/platform/logger"
)

type TeamMemberCreateInput struct {
	Email    string      `json:"email"`
	Password string      `json:"password"`
	FullName string      `json:"full_name"`
	Role     domain.Role `json:"role"`
	AgencyID *uuid.UUID  `json:"agency_id"`
}

type TeamMemberUpdateInput struct {
	FullName *string      `json:"full_name"`
	Role     *domain.Role `json:"role"`
	AgencyID *uuid.UUID   `json:"agency_id"`
}

type UserService interface {
	GetMe(ctx context.Context) (*domain.User, error)
	ListTeam(ctx context.Context, explicitAgencyID *uuid.UUID) ([]*domain.User, error)
	GetTeamMember(ctx context.Context, explicitAgencyID *uuid.UUID, id uuid.UUID) (*domain.User, error)
	CreateTeamMember(ctx context.Context, in TeamMemberCreateInput) (*domain.User, error)
	UpdateTeamMember(ctx context.Context, id uuid.UUID, in TeamMemberUpdateInput) (*domain.User, error)
}

type userService struct {
	db       *gorm.DB
	log      *logger.Logger
	userRepo repos.UserRepo
}

func NewUserService(db *gorm.DB, log *logger.Logger, userRepo repos.UserRepo) UserService {
	return &userService{
		db:       db,
		log:      log.With("service", "UserService"),
		userRepo: userRepo,
	}
}

func (s *userService) GetMe(ctx context.Context) (*domain.User, error) {
	const op = "user.GetMe"

	rd, err := identityFrom(ctx, op)
	if err != nil {
		return nil, err
	}
	user, err := s.userRepo.GetByID(dbctx.Context{Ctx: ctx}, rd.UserID)
	if err != nil {
		return nil, apperr.MapDB(op, err)
	}
	if user == nil {
		return nil, apperr.NotFound(op, "user not found")
	}
	return user, nil
}

func (s *userService) ListTeam(ctx context.Context, explicitAgencyID *uuid.UUID) ([]*domain.User, error) {
	const op = "user.ListTeam"

	rd, err := identityFrom(ctx, op)
	if err != nil {
		return nil, err
	}
	agencyID, err := tenantScope(rd, explicitAgencyID, op)
	if err != nil {
		return nil, err
	}
	rows, err := s.userRepo.ListByAgency(dbctx.Context{Ctx: ctx}, agencyID)
	if err != nil {
		return nil, apperr.MapDB(op, err)
	}
	return rows, nil
}

func (s *userService) GetTeamMember(ctx context.Context, explicitAgencyID *uuid.UUID, id uuid.UUID) (*domain.User, error) {
	const op = "user.GetTeamMember"

	rd, err := identityFrom(ctx, op)
	if err != nil {
		return nil, err
	}
	agencyID, err := tenantScope(rd, explicitAgencyID, op)
	if err != nil {
		return nil, err
	}
	user, err := s.userRepo.GetScoped(dbctx.Context{Ctx: ctx}, agencyID, id)
	if err != nil {
		return nil, apperr.MapDB(op, err)
	}
	if user == nil {
		return nil, apperr.NotFound(op, "team member not found")
	}
	return user, nil
}

func (s *userService) CreateTeamMember(ctx context.Context, in TeamMemberCreateInput) (*domain.User, error) {
	const op = "user.CreateTeamMember"

	rd, err := identityFrom(ctx, op)
	if err != nil {
		return nil, err
	}
	if err := requireCapability(rd, authz.CapManageTeam, op); err != nil {
		return nil, err
	}
	agencyID, err := tenantScope(rd, in.AgencyID, op)
	if err != nil {
		return nil, err
	}

	email := normalizeEmail(in.Email)
	if email == "" || !strings.Contains(email, "@") {
		return nil, apperr.Validation(op, "a valid email is required")
	}
	if len(in.Password) < 8 {
		return nil, apperr.Validation(op, "password must be at least 8 characters")
	}
	if strings.TrimSpace(in.FullName) == "" {
		return nil, apperr.Validation(op, "full_name is required")
	}
	if !in.Role.Valid() || in.Role == domain.RoleSuperAdmin {
		return nil, apperr.Validation(op, "role must be agency_admin, team_member or client")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, op, "hash password", err)
	}

	var created *domain.User
	txErr := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		exists, err := s.userRepo.EmailExists(dbc, email)
		if err != nil {
			return apperr.MapDB(op, err)
		}
		if exists {
			return apperr.Conflict(op, "email is already registered")
		}
		user := &domain.User{
			ID:       uuid.New(),
			Email:    email,
			Password: string(hashed),
			FullName: strings.TrimSpace(in.FullName),
			Role:     in.Role,
			AgencyID: &agencyID,
		}
		if err := s.userRepo.Create(dbc, user); err != nil {
			return apperr.MapDB(op, err)
		}
		created = user
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return created, nil
}

func (s *userService) UpdateTeamMember(ctx context.Context, id uuid.UUID, in TeamMemberUpdateInput) (*domain.User, error) {
	const op = "user.UpdateTeamMember"

	rd, err := identityFrom(ctx, op)
	if err != nil {
		return nil, err
	}
	if err := requireCapability(rd, authz.CapManageTeam, op); err != nil {
		return nil, err
	}
	agencyID, err := tenantScope(rd, in.AgencyID, op)
	if err != nil {
		return nil, err
	}
	if in.Role != nil && (!in.Role.Valid() || *in.Role == domain.RoleSuperAdmin) {
		return nil, apperr.Validation(op, "role must be agency_admin, team_member or client")
	}
	if in.FullName != nil && strings.TrimSpace(*in.FullName) == "" {
		return nil, apperr.Validation(op, "full_name cannot be empty")
	}

	var updated *domain.User
	txErr := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		user, err := s.userRepo.GetScoped(dbc, agencyID, id)
		if err != nil {
			return apperr.MapDB(op, err)
		}
		if user == nil {
			return apperr.NotFound(op, "team member not found")
		}
		if in.FullName != nil {
			user.FullName = strings.TrimSpace(*in.FullName)
		}
		if in.Role != nil {
			user.Role = *in.Role
		}
		if _, err := s.userRepo.Update(dbc, user); err != nil {
			return apperr.MapDB(op, err)
		}
		updated = user
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return updated, nil
}
