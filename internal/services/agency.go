package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/veldtlabs/agencydesk-backend/internal/authz"
	"github.com/veldtlabs/agencydesk-backend/internal/data/repos"
	"github.com/veldtlabs/agencydesk-backend/internal/domain"
	"github.com/veldtlabs/agencydesk-backend/internal/platform/apperr"
	"github.com/veldtlabs/agencydesk-backend/internal/platform/dbctx"
	"github.com/veldtlabs/agencydesk-backend/internal/platform/logger"
)

type AgencyUpdateInput struct {
	Name     *string `json:"name"`
	Industry *string `json:"industry"`
}

type AgencyCreateInput struct {
	Name     string `json:"name"`
	Industry string `json:"industry"`
}

type AgencyService interface {
	Get(ctx context.Context, explicitAgencyID *uuid.UUID) (*domain.Agency, error)
	Create(ctx context.Context, in AgencyCreateInput) (*domain.Agency, error)
	Update(ctx context.Context, explicitAgencyID *uuid.UUID, in AgencyUpdateInput) (*domain.Agency, error)
	List(ctx context.Context) ([]*domain.Agency, error)
}

type agencyService struct {
	db         *gorm.DB
	log        *logger.Logger
	agencyRepo repos.AgencyRepo
}

func NewAgencyService(db *gorm.DB, log *logger.Logger, agencyRepo repos.AgencyRepo) AgencyService {
	return &agencyService{
		db:         db,
		log:        log.With("service", "AgencyService"),
		agencyRepo: agencyRepo,
	}
}

func (s *agencyService) Get(ctx context.Context, explicitAgencyID *uuid.UUID) (*domain.Agency, error) {
	const op = "agency.Get"

	rd, err := identityFrom(ctx, op)
	if err != nil {
		return nil, err
	}
	agencyID, err := tenantScope(rd, explicitAgencyID, op)
	if err != nil {
		return nil, err
	}
	agency, err := s.agencyRepo.GetByID(dbctx.Context{Ctx: ctx}, agencyID)
	if err != nil {
		return nil, apperr.MapDB(op, err)
	}
	if agency == nil {
		return nil, apperr.NotFound(op, "agency not found")
	}
	return agency, nil
}

// Create provisions an empty agency. Restricted to super_admin; the
// normal bootstrap path is registration, which creates the agency
// together with its first admin.
func (s *agencyService) Create(ctx context.Context, in AgencyCreateInput) (*domain.Agency, error) {
	const op = "agency.Create"

	rd, err := identityFrom(ctx, op)
	if err != nil {
		return nil, err
	}
	if rd.Role != domain.RoleSuperAdmin {
		return nil, apperr.PermissionDenied(op, "only super_admin may create agencies")
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, apperr.Validation(op, "name is required")
	}

	var created *domain.Agency
	txErr := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		slug := slugify(name)
		if slug == "" {
			slug = uuid.New().String()[:8]
		}
		if existing, err := s.agencyRepo.GetBySlug(dbc, slug); err != nil {
			return apperr.MapDB(op, err)
		} else if existing != nil {
			slug = slug + "-" + uuid.New().String()[:8]
		}
		agency := &domain.Agency{
			Name:     name,
			Slug:     slug,
			Industry: strings.TrimSpace(in.Industry),
		}
		if err := s.agencyRepo.Create(dbc, agency); err != nil {
			return apperr.MapDB(op, err)
		}
		created = agency
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return created, nil
}

func (s *agencyService) Update(ctx context.Context, explicitAgencyID *uuid.UUID, in AgencyUpdateInput) (*domain.Agency, error) {
	const op = "agency.Update"

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
	if in.Name != nil && strings.TrimSpace(*in.Name) == "" {
		return nil, apperr.Validation(op, "name cannot be empty")
	}

	var updated *domain.Agency
	txErr := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		agency, err := s.agencyRepo.GetByID(dbc, agencyID)
		if err != nil {
			return apperr.MapDB(op, err)
		}
		if agency == nil {
			return apperr.NotFound(op, "agency not found")
		}
		if in.Name != nil {
			agency.Name = strings.TrimSpace(*in.Name)
		}
		if in.Industry != nil {
			agency.Industry = strings.TrimSpace(*in.Industry)
		}
		if _, err := s.agencyRepo.Update(dbc, agency); err != nil {
			return apperr.MapDB(op, err)
		}
		updated = agency
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return updated, nil
}

// List is super_admin only; everyone else sees their agency via Get.
func (s *agencyService) List(ctx context.Context) ([]*domain.Agency, error) {
	const op = "agency.List"

	rd, err := identityFrom(ctx, op)
	if err != nil {
		return nil, err
	}
	if rd.Role != domain.RoleSuperAdmin {
		return nil, apperr.PermissionDenied(op, "only super_admin may list agencies")
	}
	rows, err := s.agencyRepo.List(dbctx.Context{Ctx: ctx})
	if err != nil {
		return nil, apperr.MapDB(op, err)
	}
	return rows, nil
}
