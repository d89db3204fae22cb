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

var validLeadStatuses = map[string]struct{}{
	domain.LeadStatusNew:       {},
	domain.LeadStatusContacted: {},
	domain.LeadStatusQualified: {},
	domain.LeadStatusWon:       {},
	domain.LeadStatusLost:      {},
}

type LeadCreateInput struct {
	Name           string     `json:"name"`
	Email          string     `json:"email"`
	Phone          string     `json:"phone"`
	Company        string     `json:"company"`
	Source         string     `json:"source"`
	Status         string     `json:"status"`
	EstimatedValue float64    `json:"estimated_value"`
	AgencyID       *uuid.UUID `json:"agency_id"`
}

type LeadUpdateInput struct {
	Name           *string    `json:"name"`
	Email          *string    `json:"email"`
	Phone          *string    `json:"phone"`
	Company        *string    `json:"company"`
	Source         *string    `json:"source"`
	Status         *string    `json:"status"`
	EstimatedValue *float64   `json:"estimated_value"`
	AgencyID       *uuid.UUID `json:"agency_id"`
}

type LeadService interface {
	Create(ctx context.Context, in LeadCreateInput) (*domain.Lead, error)
	Get(ctx context.Context, explicitAgencyID *uuid.UUID, id uuid.UUID) (*domain.Lead, error)
	List(ctx context.Context, explicitAgencyID *uuid.UUID) ([]*domain.Lead, error)
	Update(ctx context.Context, id uuid.UUID, in LeadUpdateInput) (*domain.Lead, error)
	Delete(ctx context.Context, explicitAgencyID *uuid.UUID, id uuid.UUID) error
}

type leadService struct {
	db       *gorm.DB
	log      *logger.Logger
	leadRepo repos.LeadRepo
}

func NewLeadService(db *gorm.DB, log *logger.Logger, leadRepo repos.LeadRepo) LeadService {
	return &leadService{
		db:       db,
		log:      log.With("service", "LeadService"),
		leadRepo: leadRepo,
	}
}

func (s *leadService) Create(ctx context.Context, in LeadCreateInput) (*domain.Lead, error) {
	const op = "lead.Create"

	rd, err := identityFrom(ctx, op)
	if err != nil {
		return nil, err
	}
	if err := requireCapability(rd, authz.CapManageClients, op); err != nil {
		return nil, err
	}
	agencyID, err := tenantScope(rd, in.AgencyID, op)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Name) == "" {
		return nil, apperr.Validation(op, "name is required")
	}
	status := in.Status
	if status == "" {
		status = domain.LeadStatusNew
	}
	if _, ok := validLeadStatuses[status]; !ok {
		return nil, apperr.Validation(op, "unknown lead status "+status)
	}
	if in.EstimatedValue < 0 {
		return nil, apperr.Validation(op, "estimated_value cannot be negative")
	}

	lead := &domain.Lead{
		ID:             uuid.New(),
		AgencyID:       agencyID,
		Name:           strings.TrimSpace(in.Name),
		Email:          normalizeEmail(in.Email),
		Phone:          strings.TrimSpace(in.Phone),
		Company:        strings.TrimSpace(in.Company),
		Source:         strings.TrimSpace(in.Source),
		Status:         status,
		EstimatedValue: in.EstimatedValue,
	}
	if err := s.leadRepo.Create(dbctx.Context{Ctx: ctx}, lead); err != nil {
		return nil, apperr.MapDB(op, err)
	}
	return lead, nil
}

func (s *leadService) Get(ctx context.Context, explicitAgencyID *uuid.UUID, id uuid.UUID) (*domain.Lead, error) {
	const op = "lead.Get"

	rd, err := identityFrom(ctx, op)
	if err != nil {
		return nil, err
	}
	agencyID, err := tenantScope(rd, explicitAgencyID, op)
	if err != nil {
		return nil, err
	}
	lead, err := s.leadRepo.GetByID(dbctx.Context{Ctx: ctx}, agencyID, id)
	if err != nil {
		return nil, apperr.MapDB(op, err)
	}
	if lead == nil {
		return nil, apperr.NotFound(op, "lead not found")
	}
	return lead, nil
}

func (s *leadService) List(ctx context.Context, explicitAgencyID *uuid.UUID) ([]*domain.Lead, error) {
	const op = "lead.List"

	rd, err := identityFrom(ctx, op)
	if err != nil {
		return nil, err
	}
	agencyID, err := tenantScope(rd, explicitAgencyID, op)
	if err != nil {
		return nil, err
	}
	rows, err := s.leadRepo.List(dbctx.Context{Ctx: ctx}, agencyID)
	if err != nil {
		return nil, apperr.MapDB(op, err)
	}
	return rows, nil
}

func (s *leadService) Update(ctx context.Context, id uuid.UUID, in LeadUpdateInput) (*domain.Lead, error) {
	const op = "lead.Update"

	rd, err := identityFrom(ctx, op)
	if err != nil {
		return nil, err
	}
	if err := requireCapability(rd, authz.CapManageClients, op); err != nil {
		return nil, err
	}
	agencyID, err := tenantScope(rd, in.AgencyID, op)
	if err != nil {
		return nil, err
	}
	if in.Name != nil && strings.TrimSpace(*in.Name) == "" {
		return nil, apperr.Validation(op, "name cannot be empty")
	}
	if in.Status != nil {
		if _, ok := validLeadStatuses[*in.Status]; !ok {
			return nil, apperr.Validation(op, "unknown lead status "+*in.Status)
		}
	}
	if in.EstimatedValue != nil && *in.EstimatedValue < 0 {
		return nil, apperr.Validation(op, "estimated_value cannot be negative")
	}

	var updated *domain.Lead
	txErr := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		lead, err := s.leadRepo.GetByID(dbc, agencyID, id)
		if err != nil {
			return apperr.MapDB(op, err)
		}
		if lead == nil {
			return apperr.NotFound(op, "lead not found")
		}
		if in.Name != nil {
			lead.Name = strings.TrimSpace(*in.Name)
		}
		if in.Email != nil {
			lead.Email = normalizeEmail(*in.Email)
		}
		if in.Phone != nil {
			lead.Phone = strings.TrimSpace(*in.Phone)
		}
		if in.Company != nil {
			lead.Company = strings.TrimSpace(*in.Company)
		}
		if in.Source != nil {
			lead.Source = strings.TrimSpace(*in.Source)
		}
		if in.Status != nil {
			lead.Status = *in.Status
		}
		if in.EstimatedValue != nil {
			lead.EstimatedValue = *in.EstimatedValue
		}
		if _, err := s.leadRepo.Update(dbc, agencyID, lead); err != nil {
			return apperr.MapDB(op, err)
		}
		updated = lead
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return updated, nil
}

func (s *leadService) Delete(ctx context.Context, explicitAgencyID *uuid.UUID, id uuid.UUID) error {
	const op = "lead.Delete"

	rd, err := identityFrom(ctx, op)
	if err != nil {
		return err
	}
	if err := requireCapability(rd, authz.CapManageClients, op); err != nil {
		return err
	}
	agencyID, err := tenantScope(rd, explicitAgencyID, op)
	if err != nil {
		return err
	}
	affected, err := s.leadRepo.Delete(dbctx.Context{Ctx: ctx}, agencyID, id)
	if err != nil {
		return apperr.MapDB(op, err)
	}
	if affected == 0 {
		return apperr.NotFound(op, "lead not found")
	}
	return nil
}
