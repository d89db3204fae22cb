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

var validClientStatuses = map[string]struct{}{
	domain.ClientStatusActive:   {},
	domain.ClientStatusInactive: {},
	domain.ClientStatusArchived: {},
}

type ClientCreateInput struct {
	Name         string     `json:"name"`
	ContactName  string     `json:"contact_name"`
	ContactEmail string     `json:"contact_email"`
	ContactPhone string     `json:"contact_phone"`
	Industry     string     `json:"industry"`
	Status       string     `json:"status"`
	AgencyID     *uuid.UUID `json:"agency_id"`
}

type ClientUpdateInput struct {
	Name         *string    `json:"name"`
	ContactName  *string    `json:"contact_name"`
	ContactEmail *string    `json:"contact_email"`
	ContactPhone *string    `json:"contact_phone"`
	Industry     *string    `json:"industry"`
	Status       *string    `json:"status"`
	AgencyID     *uuid.UUID `json:"agency_id"`
}

type ClientService interface {
	Create(ctx context.Context, in ClientCreateInput) (*domain.Client, error)
	Get(ctx context.Context, explicitAgencyID *uuid.UUID, id uuid.UUID) (*domain.Client, error)
	List(ctx context.Context, explicitAgencyID *uuid.UUID) ([]*domain.Client, error)
	Update(ctx context.Context, id uuid.UUID, in ClientUpdateInput) (*domain.Client, error)
	Delete(ctx context.Context, explicitAgencyID *uuid.UUID, id uuid.UUID) error
}

type clientService struct {
	db         *gorm.DB
	log        *logger.Logger
	clientRepo repos.ClientRepo
}

func NewClientService(db *gorm.DB, log *logger.Logger, clientRepo repos.ClientRepo) ClientService {
	return &clientService{
		db:         db,
		log:        log.With("service", "ClientService"),
		clientRepo: clientRepo,
	}
}

func (s *clientService) Create(ctx context.Context, in ClientCreateInput) (*domain.Client, error) {
	const op = "client.Create"

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
		status = domain.ClientStatusActive
	}
	if _, ok := validClientStatuses[status]; !ok {
		return nil, apperr.Validation(op, "unknown client status "+status)
	}

	client := &domain.Client{
		ID:           uuid.New(),
		AgencyID:     agencyID,
		Name:         strings.TrimSpace(in.Name),
		ContactName:  strings.TrimSpace(in.ContactName),
		ContactEmail: normalizeEmail(in.ContactEmail),
		ContactPhone: strings.TrimSpace(in.ContactPhone),
		Industry:     strings.TrimSpace(in.Industry),
		Status:       status,
	}
	if err := s.clientRepo.Create(dbctx.Context{Ctx: ctx}, client); err != nil {
		return nil, apperr.MapDB(op, err)
	}
	return client, nil
}

func (s *clientService) Get(ctx context.Context, explicitAgencyID *uuid.UUID, id uuid.UUID) (*domain.Client, error) {
	const op = "client.Get"

	rd, err := identityFrom(ctx, op)
	if err != nil {
		return nil, err
	}
	agencyID, err := tenantScope(rd, explicitAgencyID, op)
	if err != nil {
		return nil, err
	}
	client, err := s.clientRepo.GetByID(dbctx.Context{Ctx: ctx}, agencyID, id)
	if err != nil {
		return nil, apperr.MapDB(op, err)
	}
	if client == nil {
		return nil, apperr.NotFound(op, "client not found")
	}
	return client, nil
}

func (s *clientService) List(ctx context.Context, explicitAgencyID *uuid.UUID) ([]*domain.Client, error) {
	const op = "client.List"

	rd, err := identityFrom(ctx, op)
	if err != nil {
		return nil, err
	}
	agencyID, err := tenantScope(rd, explicitAgencyID, op)
	if err != nil {
		return nil, err
	}
	rows, err := s.clientRepo.List(dbctx.Context{Ctx: ctx}, agencyID)
	if err != nil {
		return nil, apperr.MapDB(op, err)
	}
	return rows, nil
}

func (s *clientService) Update(ctx context.Context, id uuid.UUID, in ClientUpdateInput) (*domain.Client, error) {
	const op = "client.Update"

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
		if _, ok := validClientStatuses[*in.Status]; !ok {
			return nil, apperr.Validation(op, "unknown client status "+*in.Status)
		}
	}

	var updated *domain.Client
	txErr := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		client, err := s.clientRepo.GetByID(dbc, agencyID, id)
		if err != nil {
			return apperr.MapDB(op, err)
		}
		if client == nil {
			return apperr.NotFound(op, "client not found")
		}
		if in.Name != nil {
			client.Name = strings.TrimSpace(*in.Name)
		}
		if in.ContactName != nil {
			client.ContactName = strings.TrimSpace(*in.ContactName)
		}
		if in.ContactEmail != nil {
			client.ContactEmail = normalizeEmail(*in.ContactEmail)
		}
		if in.ContactPhone != nil {
			client.ContactPhone = strings.TrimSpace(*in.ContactPhone)
		}
		if in.Industry != nil {
			client.Industry = strings.TrimSpace(*in.Industry)
		}
		if in.Status != nil {
			client.Status = *in.Status
		}
		if _, err := s.clientRepo.Update(dbc, agencyID, client); err != nil {
			return apperr.MapDB(op, err)
		}
		updated = client
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return updated, nil
}

func (s *clientService) Delete(ctx context.Context, explicitAgencyID *uuid.UUID, id uuid.UUID) error {
	const op = "client.Delete"

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
	affected, err := s.clientRepo.Delete(dbctx.Context{Ctx: ctx}, agencyID, id)
	if err != nil {
		return apperr.MapDB(op, err)
	}
	if affected == 0 {
		return apperr.NotFound(op, "client not found")
	}
	return nil
}
