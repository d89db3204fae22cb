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

type ContactCreateInput struct {
	Name     string     `json:"name"`
	Email    string     `json:"email"`
	Phone    string     `json:"phone"`
	Title    string     `json:"title"`
	ClientID *uuid.UUID `json:"client_id"`
	AgencyID *uuid.UUID `json:"agency_id"`
}

type ContactUpdateInput struct {
	Name     *string    `json:"name"`
	Email    *string    `json:"email"`
	Phone    *string    `json:"phone"`
	Title    *string    `json:"title"`
	AgencyID *uuid.UUID `json:"agency_id"`
}

type ContactService interface {
	Create(ctx context.Context, in ContactCreateInput) (*domain.Contact, error)
	Get(ctx context.Context, explicitAgencyID *uuid.UUID, id uuid.UUID) (*domain.Contact, error)
	List(ctx context.Context, explicitAgencyID *uuid.UUID) ([]*domain.Contact, error)
	Update(ctx context.Context, id uuid.UUID, in ContactUpdateInput) (*domain.Contact, error)
	Delete(ctx context.Context, explicitAgencyID *uuid.UUID, id uuid.UUID) error
}

type contactService struct {
	db          *gorm.DB
	log         *logger.Logger
	contactRepo repos.ContactRepo
	clientRepo  repos.ClientRepo
}

func NewContactService(db *gorm.DB, log *logger.Logger, contactRepo repos.ContactRepo, clientRepo repos.ClientRepo) ContactService {
	return &contactService{
		db:          db,
		log:         log.With("service", "ContactService"),
		contactRepo: contactRepo,
		clientRepo:  clientRepo,
	}
}

func (s *contactService) Create(ctx context.Context, in ContactCreateInput) (*domain.Contact, error) {
	const op = "contact.Create"

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

	var created *domain.Contact
	txErr := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		if in.ClientID != nil && *in.ClientID != uuid.Nil {
			client, err := s.clientRepo.GetByID(dbc, agencyID, *in.ClientID)
			if err != nil {
				return apperr.MapDB(op, err)
			}
			if client == nil {
				return apperr.Validation(op, "client_id does not reference a client in this agency")
			}
		}
		contact := &domain.Contact{
			ID:       uuid.New(),
			AgencyID: agencyID,
			ClientID: in.ClientID,
			Name:     strings.TrimSpace(in.Name),
			Email:    normalizeEmail(in.Email),
			Phone:    strings.TrimSpace(in.Phone),
			Title:    strings.TrimSpace(in.Title),
		}
		if err := s.contactRepo.Create(dbc, contact); err != nil {
			return apperr.MapDB(op, err)
		}
		created = contact
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return created, nil
}

func (s *contactService) Get(ctx context.Context, explicitAgencyID *uuid.UUID, id uuid.UUID) (*domain.Contact, error) {
	const op = "contact.Get"

	rd, err := identityFrom(ctx, op)
	if err != nil {
		return nil, err
	}
	agencyID, err := tenantScope(rd, explicitAgencyID, op)
	if err != nil {
		return nil, err
	}
	contact, err := s.contactRepo.GetByID(dbctx.Context{Ctx: ctx}, agencyID, id)
	if err != nil {
		return nil, apperr.MapDB(op, err)
	}
	if contact == nil {
		return nil, apperr.NotFound(op, "contact not found")
	}
	return contact, nil
}

func (s *contactService) List(ctx context.Context, explicitAgencyID *uuid.UUID) ([]*domain.Contact, error) {
	const op = "contact.List"

	rd, err := identityFrom(ctx, op)
	if err != nil {
		return nil, err
	}
	agencyID, err := tenantScope(rd, explicitAgencyID, op)
	if err != nil {
		return nil, err
	}
	rows, err := s.contactRepo.List(dbctx.Context{Ctx: ctx}, agencyID)
	if err != nil {
		return nil, apperr.MapDB(op, err)
	}
	return rows, nil
}

func (s *contactService) Update(ctx context.Context, id uuid.UUID, in ContactUpdateInput) (*domain.Contact, error) {
	const op = "contact.Update"

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

	var updated *domain.Contact
	txErr := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		contact, err := s.contactRepo.GetByID(dbc, agencyID, id)
		if err != nil {
			return apperr.MapDB(op, err)
		}
		if contact == nil {
			return apperr.NotFound(op, "contact not found")
		}
		if in.Name != nil {
			contact.Name = strings.TrimSpace(*in.Name)
		}
		if in.Email != nil {
			contact.Email = normalizeEmail(*in.Email)
		}
		if in.Phone != nil {
			contact.Phone = strings.TrimSpace(*in.Phone)
		}
		if in.Title != nil {
			contact.Title = strings.TrimSpace(*in.Title)
		}
		if _, err := s.contactRepo.Update(dbc, agencyID, contact); err != nil {
			return apperr.MapDB(op, err)
		}
		updated = contact
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return updated, nil
}

func (s *contactService) Delete(ctx context.Context, explicitAgencyID *uuid.UUID, id uuid.UUID) error {
	const op = "contact.Delete"

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
	affected, err := s.contactRepo.Delete(dbctx.Context{Ctx: ctx}, agencyID, id)
	if err != nil {
		return apperr.MapDB(op, err)
	}
	if affected == 0 {
		return apperr.NotFound(op, "contact not found")
	}
	return nil
}
