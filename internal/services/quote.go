package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/veldtlabs/agencydesk-backend/internal/authz"
	"github.com/veldtlabs/agencydesk-backend/internal/data/repos"
	"github.com/veldtlabs/agencydesk-backend/internal/domain"
	"github.com/veldtlabs/agencydesk-backend/internal/platform/apperr"
	"github.com/veldtlabs/agencydesk-backend/internal/platform/dbctx"
	"github.com/veldtlabs/agencydesk-backend/internal/platform/logger"
)

var validQuoteStatuses = map[string]struct{}{
	domain.QuoteStatusDraft:    {},
	domain.QuoteStatusSent:     {},
	domain.QuoteStatusAccepted: {},
	domain.QuoteStatusRejected: {},
	domain.QuoteStatusExpired:  {},
}

type QuoteCreateInput struct {
	Title      string     `json:"title"`
	Amount     float64    `json:"amount"`
	Status     string     `json:"status"`
	LeadID     *uuid.UUID `json:"lead_id"`
	ClientID   *uuid.UUID `json:"client_id"`
	ValidUntil *time.Time `json:"valid_until"`
	AgencyID   *uuid.UUID `json:"agency_id"`
}

type QuoteUpdateInput struct {
	Title      *string    `json:"title"`
	Amount     *float64   `json:"amount"`
	Status     *string    `json:"status"`
	ValidUntil *time.Time `json:"valid_until"`
	AgencyID   *uuid.UUID `json:"agency_id"`
}

type QuoteService interface {
	Create(ctx context.Context, in QuoteCreateInput) (*domain.Quote, error)
	Get(ctx context.Context, explicitAgencyID *uuid.UUID, id uuid.UUID) (*domain.Quote, error)
	List(ctx context.Context, explicitAgencyID *uuid.UUID) ([]*domain.Quote, error)
	Update(ctx context.Context, id uuid.UUID, in QuoteUpdateInput) (*domain.Quote, error)
	Delete(ctx context.Context, explicitAgencyID *uuid.UUID, id uuid.UUID) error
}

type quoteService struct {
	db         *gorm.DB
	log        *logger.Logger
	quoteRepo  repos.QuoteRepo
	leadRepo   repos.LeadRepo
	clientRepo repos.ClientRepo
}

func NewQuoteService(db *gorm.DB, log *logger.Logger, quoteRepo repos.QuoteRepo, leadRepo repos.LeadRepo, clientRepo repos.ClientRepo) QuoteService {
	return &quoteService{
		db:         db,
		log:        log.With("service", "QuoteService"),
		quoteRepo:  quoteRepo,
		leadRepo:   leadRepo,
		clientRepo: clientRepo,
	}
}

func (s *quoteService) Create(ctx context.Context, in QuoteCreateInput) (*domain.Quote, error) {
	const op = "quote.Create"

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
	if strings.TrimSpace(in.Title) == "" {
		return nil, apperr.Validation(op, "title is required")
	}
	if in.Amount < 0 {
		return nil, apperr.Validation(op, "amount cannot be negative")
	}
	status := in.Status
	if status == "" {
		status = domain.QuoteStatusDraft
	}
	if _, ok := validQuoteStatuses[status]; !ok {
		return nil, apperr.Validation(op, "unknown quote status "+status)
	}

	var created *domain.Quote
	txErr := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}

		// Optional references must resolve inside the same agency.
		if in.LeadID != nil && *in.LeadID != uuid.Nil {
			lead, err := s.leadRepo.GetByID(dbc, agencyID, *in.LeadID)
			if err != nil {
				return apperr.MapDB(op, err)
			}
			if lead == nil {
				return apperr.Validation(op, "lead_id does not reference a lead in this agency")
			}
		}
		if in.ClientID != nil && *in.ClientID != uuid.Nil {
			client, err := s.clientRepo.GetByID(dbc, agencyID, *in.ClientID)
			if err != nil {
				return apperr.MapDB(op, err)
			}
			if client == nil {
				return apperr.Validation(op, "client_id does not reference a client in this agency")
			}
		}

		quote := &domain.Quote{
			ID:         uuid.New(),
			AgencyID:   agencyID,
			LeadID:     in.LeadID,
			ClientID:   in.ClientID,
			Title:      strings.TrimSpace(in.Title),
			Amount:     in.Amount,
			Status:     status,
			ValidUntil: in.ValidUntil,
		}
		if err := s.quoteRepo.Create(dbc, quote); err != nil {
			return apperr.MapDB(op, err)
		}
		created = quote
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return created, nil
}

func (s *quoteService) Get(ctx context.Context, explicitAgencyID *uuid.UUID, id uuid.UUID) (*domain.Quote, error) {
	const op = "quote.Get"

	rd, err := identityFrom(ctx, op)
	if err != nil {
		return nil, err
	}
	agencyID, err := tenantScope(rd, explicitAgencyID, op)
	if err != nil {
		return nil, err
	}
	quote, err := s.quoteRepo.GetByID(dbctx.Context{Ctx: ctx}, agencyID, id)
	if err != nil {
		return nil, apperr.MapDB(op, err)
	}
	if quote == nil {
		return nil, apperr.NotFound(op, "quote not found")
	}
	return quote, nil
}

func (s *quoteService) List(ctx context.Context, explicitAgencyID *uuid.UUID) ([]*domain.Quote, error) {
	const op = "quote.List"

	rd, err := identityFrom(ctx, op)
	if err != nil {
		return nil, err
	}
	agencyID, err := tenantScope(rd, explicitAgencyID, op)
	if err != nil {
		return nil, err
	}
	rows, err := s.quoteRepo.List(dbctx.Context{Ctx: ctx}, agencyID)
	if err != nil {
		return nil, apperr.MapDB(op, err)
	}
	return rows, nil
}

func (s *quoteService) Update(ctx context.Context, id uuid.UUID, in QuoteUpdateInput) (*domain.Quote, error) {
	const op = "quote.Update"

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
	if in.Title != nil && strings.TrimSpace(*in.Title) == "" {
		return nil, apperr.Validation(op, "title cannot be empty")
	}
	if in.Amount != nil && *in.Amount < 0 {
		return nil, apperr.Validation(op, "amount cannot be negative")
	}
	if in.Status != nil {
		if _, ok := validQuoteStatuses[*in.Status]; !ok {
			return nil, apperr.Validation(op, "unknown quote status "+*in.Status)
		}
	}

	var updated *domain.Quote
	txErr := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		quote, err := s.quoteRepo.GetByID(dbc, agencyID, id)
		if err != nil {
			return apperr.MapDB(op, err)
		}
		if quote == nil {
			return apperr.NotFound(op, "quote not found")
		}
		if in.Title != nil {
			quote.Title = strings.TrimSpace(*in.Title)
		}
		if in.Amount != nil {
			quote.Amount = *in.Amount
		}
		if in.Status != nil {
			quote.Status = *in.Status
		}
		if in.ValidUntil != nil {
			quote.ValidUntil = in.ValidUntil
		}
		if _, err := s.quoteRepo.Update(dbc, agencyID, quote); err != nil {
			return apperr.MapDB(op, err)
		}
		updated = quote
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return updated, nil
}

func (s *quoteService) Delete(ctx context.Context, explicitAgencyID *uuid.UUID, id uuid.UUID) error {
	const op = "quote.Delete"

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
	affected, err := s.quoteRepo.Delete(dbctx.Context{Ctx: ctx}, agencyID, id)
	if err != nil {
		return apperr.MapDB(op, err)
	}
	if affected == 0 {
		return apperr.NotFound(op, "quote not found")
	}
	return nil
}
