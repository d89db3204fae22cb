package services

import (
	"context"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/veldtlabs/agencydesk-backend/internal/data/repos"
	"github.com/veldtlabs/agencydesk-backend/internal/platform/apperr"
	"github.com/veldtlabs/agencydesk-backend/internal/platform/dbctx"
	"github.com/veldtlabs/agencydesk-backend/internal/platform/logger"
)

type DashboardSummary struct {
	AgencyID uuid.UUID `json:"agency_id"`
	Clients  int64     `json:"clients"`
	Projects int64     `json:"projects"`
	Leads    int64     `json:"leads"`
	Quotes   int64     `json:"quotes"`
	Contacts int64     `json:"contacts"`
	Tasks    int64     `json:"tasks"`
	Assets   int64     `json:"assets"`
	Team     int64     `json:"team"`
}

type DashboardService interface {
	Summary(ctx context.Context, explicitAgencyID *uuid.UUID) (*DashboardSummary, error)
}

type dashboardService struct {
	db          *gorm.DB
	log         *logger.Logger
	userRepo    repos.UserRepo
	clientRepo  repos.ClientRepo
	projectRepo repos.ProjectRepo
	leadRepo    repos.LeadRepo
	quoteRepo   repos.QuoteRepo
	contactRepo repos.ContactRepo
	taskRepo    repos.TaskRepo
	assetRepo   repos.AssetRepo
}

func NewDashboardService(
	db *gorm.DB,
	log *logger.Logger,
	userRepo repos.UserRepo,
	clientRepo repos.ClientRepo,
	projectRepo repos.ProjectRepo,
	leadRepo repos.LeadRepo,
	quoteRepo repos.QuoteRepo,
	contactRepo repos.ContactRepo,
	taskRepo repos.TaskRepo,
	assetRepo repos.AssetRepo,
) DashboardService {
	return &dashboardService{
		db:          db,
		log:         log.With("service", "DashboardService"),
		userRepo:    userRepo,
		clientRepo:  clientRepo,
		projectRepo: projectRepo,
		leadRepo:    leadRepo,
		quoteRepo:   quoteRepo,
		contactRepo: contactRepo,
		taskRepo:    taskRepo,
		assetRepo:   assetRepo,
	}
}

// Summary fans the per-entity counts out over the connection pool; each
// count is an independent read, so no transaction is needed.
func (s *dashboardService) Summary(ctx context.Context, explicitAgencyID *uuid.UUID) (*DashboardSummary, error) {
	const op = "dashboard.Summary"

	rd, err := identityFrom(ctx, op)
	if err != nil {
		return nil, err
	}
	agencyID, err := tenantScope(rd, explicitAgencyID, op)
	if err != nil {
		return nil, err
	}

	summary := &DashboardSummary{AgencyID: agencyID}
	g, gctx := errgroup.WithContext(ctx)
	dbc := func() dbctx.Context { return dbctx.Context{Ctx: gctx} }

	counts := []struct {
		dst *int64
		fn  func(dbctx.Context, uuid.UUID) (int64, error)
	}{
		{&summary.Clients, s.clientRepo.Count},
		{&summary.Projects, s.projectRepo.Count},
		{&summary.Leads, s.leadRepo.Count},
		{&summary.Quotes, s.quoteRepo.Count},
		{&summary.Contacts, s.contactRepo.Count},
		{&summary.Tasks, s.taskRepo.Count},
		{&summary.Assets, s.assetRepo.Count},
		{&summary.Team, s.userRepo.CountByAgency},
	}
	for _, c := range counts {
		c := c
		g.Go(func() error {
			n, err := c.fn(dbc(), agencyID)
			if err != nil {
				return apperr.MapDB(op, err)
			}
			*c.dst = n
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return summary, nil
}
