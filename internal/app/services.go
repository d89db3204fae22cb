package app

import (
	"gorm.io/gorm"

	"github.com/veldtlabs/agencydesk-backend/internal/platform/logger"
	"github.com/veldtlabs/agencydesk-backend/internal/services"
)

type Services struct {
	Auth      services.AuthService
	Agency    services.AgencyService
	User      services.UserService
	Cascade   services.CascadeService
	Client    services.ClientService
	Project   services.ProjectService
	Lead      services.LeadService
	Quote     services.QuoteService
	Contact   services.ContactService
	Task      services.TaskService
	Asset     services.AssetService
	Dashboard services.DashboardService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, r Repos) Services {
	log.Info("Wiring services...")
	return Services{
		Auth: services.NewAuthService(
			db, log,
			r.User, r.Agency, r.UserToken,
			cfg.JWTSecretKey, cfg.AccessTokenTTL, cfg.RefreshTokenTTL,
		),
		Agency: services.NewAgencyService(db, log, r.Agency),
		User:   services.NewUserService(db, log, r.User),
		Cascade: services.NewCascadeService(
			db, log,
			r.Agency, r.User, r.UserToken,
			r.Client, r.Project, r.Lead, r.Quote, r.Contact, r.Task, r.Asset,
		),
		Client:  services.NewClientService(db, log, r.Client),
		Project: services.NewProjectService(db, log, r.Project, r.Client),
		Lead:    services.NewLeadService(db, log, r.Lead),
		Quote:   services.NewQuoteService(db, log, r.Quote, r.Lead, r.Client),
		Contact: services.NewContactService(db, log, r.Contact, r.Client),
		Task:    services.NewTaskService(db, log, r.Task, r.Project, r.Lead, r.Client, r.User),
		Asset:   services.NewAssetService(db, log, r.Asset),
		Dashboard: services.NewDashboardService(
			db, log,
			r.User, r.Client, r.Project, r.Lead, r.Quote, r.Contact, r.Task, r.Asset,
		),
	}
}
