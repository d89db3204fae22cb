package app

import (
	"github.com/gin-gonic/gin"

	apphttp "github.com/veldtlabs/agencydesk-backend/internal/http"
	httpH "github.com/veldtlabs/agencydesk-backend/internal/http/handlers"
	httpMW "github.com/veldtlabs/agencydesk-backend/internal/http/middleware"
	"github.com/veldtlabs/agencydesk-backend/internal/observability"
	"github.com/veldtlabs/agencydesk-backend/internal/platform/logger"
)

type Middleware struct {
	Auth *httpMW.AuthMiddleware
}

type Handlers struct {
	Health    *httpH.HealthHandler
	Auth      *httpH.AuthHandler
	Agency    *httpH.AgencyHandler
	User      *httpH.UserHandler
	Client    *httpH.ClientHandler
	Project   *httpH.ProjectHandler
	Lead      *httpH.LeadHandler
	Quote     *httpH.QuoteHandler
	Contact   *httpH.ContactHandler
	Task      *httpH.TaskHandler
	Asset     *httpH.AssetHandler
	Dashboard *httpH.DashboardHandler
}

func wireHandlers(log *logger.Logger, services Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:    httpH.NewHealthHandler(),
		Auth:      httpH.NewAuthHandler(services.Auth),
		Agency:    httpH.NewAgencyHandler(services.Agency),
		User:      httpH.NewUserHandler(services.User, services.Cascade),
		Client:    httpH.NewClientHandler(services.Client),
		Project:   httpH.NewProjectHandler(services.Project),
		Lead:      httpH.NewLeadHandler(services.Lead),
		Quote:     httpH.NewQuoteHandler(services.Quote),
		Contact:   httpH.NewContactHandler(services.Contact),
		Task:      httpH.NewTaskHandler(services.Task),
		Asset:     httpH.NewAssetHandler(services.Asset),
		Dashboard: httpH.NewDashboardHandler(services.Dashboard),
	}
}

func wireMiddleware(log *logger.Logger, services Services) Middleware {
	log.Info("Wiring middleware...")
	return Middleware{
		Auth: httpMW.NewAuthMiddleware(log, services.Auth),
	}
}

func wireRouter(log *logger.Logger, cfg Config, handlers Handlers, middleware Middleware) *gin.Engine {
	return apphttp.NewRouter(apphttp.RouterConfig{
		Log:            log,
		Metrics:        observability.Current(),
		AllowedOrigins: cfg.AllowedOrigins,

		HealthHandler:  handlers.Health,
		AuthHandler:    handlers.Auth,
		AuthMiddleware: middleware.Auth,

		AgencyHandler:    handlers.Agency,
		UserHandler:      handlers.User,
		ClientHandler:    handlers.Client,
		ProjectHandler:   handlers.Project,
		LeadHandler:      handlers.Lead,
		QuoteHandler:     handlers.Quote,
		ContactHandler:   handlers.Contact,
		TaskHandler:      handlers.Task,
		AssetHandler:     handlers.Asset,
		DashboardHandler: handlers.Dashboard,
	})
}
