package http

import (
	"github.com/gin-gonic/gin"

	httpH "github.com/veldtlabs/agencydesk-backend/internal/http/handlers"
	httpMW "github.com/veldtlabs/agencydesk-backend/internal/http/middleware"
	"github.com/veldtlabs/agencydesk-backend/internal/observability"
	"github.com/veldtlabs/agencydesk-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log            *logger.Logger
	Metrics        *observability.Metrics
	AllowedOrigins []string

	AuthHandler    *httpH.AuthHandler
	AuthMiddleware *httpMW.AuthMiddleware

	AgencyHandler    *httpH.AgencyHandler
	UserHandler      *httpH.UserHandler
	ClientHandler    *httpH.ClientHandler
	ProjectHandler   *httpH.ProjectHandler
	LeadHandler      *httpH.LeadHandler
	QuoteHandler     *httpH.QuoteHandler
	ContactHandler   *httpH.ContactHandler
	TaskHandler      *httpH.TaskHandler
	AssetHandler     *httpH.AssetHandler
	DashboardHandler *httpH.DashboardHandler

	HealthHandler *httpH.HealthHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.CORS(cfg.AllowedOrigins))
	if cfg.Log != nil {
		r.Use(httpMW.RequestLogger(cfg.Log))
	}
	r.Use(httpMW.Metrics(cfg.Metrics))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	api := r.Group("/api")
	{
		// Auth (public)
		if cfg.AuthHandler != nil {
			api.POST("/register", cfg.AuthHandler.Register)
			api.POST("/login", cfg.AuthHandler.Login)
		}
	}

	protected := api.Group("/")
	{
		if cfg.AuthMiddleware != nil {
			protected.Use(cfg.AuthMiddleware.RequireAuth())
		}

		// Auth (protected)
		if cfg.AuthHandler != nil {
			protected.POST("/refresh", cfg.AuthHandler.Refresh)
			protected.POST("/logout", cfg.AuthHandler.Logout)
		}

		// User (Me)
		if cfg.UserHandler != nil {
			protected.GET("/me", cfg.UserHandler.GetMe)
		}

		// Agency
		if cfg.AgencyHandler != nil {
			protected.GET("/agency", cfg.AgencyHandler.Get)
			protected.PATCH("/agency", cfg.AgencyHandler.Update)
			protected.GET("/agencies", cfg.AgencyHandler.List)
			protected.POST("/agencies", cfg.AgencyHandler.Create)
		}

		// Team
		if cfg.UserHandler != nil {
			protected.GET("/team", cfg.UserHandler.ListTeam)
			protected.POST("/team", cfg.UserHandler.CreateTeamMember)
			protected.GET("/team/:id", cfg.UserHandler.GetTeamMember)
			protected.PATCH("/team/:id", cfg.UserHandler.UpdateTeamMember)
			protected.DELETE("/team/:id", cfg.UserHandler.DeleteTeamMember)
			protected.POST("/team/delete-by-email", cfg.UserHandler.DeleteUserByEmail)
		}

		// Clients
		if cfg.ClientHandler != nil {
			protected.GET("/clients", cfg.ClientHandler.List)
			protected.POST("/clients", cfg.ClientHandler.Create)
			protected.GET("/clients/:id", cfg.ClientHandler.Get)
			protected.PATCH("/clients/:id", cfg.ClientHandler.Update)
			protected.DELETE("/clients/:id", cfg.ClientHandler.Delete)
		}

		// Projects
		if cfg.ProjectHandler != nil {
			protected.GET("/projects", cfg.ProjectHandler.List)
			protected.POST("/projects", cfg.ProjectHandler.Create)
			protected.GET("/projects/:id", cfg.ProjectHandler.Get)
			protected.PATCH("/projects/:id", cfg.ProjectHandler.Update)
			protected.DELETE("/projects/:id", cfg.ProjectHandler.Delete)
		}

		// Leads
		if cfg.LeadHandler != nil {
			protected.GET("/leads", cfg.LeadHandler.List)
			protected.POST("/leads", cfg.LeadHandler.Create)
			protected.GET("/leads/:id", cfg.LeadHandler.Get)
			protected.PATCH("/leads/:id", cfg.LeadHandler.Update)
			protected.DELETE("/leads/:id", cfg.LeadHandler.Delete)
		}

		// Quotes
		if cfg.QuoteHandler != nil {
			protected.GET("/quotes", cfg.QuoteHandler.List)
			protected.POST("/quotes", cfg.QuoteHandler.Create)
			protected.GET("/quotes/:id", cfg.QuoteHandler.Get)
			protected.PATCH("/quotes/:id", cfg.QuoteHandler.Update)
			protected.DELETE("/quotes/:id", cfg.QuoteHandler.Delete)
		}

		// Contacts
		if cfg.ContactHandler != nil {
			protected.GET("/contacts", cfg.ContactHandler.List)
			protected.POST("/contacts", cfg.ContactHandler.Create)
			protected.GET("/contacts/:id", cfg.ContactHandler.Get)
			protected.PATCH("/contacts/:id", cfg.ContactHandler.Update)
			protected.DELETE("/contacts/:id", cfg.ContactHandler.Delete)
		}

		// Tasks
		if cfg.TaskHandler != nil {
			protected.GET("/tasks", cfg.TaskHandler.List)
			protected.POST("/tasks", cfg.TaskHandler.Create)
			protected.GET("/tasks/:id", cfg.TaskHandler.Get)
			protected.PATCH("/tasks/:id", cfg.TaskHandler.Update)
			protected.DELETE("/tasks/:id", cfg.TaskHandler.Delete)
		}

		// Assets
		if cfg.AssetHandler != nil {
			protected.GET("/assets", cfg.AssetHandler.List)
			protected.POST("/assets", cfg.AssetHandler.Create)
			protected.GET("/assets/:id", cfg.AssetHandler.Get)
			protected.PATCH("/assets/:id", cfg.AssetHandler.Update)
			protected.DELETE("/assets/:id", cfg.AssetHandler.Delete)
		}

		// Dashboard
		if cfg.DashboardHandler != nil {
			protected.GET("/dashboard/summary", cfg.DashboardHandler.Summary)
		}
	}

	return r
}
