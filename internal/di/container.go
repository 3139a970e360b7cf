package di

import (
	"github.com/MetinovAdik/kopuro-frontend/internal/handler"
	"github.com/MetinovAdik/kopuro-frontend/internal/middleware"
	"github.com/MetinovAdik/kopuro-frontend/internal/service"
	"github.com/MetinovAdik/kopuro-frontend/internal/session"
	"github.com/MetinovAdik/kopuro-frontend/internal/upstream"
	"github.com/MetinovAdik/kopuro-frontend/pkg/config"
)

// Container holds all dependencies for the portal
type Container struct {
	// Infrastructure
	SessionRepo session.Repository
	Upstream    *upstream.Client
	Cookies     *middleware.CookieManager

	// Services
	AuthService       service.AuthService
	IssueService      service.IssueService
	StatsService      service.StatsService
	AdminService      service.AdminService
	PreferenceService service.PreferenceService

	// Handlers
	AuthHandler       *handler.AuthHandler
	IssueHandler      *handler.IssueHandler
	StatsHandler      *handler.StatsHandler
	AdminHandler      *handler.AdminHandler
	PreferenceHandler *handler.PreferenceHandler
	HealthHandler     *handler.HealthHandler
}

// ContainerConfig contains configuration for building the container
type ContainerConfig struct {
	Config       *config.Config
	SessionRepo  session.Repository
	HealthChecks map[string]handler.CheckFunc
}

// NewContainer creates a new dependency injection container
func NewContainer(cfg *ContainerConfig) *Container {
	c := &Container{
		SessionRepo: cfg.SessionRepo,
		Upstream:    upstream.NewClient(&cfg.Config.Upstream),
		Cookies:     middleware.NewCookieManager(&cfg.Config.Session),
	}

	// Initialize services
	c.AuthService = service.NewAuthService(c.Upstream)
	c.IssueService = service.NewIssueService(c.Upstream)
	c.StatsService = service.NewStatsService(c.Upstream, service.StatsConfig{
		TopAddressesLimit: cfg.Config.Stats.TopAddressesLimit,
		GroupByPeriod:     cfg.Config.Stats.GroupByPeriod,
	})
	c.AdminService = service.NewAdminService(c.Upstream)
	c.PreferenceService = service.NewPreferenceService(c.SessionRepo, cfg.Config.Session.TTL)

	// Initialize handlers
	c.AuthHandler = handler.NewAuthHandler(c.AuthService)
	c.IssueHandler = handler.NewIssueHandler(c.IssueService)
	c.StatsHandler = handler.NewStatsHandler(c.StatsService)
	c.AdminHandler = handler.NewAdminHandler(c.AdminService)
	c.PreferenceHandler = handler.NewPreferenceHandler(c.PreferenceService)
	c.HealthHandler = handler.NewHealthHandler(cfg.Config.App.Name, cfg.Config.App.Version, cfg.HealthChecks)

	return c
}
