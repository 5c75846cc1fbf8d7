// Package api assembles the HTTP surface of the crowdfunding service.
package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/csfund/crowdfund-system/internal/api/handler"
	"github.com/csfund/crowdfund-system/internal/api/middleware"
	"github.com/csfund/crowdfund-system/internal/core/ports"
	"github.com/csfund/crowdfund-system/internal/infrastructure/http/handlers"
)

// Deps carries everything the router needs; construction of services and
// repositories stays with the caller.
type Deps struct {
	Auth    ports.AuthService
	Catalog ports.CatalogService
	Pledges ports.PledgeService
	Stats   ports.StatsService

	JWTSecret string
	Logger    zerolog.Logger

	// HealthChecks probe the configured backing stores for /health/ready.
	HealthChecks []handlers.DependencyCheck
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("crowdfund"))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.Auth)
	projectHandler := handler.NewProjectHandler(deps.Catalog)
	pledgeHandler := handler.NewPledgeHandler(deps.Pledges)
	statsHandler := handler.NewStatsHandler(deps.Stats)
	authMiddleware := middleware.Auth(deps.JWTSecret)

	// --- Auth routes ---
	e.POST("/auth/login", authHandler.Login)

	// --- Public catalog and platform stats ---
	v1 := e.Group("/v1")
	v1.GET("/projects", projectHandler.List)
	v1.GET("/projects/:project_id", projectHandler.Get)
	v1.GET("/projects/:project_id/tiers", projectHandler.ListTiers)
	v1.GET("/projects/:project_id/tiers/:tier_id", projectHandler.GetTier)
	v1.GET("/stats", statsHandler.Global)

	// --- Backer routes (JWT required) ---
	v1.POST("/pledges", pledgeHandler.Create, authMiddleware)
	v1.GET("/stats/me", statsHandler.Me, authMiddleware)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	readinessHandler := handlers.NewReadinessHandler(deps.HealthChecks...)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
