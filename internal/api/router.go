package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/apdc/auth-api/docs"
	"github.com/apdc/auth-api/internal/api/handler"
	"github.com/apdc/auth-api/internal/api/middleware"
	"github.com/apdc/auth-api/internal/core/domain"
	"github.com/apdc/auth-api/internal/core/ports"
)

// RouterConfig carries the already-built collaborators the router
// wires to routes.
type RouterConfig struct {
	Auth       ports.SessionService
	SessionTTL time.Duration
	Readiness  map[string]handler.DependencyCheck
	Log        zerolog.Logger
	// Metrics defaults to the global registry; tests inject their own
	// so building several routers in one process cannot collide.
	Metrics prometheus.Registerer
}

// NewRouter builds and returns the Echo instance with all routes
// registered.
func NewRouter(cfg RouterConfig) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(cfg.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	registerer := cfg.Metrics
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "authapi",
		Registerer: registerer,
	}))

	// --- Auth routes (no prior session required) ---
	authHandler := handler.NewAuthHandler(cfg.Auth, cfg.SessionTTL)
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	// --- Session-gated routes ---
	sessionHandler := handler.NewSessionHandler()
	protected := e.Group("/api", middleware.Session(cfg.Auth, cfg.Log))
	protected.GET("/me", sessionHandler.Me, middleware.RequireRole(cfg.Auth, domain.RoleRegular))
	protected.GET("/time", sessionHandler.Now, middleware.RequireRole(cfg.Auth, domain.RoleAdmin))

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(cfg.Readiness)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)

	// --- Operational surfaces ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
