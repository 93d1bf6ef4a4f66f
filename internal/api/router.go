package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/catalogo/service-catalog/docs"
	"github.com/catalogo/service-catalog/internal/api/handler"
	"github.com/catalogo/service-catalog/internal/api/middleware"
	"github.com/catalogo/service-catalog/internal/core/ports"
	"github.com/catalogo/service-catalog/internal/pkg/config"
)

// Deps carries everything the router wires into handlers.
type Deps struct {
	Config  *config.Config
	Log     zerolog.Logger
	Auth    ports.AuthService
	Catalog ports.CatalogService

	// Redis backs the rate limiters when set; otherwise they are in-memory.
	Redis *goredis.Client
	// Checks are probed by the readiness endpoint.
	Checks map[string]handler.Pinger

	// Registerer and Gatherer default to the global Prometheus registry.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	cfg := d.Config
	if d.Registerer == nil {
		d.Registerer = prometheus.DefaultRegisterer
	}
	if d.Gatherer == nil {
		d.Gatherer = prometheus.DefaultGatherer
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log, !cfg.IsProduction())

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.ContextLogger(d.Log))
	e.Use(middleware.RequestLogger(d.Log))
	e.Use(middleware.SecureHeaders(!cfg.IsProduction()))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     []string{cfg.CORSOrigin},
		AllowMethods:     []string{echo.GET, echo.POST, echo.PUT, echo.DELETE, echo.OPTIONS},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowCredentials: true,
	}))
	e.Use(echomiddleware.BodyLimit("1M"))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "catalog",
		Subsystem:  "http",
		Registerer: d.Registerer,
	}))

	// --- Dependencies ---
	authHandler := handler.NewAuthHandler(d.Auth)
	serviceHandler := handler.NewServiceHandler(d.Catalog)
	healthHandler := handler.NewHealthHandler(d.Checks)

	requireAuth := middleware.Auth(d.Auth)
	optionalAuth := middleware.OptionalAuth(d.Auth)

	// Subgroups copy their parent's middleware on creation, so limiters are
	// installed before the groups below are derived.
	api := e.Group("/api")
	if cfg.RateLimitEnabled() {
		api.Use(middleware.RateLimit(
			middleware.NewRateLimiterStore(d.Redis, "api", cfg.RateLimit.Max, cfg.RateLimit.Window, d.Log),
			"too many requests from this IP, try again later",
		))
	}
	authGroup := api.Group("/auth")
	if cfg.RateLimitEnabled() {
		authGroup.Use(middleware.RateLimit(
			middleware.NewRateLimiterStore(d.Redis, "auth", cfg.RateLimit.AuthMax, cfg.RateLimit.Window, d.Log),
			"too many authentication attempts, try again later",
		))
	}

	// --- Auth routes ---
	authGroup.POST("/registro", authHandler.Register)
	authGroup.POST("/login", authHandler.Login)
	authGroup.POST("/crear-usuario", authHandler.CreateUser, requireAuth, middleware.SuperadminOnly())

	// --- Service catalog routes ---
	services := api.Group("/services")
	services.GET("", serviceHandler.List, optionalAuth)
	services.GET("/publicos", serviceHandler.ListPublic)
	services.POST("", serviceHandler.Create, requireAuth, middleware.AdminOrSuperadmin())
	services.PUT("/:id", serviceHandler.Update, requireAuth, middleware.ServiceOwner(d.Catalog))
	services.DELETE("/:id", serviceHandler.Delete, requireAuth, middleware.ServiceOwner(d.Catalog))

	// --- Health probes, metrics and docs (no auth required) ---
	e.GET("/health", healthHandler.Liveness)        // liveness  – is the process alive?
	e.GET("/health/ready", healthHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: d.Gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
