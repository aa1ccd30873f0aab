package main

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/wellness/wellness/internal/config"
	"github.com/wellness/wellness/internal/domain/booking"
	"github.com/wellness/wellness/internal/domain/chat"
	"github.com/wellness/wellness/internal/domain/health"
	"github.com/wellness/wellness/internal/platform/apierr"
	"github.com/wellness/wellness/internal/platform/auth"
	"github.com/wellness/wellness/internal/platform/middleware"
)

const version = "0.1.0"

type deps struct {
	readings    health.ReadingRepository
	storeHealth echo.HandlerFunc
	completer   chat.Completer
	// now drives the booking calendar; nil means time.Now.
	now func() time.Time
}

// newServer wires the middleware chain and every route onto a fresh echo
// instance. It does not start listening.
func newServer(cfg *config.Config, logger zerolog.Logger, d deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = apierr.Handler(logger)

	rateLimitCfg := middleware.RateLimitConfig{
		RequestsPerSecond: cfg.RateLimitRPS,
		BurstSize:         cfg.RateLimitBurst,
	}
	if rateLimitCfg.RequestsPerSecond <= 0 || rateLimitCfg.BurstSize <= 0 {
		rateLimitCfg = middleware.DefaultRateLimitConfig()
	}

	// Global middleware
	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(middleware.SecurityHeaders())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:  cfg.CORSOrigins,
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:  []string{echo.HeaderAuthorization, echo.HeaderContentType, middleware.RequestIDHeader},
		ExposeHeaders: []string{middleware.RequestIDHeader, "Retry-After", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
	}))
	e.Use(middleware.BodyLimit(cfg.BodyLimit))
	e.Use(middleware.RateLimit(rateLimitCfg))
	e.Use(middleware.ETag(middleware.DefaultETagConfig()))
	if cfg.RequestTimeout > 0 {
		e.Use(middleware.RequestTimeout(cfg.RequestTimeout))
	}

	// Write routes get bearer auth plus a per-subject limiter when a signing
	// secret is configured.
	var write []echo.MiddlewareFunc
	if cfg.AuthEnabled() {
		write = append(write,
			auth.BearerAuth(auth.Config{Secret: []byte(cfg.AuthJWTSecret), Issuer: cfg.AuthIssuer}),
			middleware.RateLimit(rateLimitCfg),
		)
	}

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "ok",
			"version": version,
		})
	})
	if d.storeHealth != nil {
		e.GET("/health/db", d.storeHealth)
	}

	root := e.Group("")
	api := e.Group("/api/v1")

	healthSvc := health.NewService(d.readings)
	health.NewHandler(healthSvc).RegisterRoutes(e, api, write...)

	var snapshots chat.SnapshotSource
	if cfg.ChatIncludeHealthContext {
		snapshots = healthSvc
	}
	chat.NewHandler(chat.NewService(d.completer, snapshots, logger)).RegisterRoutes(e, api, write...)

	bookingHandler := booking.NewHandler(booking.DefaultCatalog(), d.now)
	bookingHandler.RegisterRoutes(root)
	bookingHandler.RegisterRoutes(api)

	return e
}
