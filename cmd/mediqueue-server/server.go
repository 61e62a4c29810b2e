package main

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/mediqueue/mediqueue/internal/domain/catalog"
	"github.com/mediqueue/mediqueue/internal/domain/intake"
	"github.com/mediqueue/mediqueue/internal/domain/queue"
	"github.com/mediqueue/mediqueue/internal/platform/auth"
	"github.com/mediqueue/mediqueue/internal/platform/db"
	"github.com/mediqueue/mediqueue/internal/platform/middleware"
	"github.com/mediqueue/mediqueue/internal/platform/websocket"
)

func newServer(a *app) *echo.Echo {
	cfg := a.cfg

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Global middleware
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(a.logger))
	e.Use(middleware.Recovery(a.logger))
	e.Use(middleware.SecurityHeaders())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders: []string{echo.HeaderAuthorization, echo.HeaderContentType, middleware.RequestIDHeader},
	}))
	e.Use(middleware.BodyLimit("64K"))
	e.Use(middleware.RequestTimeout(cfg.RequestTimeout))

	var tokens *auth.TokenIssuer
	if cfg.TokensEnabled() {
		tokens = auth.NewTokenIssuer(cfg.AdminTokenSecret, cfg.AdminTokenTTL)
	}
	adminGuard := auth.RequireAdmin(auth.AdminConfig{
		Username:     cfg.AdminUsername,
		Password:     cfg.AdminPassword,
		PasswordHash: cfg.AdminPasswordHash,
		Tokens:       tokens,
	})

	// Health checks
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "ok",
			"version": version,
		})
	})
	e.GET("/health/db", db.HealthHandler(a.pool))

	api := e.Group("/api", middleware.RateLimit(middleware.RateLimitConfig{
		RequestsPerSecond: cfg.RateLimitRPS,
		BurstSize:         cfg.RateLimitBurst,
	}))
	admin := api.Group("/admin", adminGuard)

	catalog.NewHandler(a.catalog).RegisterRoutes(api, admin)
	intake.NewHandler(a.intake).RegisterRoutes(api)
	queue.NewHandler(a.queue).RegisterRoutes(api)
	websocket.NewHandler(a.hub, a.logger, cfg.CORSOrigins).RegisterRoutes(api)
	if tokens != nil {
		auth.NewTokenHandler(tokens).RegisterRoutes(admin)
	}

	// Front-end
	if cfg.StaticDir != "" {
		e.Use(auth.GuardPaths(adminGuard, "/admin.html", "/admin.js"))
		e.Use(echomw.StaticWithConfig(echomw.StaticConfig{
			Root:  cfg.StaticDir,
			HTML5: true,
			Skipper: func(c echo.Context) bool {
				p := c.Request().URL.Path
				return strings.HasPrefix(p, "/api/") || strings.HasPrefix(p, "/health")
			},
		}))
	}

	return e
}
