// Package server exposes the HTTP and websocket surface: registration, admin
// wheel control, the hall event feed, and operational endpoints.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/sessions"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	goredis "github.com/redis/go-redis/v9"

	"github.com/a-thamaraiselvan/Spin-wheel/internal/app"
	"github.com/a-thamaraiselvan/Spin-wheel/internal/config"
	apperrors "github.com/a-thamaraiselvan/Spin-wheel/internal/errors"
	"github.com/a-thamaraiselvan/Spin-wheel/internal/hall"
)

const sessionMaxAgeHours = 12

type Server struct {
	echo         *echo.Echo
	config       *config.Config
	app          *app.Service
	hub          *hall.Hub
	pool         *pgxpool.Pool
	redisClient  *goredis.Client
	sessionStore *sessions.CookieStore
	registerRate *registrationRateLimiter
	startTime    time.Time
}

func NewServer(cfg *config.Config, service *app.Service, hub *hall.Hub, pool *pgxpool.Pool, redisClient *goredis.Client) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Middleware
	e.Use(middleware.Recover())
	e.Use(apperrors.Middleware())

	// Session store
	sessionStore := sessions.NewCookieStore([]byte(cfg.SessionSecret))
	sessionStore.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   3600 * sessionMaxAgeHours,
		HttpOnly: true,
		Secure:   cfg.AppEnv == "production",
		SameSite: http.SameSiteLaxMode,
	}

	srv := &Server{
		echo:         e,
		config:       cfg,
		app:          service,
		hub:          hub,
		pool:         pool,
		redisClient:  redisClient,
		sessionStore: sessionStore,
		registerRate: newRegistrationRateLimiter(registrationsPerMinute, registrationBurst),
		startTime:    time.Now(),
	}

	srv.registerRoutes()
	return srv
}

func (s *Server) Start() error {
	slog.Info("Starting server", "port", s.config.Port)
	return s.echo.Start(fmt.Sprintf(":%s", s.config.Port))
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
