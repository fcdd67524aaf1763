package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jonboulle/clockwork"
	goredis "github.com/redis/go-redis/v9"

	"github.com/a-thamaraiselvan/Spin-wheel/internal/app"
	"github.com/a-thamaraiselvan/Spin-wheel/internal/celebration"
	"github.com/a-thamaraiselvan/Spin-wheel/internal/config"
	"github.com/a-thamaraiselvan/Spin-wheel/internal/database"
	"github.com/a-thamaraiselvan/Spin-wheel/internal/gemini"
	"github.com/a-thamaraiselvan/Spin-wheel/internal/hall"
	"github.com/a-thamaraiselvan/Spin-wheel/internal/logging"
	"github.com/a-thamaraiselvan/Spin-wheel/internal/server"
	"github.com/a-thamaraiselvan/Spin-wheel/internal/wheel"
)

func setupConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		// Use log before slog is initialized
		log.Fatalf("Failed to load config: %v", err)
	}
	return cfg
}

func setupDB(cfg *config.Config) *pgxpool.Pool {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := database.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}

	if err := database.RunMigrations(ctx, pool); err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	return pool
}

func setupRedis(ctx context.Context, cfg *config.Config) *goredis.Client {
	opts, err := goredis.ParseURL(cfg.RedisURL)
	if err != nil {
		slog.Error("Failed to parse Redis URL", "error", err)
		os.Exit(1)
	}

	client := goredis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		slog.Error("Failed to connect to Redis", "error", err)
		os.Exit(1)
	}
	return client
}

func setupWheel(cfg *config.Config) *wheel.Wheel {
	segments := cfg.WheelSegments
	if len(segments) == 0 {
		segments = wheel.DefaultSegments
	}

	w, err := wheel.New(segments)
	if err != nil {
		slog.Error("Invalid wheel segments", "error", err)
		os.Exit(1)
	}
	return w
}

func runGracefulShutdown(srv *server.Server, appSvc *app.Service, hub *hall.Hub, subscriber *hall.Subscriber) <-chan struct{} {
	done := make(chan struct{})
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		slog.Info("Shutdown signal received, cleaning up...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}

		appSvc.Shutdown()
		subscriber.Close()
		hub.Stop()

		close(done)
	}()

	return done
}

func main() {
	clock := clockwork.NewRealClock()

	cfg := setupConfig()

	// Initialize structured logging
	logging.InitLogger(cfg.LogLevel, cfg.LogFormat)
	slog.Info("Application starting", "env", cfg.AppEnv, "port", cfg.Port)

	pool := setupDB(cfg)
	defer pool.Close()

	redisClient := setupRedis(context.Background(), cfg)
	defer func() { _ = redisClient.Close() }()

	// Stores
	staffRepo := database.NewStaffRepository(pool)
	resultRepo := database.NewResultRepository(pool)

	// Hall event fan-out
	hub := hall.NewHub()
	publisher := hall.NewPublisher(redisClient, hub)
	subscriber := hall.NewSubscriber(context.Background(), redisClient, hub)

	// Wheel
	w := setupWheel(cfg)
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	planner := wheel.NewPlanner(w, rng, cfg.SpinMinDuration, cfg.SpinMaxDuration)
	driver := wheel.NewDriver(clock)

	// Quote pipeline
	quotes := gemini.NewClient(&http.Client{Timeout: 10 * time.Second}, cfg.GeminiAPIKey, cfg.GeminiBaseURL, cfg.GeminiModel)
	coordinator := celebration.NewCoordinator(quotes, resultRepo, publisher, clock, cfg.QuoteTimeout)

	appSvc := app.NewService(staffRepo, resultRepo, planner, driver, coordinator, publisher, clock)

	srv := server.NewServer(cfg, appSvc, hub, pool, redisClient)

	done := runGracefulShutdown(srv, appSvc, hub, subscriber)

	slog.Info("Server starting", "port", cfg.Port)
	if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server error", "error", err)
		os.Exit(1)
	}

	<-done
}
