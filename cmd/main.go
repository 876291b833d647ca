package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	httpadapter "pulse-ads/internal/adapter/http"
	"pulse-ads/internal/adapter/postgres"
	redisadapter "pulse-ads/internal/adapter/redis"
	"pulse-ads/internal/adapter/usecase"
	"pulse-ads/internal/config"
	"pulse-ads/internal/db"
	"pulse-ads/internal/metrics"
)

// main is the entry point of the ad engine. It loads configuration,
// optionally runs database migrations and demo seeding, initializes the
// database pool, the Redis-backed clock and the repositories, then starts
// the HTTP server. On receiving a termination signal it gracefully shuts
// down the server.
func main() {
	exitCode := 1
	defer func() {
		if r := recover(); r != nil {
			panic(r)
		} else {
			os.Exit(exitCode)
		}
	}()

	// Load configuration from environment variables.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.Any("error", err))
		os.Exit(1)
	}

	var logger *slog.Logger
	{
		// Initialise structured logger based on configuration.
		var handler slog.Handler
		level := cfg.Log.SlogLevel()
		switch cfg.Log.SlogFormat() {
		case "json":
			handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
		default:
			handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})
		}
		logger = slog.New(handler)
	}

	if cfg.Psql.RunMigrations {
		if err = db.Migrate(cfg.Psql.Addr.String()); err != nil {
			logger.Error("migration error", slog.Any("error", err))
		} else {
			logger.Info("migrations applied successfully")
		}
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	pool, err := db.NewPostgresPool(ctx, cfg.Psql)
	if err != nil {
		logger.Error("database connection error", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	if cfg.Psql.SeedDemo {
		if err = db.Seed(ctx, pool); err != nil {
			logger.Error("seed error", slog.Any("error", err))
		} else {
			logger.Info("demo data seeded")
		}
	}

	rdb, err := redisadapter.NewClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		logger.Error("redis connection error", slog.Any("error", err))
		os.Exit(1)
	}
	defer rdb.Close()
	clock := redisadapter.NewClock(rdb)

	campaigns := postgres.NewCampaignRepository(pool)
	clients := postgres.NewClientRepository(pool)
	scores := postgres.NewScoreRepository(pool)
	ledger := postgres.NewLedgerRepository(pool)
	statsReader := postgres.NewStatsRepository(pool)

	ads := usecase.NewAdUseCase(clients, campaigns, scores, ledger, clock, logger)
	stats := usecase.NewStatsUseCase(campaigns, campaigns, statsReader)

	m := metrics.New(prometheus.DefaultRegisterer)
	handler := httpadapter.NewHandler(ads, stats, clock, m, logger,
		cfg.Rate.RequestsPerSec, cfg.Rate.Burst)
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler: handler.Router(),
	}

	go func() {
		logger.Info("server listening", slog.Int("port", int(cfg.HTTP.Port)))
		if err = srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", slog.Any("error", err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	value := <-quit
	exitCode = 128 + int(value.(syscall.Signal))

	ctx, cancel = context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err = srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown error", slog.Any("error", err))
	} else {
		logger.Info("server gracefully stopped")
	}
}
