package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	"vrp-visualizer-service/internal/adapters/catalog"
	"vrp-visualizer-service/internal/adapters/events"
	"vrp-visualizer-service/internal/adapters/repositories"
	"vrp-visualizer-service/internal/api"
	"vrp-visualizer-service/internal/config"
	"vrp-visualizer-service/internal/platform/db"
	"vrp-visualizer-service/internal/platform/logger"
	"vrp-visualizer-service/internal/platform/metrics"
	"vrp-visualizer-service/internal/platform/random"
	"vrp-visualizer-service/internal/ports"
	"vrp-visualizer-service/internal/services"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

// main is the application composition root.
// It wires concrete adapters (run history, catalog, broker) behind ports and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Fprintln(os.Stderr, "No .env file found (using environment variables)")
	}
	logger.Init()

	if err := run(); err != nil {
		slog.Error("server exited", "err", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	metrics.RegisterDefault()

	runs, closeRuns, err := openRunRepository(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeRuns()

	var rng ports.RandomSource = random.Global{}
	if cfg.RandomSeed != 0 {
		rng = random.NewLocked(cfg.RandomSeed)
	}

	cat := catalog.NewStaticCatalog()
	broker := events.NewBroker()
	solver := services.NewSolver(cfg.Field, cfg.Limits, cat, runs, broker, rng)

	router := api.NewRouter(solver, cat, runs, broker, api.Options{
		AllowedOrigins: cfg.CORSAllowedOrigins,
		RateLimit:      rate.Limit(cfg.RateLimitRPS),
		RateBurst:      cfg.RateLimitBurst,
		RunsLimit:      min(cfg.RunHistoryLimit, 100),
	})

	// WriteTimeout stays 0 so the run stream is not cut off; trials are
	// bounded by MaxTrials instead.
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server listening", "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// openRunRepository picks the run history backend: Postgres when
// DATABASE_URL is set, else Redis when REDIS_URL is set, else memory.
func openRunRepository(ctx context.Context, cfg *config.Config) (ports.RunRepository, func(), error) {
	switch {
	case cfg.DatabaseURL != "":
		conn, err := db.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		if err := repositories.InitSchema(ctx, conn); err != nil {
			_ = conn.Close()
			return nil, nil, err
		}
		slog.Info("run history", "backend", "postgres")
		return repositories.NewPostgresRunRepository(conn), func() { _ = conn.Close() }, nil

	case cfg.RedisURL != "":
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, nil, fmt.Errorf("parse REDIS_URL: %w", err)
		}
		client := redis.NewClient(opts)

		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := client.Ping(pingCtx).Err(); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("ping redis: %w", err)
		}
		slog.Info("run history", "backend", "redis")
		return repositories.NewRedisRunRepository(client, cfg.RunHistoryLimit), func() { _ = client.Close() }, nil

	default:
		slog.Info("run history", "backend", "memory", "limit", cfg.RunHistoryLimit)
		return repositories.NewMemoryRunRepository(cfg.RunHistoryLimit), func() {}, nil
	}
}
