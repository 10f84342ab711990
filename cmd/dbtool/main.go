package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"vrp-visualizer-service/internal/adapters/repositories"
	"vrp-visualizer-service/internal/platform/db"
	"vrp-visualizer-service/internal/platform/logger"

	"github.com/joho/godotenv"
)

// dbtool creates the run history schema and optionally imports runs from
// SEED_PATH.
func main() {
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found (using environment variables)")
	}
	logger.Init()

	if err := run(context.Background(), os.Getenv("DATABASE_URL"), os.Getenv("SEED_PATH")); err != nil {
		slog.Error("dbtool failed", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, databaseURL, seedPath string) error {
	if strings.TrimSpace(databaseURL) == "" {
		return errors.New("DATABASE_URL is required")
	}

	conn, err := db.Open(ctx, databaseURL)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer conn.Close()

	slog.Info("Initializing database schema...")
	if err := repositories.InitSchema(ctx, conn); err != nil {
		return fmt.Errorf("schema initialization failed: %w", err)
	}
	slog.Info("Schema ready.")

	seedPath = strings.TrimSpace(seedPath)
	if seedPath == "" {
		return nil
	}

	slog.Info("Seeding database...", "path", seedPath)
	n, err := repositories.SeedFromJSON(ctx, conn, seedPath)
	if err != nil {
		return fmt.Errorf("seeding failed: %w", err)
	}
	slog.Info("Seeding complete.", "runs", n)
	return nil
}
