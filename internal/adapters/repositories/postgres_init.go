package repositories

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"vrp-visualizer-service/internal/domain"
)

// Initialize the Postgres run history schema.
func InitSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createRunsQuery := `
	CREATE TABLE IF NOT EXISTS solve_runs (
		id TEXT PRIMARY KEY,
		created_at TIMESTAMPTZ NOT NULL,
		vrp_type TEXT NOT NULL,
		algorithm_id TEXT NOT NULL,
		quality_score DOUBLE PRECISION NOT NULL,
		num_customers INTEGER NOT NULL,
		vehicle_capacity INTEGER NOT NULL,
		num_vehicles INTEGER NOT NULL,
		seed BIGINT NOT NULL DEFAULT 0,
		execution_time_ms DOUBLE PRECISION NOT NULL,
		total_distance DOUBLE PRECISION NOT NULL,
		true_total_distance DOUBLE PRECISION NOT NULL,
		num_routes INTEGER NOT NULL,
		avg_route_length DOUBLE PRECISION NOT NULL,
		customers_served INTEGER NOT NULL,
		customers_dropped INTEGER NOT NULL
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_solve_runs_created_at
	ON solve_runs(created_at DESC);
	`

	statements := []string{
		createRunsQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

// Import run summaries from a JSON file: either a dump of GET /api/runs
// ({"runs": [...]}) or a bare array. All rows are inserted in one transaction.
func SeedFromJSON(ctx context.Context, db *sql.DB, jsonPath string) (int, error) {
	b, err := os.ReadFile(jsonPath)
	if err != nil {
		return 0, fmt.Errorf("seed runs: read %q: %w", jsonPath, err)
	}

	data, err := decodeRunDump(b)
	if err != nil {
		return 0, fmt.Errorf("seed runs: parse json: %w", err)
	}

	for i, run := range data {
		if strings.TrimSpace(run.ID) == "" {
			return 0, fmt.Errorf("seed runs: item at index %d: id cannot be empty", i+1)
		}
		if run.CreatedAt.IsZero() {
			return 0, fmt.Errorf("seed runs: item %q: createdAt is required", run.ID)
		}
	}

	if db == nil {
		return 0, errors.New("seed runs: DB is nil")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("seed runs: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, insertRunQuery)
	if err != nil {
		return 0, fmt.Errorf("seed runs: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, run := range data {
		if _, err := stmt.ExecContext(ctx, runArgs(run)...); err != nil {
			return 0, fmt.Errorf("seed runs: insert id=%s: %w", run.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("seed runs: commit tx: %w", err)
	}

	return len(data), nil
}

type runDump struct {
	Runs []domain.RunSummary `json:"runs"`
}

func decodeRunDump(b []byte) ([]domain.RunSummary, error) {
	trimmed := bytes.TrimSpace(b)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var dump runDump
		if err := json.Unmarshal(trimmed, &dump); err != nil {
			return nil, err
		}
		return dump.Runs, nil
	}

	var runs []domain.RunSummary
	if err := json.Unmarshal(trimmed, &runs); err != nil {
		return nil, err
	}
	return runs, nil
}
