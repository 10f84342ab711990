package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"vrp-visualizer-service/internal/domain"
	"vrp-visualizer-service/internal/platform/obs"
)

// Postgres-backed implementation of the RunRepository port.
type PostgresRunRepository struct{ DB *sql.DB }

func NewPostgresRunRepository(db *sql.DB) *PostgresRunRepository {
	return &PostgresRunRepository{DB: db}
}

const runColumns = `
	id, created_at, vrp_type, algorithm_id, quality_score,
	num_customers, vehicle_capacity, num_vehicles, seed,
	execution_time_ms, total_distance, true_total_distance,
	num_routes, avg_route_length, customers_served, customers_dropped`

// Re-saving a known id is a no-op.
const insertRunQuery = `
	INSERT INTO solve_runs (` + runColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	ON CONFLICT (id) DO NOTHING;
	`

func runArgs(run domain.RunSummary) []any {
	return []any{
		run.ID, run.CreatedAt, run.VRPType, run.AlgorithmID, run.QualityScore,
		run.Parameters.NumCustomers, run.Parameters.VehicleCapacity, run.Parameters.NumVehicles,
		// BIGINT is signed; the bit pattern round-trips through scanRun.
		int64(run.Seed),
		run.ExecutionTimeMs, run.TotalDistance, run.TrueTotalDistance,
		run.NumRoutes, run.AvgRouteLength, run.CustomersServed, run.CustomersDropped,
	}
}

func (p *PostgresRunRepository) Save(ctx context.Context, run domain.RunSummary) (err error) {
	defer obs.Time(ctx, "runs.postgres.Save")(&err)

	if p.DB == nil {
		return errors.New("postgres run repository: DB is nil")
	}

	_, err = p.DB.ExecContext(ctx, insertRunQuery, runArgs(run)...)
	if err != nil {
		return fmt.Errorf("save run id=%s: insert solve_runs: %w", run.ID, err)
	}
	return nil
}

func (p *PostgresRunRepository) List(ctx context.Context, limit int) (_ []domain.RunSummary, err error) {
	defer obs.Time(ctx, "runs.postgres.List")(&err)

	if p.DB == nil {
		return nil, errors.New("postgres run repository: DB is nil")
	}
	if limit < 1 {
		limit = 100
	}

	query := `
	SELECT` + runColumns + `
	FROM solve_runs
	ORDER BY created_at DESC, id
	LIMIT $1;
	`
	rows, err := p.DB.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: query solve_runs table: %w", err)
	}
	defer rows.Close()

	runs := make([]domain.RunSummary, 0, limit)
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("list runs: scan row: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list runs: row iteration: %w", err)
	}

	return runs, nil
}

func (p *PostgresRunRepository) Get(ctx context.Context, id string) (_ domain.RunSummary, err error) {
	defer obs.Time(ctx, "runs.postgres.Get")(&err)

	if p.DB == nil {
		return domain.RunSummary{}, errors.New("postgres run repository: DB is nil")
	}

	query := `
	SELECT` + runColumns + `
	FROM solve_runs
	WHERE id = $1;
	`
	run, err := scanRun(p.DB.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.RunSummary{}, fmt.Errorf("get run %q: %w", id, domain.ErrRunNotFound)
	}
	if err != nil {
		return domain.RunSummary{}, fmt.Errorf("get run %q: %w", id, err)
	}
	return run, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (domain.RunSummary, error) {
	var run domain.RunSummary
	var seed int64
	err := row.Scan(
		&run.ID, &run.CreatedAt, &run.VRPType, &run.AlgorithmID, &run.QualityScore,
		&run.Parameters.NumCustomers, &run.Parameters.VehicleCapacity, &run.Parameters.NumVehicles,
		&seed,
		&run.ExecutionTimeMs, &run.TotalDistance, &run.TrueTotalDistance,
		&run.NumRoutes, &run.AvgRouteLength, &run.CustomersServed, &run.CustomersDropped,
	)
	if err != nil {
		return domain.RunSummary{}, err
	}
	run.Seed = uint64(seed)
	run.CreatedAt = run.CreatedAt.UTC()
	return run, nil
}
