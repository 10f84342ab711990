package ports

import (
	"context"
	"vrp-visualizer-service/internal/domain"
)

// Port: a boundary for recording and reading back completed solve runs.
type RunRepository interface {
	// Store a run summary.
	Save(ctx context.Context, run domain.RunSummary) error
	// Return at most limit runs, newest first.
	List(ctx context.Context, limit int) ([]domain.RunSummary, error)
	// Return a single run by id, or an error wrapping domain.ErrRunNotFound.
	Get(ctx context.Context, id string) (domain.RunSummary, error)
}
