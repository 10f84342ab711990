package repositories

import (
	"context"
	"fmt"
	"sync"
	"vrp-visualizer-service/internal/domain"
)

// In-memory implementation of the RunRepository port. It keeps the most
// recent runs only; older ones are evicted once the limit is reached.
type MemoryRunRepository struct {
	mu    sync.RWMutex
	limit int
	runs  []domain.RunSummary // oldest first
}

func NewMemoryRunRepository(limit int) *MemoryRunRepository {
	if limit < 1 {
		limit = 1
	}
	return &MemoryRunRepository{limit: limit, runs: make([]domain.RunSummary, 0, limit)}
}

// Re-saving a known id is a no-op, like the Postgres backend.
func (m *MemoryRunRepository) Save(ctx context.Context, run domain.RunSummary) error {
	if run.ID == "" {
		return fmt.Errorf("save run: %w: id is required", domain.ErrInvalidInput)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.runs {
		if existing.ID == run.ID {
			return nil
		}
	}

	if len(m.runs) == m.limit {
		m.runs = append(m.runs[:0], m.runs[1:]...)
	}
	m.runs = append(m.runs, run)
	return nil
}

// Return at most limit runs, newest first. A non-positive limit returns all.
func (m *MemoryRunRepository) List(ctx context.Context, limit int) ([]domain.RunSummary, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	n := len(m.runs)
	if limit > 0 && limit < n {
		n = limit
	}

	out := make([]domain.RunSummary, 0, n)
	for i := len(m.runs) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, m.runs[i])
	}
	return out, nil
}

func (m *MemoryRunRepository) Get(ctx context.Context, id string) (domain.RunSummary, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for i := len(m.runs) - 1; i >= 0; i-- {
		if m.runs[i].ID == id {
			return m.runs[i], nil
		}
	}
	return domain.RunSummary{}, fmt.Errorf("get run %q: %w", id, domain.ErrRunNotFound)
}
