package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
	"vrp-visualizer-service/internal/adapters/catalog"
	"vrp-visualizer-service/internal/domain"

	"github.com/stretchr/testify/require"
)

type fakeRuns struct {
	mu    sync.Mutex
	saved []domain.RunSummary
	err   error
}

func (f *fakeRuns) Save(ctx context.Context, run domain.RunSummary) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.saved = append(f.saved, run)
	return nil
}

func (f *fakeRuns) List(ctx context.Context, limit int) ([]domain.RunSummary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.RunSummary(nil), f.saved...), nil
}

func (f *fakeRuns) Get(ctx context.Context, id string) (domain.RunSummary, error) {
	return domain.RunSummary{}, domain.ErrRunNotFound
}

type fakePublisher struct {
	mu   sync.Mutex
	runs []domain.RunSummary
}

func (f *fakePublisher) Publish(run domain.RunSummary) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.runs = append(f.runs, run)
}

func newTestSolver(runs *fakeRuns, pub *fakePublisher) *Solver {
	limits := domain.Limits{MaxCustomers: 500, MaxVehicles: 50, MaxCapacity: 10000}
	s := NewSolver(domain.DefaultField(), limits, catalog.NewStaticCatalog(), nil, nil, nil)
	if runs != nil {
		s.Runs = runs
	}
	if pub != nil {
		s.Publisher = pub
	}
	s.Now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }
	return s
}

func defaultParams() domain.Parameters {
	return domain.Parameters{NumCustomers: 30, VehicleCapacity: 100, NumVehicles: 5}
}

func TestSolveProducesConsistentMetrics(t *testing.T) {
	runs := &fakeRuns{}
	pub := &fakePublisher{}
	s := newTestSolver(runs, pub)

	res, err := s.Solve(context.Background(), SolveRequest{
		VRPType:     "CVRP",
		AlgorithmID: "best_solution_36.3972",
		Parameters:  defaultParams(),
		Seed:        7,
	})
	require.NoError(t, err)

	require.Equal(t, domain.VRPTypeCVRP, res.VRPType)
	require.Equal(t, 36.3972, res.Algorithm.Score)
	require.NotEmpty(t, res.RunID)

	m := res.Metrics
	require.Equal(t, len(res.Solution.Routes), m.NumRoutes)
	require.InDelta(t, res.Solution.TotalDistance, m.TotalDistance, 1e-9)
	require.Equal(t, 30, m.CustomersServed+m.CustomersDropped)
	require.Len(t, res.Unassigned, m.CustomersDropped)
	if m.NumRoutes > 0 {
		require.InDelta(t, m.TotalDistance/float64(m.NumRoutes), m.AvgRouteLength, 1e-9)
	}

	require.Len(t, runs.saved, 1)
	require.Len(t, pub.runs, 1)
	saved := runs.saved[0]
	require.Equal(t, res.RunID, saved.ID)
	require.Equal(t, uint64(7), saved.Seed)
	require.Equal(t, m.CustomersServed, saved.CustomersServed)
	require.Equal(t, 2026, saved.CreatedAt.Year())
}

func TestSolveSeedIsReproducible(t *testing.T) {
	s := newTestSolver(nil, nil)
	req := SolveRequest{
		VRPType:     domain.VRPTypeVRPTW,
		AlgorithmID: "vrptw_48.1163",
		Parameters:  defaultParams(),
		Seed:        42,
	}

	a, err := s.Solve(context.Background(), req)
	require.NoError(t, err)
	b, err := s.Solve(context.Background(), req)
	require.NoError(t, err)

	require.Equal(t, a.Solution, b.Solution)
	require.NotEqual(t, a.RunID, b.RunID)
}

func TestSolveUnknownIDFallsBackToParsedScore(t *testing.T) {
	s := newTestSolver(nil, nil)

	res, err := s.Solve(context.Background(), SolveRequest{
		VRPType:     domain.VRPTypePCVRP,
		AlgorithmID: "custom_12.5",
		Parameters:  defaultParams(),
		Seed:        1,
	})
	require.NoError(t, err)
	require.Equal(t, 12.5, res.Algorithm.Score)

	res, err = s.Solve(context.Background(), SolveRequest{
		VRPType:     domain.VRPTypePCVRP,
		AlgorithmID: "nearest",
		Parameters:  defaultParams(),
		Seed:        1,
	})
	require.NoError(t, err)
	require.Equal(t, 40.0, res.Algorithm.Score)
}

func TestSolveRejectsInvalidInput(t *testing.T) {
	s := newTestSolver(nil, nil)
	base := SolveRequest{VRPType: "cvrp", AlgorithmID: "best_solution_36.3972", Parameters: defaultParams()}

	cases := map[string]func(r *SolveRequest){
		"unknown type":    func(r *SolveRequest) { r.VRPType = "tsp" },
		"missing type":    func(r *SolveRequest) { r.VRPType = "" },
		"missing id":      func(r *SolveRequest) { r.AlgorithmID = " " },
		"zero customers":  func(r *SolveRequest) { r.Parameters.NumCustomers = 0 },
		"zero capacity":   func(r *SolveRequest) { r.Parameters.VehicleCapacity = 0 },
		"no vehicles":     func(r *SolveRequest) { r.Parameters.NumVehicles = -1 },
		"too many":        func(r *SolveRequest) { r.Parameters.NumCustomers = 501 },
		"zero score":      func(r *SolveRequest) { r.AlgorithmID = "x_0.0" },
	}

	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			req := base
			mutate(&req)
			_, err := s.Solve(context.Background(), req)
			require.Error(t, err)
			require.True(t, errors.Is(err, domain.ErrInvalidInput), "err=%v", err)
		})
	}
}

func TestSolveReportsDroppedCustomers(t *testing.T) {
	s := newTestSolver(nil, nil)

	res, err := s.Solve(context.Background(), SolveRequest{
		VRPType:     domain.VRPTypeCVRP,
		AlgorithmID: "best_solution_36.3972",
		Parameters:  domain.Parameters{NumCustomers: 40, VehicleCapacity: 20, NumVehicles: 1},
		Seed:        3,
	})
	require.NoError(t, err)

	require.Equal(t, 1, res.Metrics.NumRoutes)
	require.Positive(t, res.Metrics.CustomersDropped)
	require.NotEmpty(t, res.Warnings)
	require.Contains(t, res.Warnings[0], "customers were not served")
}

func TestSolveRecordFailureDoesNotFailRequest(t *testing.T) {
	runs := &fakeRuns{err: errors.New("db down")}
	pub := &fakePublisher{}
	s := newTestSolver(runs, pub)

	res, err := s.Solve(context.Background(), SolveRequest{
		VRPType:     domain.VRPTypeCVRP,
		AlgorithmID: "best_solution_36.3972",
		Parameters:  defaultParams(),
		Seed:        9,
	})
	require.NoError(t, err)
	require.NotNil(t, res)
	require.Len(t, pub.runs, 1)
}
