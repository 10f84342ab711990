package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"
	"vrp-visualizer-service/internal/domain"
	"vrp-visualizer-service/internal/platform/metrics"
	"vrp-visualizer-service/internal/platform/obs"

	"github.com/google/uuid"
)

type SolveRequest struct {
	VRPType     string
	AlgorithmID string
	Parameters  domain.Parameters
	// Zero means "draw from the shared source".
	Seed uint64
}

// Metrics derived from a solution, as shown by the visualizer's metrics panel.
type SolveMetrics struct {
	ExecutionTime     time.Duration
	TotalDistance     float64
	TrueTotalDistance float64
	NumRoutes         int
	AvgRouteLength    float64
	CustomersServed   int
	CustomersDropped  int
}

type SolveResult struct {
	RunID      string
	VRPType    string
	Algorithm  domain.Algorithm
	Parameters domain.Parameters
	Seed       uint64
	Solution   domain.Solution
	// Customers no vehicle could take, in generation order.
	Unassigned []domain.Customer
	Metrics    SolveMetrics
	Warnings   []string
}

// Solve generates a customer field and routes it with the requested algorithm.
//
// Validation failures wrap domain.ErrInvalidInput. Capacity exhaustion is not an
// error: dropped customers are reported through Unassigned and Warnings.
// A successful solve is recorded and published; failures to do so are logged
// and never fail the request.
func (s *Solver) Solve(ctx context.Context, req SolveRequest) (_ *SolveResult, err error) {
	defer obs.Time(ctx, "services.Solve")(&err)

	vrpType, err := normalizeVRPType(req.VRPType)
	if err != nil {
		metrics.ObserveSolveFailure("unknown", "invalid")
		return nil, fmt.Errorf("solve: %w", err)
	}
	if err := req.Parameters.Validate(s.Limits); err != nil {
		metrics.ObserveSolveFailure(vrpType, "invalid")
		return nil, fmt.Errorf("solve: %w", err)
	}
	algo, err := s.resolveAlgorithm(vrpType, req.AlgorithmID)
	if err != nil {
		metrics.ObserveSolveFailure(vrpType, "invalid")
		return nil, fmt.Errorf("solve: %w", err)
	}

	slog.InfoContext(ctx, "solving",
		"req_id", obs.RequestID(ctx),
		"vrp_type", vrpType,
		"algorithm", algo.ID,
		"quality_score", algo.Score,
		"customers", req.Parameters.NumCustomers,
		"capacity", req.Parameters.VehicleCapacity,
		"vehicles", req.Parameters.NumVehicles,
	)

	rng := s.source(req.Seed)
	p := req.Parameters

	start := time.Now()
	customers, err := GenerateCustomers(s.Field, p.NumCustomers, algo.Score, rng)
	if err != nil {
		metrics.ObserveSolveFailure(vrpType, "error")
		return nil, fmt.Errorf("solve: %w", err)
	}
	routes := BuildRoutes(s.Field, customers, p.NumVehicles, p.VehicleCapacity, algo.Score, rng)
	elapsed := time.Since(start)

	solution := domain.NewSolution(routes)
	unassigned := unassignedCustomers(customers, solution)

	result := &SolveResult{
		RunID:      uuid.NewString(),
		VRPType:    vrpType,
		Algorithm:  algo,
		Parameters: p,
		Seed:       req.Seed,
		Solution:   solution,
		Unassigned: unassigned,
		Metrics:    deriveMetrics(solution, elapsed, len(unassigned)),
		Warnings:   solveWarnings(p, unassigned),
	}

	metrics.ObserveSolve(vrpType, elapsed, len(unassigned))
	s.record(ctx, result)

	return result, nil
}

func deriveMetrics(solution domain.Solution, elapsed time.Duration, dropped int) SolveMetrics {
	return SolveMetrics{
		ExecutionTime:     elapsed,
		TotalDistance:     solution.TotalDistance,
		TrueTotalDistance: solution.TrueTotalDistance(),
		NumRoutes:         solution.NumRoutes(),
		AvgRouteLength:    solution.AvgRouteLength(),
		CustomersServed:   solution.CustomersServed(),
		CustomersDropped:  dropped,
	}
}

func unassignedCustomers(customers []domain.Customer, solution domain.Solution) []domain.Customer {
	served := make(map[int]struct{}, len(customers))
	for _, r := range solution.Routes {
		for _, c := range r.Customers {
			served[c.ID] = struct{}{}
		}
	}

	out := []domain.Customer{}
	for _, c := range customers {
		if _, ok := served[c.ID]; !ok {
			out = append(out, c)
		}
	}
	return out
}

func solveWarnings(p domain.Parameters, unassigned []domain.Customer) []string {
	warnings := []string{}
	if len(unassigned) == 0 {
		return warnings
	}

	oversized := 0
	for _, c := range unassigned {
		if c.Demand > p.VehicleCapacity {
			oversized++
		}
	}

	warnings = append(warnings, fmt.Sprintf(
		"%d of %d customers were not served", len(unassigned), p.NumCustomers,
	))
	if oversized > 0 {
		warnings = append(warnings, fmt.Sprintf(
			"%d customers demand more than the vehicle capacity of %d", oversized, p.VehicleCapacity,
		))
	}
	if oversized < len(unassigned) {
		warnings = append(warnings, fmt.Sprintf(
			"fleet capacity exhausted: %d vehicles of capacity %d", p.NumVehicles, p.VehicleCapacity,
		))
	}
	return warnings
}

func (s *Solver) record(ctx context.Context, res *SolveResult) {
	if s.Runs == nil && s.Publisher == nil {
		return
	}

	m := res.Metrics
	run := domain.RunSummary{
		ID:                res.RunID,
		CreatedAt:         s.now().UTC(),
		VRPType:           res.VRPType,
		AlgorithmID:       res.Algorithm.ID,
		QualityScore:      res.Algorithm.Score,
		Parameters:        res.Parameters,
		Seed:              res.Seed,
		ExecutionTimeMs:   float64(m.ExecutionTime.Microseconds()) / 1000,
		TotalDistance:     m.TotalDistance,
		TrueTotalDistance: m.TrueTotalDistance,
		NumRoutes:         m.NumRoutes,
		AvgRouteLength:    m.AvgRouteLength,
		CustomersServed:   m.CustomersServed,
		CustomersDropped:  m.CustomersDropped,
	}

	if s.Runs != nil {
		// Recorded even when the client has already gone away.
		saveCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 2*time.Second)
		defer cancel()

		if err := s.Runs.Save(saveCtx, run); err != nil {
			metrics.RunRecordFailures.Inc()
			slog.WarnContext(ctx, "record run failed", "req_id", obs.RequestID(ctx), "run_id", run.ID, "err", err)
		}
	}

	if s.Publisher != nil {
		s.Publisher.Publish(run)
	}
}
