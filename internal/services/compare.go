package services

import (
	"context"
	"fmt"
	"time"
	"vrp-visualizer-service/internal/domain"
	"vrp-visualizer-service/internal/platform/obs"

	"golang.org/x/sync/errgroup"
)

const (
	MinCompareAlgorithms = 2
	MaxCompareAlgorithms = 3
)

type CompareRequest struct {
	VRPType      string
	AlgorithmIDs []string
	Parameters   domain.Parameters
	Seed         uint64
}

type CompareEntry struct {
	Algorithm       domain.Algorithm
	ExecutionTime   time.Duration
	TotalDistance   float64
	NumRoutes       int
	CustomersServed int
	IsBest          bool
}

// Compare routes one shared customer field with several algorithms.
//
// The field is generated once so that differences come from the algorithms
// only. Builders run in parallel, one goroutine per algorithm, each with its
// own unassigned pool. Entries keep the requested order; the lowest total
// distance is flagged IsBest (the first one on ties).
func (s *Solver) Compare(ctx context.Context, req CompareRequest) (_ []CompareEntry, err error) {
	defer obs.Time(ctx, "services.Compare")(&err)

	vrpType, err := normalizeVRPType(req.VRPType)
	if err != nil {
		return nil, fmt.Errorf("compare: %w", err)
	}
	if err := req.Parameters.Validate(s.Limits); err != nil {
		return nil, fmt.Errorf("compare: %w", err)
	}
	algos, err := s.resolveAlgorithms(vrpType, req.AlgorithmIDs, MinCompareAlgorithms, MaxCompareAlgorithms)
	if err != nil {
		return nil, fmt.Errorf("compare: %w", err)
	}

	p := req.Parameters
	customers, err := GenerateCustomers(s.Field, p.NumCustomers, s.Field.BaselineScore, s.source(req.Seed))
	if err != nil {
		return nil, fmt.Errorf("compare: %w", err)
	}

	entries := make([]CompareEntry, len(algos))

	g, gctx := errgroup.WithContext(ctx)
	for i, algo := range algos {
		rng := s.workerSource(req.Seed, i)

		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			start := time.Now()
			routes := BuildRoutes(s.Field, customers, p.NumVehicles, p.VehicleCapacity, algo.Score, rng)
			elapsed := time.Since(start)

			solution := domain.NewSolution(routes)
			entries[i] = CompareEntry{
				Algorithm:       algo,
				ExecutionTime:   elapsed,
				TotalDistance:   solution.TotalDistance,
				NumRoutes:       solution.NumRoutes(),
				CustomersServed: solution.CustomersServed(),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("compare: %w", err)
	}

	best := 0
	for i := range entries {
		if entries[i].TotalDistance < entries[best].TotalDistance {
			best = i
		}
	}
	entries[best].IsBest = true

	return entries, nil
}
