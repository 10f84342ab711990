package services

import (
	"context"
	"fmt"
	"math"
	"vrp-visualizer-service/internal/domain"
	"vrp-visualizer-service/internal/platform/obs"

	"golang.org/x/sync/errgroup"
)

const (
	MaxTrialAlgorithms = 10
	MaxTrials          = 200
)

type TrialsRequest struct {
	VRPType      string
	AlgorithmIDs []string
	Parameters   domain.Parameters
	Trials       int
	Seed         uint64
}

// Aggregates over repeated builds of one algorithm on a fixed field.
type TrialStats struct {
	Algorithm           domain.Algorithm
	Trials              int
	MeanDistance        float64
	MinDistance         float64
	MaxDistance         float64
	MeanTrueDistance    float64
	MeanCustomersServed float64
}

// RunTrials measures how the quality score shifts route length on average.
// Single runs are noisy; only means over many trials say anything about an
// algorithm. The field is generated once and shared by every trial.
func (s *Solver) RunTrials(ctx context.Context, req TrialsRequest) (_ []TrialStats, err error) {
	defer obs.Time(ctx, "services.RunTrials")(&err)

	vrpType, err := normalizeVRPType(req.VRPType)
	if err != nil {
		return nil, fmt.Errorf("run trials: %w", err)
	}
	if err := req.Parameters.Validate(s.Limits); err != nil {
		return nil, fmt.Errorf("run trials: %w", err)
	}
	if req.Trials < 1 || req.Trials > MaxTrials {
		return nil, fmt.Errorf("run trials: %w: trials must be between 1 and %d", domain.ErrInvalidInput, MaxTrials)
	}
	algos, err := s.resolveAlgorithms(vrpType, req.AlgorithmIDs, 1, MaxTrialAlgorithms)
	if err != nil {
		return nil, fmt.Errorf("run trials: %w", err)
	}

	p := req.Parameters
	customers, err := GenerateCustomers(s.Field, p.NumCustomers, s.Field.BaselineScore, s.source(req.Seed))
	if err != nil {
		return nil, fmt.Errorf("run trials: %w", err)
	}

	stats := make([]TrialStats, len(algos))

	g, gctx := errgroup.WithContext(ctx)
	for i, algo := range algos {
		rng := s.workerSource(req.Seed, i)

		g.Go(func() error {
			st := TrialStats{
				Algorithm:   algo,
				Trials:      req.Trials,
				MinDistance: math.Inf(1),
				MaxDistance: math.Inf(-1),
			}

			var sumDist, sumTrue, sumServed float64
			for t := 0; t < req.Trials; t++ {
				if err := gctx.Err(); err != nil {
					return err
				}

				solution := domain.NewSolution(
					BuildRoutes(s.Field, customers, p.NumVehicles, p.VehicleCapacity, algo.Score, rng),
				)
				sumDist += solution.TotalDistance
				sumTrue += solution.TrueTotalDistance()
				sumServed += float64(solution.CustomersServed())
				st.MinDistance = math.Min(st.MinDistance, solution.TotalDistance)
				st.MaxDistance = math.Max(st.MaxDistance, solution.TotalDistance)
			}

			n := float64(req.Trials)
			st.MeanDistance = sumDist / n
			st.MeanTrueDistance = sumTrue / n
			st.MeanCustomersServed = sumServed / n
			stats[i] = st
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("run trials: %w", err)
	}

	return stats, nil
}
