package services

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"vrp-visualizer-service/internal/domain"
	"vrp-visualizer-service/internal/platform/random"
	"vrp-visualizer-service/internal/ports"
)

// Solver wires the customer generator and route builder to the collaborators
// a solve request needs. Runs and Publisher are optional.
type Solver struct {
	Field     domain.Field
	Limits    domain.Limits
	Catalog   ports.AlgorithmCatalog
	Runs      ports.RunRepository
	Publisher ports.RunPublisher
	// Process-wide source for requests without a seed. Compare and RunTrials
	// share it across goroutines, so it must be safe for concurrent use.
	Random ports.RandomSource
	Now    func() time.Time
}

func NewSolver(
	field domain.Field,
	limits domain.Limits,
	catalog ports.AlgorithmCatalog,
	runs ports.RunRepository,
	publisher ports.RunPublisher,
	rng ports.RandomSource,
) *Solver {
	if rng == nil {
		rng = random.Global{}
	}
	return &Solver{
		Field:     field,
		Limits:    limits,
		Catalog:   catalog,
		Runs:      runs,
		Publisher: publisher,
		Random:    rng,
		Now:       time.Now,
	}
}

var knownVRPTypes = map[string]struct{}{
	domain.VRPTypeCVRP:  {},
	domain.VRPTypePCVRP: {},
	domain.VRPTypeVRPTW: {},
}

func normalizeVRPType(vrpType string) (string, error) {
	t := strings.ToLower(strings.TrimSpace(vrpType))
	if t == "" {
		return "", fmt.Errorf("%w: vrpType is required", domain.ErrInvalidInput)
	}
	if _, ok := knownVRPTypes[t]; !ok {
		return "", fmt.Errorf("%w: unknown vrpType %q", domain.ErrInvalidInput, vrpType)
	}
	return t, nil
}

// resolveAlgorithm prefers catalog metadata and falls back to parsing the
// score out of the identifier, so ids minted by clients keep working.
func (s *Solver) resolveAlgorithm(vrpType, algorithmID string) (domain.Algorithm, error) {
	id := strings.TrimSpace(algorithmID)
	if id == "" {
		return domain.Algorithm{}, fmt.Errorf("%w: algorithmId is required", domain.ErrInvalidInput)
	}

	algo := domain.Algorithm{
		ID:      id,
		Name:    id,
		VRPType: vrpType,
		Score:   ParseQualityScore(id, s.Field.BaselineScore),
	}

	if s.Catalog != nil {
		a, err := s.Catalog.Lookup(vrpType, id)
		switch {
		case err == nil:
			algo = a
		case !errors.Is(err, domain.ErrUnknownAlgorithm):
			return domain.Algorithm{}, fmt.Errorf("resolve algorithm %q: %w", id, err)
		}
	}

	if err := domain.ValidateQualityScore(algo.Score); err != nil {
		return domain.Algorithm{}, fmt.Errorf("resolve algorithm %q: %w", id, err)
	}
	return algo, nil
}

func (s *Solver) resolveAlgorithms(vrpType string, ids []string, min, max int) ([]domain.Algorithm, error) {
	if len(ids) < min || len(ids) > max {
		return nil, fmt.Errorf("%w: algorithmIds must contain between %d and %d entries", domain.ErrInvalidInput, min, max)
	}

	algos := make([]domain.Algorithm, 0, len(ids))
	for _, id := range ids {
		a, err := s.resolveAlgorithm(vrpType, id)
		if err != nil {
			return nil, err
		}
		algos = append(algos, a)
	}
	return algos, nil
}

// source returns the random source of one request: a fresh seeded generator
// when the client pinned a seed, otherwise the shared process source.
func (s *Solver) source(seed uint64) ports.RandomSource {
	if seed != 0 {
		return random.Seeded(seed)
	}
	return s.shared()
}

// workerSource returns the source of the i-th parallel builder.
func (s *Solver) workerSource(seed uint64, i int) ports.RandomSource {
	if seed != 0 {
		return random.Derive(seed, uint64(i)+1)
	}
	return s.shared()
}

func (s *Solver) shared() ports.RandomSource {
	if s.Random == nil {
		return random.Global{}
	}
	return s.Random
}

func (s *Solver) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}
