package ports

import "vrp-visualizer-service/internal/domain"

// Read-only metadata about the heuristics a client can pick from.
type AlgorithmCatalog interface {
	// Return algorithms grouped by VRP type.
	List() map[string][]domain.Algorithm
	// Return one algorithm. Unknown ids yield an error wrapping domain.ErrUnknownAlgorithm.
	Lookup(vrpType, id string) (domain.Algorithm, error)
}
