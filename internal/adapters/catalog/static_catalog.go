package catalog

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"vrp-visualizer-service/internal/domain"
)

// Scores reached by the generated heuristics of each problem type, best first.
var defaultScores = map[string][]string{
	domain.VRPTypeCVRP: {
		"36.3972", "36.3980", "36.4030", "36.4060", "36.4121",
		"36.4173", "36.4292", "36.4608", "36.4656", "36.4841",
	},
	domain.VRPTypePCVRP: {
		"43.2732", "43.2786", "43.2794", "43.2953", "43.3193",
		"43.3323", "43.3495", "43.3525", "43.3917", "43.5157",
	},
	domain.VRPTypeVRPTW: {
		"48.1163", "48.1390", "48.1401", "48.1455", "48.1539",
		"48.1572", "48.1591", "48.1627", "48.1633", "48.2860",
	},
}

const idPrefix = "best_solution_"

// StaticCatalog serves the built-in list of generated heuristics.
// It is immutable after construction and safe for concurrent use.
type StaticCatalog struct {
	byType map[string][]domain.Algorithm
}

func NewStaticCatalog() *StaticCatalog {
	byType := make(map[string][]domain.Algorithm, len(defaultScores))
	for vrpType, scores := range defaultScores {
		algos := make([]domain.Algorithm, 0, len(scores))
		for _, s := range scores {
			score, err := strconv.ParseFloat(s, 64)
			if err != nil {
				panic(fmt.Sprintf("catalog: bad built-in score %q: %v", s, err))
			}
			algos = append(algos, domain.Algorithm{
				ID:      idPrefix + s,
				Name:    "Best Solution " + s,
				VRPType: vrpType,
				Score:   score,
			})
		}
		byType[vrpType] = algos
	}
	return &StaticCatalog{byType: byType}
}

// List returns a copy; callers may modify it freely.
func (c *StaticCatalog) List() map[string][]domain.Algorithm {
	out := make(map[string][]domain.Algorithm, len(c.byType))
	for t, algos := range c.byType {
		out[t] = slices.Clone(algos)
	}
	return out
}

// Lookup accepts both catalog ids ("best_solution_36.3972") and the
// type-prefixed ids used by the web client ("cvrp_36.3972").
func (c *StaticCatalog) Lookup(vrpType, id string) (domain.Algorithm, error) {
	algos, ok := c.byType[vrpType]
	if !ok {
		return domain.Algorithm{}, fmt.Errorf("lookup algorithm: vrpType %q: %w", vrpType, domain.ErrUnknownAlgorithm)
	}

	id = strings.TrimSpace(id)
	alias := strings.TrimPrefix(id, vrpType+"_")
	for _, a := range algos {
		if a.ID == id || a.ID == idPrefix+alias {
			return a, nil
		}
	}
	return domain.Algorithm{}, fmt.Errorf("lookup algorithm: %q for %s: %w", id, vrpType, domain.ErrUnknownAlgorithm)
}
