package services

import (
	"regexp"
	"strconv"
)

var scorePattern = regexp.MustCompile(`\d+\.\d+`)

// ParseQualityScore extracts the first decimal number embedded in an algorithm
// identifier ("best_solution_36.3972", "cvrp_36.3972"). Identifiers without one
// map to fallback, which callers set to the field's baseline score.
func ParseQualityScore(algorithmID string, fallback float64) float64 {
	m := scorePattern.FindString(algorithmID)
	if m == "" {
		return fallback
	}

	score, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return fallback
	}
	return score
}
