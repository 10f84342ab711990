package services

import (
	"math"
	"slices"
	"vrp-visualizer-service/internal/domain"
	"vrp-visualizer-service/internal/ports"
)

// BuildRoutes assigns customers to vehicles with a capacity-constrained
// nearest-neighbor heuristic whose accuracy depends on qualityScore.
//
// Vehicles are filled one after another from a single shrinking pool: each
// vehicle leaves the depot, repeatedly drives to the closest customer that
// still fits its remaining capacity, and returns to the depot when nothing
// fits. Distances compared at each step are perturbed by
//
//	d * (1 + (U - 0.5) * (1 - baseline/qualityScore) * scale)
//
// so a score at the baseline is an exact greedy choice and scores away from it
// make noisier choices. The perturbed leg is what the route reports as its
// distance; the return leg is never perturbed.
//
// Customers whose demand exceeds the capacity left on every vehicle are not
// routed. Vehicles that serve nobody produce no route. Inputs are expected to
// be validated by the caller; BuildRoutes itself never fails.
func BuildRoutes(
	field domain.Field,
	customers []domain.Customer,
	numVehicles int,
	vehicleCapacity int,
	qualityScore float64,
	rng ports.RandomSource,
) []domain.Route {
	routes := []domain.Route{}

	// Request-local pool; the caller's slice is never modified.
	unassigned := slices.Clone(customers)
	noise := (1 - field.EfficiencyFactor(qualityScore)) * field.PerturbationScale

	for v := 0; v < numVehicles && len(unassigned) > 0; v++ {
		vehicle := domain.NewVehicle(v, vehicleCapacity, field.Depot)

		for len(unassigned) > 0 {
			bestIdx := -1
			bestDist := math.Inf(1)
			from := vehicle.Position()

			// Select next stop by minimum perturbed distance (greedy step).
			for i, c := range unassigned {
				if !vehicle.Fits(c) {
					continue
				}

				d := from.DistanceTo(c.Position())
				adjusted := d * (1 + (rng.Float64()-0.5)*noise)
				// Strict comparison keeps the first minimum on ties.
				if adjusted < bestDist {
					bestDist = adjusted
					bestIdx = i
				}
			}

			if bestIdx == -1 || !vehicle.TryVisit(unassigned[bestIdx], bestDist) {
				break
			}
			unassigned = slices.Delete(unassigned, bestIdx, bestIdx+1)
		}

		if route, ok := vehicle.Close(); ok {
			routes = append(routes, route)
		}
	}

	return routes
}
