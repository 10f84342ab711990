package services

import (
	"fmt"
	"math"
	"vrp-visualizer-service/internal/domain"
	"vrp-visualizer-service/internal/ports"
)

// GenerateCustomers produces a spatially clustered customer field.
//
// Customers are dealt round-robin over floor(n/customersPerCluster)+1 cluster
// centers and scattered around them at a random angle and radius, so the field
// looks like neighborhoods rather than uniform noise. qualityScore is accepted
// for symmetry with BuildRoutes but does not influence the field: every
// algorithm is judged on the same kind of input.
func GenerateCustomers(
	field domain.Field,
	customerCount int,
	qualityScore float64,
	rng ports.RandomSource,
) ([]domain.Customer, error) {
	if customerCount < 1 {
		return nil, fmt.Errorf("generate customers: %w", domain.ErrInvalidCustomerCount)
	}
	if rng == nil {
		return nil, fmt.Errorf("generate customers: random source must be non-nil")
	}

	centers := clusterCenters(field, numClusters(field, customerCount), rng)

	customers := make([]domain.Customer, 0, customerCount)
	for i := 0; i < customerCount; i++ {
		center := centers[i%len(centers)]
		angle := rng.Float64() * 2 * math.Pi
		radius := uniform(rng, field.MinRadius, field.MaxRadius)

		customers = append(customers, domain.Customer{
			ID:     i + 1,
			X:      center.X + math.Cos(angle)*radius,
			Y:      center.Y + math.Sin(angle)*radius,
			Demand: field.MinDemand + rng.IntN(field.MaxDemand-field.MinDemand+1),
		})
	}

	return customers, nil
}

// At least one cluster for any positive count.
func numClusters(field domain.Field, customerCount int) int {
	return customerCount/field.CustomersPerCluster + 1
}

func clusterCenters(field domain.Field, n int, rng ports.RandomSource) []domain.Point {
	b := field.ClusterBounds

	centers := make([]domain.Point, 0, n)
	for i := 0; i < n; i++ {
		x := uniform(rng, b.MinX, b.MaxX)
		y := uniform(rng, b.MinY, b.MaxY)
		centers = append(centers, domain.Point{X: x, Y: y})
	}
	return centers
}

func uniform(rng ports.RandomSource, lo, hi float64) float64 {
	return rng.Float64()*(hi-lo) + lo
}
