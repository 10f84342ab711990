package services

import (
	"testing"
	"vrp-visualizer-service/internal/domain"
)

// fixedSource returns the same draw forever and counts calls.
type fixedSource struct {
	u     float64
	calls int
}

func (f *fixedSource) Float64() float64 {
	f.calls++
	return f.u
}

func (f *fixedSource) IntN(n int) int {
	f.calls++
	return 0
}

func requireRouteInvariants(t *testing.T, customers []domain.Customer, routes []domain.Route, capacity int) {
	t.Helper()

	known := make(map[int]domain.Customer, len(customers))
	for _, c := range customers {
		known[c.ID] = c
	}

	seen := map[int]int{}
	for ri, r := range routes {
		if len(r.Customers) == 0 {
			t.Fatalf("route %d (vehicle %d) is empty", ri, r.VehicleID)
		}
		if ri > 0 && r.VehicleID <= routes[ri-1].VehicleID {
			t.Fatalf("routes out of vehicle order: %d after %d", r.VehicleID, routes[ri-1].VehicleID)
		}

		load := 0
		for _, c := range r.Customers {
			if _, ok := known[c.ID]; !ok {
				t.Fatalf("route %d contains unknown customer %d", ri, c.ID)
			}
			if prev, dup := seen[c.ID]; dup {
				t.Fatalf("customer %d served by vehicles %d and %d", c.ID, prev, r.VehicleID)
			}
			seen[c.ID] = r.VehicleID
			load += c.Demand
		}

		if load != r.Load {
			t.Fatalf("route %d load = %d, sum of demands = %d", ri, r.Load, load)
		}
		if r.Load > capacity {
			t.Fatalf("route %d load %d exceeds capacity %d", ri, r.Load, capacity)
		}
		if r.Distance <= 0 || r.TrueDistance <= 0 {
			t.Fatalf("route %d has non-positive distance: %+v", ri, r)
		}
	}
}
