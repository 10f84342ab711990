package domain

import (
	"testing"
)

func TestVehicleVisitAndClose(t *testing.T) {
	depot := Point{X: 0, Y: 0}
	c1 := Customer{ID: 1, X: 3, Y: 4, Demand: 5}
	c2 := Customer{ID: 2, X: 3, Y: 0, Demand: 4}
	c3 := Customer{ID: 3, X: 6, Y: 0, Demand: 2}

	v := NewVehicle(0, 10, depot)

	if err := v.Visit(c1, 6); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := v.Visit(c2, 4); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if v.Fits(c3) {
		t.Fatalf("customer %d should not fit: load=%d capacity=%d", c3.ID, v.Load(), v.Capacity)
	}
	if err := v.Visit(c3, 3); err == nil {
		t.Fatalf("expected capacity error for customer %d", c3.ID)
	}

	if pos := v.Position(); pos != c2.Position() {
		t.Errorf("position = %v, want %v", pos, c2.Position())
	}

	route, ok := v.Close()
	if !ok {
		t.Fatal("expected a route for a vehicle with customers")
	}

	if route.Load != 9 {
		t.Errorf("load = %d, want 9", route.Load)
	}
	// reported legs 6 + 4, return leg 3
	if route.Distance != 13 {
		t.Errorf("distance = %v, want 13", route.Distance)
	}
	// true legs 5 + 4, return leg 3
	if route.TrueDistance != 12 {
		t.Errorf("true distance = %v, want 12", route.TrueDistance)
	}

	ids := route.CustomerIDs()
	if len(ids) != 2 || ids[0] != 1 || ids[1] != 2 {
		t.Errorf("customer ids = %v, want [1 2]", ids)
	}

	if pos := v.Position(); pos != depot {
		t.Errorf("position after close = %v, want depot %v", pos, depot)
	}
}

func TestVehicleCloseWithoutCustomers(t *testing.T) {
	v := NewVehicle(2, 50, Point{X: 500, Y: 300})

	if _, ok := v.Close(); ok {
		t.Fatal("empty vehicle must not produce a route")
	}
}

func TestVehicleTryVisit(t *testing.T) {
	v := NewVehicle(2, 5, Point{X: 0, Y: 0})
	near := Customer{ID: 1, X: 0, Y: 2, Demand: 3}
	heavy := Customer{ID: 2, X: 5, Y: 5, Demand: 3}

	if !v.TryVisit(near, 2.5) {
		t.Fatalf("customer %d should fit an empty vehicle", near.ID)
	}
	if v.TryVisit(heavy, 1) {
		t.Fatalf("customer %d should not fit: load=%d capacity=%d", heavy.ID, v.Load(), v.Capacity)
	}

	// a rejected visit leaves the route as it was
	if v.Load() != 3 {
		t.Errorf("load = %d, want 3", v.Load())
	}
	if pos := v.Position(); pos != near.Position() {
		t.Errorf("position = %v, want %v", pos, near.Position())
	}

	route, ok := v.Close()
	if !ok {
		t.Fatal("expected a route")
	}
	if len(route.Customers) != 1 || route.Customers[0].ID != near.ID {
		t.Errorf("customers = %+v, want only customer %d", route.Customers, near.ID)
	}
	if route.Distance != 4.5 {
		t.Errorf("distance = %v, want 4.5 (reported leg plus return)", route.Distance)
	}
	if route.TrueDistance != 4 {
		t.Errorf("true distance = %v, want 4", route.TrueDistance)
	}
}

func TestSolutionMetrics(t *testing.T) {
	empty := NewSolution(nil)
	if empty.NumRoutes() != 0 || empty.TotalDistance != 0 {
		t.Fatalf("empty solution = %+v, want no routes and zero distance", empty)
	}
	if avg := empty.AvgRouteLength(); avg != 0 {
		t.Errorf("avg route length of empty solution = %v, want 0", avg)
	}

	s := NewSolution([]Route{
		{VehicleID: 0, Customers: []Customer{{ID: 1}, {ID: 2}}, Distance: 30, TrueDistance: 28},
		{VehicleID: 1, Customers: []Customer{{ID: 3}}, Distance: 10, TrueDistance: 10},
	})

	if s.TotalDistance != 40 {
		t.Errorf("total distance = %v, want 40", s.TotalDistance)
	}
	if s.TrueTotalDistance() != 38 {
		t.Errorf("true total distance = %v, want 38", s.TrueTotalDistance())
	}
	if s.CustomersServed() != 3 {
		t.Errorf("customers served = %d, want 3", s.CustomersServed())
	}
	if s.AvgRouteLength() != 20 {
		t.Errorf("avg route length = %v, want 20", s.AvgRouteLength())
	}
}
