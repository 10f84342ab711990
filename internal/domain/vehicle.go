package domain

import "fmt"

// Vehicle builds one route from the depot. It tracks the route under
// construction and the vehicle's current position; a Vehicle is owned by a
// single builder invocation and never shared.
type Vehicle struct {
	VehicleID int
	Capacity  int
	Depot     Point

	position Point
	route    Route
}

func NewVehicle(id int, capacity int, depot Point) *Vehicle {
	return &Vehicle{
		VehicleID: id,
		Capacity:  capacity,
		Depot:     depot,
		position:  depot,
		route:     Route{VehicleID: id, Customers: []Customer{}},
	}
}

func (v *Vehicle) Position() Point { return v.position }

func (v *Vehicle) Load() int { return v.route.Load }

func (v *Vehicle) Empty() bool { return len(v.route.Customers) == 0 }

// Report whether the customer's demand still fits the remaining capacity.
func (v *Vehicle) Fits(c Customer) bool {
	return v.route.Load+c.Demand <= v.Capacity
}

// Visit appends a customer to the route. reportedLeg is added to Distance and
// the straight-line leg to TrueDistance.
func (v *Vehicle) Visit(c Customer, reportedLeg float64) error {
	if !v.TryVisit(c, reportedLeg) {
		return fmt.Errorf(
			"visit customer: vehicle %d cannot take customer %d (load=%d demand=%d capacity=%d)",
			v.VehicleID, c.ID, v.route.Load, c.Demand, v.Capacity,
		)
	}
	return nil
}

// TryVisit is Visit for callers that treat a full vehicle as a normal
// outcome: it reports false and leaves the route untouched.
func (v *Vehicle) TryVisit(c Customer, reportedLeg float64) bool {
	if !v.Fits(c) {
		return false
	}

	v.route.TrueDistance += v.position.DistanceTo(c.Position())
	v.route.Distance += reportedLeg
	v.route.Load += c.Demand
	v.route.Customers = append(v.route.Customers, c)
	v.position = c.Position()
	return true
}

// Close adds the return leg to the depot and hands back the finished route.
// ok is false when the vehicle served nobody, in which case no route exists.
func (v *Vehicle) Close() (route Route, ok bool) {
	if v.Empty() {
		return Route{}, false
	}

	back := v.position.DistanceTo(v.Depot)
	v.route.Distance += back
	v.route.TrueDistance += back
	v.position = v.Depot

	route = v.route
	v.route = Route{VehicleID: v.VehicleID, Customers: []Customer{}}
	return route, true
}
