package domain

// Represents the route driven by a single vehicle.
// Customers are listed in visit order, which is the order the builder picked
// them. Distance is the metric reported to clients and accumulates the same
// (possibly perturbed) leg lengths that drove selection; TrueDistance is the
// plain Euclidean length of the same path. Both include the return leg.
type Route struct {
	VehicleID    int
	Customers    []Customer
	Load         int
	Distance     float64
	TrueDistance float64
}

func (r Route) CustomerIDs() []int {
	ids := make([]int, 0, len(r.Customers))
	for _, c := range r.Customers {
		ids = append(ids, c.ID)
	}
	return ids
}

// Solution is the output of one solve: routes in vehicle order plus totals.
type Solution struct {
	Routes        []Route
	TotalDistance float64
}

func NewSolution(routes []Route) Solution {
	if routes == nil {
		routes = []Route{}
	}

	total := 0.0
	for _, r := range routes {
		total += r.Distance
	}
	return Solution{Routes: routes, TotalDistance: total}
}

func (s Solution) NumRoutes() int { return len(s.Routes) }

func (s Solution) CustomersServed() int {
	n := 0
	for _, r := range s.Routes {
		n += len(r.Customers)
	}
	return n
}

func (s Solution) TrueTotalDistance() float64 {
	total := 0.0
	for _, r := range s.Routes {
		total += r.TrueDistance
	}
	return total
}

// AvgRouteLength is TotalDistance / NumRoutes, or 0 when no route was produced.
func (s Solution) AvgRouteLength() float64 {
	if len(s.Routes) == 0 {
		return 0
	}
	return s.TotalDistance / float64(len(s.Routes))
}
