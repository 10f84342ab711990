package dto

import (
	"time"
	"vrp-visualizer-service/internal/domain"
	"vrp-visualizer-service/internal/services"
)

type ParametersRequest struct {
	NumCustomers    int `json:"numCustomers"`
	VehicleCapacity int `json:"vehicleCapacity"`
	NumVehicles     int `json:"numVehicles"`
}

func (p ParametersRequest) Domain() domain.Parameters {
	return domain.Parameters{
		NumCustomers:    p.NumCustomers,
		VehicleCapacity: p.VehicleCapacity,
		NumVehicles:     p.NumVehicles,
	}
}

type SolveRequest struct {
	VRPType     string             `json:"vrpType"`
	AlgorithmID string             `json:"algorithmId"`
	Parameters  *ParametersRequest `json:"parameters"`
	Seed        uint64             `json:"seed"`
}

type CustomerResponse struct {
	ID     int     `json:"id"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Demand int     `json:"demand"`
}

type RouteResponse struct {
	ID           int                `json:"id"`
	Customers    []CustomerResponse `json:"customers"`
	Load         int                `json:"load"`
	Distance     float64            `json:"distance"`
	TrueDistance float64            `json:"trueDistance"`
}

type SolutionResponse struct {
	Routes        []RouteResponse    `json:"routes"`
	TotalDistance float64            `json:"totalDistance"`
	AlgorithmID   string             `json:"algorithmId"`
	VRPType       string             `json:"vrpType"`
	Depot         PointResponse      `json:"depot"`
	Unassigned    []CustomerResponse `json:"unassigned"`
}

type PointResponse struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type MetricsResponse struct {
	// Milliseconds
	ExecutionTime     float64 `json:"executionTime"`
	TotalDistance     float64 `json:"totalDistance"`
	TrueTotalDistance float64 `json:"trueTotalDistance"`
	NumRoutes         int     `json:"numRoutes"`
	AvgRouteLength    float64 `json:"avgRouteLength"`
	CustomersServed   int     `json:"customersServed"`
	CustomersDropped  int     `json:"customersDropped"`
}

type SolveResponse struct {
	Success  bool             `json:"success"`
	RunID    string           `json:"runId"`
	Solution SolutionResponse `json:"solution"`
	Metrics  MetricsResponse  `json:"metrics"`
	Warnings []string         `json:"warnings"`
}

func NewCustomers(cs []domain.Customer) []CustomerResponse {
	out := make([]CustomerResponse, 0, len(cs))
	for _, c := range cs {
		out = append(out, CustomerResponse{ID: c.ID, X: c.X, Y: c.Y, Demand: c.Demand})
	}
	return out
}

func NewRoutes(rs []domain.Route) []RouteResponse {
	out := make([]RouteResponse, 0, len(rs))
	for _, r := range rs {
		out = append(out, RouteResponse{
			ID:           r.VehicleID,
			Customers:    NewCustomers(r.Customers),
			Load:         r.Load,
			Distance:     r.Distance,
			TrueDistance: r.TrueDistance,
		})
	}
	return out
}

func NewSolveResponse(res *services.SolveResult, depot domain.Point) SolveResponse {
	m := res.Metrics
	return SolveResponse{
		Success: true,
		RunID:   res.RunID,
		Solution: SolutionResponse{
			Routes:        NewRoutes(res.Solution.Routes),
			TotalDistance: res.Solution.TotalDistance,
			AlgorithmID:   res.Algorithm.ID,
			VRPType:       res.VRPType,
			Depot:         PointResponse{X: depot.X, Y: depot.Y},
			Unassigned:    NewCustomers(res.Unassigned),
		},
		Metrics: MetricsResponse{
			ExecutionTime:     Millis(m.ExecutionTime),
			TotalDistance:     m.TotalDistance,
			TrueTotalDistance: m.TrueTotalDistance,
			NumRoutes:         m.NumRoutes,
			AvgRouteLength:    m.AvgRouteLength,
			CustomersServed:   m.CustomersServed,
			CustomersDropped:  m.CustomersDropped,
		},
		Warnings: res.Warnings,
	}
}

// Millis renders a duration as fractional milliseconds.
func Millis(d time.Duration) float64 { return float64(d.Microseconds()) / 1000 }
