package domain

import "time"

// RunSummary records the metrics of one completed solve. Routes are not kept;
// they are only meaningful for the response that produced them.
type RunSummary struct {
	ID                string     `json:"id"`
	CreatedAt         time.Time  `json:"createdAt"`
	VRPType           string     `json:"vrpType"`
	AlgorithmID       string     `json:"algorithmId"`
	QualityScore      float64    `json:"qualityScore"`
	Parameters        Parameters `json:"parameters"`
	Seed              uint64     `json:"seed,omitempty"`
	ExecutionTimeMs   float64    `json:"executionTimeMs"`
	TotalDistance     float64    `json:"totalDistance"`
	TrueTotalDistance float64    `json:"trueTotalDistance"`
	NumRoutes         int        `json:"numRoutes"`
	AvgRouteLength    float64    `json:"avgRouteLength"`
	CustomersServed   int        `json:"customersServed"`
	CustomersDropped  int        `json:"customersDropped"`
}
