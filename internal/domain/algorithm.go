package domain

// Problem variants offered by the visualizer.
const (
	VRPTypeCVRP  = "cvrp"
	VRPTypePCVRP = "pcvrp"
	VRPTypeVRPTW = "vrptw"
)

// Algorithm is a catalog entry: a generated heuristic identified by the score
// it reached during evolution. Lower scores denote better heuristics.
type Algorithm struct {
	ID      string
	Name    string
	VRPType string
	Score   float64
}
