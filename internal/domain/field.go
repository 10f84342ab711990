package domain

import (
	"fmt"
	"math"
)

// Bounds is an axis-aligned box on the canvas.
type Bounds struct {
	MinX float64 `yaml:"min_x"`
	MaxX float64 `yaml:"max_x"`
	MinY float64 `yaml:"min_y"`
	MaxY float64 `yaml:"max_y"`
}

// Field describes the canvas conventions shared by the customer generator and
// the route builder: where cluster centers may fall, where the depot sits and
// how strongly the quality score perturbs nearest-neighbor choices.
type Field struct {
	ClusterBounds       Bounds  `yaml:"cluster_bounds"`
	Depot               Point   `yaml:"depot"`
	CustomersPerCluster int     `yaml:"customers_per_cluster"`
	MinRadius           float64 `yaml:"min_radius"`
	MaxRadius           float64 `yaml:"max_radius"`
	MinDemand           int     `yaml:"min_demand"`
	MaxDemand           int     `yaml:"max_demand"`
	BaselineScore       float64 `yaml:"baseline_score"`
	PerturbationScale   float64 `yaml:"perturbation_scale"`
}

// DefaultField returns the canvas conventions of the visualizer front end:
// an 1000x600 canvas with the depot at its center.
func DefaultField() Field {
	return Field{
		ClusterBounds:       Bounds{MinX: 150, MaxX: 850, MinY: 100, MaxY: 500},
		Depot:               Point{X: 500, Y: 300},
		CustomersPerCluster: 10,
		MinRadius:           20,
		MaxRadius:           100,
		MinDemand:           5,
		MaxDemand:           19,
		BaselineScore:       40.0,
		PerturbationScale:   0.3,
	}
}

// EfficiencyFactor is baseline/score. A score equal to the baseline yields 1,
// which removes the perturbation entirely.
func (f Field) EfficiencyFactor(qualityScore float64) float64 {
	return f.BaselineScore / qualityScore
}

func (f Field) Validate() error {
	b := f.ClusterBounds
	if b.MaxX < b.MinX || b.MaxY < b.MinY {
		return fmt.Errorf("validate field: cluster bounds are inverted: %+v", b)
	}
	if f.CustomersPerCluster < 1 {
		return fmt.Errorf("validate field: customers_per_cluster must be at least 1, got %d", f.CustomersPerCluster)
	}
	if f.MinRadius < 0 || f.MaxRadius < f.MinRadius {
		return fmt.Errorf("validate field: radius range [%g, %g] is invalid", f.MinRadius, f.MaxRadius)
	}
	if f.MinDemand < 1 || f.MaxDemand < f.MinDemand {
		return fmt.Errorf("validate field: demand range [%d, %d] is invalid", f.MinDemand, f.MaxDemand)
	}
	if !(f.BaselineScore > 0) || math.IsInf(f.BaselineScore, 0) {
		return fmt.Errorf("validate field: baseline_score must be positive, got %g", f.BaselineScore)
	}
	if f.PerturbationScale < 0 {
		return fmt.Errorf("validate field: perturbation_scale must not be negative, got %g", f.PerturbationScale)
	}
	return nil
}
