package domain

import "math"

// Planar canvas coordinates. The canvas is the rendering surface of the
// visualizer, so units are pixels rather than meters.
type Point struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// Euclidean distance between two points.
func (p Point) DistanceTo(q Point) float64 { return math.Hypot(q.X-p.X, q.Y-p.Y) }
