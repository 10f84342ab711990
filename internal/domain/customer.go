package domain

import (
	"fmt"
	"math"
)

// Represents a single demand point generated for one solve request.
// A Customer is immutable once generated; IDs are 1-based and follow
// generation order.
type Customer struct {
	ID     int
	X      float64
	Y      float64
	Demand int
}

func (c Customer) Position() Point { return Point{X: c.X, Y: c.Y} }

// Validate rejects malformed customer records before they reach the route builder.
func (c Customer) Validate() error {
	if c.ID <= 0 {
		return fmt.Errorf("%w: customer id must be positive, got %d", ErrInvalidInput, c.ID)
	}
	if c.Demand <= 0 {
		return fmt.Errorf("%w: customer %d demand must be positive, got %d", ErrInvalidInput, c.ID, c.Demand)
	}
	if math.IsNaN(c.X) || math.IsNaN(c.Y) || math.IsInf(c.X, 0) || math.IsInf(c.Y, 0) {
		return fmt.Errorf("%w: customer %d has non-finite coordinates", ErrInvalidInput, c.ID)
	}
	return nil
}
