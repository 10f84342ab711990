package domain

import (
	"fmt"
	"math"
)

// Problem size requested by a client.
type Parameters struct {
	NumCustomers    int `json:"numCustomers"`
	VehicleCapacity int `json:"vehicleCapacity"`
	NumVehicles     int `json:"numVehicles"`
}

// Upper bounds applied on top of the positivity checks. Zero disables a bound.
type Limits struct {
	MaxCustomers int
	MaxVehicles  int
	MaxCapacity  int
}

func (p Parameters) Validate(l Limits) error {
	if p.NumCustomers < 1 {
		return ErrInvalidCustomerCount
	}
	if l.MaxCustomers > 0 && p.NumCustomers > l.MaxCustomers {
		return fmt.Errorf("%w: numCustomers must be between 1 and %d", ErrInvalidInput, l.MaxCustomers)
	}
	if p.VehicleCapacity < 1 {
		return ErrInvalidCapacity
	}
	if l.MaxCapacity > 0 && p.VehicleCapacity > l.MaxCapacity {
		return fmt.Errorf("%w: vehicleCapacity must be between 1 and %d", ErrInvalidInput, l.MaxCapacity)
	}
	if p.NumVehicles < 1 {
		return ErrInvalidVehicleCount
	}
	if l.MaxVehicles > 0 && p.NumVehicles > l.MaxVehicles {
		return fmt.Errorf("%w: numVehicles must be between 1 and %d", ErrInvalidInput, l.MaxVehicles)
	}
	return nil
}

func ValidateQualityScore(score float64) error {
	if !(score > 0) || math.IsInf(score, 0) {
		return ErrInvalidQualityScore
	}
	return nil
}
