package domain

import (
	"errors"
	"fmt"
)

// ErrInvalidInput marks request validation failures. Callers map it to a 400.
var ErrInvalidInput = errors.New("invalid input")

var (
	ErrInvalidCustomerCount = fmt.Errorf("%w: numCustomers must be at least 1", ErrInvalidInput)
	ErrInvalidVehicleCount  = fmt.Errorf("%w: numVehicles must be at least 1", ErrInvalidInput)
	ErrInvalidCapacity      = fmt.Errorf("%w: vehicleCapacity must be at least 1", ErrInvalidInput)
	ErrInvalidQualityScore  = fmt.Errorf("%w: quality score must be a positive finite number", ErrInvalidInput)
)

var (
	ErrUnknownAlgorithm = errors.New("unknown algorithm")
	ErrRunNotFound      = errors.New("run not found")
)
