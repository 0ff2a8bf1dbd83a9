package domain

import (
	"errors"
	"fmt"
)

var (
	ErrLocationNotFound    = errors.New("location not found")
	ErrDistanceUnavailable = errors.New("distance unavailable")
	ErrInvalidWeight       = errors.New("invalid weight")
	ErrInvalidDistance     = errors.New("distance should be a non-negative number")
)

// Causes wrapped together with ErrDistanceUnavailable.
var (
	ErrMissingPlace        = errors.New("both origin and destination are required")
	ErrDistanceCalculation = errors.New("distance calculation failed")
)

// Weight validation failures. All of them match ErrInvalidWeight.
var (
	ErrWeightNotNumber   = fmt.Errorf("%w: Weight should be a number", ErrInvalidWeight)
	ErrWeightNotPositive = fmt.Errorf("%w: Weight should be greater than zero", ErrInvalidWeight)
	ErrWeightTooHeavy    = fmt.Errorf("%w: Weight should be less than 100", ErrInvalidWeight)
)
