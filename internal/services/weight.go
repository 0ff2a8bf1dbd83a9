package services

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"shipping-estimator/internal/domain"
)

const MaxWeightKg = 100.0

// CheckWeight parses raw as kilograms and accepts values in (0, 100].
// Failures are one of domain.ErrWeightNotNumber, ErrWeightNotPositive or
// ErrWeightTooHeavy.
func CheckWeight(raw string) (float64, error) {
	w, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	// Out-of-range input still parses to ±Inf or 0 and is judged by value.
	if err != nil && !errors.Is(err, strconv.ErrRange) || math.IsNaN(w) {
		return 0, domain.ErrWeightNotNumber
	}

	if w <= 0 {
		return 0, domain.ErrWeightNotPositive
	}
	if w > MaxWeightKg {
		return 0, domain.ErrWeightTooHeavy
	}

	return w, nil
}

// WeightReason returns the human sentence behind a CheckWeight error, for
// example "Weight should be a number".
func WeightReason(err error) string {
	for _, known := range []error{
		domain.ErrWeightNotNumber,
		domain.ErrWeightNotPositive,
		domain.ErrWeightTooHeavy,
	} {
		if errors.Is(err, known) {
			return strings.TrimPrefix(known.Error(), domain.ErrInvalidWeight.Error()+": ")
		}
	}
	return err.Error()
}
