package ports

import "shipping-estimator/internal/domain"

// Contract for computing the surface distance between two points.
type DistanceCalculator interface {
	// Return the distance between a and b in kilometers.
	DistanceKm(a, b domain.Coordinates) (float64, error)
}
