package distance

import (
	"fmt"

	"github.com/umahmood/haversine"

	"shipping-estimator/internal/domain"
)

// Haversine computes great-circle distances on a sphere. It is cheaper than
// Geodesic but off by up to ~0.5% for the same points.
type Haversine struct{}

func NewHaversine() *Haversine { return &Haversine{} }

func (Haversine) DistanceKm(a, b domain.Coordinates) (float64, error) {
	if err := validate(a); err != nil {
		return 0, fmt.Errorf("haversine distance: %w", err)
	}
	if err := validate(b); err != nil {
		return 0, fmt.Errorf("haversine distance: %w", err)
	}

	_, km := haversine.Distance(
		haversine.Coord{Lat: a.Lat, Lon: a.Lon},
		haversine.Coord{Lat: b.Lat, Lon: b.Lon},
	)
	return km, nil
}
