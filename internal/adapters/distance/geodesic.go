package distance

import (
	"fmt"
	"math"

	"github.com/tidwall/geodesic"

	"shipping-estimator/internal/domain"
)

// Geodesic computes ellipsoidal distances on WGS-84 using Karney's algorithm.
// Results agree with GeographicLib (and geopy's geodesic) to well under a meter.
type Geodesic struct {
	ellipsoid *geodesic.Ellipsoid
}

func NewGeodesic() *Geodesic {
	return &Geodesic{ellipsoid: geodesic.WGS84}
}

func (g *Geodesic) DistanceKm(a, b domain.Coordinates) (float64, error) {
	if err := validate(a); err != nil {
		return 0, fmt.Errorf("geodesic distance: %w", err)
	}
	if err := validate(b); err != nil {
		return 0, fmt.Errorf("geodesic distance: %w", err)
	}

	var meters float64
	g.ellipsoid.Inverse(a.Lat, a.Lon, b.Lat, b.Lon, &meters, nil, nil)

	if math.IsNaN(meters) {
		return 0, fmt.Errorf("geodesic distance: no solution for %+v -> %+v", a, b)
	}

	return meters / 1000, nil
}

func validate(c domain.Coordinates) error {
	if math.IsNaN(c.Lat) || math.IsNaN(c.Lon) || math.IsInf(c.Lat, 0) || math.IsInf(c.Lon, 0) {
		return fmt.Errorf("non-finite coordinate %+v", c)
	}
	if math.Abs(c.Lat) > 90 {
		return fmt.Errorf("latitude %v out of range", c.Lat)
	}
	return nil
}
