package domain

// Represents a resolved origin -> destination pair.
// A Leg is produced after both places have been geocoded and the
// geodesic distance between them computed.
type Leg struct {
	Origin      string
	Destination string
	From        Coordinates
	To          Coordinates
	DistanceKm  float64
}
