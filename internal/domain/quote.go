package domain

import (
	"time"

	"github.com/google/uuid"
)

// Travel time split into whole hours and a minute remainder.
// Minutes is rounded half-to-even and may equal 60 at the boundary.
type TransitTime struct {
	Hours   int
	Minutes int
}

// Represents a single shipping estimate. Quotes are computed per request
// and never persisted.
type Quote struct {
	ID       uuid.UUID
	Leg      Leg
	WeightKg float64
	Cost     float64
	Currency string
	Transit  TransitTime
	ArriveAt time.Time
}
