package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"shipping-estimator/internal/domain"
	"shipping-estimator/internal/platform/obs"
)

// Estimator turns a place pair and a parcel weight into a Quote.
type Estimator struct {
	locator  *Locator
	pricing  Pricing
	speedKmh float64
	arrival  Arrival
}

type EstimatorConfig struct {
	Pricing     Pricing
	SpeedKmh    float64
	HoursFactor int
	// Now defaults to time.Now.
	Now func() time.Time
}

func NewEstimator(locator *Locator, cfg EstimatorConfig) (*Estimator, error) {
	if locator == nil {
		return nil, errors.New("estimator: locator is nil")
	}
	if err := cfg.Pricing.Validate(); err != nil {
		return nil, fmt.Errorf("estimator: %w", err)
	}
	if cfg.SpeedKmh <= 0 {
		return nil, fmt.Errorf("estimator: speed %v km/h must be positive", cfg.SpeedKmh)
	}
	if cfg.HoursFactor < 0 {
		return nil, fmt.Errorf("estimator: hours factor %d must not be negative", cfg.HoursFactor)
	}

	return &Estimator{
		locator:  locator,
		pricing:  cfg.Pricing,
		speedKmh: cfg.SpeedKmh,
		arrival:  Arrival{Now: cfg.Now, HoursFactor: cfg.HoursFactor},
	}, nil
}

// Country returns the country place names are scoped to.
func (e *Estimator) Country() string { return e.locator.Country() }

// Currency returns the currency costs are expressed in.
func (e *Estimator) Currency() string { return e.pricing.Currency }

// Distance resolves origin and destination to a Leg.
func (e *Estimator) Distance(ctx context.Context, origin, destination string) (_ domain.Leg, err error) {
	defer obs.Time(ctx, "estimator.Distance")(&err)
	return e.locator.Distance(ctx, origin, destination)
}

// Build prices an already resolved leg. weightKg must have passed CheckWeight.
func (e *Estimator) Build(leg domain.Leg, weightKg float64) (*domain.Quote, error) {
	transit, err := TransitTimeAt(leg.DistanceKm, e.speedKmh)
	if err != nil {
		return nil, fmt.Errorf("build quote: %w", err)
	}

	return &domain.Quote{
		ID:       uuid.New(),
		Leg:      leg,
		WeightKg: weightKg,
		Cost:     e.pricing.Cost(weightKg, leg.DistanceKm),
		Currency: e.pricing.Currency,
		Transit:  transit,
		ArriveAt: e.arrival.Estimate(transit),
	}, nil
}

// Quote validates rawWeight before any geocoding so invalid requests never
// reach the network.
func (e *Estimator) Quote(ctx context.Context, origin, destination, rawWeight string) (*domain.Quote, error) {
	weight, err := CheckWeight(rawWeight)
	if err != nil {
		return nil, err
	}

	leg, err := e.Distance(ctx, origin, destination)
	if err != nil {
		return nil, err
	}

	return e.Build(leg, weight)
}
