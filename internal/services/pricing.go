package services

import (
	"errors"
	"math"
)

const DefaultCurrency = "Kenyan Shillings"

// CostCalculator returns the shipping cost for weight kg over distance km
// at one currency unit per kg·km. The result is not rounded.
func CostCalculator(weight, distance float64) float64 {
	return weight * distance
}

// Pricing is a linear kg·km tariff.
type Pricing struct {
	RatePerKgKm float64
	Currency    string
}

// DefaultPricing charges one Kenyan Shilling per kg·km.
func DefaultPricing() Pricing {
	return Pricing{RatePerKgKm: 1, Currency: DefaultCurrency}
}

func (p Pricing) Validate() error {
	if math.IsNaN(p.RatePerKgKm) || math.IsInf(p.RatePerKgKm, 0) || p.RatePerKgKm <= 0 {
		return errors.New("pricing: rate per kg·km must be a positive number")
	}
	if p.Currency == "" {
		return errors.New("pricing: currency must be non-empty")
	}
	return nil
}

func (p Pricing) Cost(weight, distance float64) float64 {
	return CostCalculator(weight, distance) * p.RatePerKgKm
}

// DisplayCost rounds cost half-to-even for display.
func DisplayCost(cost float64) int64 {
	return int64(math.RoundToEven(cost))
}
