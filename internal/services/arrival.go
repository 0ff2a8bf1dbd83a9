package services

import (
	"time"

	"shipping-estimator/internal/domain"
)

const (
	// ArrivalHoursFactor multiplies transit hours when projecting arrival.
	// Minutes are added unscaled. Kept at 2 to match historical quotes;
	// the intent behind the factor is unconfirmed.
	ArrivalHoursFactor = 2

	ArrivalLayout = "2006-01-02 15:04:05"
)

// ExpectedArrival returns now + ArrivalHoursFactor*hours + minutes.
func ExpectedArrival(now time.Time, hours, minutes int) time.Time {
	return Arrival{HoursFactor: ArrivalHoursFactor}.At(now, domain.TransitTime{Hours: hours, Minutes: minutes})
}

// FormatArrival renders t in local time as "YYYY-MM-DD HH:MM:SS".
func FormatArrival(t time.Time) string {
	return t.Local().Format(ArrivalLayout)
}

// Arrival projects pickup time from a transit estimate.
type Arrival struct {
	// Now defaults to time.Now.
	Now         func() time.Time
	HoursFactor int
}

func (a Arrival) At(now time.Time, t domain.TransitTime) time.Time {
	offset := time.Duration(t.Hours*a.HoursFactor)*time.Hour + time.Duration(t.Minutes)*time.Minute
	return now.Add(offset)
}

// Estimate projects arrival from the current clock.
func (a Arrival) Estimate(t domain.TransitTime) time.Time {
	now := time.Now
	if a.Now != nil {
		now = a.Now
	}
	return a.At(now(), t)
}
