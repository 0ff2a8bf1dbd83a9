package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shipping-estimator/internal/adapters/distance"
	"shipping-estimator/internal/adapters/geocoding"
	"shipping-estimator/internal/domain"
)

var kenya = map[string]domain.Coordinates{
	"Nairobi, Kenya": {Lat: -1.2832533, Lon: 36.8172449},
	"Mombasa, Kenya": {Lat: -4.0546, Lon: 39.6636},
}

type failingGeocoder struct{ err error }

func (f failingGeocoder) Geocode(context.Context, string) (domain.Coordinates, error) {
	return domain.Coordinates{}, f.err
}

type brokenCalculator struct{}

func (brokenCalculator) DistanceKm(a, b domain.Coordinates) (float64, error) {
	return 0, errors.New("no solution")
}

func newTestLocator(t *testing.T) (*Locator, *geocoding.Static) {
	t.Helper()
	g := geocoding.NewStatic(kenya)
	l, err := NewLocator(g, distance.NewGeodesic(), "")
	require.NoError(t, err)
	return l, g
}

func TestLocateAppendsCountry(t *testing.T) {
	l, g := newTestLocator(t)

	got, err := l.Locate(context.Background(), "Nairobi")
	require.NoError(t, err)
	assert.Equal(t, kenya["Nairobi, Kenya"], got)
	assert.Equal(t, 1, g.Calls("Nairobi, Kenya"))
}

func TestLocateIsIdempotent(t *testing.T) {
	l, _ := newTestLocator(t)

	first, err := l.Locate(context.Background(), "Mombasa")
	require.NoError(t, err)
	second, err := l.Locate(context.Background(), "Mombasa")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestLocateNotFound(t *testing.T) {
	l, _ := newTestLocator(t)

	_, err := l.Locate(context.Background(), "Atlantis")
	require.ErrorIs(t, err, domain.ErrLocationNotFound)

	var le *LocationError
	require.ErrorAs(t, err, &le)
	assert.True(t, le.NotFound())
	assert.Equal(t, "location not found for city: Atlantis, country: Kenya", le.Error())
}

func TestLocateDowngradesTransportErrors(t *testing.T) {
	l, err := NewLocator(failingGeocoder{err: errors.New("dial tcp: timeout")}, distance.NewGeodesic(), "Kenya")
	require.NoError(t, err)

	_, err = l.Locate(context.Background(), "Nairobi")
	require.ErrorIs(t, err, domain.ErrLocationNotFound)

	var le *LocationError
	require.ErrorAs(t, err, &le)
	assert.False(t, le.NotFound())
}

func TestCalculateDistanceRequiresBothLocations(t *testing.T) {
	a := kenya["Nairobi, Kenya"]

	_, err := CalculateDistance(distance.NewGeodesic(), &a, nil)
	assert.ErrorIs(t, err, domain.ErrDistanceUnavailable)

	_, err = CalculateDistance(distance.NewGeodesic(), nil, nil)
	assert.ErrorIs(t, err, domain.ErrDistanceUnavailable)
}

func TestDistanceNairobiMombasa(t *testing.T) {
	l, _ := newTestLocator(t)

	leg, err := l.Distance(context.Background(), "Nairobi", "Mombasa")
	require.NoError(t, err)
	assert.Equal(t, "Nairobi", leg.Origin)
	assert.Equal(t, "Mombasa", leg.Destination)
	assert.Greater(t, leg.DistanceKm, 440.0)
	assert.Less(t, leg.DistanceKm, 490.0)

	cost := CostCalculator(10, leg.DistanceKm)
	assert.Greater(t, cost, 4400.0)
	assert.Less(t, cost, 4900.0)

	eta, err := ExpectedTime(leg.DistanceKm)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, eta.Hours, 7)
	assert.LessOrEqual(t, eta.Hours, 8)
}

func TestDistanceMissingPlace(t *testing.T) {
	l, g := newTestLocator(t)

	for _, pair := range [][2]string{{"", "Mombasa"}, {"Nairobi", "  "}, {"", ""}} {
		_, err := l.Distance(context.Background(), pair[0], pair[1])
		assert.ErrorIs(t, err, domain.ErrDistanceUnavailable)
		assert.ErrorIs(t, err, domain.ErrMissingPlace)
	}
	assert.Zero(t, g.Calls("Nairobi, Kenya"))
}

func TestDistanceReportsEveryUnresolvedPlace(t *testing.T) {
	l, _ := newTestLocator(t)

	_, err := l.Distance(context.Background(), "Atlantis", "Lemuria")
	require.ErrorIs(t, err, domain.ErrDistanceUnavailable)
	require.ErrorIs(t, err, domain.ErrLocationNotFound)

	les := LocationErrors(err)
	require.Len(t, les, 2)
	assert.Equal(t, "Atlantis", les[0].Place)
	assert.Equal(t, "Lemuria", les[1].Place)
}

func TestDistanceCalculatorFailure(t *testing.T) {
	l, err := NewLocator(geocoding.NewStatic(kenya), brokenCalculator{}, "Kenya")
	require.NoError(t, err)

	_, err = l.Distance(context.Background(), "Nairobi", "Mombasa")
	assert.ErrorIs(t, err, domain.ErrDistanceUnavailable)
	assert.ErrorIs(t, err, domain.ErrDistanceCalculation)
	assert.NotErrorIs(t, err, domain.ErrLocationNotFound)
}
