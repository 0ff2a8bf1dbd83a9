package distance

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shipping-estimator/internal/domain"
)

var (
	nairobi = domain.Coordinates{Lat: -1.2832533, Lon: 36.8172449}
	mombasa = domain.Coordinates{Lat: -4.0546, Lon: 39.6636}
)

func TestGeodesicOneDegreeOnEquator(t *testing.T) {
	km, err := NewGeodesic().DistanceKm(
		domain.Coordinates{Lat: 0, Lon: 0},
		domain.Coordinates{Lat: 0, Lon: 1},
	)
	require.NoError(t, err)
	// WGS-84 equatorial radius 6378137 m -> 2*pi*a/360.
	assert.InDelta(t, 111.319491, km, 0.000001)
}

func TestGeodesicMeridianDegree(t *testing.T) {
	km, err := NewGeodesic().DistanceKm(
		domain.Coordinates{Lat: 0, Lon: 0},
		domain.Coordinates{Lat: 1, Lon: 0},
	)
	require.NoError(t, err)
	assert.InDelta(t, 110.574389, km, 0.001)
}

func TestGeodesicNairobiMombasa(t *testing.T) {
	km, err := NewGeodesic().DistanceKm(nairobi, mombasa)
	require.NoError(t, err)
	assert.Greater(t, km, 440.0)
	assert.Less(t, km, 490.0)

	back, err := NewGeodesic().DistanceKm(mombasa, nairobi)
	require.NoError(t, err)
	assert.InDelta(t, km, back, 1e-9)
}

func TestGeodesicSamePoint(t *testing.T) {
	km, err := NewGeodesic().DistanceKm(nairobi, nairobi)
	require.NoError(t, err)
	assert.Zero(t, km)
}

func TestGeodesicRejectsInvalidCoordinates(t *testing.T) {
	g := NewGeodesic()

	_, err := g.DistanceKm(domain.Coordinates{Lat: 91}, nairobi)
	assert.Error(t, err)

	_, err = g.DistanceKm(nairobi, domain.Coordinates{Lat: math.NaN()})
	assert.Error(t, err)
}

func TestHaversineCloseToGeodesic(t *testing.T) {
	h, err := NewHaversine().DistanceKm(nairobi, mombasa)
	require.NoError(t, err)

	g, err := NewGeodesic().DistanceKm(nairobi, mombasa)
	require.NoError(t, err)

	assert.InEpsilon(t, g, h, 0.005)
}

func TestNewSelectsFormula(t *testing.T) {
	c, err := New("")
	require.NoError(t, err)
	assert.IsType(t, &Geodesic{}, c)

	c, err = New("Haversine")
	require.NoError(t, err)
	assert.IsType(t, &Haversine{}, c)

	_, err = New("vincenty")
	assert.Error(t, err)
}
