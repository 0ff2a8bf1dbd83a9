package geocoding

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shipping-estimator/internal/domain"
)

type fakeCache struct {
	m      map[string]domain.Coordinates
	getErr error
	putErr error
	puts   int
}

func (f *fakeCache) GetMany(_ context.Context, queries []string) (map[string]domain.Coordinates, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	out := map[string]domain.Coordinates{}
	for _, q := range queries {
		if c, ok := f.m[q]; ok {
			out[q] = c
		}
	}
	return out, nil
}

func (f *fakeCache) PutMany(_ context.Context, results map[string]domain.Coordinates) error {
	f.puts++
	if f.putErr != nil {
		return f.putErr
	}
	for k, v := range results {
		f.m[k] = v
	}
	return nil
}

var nairobi = domain.Coordinates{Lat: -1.2832533, Lon: 36.8172449}

func TestCachedServesSecondLookupFromCache(t *testing.T) {
	inner := NewStatic(map[string]domain.Coordinates{"Nairobi, Kenya": nairobi})
	c := &fakeCache{m: map[string]domain.Coordinates{}}

	g, err := NewCached(inner, c, nil)
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		got, err := g.Geocode(context.Background(), "Nairobi, Kenya")
		require.NoError(t, err)
		assert.Equal(t, nairobi, got)
	}

	assert.Equal(t, 1, inner.Calls("Nairobi, Kenya"))
	assert.Equal(t, nairobi, c.m["nairobi, kenya"])
}

func TestCachedFallsThroughOnCacheFailure(t *testing.T) {
	inner := NewStatic(map[string]domain.Coordinates{"Nairobi, Kenya": nairobi})
	c := &fakeCache{
		m:      map[string]domain.Coordinates{},
		getErr: errors.New("cache down"),
		putErr: errors.New("cache down"),
	}

	g, err := NewCached(inner, c, nil)
	require.NoError(t, err)

	got, err := g.Geocode(context.Background(), "Nairobi, Kenya")
	require.NoError(t, err)
	assert.Equal(t, nairobi, got)
	assert.Equal(t, 1, c.puts)
}

func TestCachedDoesNotStoreMisses(t *testing.T) {
	inner := NewStatic(nil)
	c := &fakeCache{m: map[string]domain.Coordinates{}}

	g, err := NewCached(inner, c, nil)
	require.NoError(t, err)

	_, err = g.Geocode(context.Background(), "Atlantis, Kenya")
	assert.ErrorIs(t, err, domain.ErrLocationNotFound)
	assert.Zero(t, c.puts)
}

func TestNewCachedValidates(t *testing.T) {
	_, err := NewCached(nil, &fakeCache{}, nil)
	assert.Error(t, err)

	_, err = NewCached(NewStatic(nil), nil, nil)
	assert.Error(t, err)
}
