package geocoding

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"shipping-estimator/internal/domain"
	"shipping-estimator/internal/platform/obs"
)

const (
	DefaultNominatimURL = "https://nominatim.openstreetmap.org"
	DefaultUserAgent    = "DistanceCalculator"
)

type nominatimPlace struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// Nominatim implements ports.Geocoder using the OpenStreetMap Nominatim
// search API (/search). The public instance requires an identifying
// User-Agent and allows about one request per second.
//
// Nominatim is safe for concurrent use.
type Nominatim struct {
	http      httpClient
	baseURL   string
	userAgent string
}

func NewNominatim(baseURL, userAgent string, opts Options) (*Nominatim, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = DefaultNominatimURL
	}

	userAgent = strings.TrimSpace(userAgent)
	if userAgent == "" {
		return nil, errors.New("nominatim: user agent is empty")
	}

	return &Nominatim{
		http:      newHTTPClient(opts),
		baseURL:   baseURL,
		userAgent: userAgent,
	}, nil
}

func (n *Nominatim) newRequest(ctx context.Context, query string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, n.baseURL+"/search", nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", n.userAgent)
	req.Header.Set("Accept", "application/json")

	q := req.URL.Query()
	q.Set("q", query)
	q.Set("format", "jsonv2")
	q.Set("limit", "1")
	req.URL.RawQuery = q.Encode()

	return req, nil
}

// Geocode resolves query to the first Nominatim match.
func (n *Nominatim) Geocode(ctx context.Context, query string) (_ domain.Coordinates, err error) {
	defer obs.Time(ctx, "geocode.nominatim")(&err)

	query = strings.TrimSpace(query)
	if query == "" {
		return domain.Coordinates{}, errors.New("nominatim: query must be non-empty")
	}

	resp, err := n.http.doWithRetry(ctx, func() (*http.Request, error) {
		return n.newRequest(ctx, query)
	})
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("nominatim: execute request: %w", err)
	}
	defer resp.Body.Close()

	var places []nominatimPlace
	if err := json.NewDecoder(resp.Body).Decode(&places); err != nil {
		return domain.Coordinates{}, fmt.Errorf("nominatim: decode response: %w", err)
	}

	if len(places) == 0 {
		return domain.Coordinates{}, fmt.Errorf("nominatim: no results for %q: %w", query, domain.ErrLocationNotFound)
	}

	lat, err := strconv.ParseFloat(places[0].Lat, 64)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("nominatim: invalid latitude %q for %q: %w", places[0].Lat, query, err)
	}

	lon, err := strconv.ParseFloat(places[0].Lon, 64)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("nominatim: invalid longitude %q for %q: %w", places[0].Lon, query, err)
	}

	return domain.Coordinates{Lat: lat, Lon: lon}, nil
}
