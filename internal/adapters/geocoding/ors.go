package geocoding

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"shipping-estimator/internal/domain"
	"shipping-estimator/internal/platform/obs"
)

const DefaultORSURL = "https://api.openrouteservice.org"

type geocodeResponse struct {
	Features []struct {
		Geometry struct {
			Coordinates []float64 `json:"coordinates"`
		} `json:"geometry"`
	} `json:"features"`
}

// ORS implements ports.Geocoder using OpenRouteService (/geocode/search),
// restricted to a single country.
type ORS struct {
	http        httpClient
	apiKey      string
	baseURL     string
	countryCode string
}

func NewORS(apiKey, baseURL, countryCode string, opts Options) (*ORS, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("ORS api key is empty")
	}

	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = DefaultORSURL
	}

	return &ORS{
		http:        newHTTPClient(opts),
		apiKey:      apiKey,
		baseURL:     baseURL,
		countryCode: strings.ToUpper(strings.TrimSpace(countryCode)),
	}, nil
}

func (o *ORS) newRequest(ctx context.Context, query string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, o.baseURL+"/geocode/search", nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Authorization", o.apiKey)
	req.Header.Set("Accept", "application/json")

	q := req.URL.Query()
	q.Set("text", query)
	if o.countryCode != "" {
		q.Set("boundary.country", o.countryCode)
	}
	q.Set("size", "1")
	req.URL.RawQuery = q.Encode()

	return req, nil
}

// Geocode resolves query to the first ORS feature.
func (o *ORS) Geocode(ctx context.Context, query string) (_ domain.Coordinates, err error) {
	defer obs.Time(ctx, "geocode.ors")(&err)

	query = strings.TrimSpace(query)
	if query == "" {
		return domain.Coordinates{}, errors.New("ORS: query must be non-empty")
	}

	resp, err := o.http.doWithRetry(ctx, func() (*http.Request, error) {
		return o.newRequest(ctx, query)
	})
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("ORS: execute request: %w", err)
	}
	defer resp.Body.Close()

	var decoded geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return domain.Coordinates{}, fmt.Errorf("ORS: decode geocode response: %w", err)
	}

	if len(decoded.Features) == 0 {
		return domain.Coordinates{}, fmt.Errorf("ORS: no geocode results for %q: %w", query, domain.ErrLocationNotFound)
	}

	coords := decoded.Features[0].Geometry.Coordinates
	if len(coords) != 2 {
		return domain.Coordinates{}, fmt.Errorf("ORS: invalid coordinate format for %q", query)
	}

	// ORS returns GeoJSON order: [lon, lat].
	return domain.Coordinates{Lat: coords[1], Lon: coords[0]}, nil
}
