package dto

import "encoding/json"

type QuoteRequest struct {
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
	// WeightKg keeps the literal so validation matches the CLI's.
	WeightKg json.Number `json:"weight_kg"`
}

type PointResponse struct {
	Place string  `json:"place"`
	Lat   float64 `json:"lat"`
	Lon   float64 `json:"lon"`
}

type TransitResponse struct {
	Hours   int `json:"hours"`
	Minutes int `json:"minutes"`
}

type QuoteResponse struct {
	ID          string          `json:"id"`
	Origin      PointResponse   `json:"origin"`
	Destination PointResponse   `json:"destination"`
	DistanceKm  float64         `json:"distance_km"`
	WeightKg    float64         `json:"weight_kg"`
	Cost        float64         `json:"cost"`
	CostRounded int64           `json:"cost_rounded"`
	Currency    string          `json:"currency"`
	Transit     TransitResponse `json:"transit"`
	ReadyAt     string          `json:"ready_at"`
}

type ErrorResponse struct {
	Error   string   `json:"error"`
	Details []string `json:"details,omitempty"`
}
