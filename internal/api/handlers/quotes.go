package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"shipping-estimator/internal/api/dto"
	"shipping-estimator/internal/domain"
	"shipping-estimator/internal/services"
)

type quoteService interface {
	Quote(ctx context.Context, origin, destination, rawWeight string) (*domain.Quote, error)
}

type QuoteHandler struct {
	Svc quoteService
	Log *zap.Logger
}

func (h *QuoteHandler) Register(r *gin.RouterGroup) {
	r.POST("/quotes", h.Create)
}

// Create prices a single parcel between two places.
func (h *QuoteHandler) Create(c *gin.Context) {
	var req dto.QuoteRequest

	dec := json.NewDecoder(c.Request.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(c, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	q, err := h.Svc.Quote(c.Request.Context(), req.Origin, req.Destination, req.WeightKg.String())
	if err != nil {
		h.writeQuoteError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toQuoteResponse(q))
}

func (h *QuoteHandler) writeQuoteError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidWeight):
		writeError(c, http.StatusBadRequest, services.WeightReason(err))
	case errors.Is(err, domain.ErrMissingPlace):
		writeError(c, http.StatusBadRequest, "origin and destination are required")
	case errors.Is(err, domain.ErrLocationNotFound):
		var details []string
		for _, le := range services.LocationErrors(err) {
			details = append(details, le.Error())
		}
		writeError(c, http.StatusNotFound, "origin and/or destination could not be located on the map", details...)
	case errors.Is(err, domain.ErrDistanceUnavailable):
		writeError(c, http.StatusUnprocessableEntity, "distance calculation failed")
	default:
		h.logger().Error("quote failed", zap.Error(err))
		writeError(c, http.StatusInternalServerError, "internal server error")
	}
}

func (h *QuoteHandler) logger() *zap.Logger {
	if h.Log == nil {
		return zap.L()
	}
	return h.Log
}

func toQuoteResponse(q *domain.Quote) dto.QuoteResponse {
	return dto.QuoteResponse{
		ID: q.ID.String(),
		Origin: dto.PointResponse{
			Place: q.Leg.Origin,
			Lat:   q.Leg.From.Lat,
			Lon:   q.Leg.From.Lon,
		},
		Destination: dto.PointResponse{
			Place: q.Leg.Destination,
			Lat:   q.Leg.To.Lat,
			Lon:   q.Leg.To.Lon,
		},
		DistanceKm:  q.Leg.DistanceKm,
		WeightKg:    q.WeightKg,
		Cost:        q.Cost,
		CostRounded: services.DisplayCost(q.Cost),
		Currency:    q.Currency,
		Transit: dto.TransitResponse{
			Hours:   q.Transit.Hours,
			Minutes: q.Transit.Minutes,
		},
		ReadyAt: services.FormatArrival(q.ArriveAt),
	}
}
