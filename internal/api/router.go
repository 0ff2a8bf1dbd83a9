package api

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"shipping-estimator/internal/api/handlers"
	"shipping-estimator/internal/services"
)

// NewRouter wires HTTP handlers with their dependencies.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(est *services.Estimator, log *zap.Logger) *gin.Engine {
	if log == nil {
		log = zap.NewNop()
	}

	r := gin.New()
	r.Use(recovery(log), requestID(), loggingMiddleware(log))

	r.GET("/health", handlers.Health)

	quotes := &handlers.QuoteHandler{Svc: est, Log: log}
	quotes.Register(&r.RouterGroup)

	return r
}
