package handlers

import (
	"github.com/gin-gonic/gin"

	"shipping-estimator/internal/api/dto"
)

func writeError(c *gin.Context, status int, msg string, details ...string) {
	c.AbortWithStatusJSON(status, dto.ErrorResponse{Error: msg, Details: details})
}
