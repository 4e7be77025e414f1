package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/lasithahemajith/practicum-track-api/internal/middleware"
	"github.com/lasithahemajith/practicum-track-api/internal/models"
)

// claimsFromContext returns the authenticated principal, or nil when the
// route was reached without passing the JWT middleware.
func claimsFromContext(c *gin.Context) *models.JWTClaims {
	value, exists := c.Get(middleware.ContextUserKey)
	if !exists {
		return nil
	}
	claims, _ := value.(*models.JWTClaims)
	return claims
}
