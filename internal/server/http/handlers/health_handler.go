package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

// HealthChecker reports readiness of backing services.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// Health handles GET /health.
func Health(checker HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := checker.HealthCheck(c.Request.Context()); err != nil {
			_ = c.Error(err)
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
