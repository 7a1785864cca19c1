package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"motes-generator.backend/internal/infrastructure/metrics"
)

// UnmatchedRoute labels requests that hit no registered route
const UnmatchedRoute = "unmatched"

// MetricsMiddleware records request count and latency per route template
func MetricsMiddleware(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = UnmatchedRoute
		}
		m.ObserveHTTP(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}
