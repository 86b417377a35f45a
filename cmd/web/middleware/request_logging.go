package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"batarikh-mirror/cmd/internal/logger"
	"batarikh-mirror/metrics"
)

// RequestMetrics records request count and latency per route and logs slow requests.
func RequestMetrics(m *metrics.Metrics, slow time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := c.Writer.Status()
		elapsed := time.Since(start)

		m.RequestsTotal.WithLabelValues(route, strconv.Itoa(status)).Inc()
		m.RequestDuration.WithLabelValues(route).Observe(elapsed.Seconds())

		if slow > 0 && elapsed > slow {
			logger.Log.Warnf(
				"slow_request method=%s route=%s status=%d duration_ms=%d",
				c.Request.Method,
				route,
				status,
				elapsed.Milliseconds(),
			)
		}
	}
}
