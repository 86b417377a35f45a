package middleware

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"batarikh-mirror/cmd/internal/logger"
	"batarikh-mirror/cmd/web/trace"
	"batarikh-mirror/metrics"
	"batarikh-mirror/ratelimit"
)

// ContextKeyRateLimit holds the ratelimit.Result of the current request.
const ContextKeyRateLimit = "ratelimit_result"

// RateLimit rejects clients over the fixed-window limit with 429 and attaches the
// X-RateLimit-* headers to every decided response. When the limiter itself fails the
// request is let through.
func RateLimit(l ratelimit.Limiter, opts ratelimit.Options, m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := ratelimit.ClientIP(c.Request)

		res, err := l.Check(c.Request.Context(), id, opts)
		if err != nil {
			m.RateLimitDecisions.WithLabelValues("error").Inc()
			fields := logger.Fields(trace.Fields(c.Request.Context()))
			fields["client"] = id
			fields["error"] = err.Error()
			logger.WarnWithFields("rate limiter unavailable, allowing request", fields)
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(res.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(res.Remaining))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(res.ResetUnix(), 10))

		if !res.Allowed {
			m.RateLimitDecisions.WithLabelValues("deny").Inc()
			c.Header("Retry-After", strconv.Itoa(res.RetryAfter))
			c.String(http.StatusTooManyRequests, "Too many requests")
			c.Abort()
			return
		}

		m.RateLimitDecisions.WithLabelValues("allow").Inc()
		c.Set(ContextKeyRateLimit, res)
		c.Next()
	}
}
