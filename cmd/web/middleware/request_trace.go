package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"batarikh-mirror/cmd/internal/logger"
	"batarikh-mirror/cmd/web/trace"
)

// RequestTrace attaches a request id (the caller's, or a fresh one) to the request
// context and echoes it back, then writes one access log line when the handler chain
// has finished.
func RequestTrace() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		id := trace.IncomingID(c.Request.Header)

		ctx := trace.WithRequestAndSpan(c.Request.Context(), id, 0)
		c.Request = c.Request.WithContext(ctx)
		c.Header(trace.HeaderRequestID, id)

		c.Next()

		entry := logger.Fields(trace.Fields(c.Request.Context()))
		entry["method"] = c.Request.Method
		entry["route"] = c.FullPath()
		entry["path"] = c.Request.URL.Path
		entry["status"] = c.Writer.Status()
		entry["bytes"] = c.Writer.Size()
		entry["duration_ms"] = time.Since(start).Milliseconds()
		if q := c.Request.URL.RawQuery; q != "" {
			entry["query"] = q
		}
		if len(c.Errors) > 0 {
			entry["errors"] = c.Errors.String()
		}

		switch status := c.Writer.Status(); {
		case status >= 500:
			logger.ErrorWithFields("request", entry)
		case status >= 400:
			logger.WarnWithFields("request", entry)
		default:
			logger.InfoWithFields("request", entry)
		}
	}
}
