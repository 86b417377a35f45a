package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"batarikh-mirror/cmd/internal/logger"
	"batarikh-mirror/cmd/web/trace"
	"batarikh-mirror/cmd/web/views"
)

// Recovery turns a handler panic into the Persian error page with status 500.
func Recovery(r *views.Renderer) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		fields := logger.Fields(trace.Fields(c.Request.Context()))
		fields["path"] = c.Request.URL.Path
		fields["panic"] = fmt.Sprint(recovered)
		logger.ErrorWithFields("handler panic", fields)

		c.Header("Content-Type", "text/html; charset=utf-8")
		c.Header("Cache-Control", "no-store")
		c.Status(http.StatusInternalServerError)
		if err := r.Error(c.Writer); err != nil {
			_, _ = c.Writer.WriteString("خطایی رخ داد")
		}
		c.Abort()
	})
}
