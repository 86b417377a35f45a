package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"batarikh-mirror/cmd/internal/logger"
	"batarikh-mirror/cmd/web/trace"
	"batarikh-mirror/metrics"
	"batarikh-mirror/services"
)

func downloadOutcome(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "bad_request"
	case http.StatusForbidden:
		return "forbidden"
	case http.StatusBadGateway:
		return "upstream_error"
	}
	return strconv.Itoa(status)
}

func rejectDownload(c *gin.Context, m *metrics.Metrics, err error) {
	var de *services.DownloadError
	if !errors.As(err, &de) {
		de = &services.DownloadError{Status: http.StatusBadGateway, Message: "Upstream error", Err: err}
	}
	m.DownloadsTotal.WithLabelValues(downloadOutcome(de.Status)).Inc()

	fields := logger.Fields(trace.Fields(c.Request.Context()))
	fields["status"] = de.Status
	fields["error"] = de.Error()
	if de.Status >= http.StatusInternalServerError {
		logger.ErrorWithFields("download failed", fields)
	} else {
		logger.DebugWithFields("download rejected", fields)
	}

	c.Header("X-Robots-Tag", "noindex, nofollow")
	c.String(de.Status, de.Message)
}

// DownloadHandler proxies a PDF from the media host as an attachment. The rate limit
// middleware runs before it and sets the X-RateLimit-* headers.
func DownloadHandler(svc *services.DownloadService, cacheMaxAge time.Duration, m *metrics.Metrics) gin.HandlerFunc {
	cacheControl := "public, max-age=" + strconv.Itoa(int(cacheMaxAge/time.Second))

	return func(c *gin.Context) {
		dr, err := svc.Validate(c.Query("url"), c.Query("name"))
		if err != nil {
			rejectDownload(c, m, err)
			return
		}

		up, err := svc.Fetch(c.Request.Context(), dr)
		if err != nil {
			rejectDownload(c, m, err)
			return
		}
		defer up.Body.Close()

		m.DownloadsTotal.WithLabelValues("ok").Inc()
		c.DataFromReader(http.StatusOK, up.ContentLength, "application/pdf", up.Body, map[string]string{
			"Content-Disposition":    services.ContentDisposition(dr.Filename),
			"Cache-Control":          cacheControl,
			"X-Content-Type-Options": "nosniff",
			"X-Robots-Tag":           "noindex, nofollow",
		})
	}
}
