package handlers

import (
	"bytes"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"batarikh-mirror/cmd/internal/logger"
	"batarikh-mirror/cmd/web/trace"
	"batarikh-mirror/cmd/web/views"
	"batarikh-mirror/pagination"
	"batarikh-mirror/services"
)

func cacheControl(revalidate time.Duration) string {
	return "public, max-age=" + strconv.Itoa(int(revalidate/time.Second))
}

func logStoreError(c *gin.Context, req pagination.PageRequest, err error) {
	fields := logger.Fields(trace.Fields(c.Request.Context()))
	fields["type"] = req.Type.String()
	fields["page"] = req.Page
	fields["error"] = err.Error()
	logger.ErrorWithFields("failed to load feed page", fields)
}

// FeedPageHandler renders the HTML feed for ?type=&page=.
func FeedPageHandler(svc *services.FeedService, r *views.Renderer, revalidate time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		req := pagination.ParseRequest(c.Query("type"), c.Query("page"))

		fp, err := svc.Page(c.Request.Context(), req)
		if err != nil {
			logStoreError(c, req, err)
		}

		var buf bytes.Buffer
		if err := r.Feed(&buf, fp); err != nil {
			// the recovery middleware renders the error page
			panic(err)
		}

		c.Header("Cache-Control", cacheControl(revalidate))
		c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
	}
}

// ListPostsHandler godoc
// @Summary      List posts
// @Description  One feed page, newest first, optionally filtered by media type. Store failures still return 200 with empty data and an error message.
// @Tags         posts
// @Param        type  query  string  false  "Media type"  Enums(image, video, audio, document, none)
// @Param        page  query  int     false  "Page number (1-based)"
// @Produce      json
// @Success      200  {object}  dto.PaginationPostDTO
// @Router       /api/v1/posts [get]
func ListPostsHandler(svc *services.FeedService, revalidate time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		req := pagination.ParseRequest(c.Query("type"), c.Query("page"))

		fp, err := svc.Page(c.Request.Context(), req)
		if err != nil {
			logStoreError(c, req, err)
		}

		c.Header("Cache-Control", cacheControl(revalidate))
		c.JSON(http.StatusOK, fp.DTO())
	}
}
