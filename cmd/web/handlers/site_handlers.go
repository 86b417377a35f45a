package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"batarikh-mirror/cmd/internal/logger"
	"batarikh-mirror/dto"
	"batarikh-mirror/services"
)

func SitemapHandler(svc *services.SitemapService) gin.HandlerFunc {
	return func(c *gin.Context) {
		body, err := svc.XML()
		if err != nil {
			logger.Log.Errorf("failed to encode sitemap: %v", err)
			c.String(http.StatusInternalServerError, "sitemap unavailable")
			return
		}
		c.Header("Cache-Control", "public, max-age=3600")
		c.Data(http.StatusOK, "application/xml; charset=utf-8", body)
	}
}

func RobotsHandler(svc *services.SitemapService) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Cache-Control", "public, max-age=3600")
		c.String(http.StatusOK, svc.RobotsTxt())
	}
}

// HealthHandler godoc
// @Summary      Health check
// @Description  Reports the process as up together with the configured store driver ("none" when unset)
// @Tags         health
// @Produce      json
// @Success      200  {object}  dto.HealthResponseDTO
// @Router       /health [get]
func HealthHandler(store string) gin.HandlerFunc {
	if store == "" {
		store = "none"
	}
	return func(c *gin.Context) {
		c.Header("Cache-Control", "no-store")
		c.JSON(http.StatusOK, dto.HealthResponseDTO{Status: "ok", Store: store})
	}
}
