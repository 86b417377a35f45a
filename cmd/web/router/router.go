package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"batarikh-mirror/cmd/web/handlers"
	"batarikh-mirror/cmd/web/middleware"
	"batarikh-mirror/cmd/web/views"
	"batarikh-mirror/config"
	_ "batarikh-mirror/docs"
	"batarikh-mirror/metrics"
	"batarikh-mirror/ratelimit"
	"batarikh-mirror/services"
)

const slowRequest = 2 * time.Second

// Deps are the constructed services the routes are served from.
type Deps struct {
	Config   config.AppConfig
	Feed     *services.FeedService
	Download *services.DownloadService
	Sitemap  *services.SitemapService
	Views    *views.Renderer
	Limiter  ratelimit.Limiter
	Metrics  *metrics.Metrics
	Gatherer prometheus.Gatherer
	// StoreName is reported by /health; empty when no store is configured.
	StoreName string
}

func New(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(
		middleware.RequestTrace(),
		middleware.RequestMetrics(d.Metrics, slowRequest),
		middleware.Recovery(d.Views),
	)

	cfg := d.Config
	r.GET("/", handlers.FeedPageHandler(d.Feed, d.Views, cfg.Feed.Revalidate))

	limit := ratelimit.Options{MaxRequests: cfg.RateLimit.MaxRequests, Window: cfg.RateLimit.Window}
	r.GET("/download",
		middleware.RateLimit(d.Limiter, limit, d.Metrics),
		handlers.DownloadHandler(d.Download, cfg.Download.CacheMaxAge, d.Metrics),
	)

	r.GET("/sitemap.xml", handlers.SitemapHandler(d.Sitemap))
	r.GET("/robots.txt", handlers.RobotsHandler(d.Sitemap))
	r.GET("/health", handlers.HealthHandler(d.StoreName))
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{})))

	// Swagger
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// v1 routes
	api := r.Group("/api/v1", middleware.CORS(cfg.Server.CORSOrigins))
	{
		api.GET("/posts", handlers.ListPostsHandler(d.Feed, cfg.Feed.Revalidate))
		// matched so the group CORS middleware sees preflight requests
		api.OPTIONS("/posts", func(c *gin.Context) {})
	}

	return r
}
