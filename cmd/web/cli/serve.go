package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"batarikh-mirror/cmd/internal/logger"
	"batarikh-mirror/cmd/web/httpclient"
	"batarikh-mirror/cmd/web/router"
	"batarikh-mirror/cmd/web/views"
	"batarikh-mirror/config"
	"batarikh-mirror/db"
	"batarikh-mirror/metrics"
	"batarikh-mirror/ratelimit"
	"batarikh-mirror/repositories"
	"batarikh-mirror/services"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web server",
	Long: `Start the web server.

Routes:
  /               HTML feed (?type=&page=)
  /api/v1/posts   the same feed as JSON
  /download       rate limited PDF proxy for the media host
  /sitemap.xml, /robots.txt, /health, /metrics, /swagger/index.html`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger.Init(cfg.Logging.Level)
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}

	// stop() restores default signal handling so a second Ctrl+C kills the process.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.NewMetrics(reg)

	store, storeName, closeStore, err := openStore(ctx, cfg.Store, m)
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := closeStore(closeCtx); err != nil {
			logger.Log.Warnf("failed to close post store: %v", err)
		}
	}()

	limiter, closeLimiter, err := newLimiter(ctx, cfg.RateLimit, m)
	if err != nil {
		return err
	}
	defer closeLimiter()

	renderer, err := views.New(views.Site{
		Title:       cfg.Site.Title,
		Description: cfg.Site.Description,
		URL:         cfg.Site.URL,
		Channel:     cfg.Site.TelegramChannel,
		TelegramURL: cfg.TelegramURL(),
	})
	if err != nil {
		return fmt.Errorf("parse templates: %w", err)
	}

	engine := router.New(router.Deps{
		Config:    cfg,
		Feed:      services.NewFeedService(store, cfg.Feed),
		Download:  services.NewDownloadService(httpclient.NewStreaming(cfg.Download.ResponseHeaderTimeout), cfg.Site.MediaHost, cfg.Download),
		Sitemap:   services.NewSitemapService(cfg.Site.URL, cfg.Sitemap.MaxPages),
		Views:     renderer,
		Limiter:   limiter,
		Metrics:   m,
		Gatherer:  reg,
		StoreName: storeName,
	})

	srv := &http.Server{
		Addr:              cfg.Server.ListenAddr,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.InfoWithFields("http server listening", logger.Fields{
			"addr":      srv.Addr,
			"store":     storeName,
			"ratelimit": cfg.RateLimit.Backend,
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}
	stop()

	logger.Log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	return nil
}

// openStore returns a nil store when no credentials are configured; the feed is then
// served empty.
func openStore(ctx context.Context, cfg config.StoreConfig, m *metrics.Metrics) (repositories.PostStore, string, db.CloseFunc, error) {
	driver := cfg.Driver
	if driver == "" {
		driver = "supabase"
	}

	client := httpclient.New(httpclient.Config{Timeout: cfg.Timeout})
	store, closeStore, err := db.OpenPostStore(ctx, cfg, client)
	if errors.Is(err, repositories.ErrNotConfigured) {
		logger.WarnWithFields("post store is not configured, serving an empty feed", logger.Fields{"driver": driver})
		return nil, "", closeStore, nil
	}
	if err != nil {
		return nil, "", closeStore, fmt.Errorf("open %s store: %w", driver, err)
	}
	return metrics.NewInstrumentedStore(store, driver, m), driver, closeStore, nil
}

func newLimiter(ctx context.Context, cfg config.RateLimitConfig, m *metrics.Metrics) (ratelimit.Limiter, func(), error) {
	if cfg.Backend == "redis" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			_ = rdb.Close()
			return nil, nil, fmt.Errorf("connect redis %s: %w", cfg.Redis.Addr, err)
		}
		l := ratelimit.NewRedisLimiter(rdb, ratelimit.WithRedisPrefix(cfg.Redis.Prefix))
		return l, func() { _ = rdb.Close() }, nil
	}

	l := ratelimit.NewMemoryLimiter(
		ratelimit.WithCleanupInterval(cfg.CleanupInterval),
		ratelimit.WithSweepHook(func(removed, remaining int) {
			m.RateLimitKeys.Set(float64(remaining))
			if removed > 0 {
				logger.DebugWithFields("rate limit sweep", logger.Fields{"removed": removed, "remaining": remaining})
			}
		}),
	)
	l.StartJanitor(ctx)
	return l, l.Stop, nil
}
