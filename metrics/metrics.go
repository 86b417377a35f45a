// Package metrics holds the Prometheus collectors of the mirror.
package metrics

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"batarikh-mirror/models"
	"batarikh-mirror/repositories"
)

const namespace = "batarikh"

// Metrics holds all collectors. Pass to components that record metrics.
type Metrics struct {
	RequestsTotal      *prometheus.CounterVec
	RequestDuration    *prometheus.HistogramVec
	DownloadsTotal     *prometheus.CounterVec
	RateLimitDecisions *prometheus.CounterVec
	RateLimitKeys      prometheus.Gauge
	StoreQueryDuration *prometheus.HistogramVec
}

// NewMetrics creates and registers all metrics with the given registry.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		RequestsTotal: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests served",
			},
			[]string{"route", "status"},
		),
		RequestDuration: promauto.With(reg).NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"route"},
		),
		DownloadsTotal: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "downloads_total",
				Help:      "Download proxy outcomes",
			},
			[]string{"outcome"}, // ok, bad_request, forbidden, upstream_error
		),
		RateLimitDecisions: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "rate_limit_decisions_total",
				Help:      "Rate limiter decisions",
			},
			[]string{"result"}, // allow, deny, error
		),
		RateLimitKeys: promauto.With(reg).NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "rate_limit_keys",
				Help:      "Number of tracked identifiers in the in-process limiter",
			},
		),
		StoreQueryDuration: promauto.With(reg).NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "store_query_duration_seconds",
				Help:      "Post store query duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"driver", "result"},
		),
	}
}

// InstrumentedStore records the duration of every List call.
type InstrumentedStore struct {
	inner  repositories.PostStore
	driver string
	m      *Metrics
}

func NewInstrumentedStore(inner repositories.PostStore, driver string, m *Metrics) *InstrumentedStore {
	return &InstrumentedStore{inner: inner, driver: driver, m: m}
}

func (s *InstrumentedStore) List(ctx context.Context, opt repositories.ListPostsOptions) ([]models.Post, int64, error) {
	start := time.Now()
	posts, total, err := s.inner.List(ctx, opt)

	result := "ok"
	if err != nil {
		result = "error"
	}
	s.m.StoreQueryDuration.WithLabelValues(s.driver, result).Observe(time.Since(start).Seconds())
	return posts, total, err
}

var _ repositories.PostStore = (*InstrumentedStore)(nil)
