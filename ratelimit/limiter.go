// Package ratelimit implements a fixed-window request counter keyed by client
// identifier, with an in-process and a Redis backed store.
package ratelimit

import (
	"context"
	"math"
	"net/http"
	"strings"
	"time"
)

const (
	DefaultMaxRequests = 10
	DefaultWindow      = time.Minute
)

// Options configures one check. Window is the length of a fixed window.
type Options struct {
	MaxRequests int
	Window      time.Duration
}

// Result is the decision for one request. RetryAfter is the number of whole seconds
// until ResetTime, measured on the limiter's own clock.
type Result struct {
	Allowed    bool
	Limit      int
	Remaining  int
	ResetTime  time.Time
	RetryAfter int
}

// secondsUntilReset rounds the time left in the window up to whole seconds, never
// negative.
func (r Result) secondsUntilReset(now time.Time) int {
	d := r.ResetTime.Sub(now)
	if d <= 0 {
		return 0
	}
	return int(math.Ceil(d.Seconds()))
}

// ResetUnix is the reset time in epoch seconds, rounded up.
func (r Result) ResetUnix() int64 {
	ms := r.ResetTime.UnixMilli()
	return (ms + 999) / 1000
}

// Limiter decides whether the identifier may make another request in the current
// window.
type Limiter interface {
	Check(ctx context.Context, identifier string, opts Options) (Result, error)
}

func (o Options) normalized() Options {
	if o.MaxRequests <= 0 {
		o.MaxRequests = DefaultMaxRequests
	}
	if o.Window <= 0 {
		o.Window = DefaultWindow
	}
	return o
}

// ClientIP returns the first X-Forwarded-For entry, then X-Real-IP, else "unknown".
// Both headers are client controlled; run behind a proxy that overwrites them.
func ClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}
	if ip := strings.TrimSpace(r.Header.Get("X-Real-IP")); ip != "" {
		return ip
	}
	return "unknown"
}
