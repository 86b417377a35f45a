package httpclient

import (
	"net/http"
	"time"

	"batarikh-mirror/cmd/internal/logger"
	"batarikh-mirror/cmd/web/trace"
)

const DefaultTimeout = 10 * time.Second

// Config holds the settings shared by outbound HTTP clients.
// A negative Timeout disables the overall deadline, for long streaming bodies; then
// ResponseHeaderTimeout still bounds the wait for the upstream to answer.
type Config struct {
	Timeout               time.Duration
	ResponseHeaderTimeout time.Duration
}

// tracingTransport stamps the request's trace ids on every outbound call and logs it.
type tracingTransport struct {
	next http.RoundTripper
}

func (t *tracingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	out := req.Clone(req.Context())
	requestID, spanID := trace.Inject(req.Context(), out.Header)

	start := time.Now()
	resp, err := t.next.RoundTrip(out)

	entry := logger.Fields{
		"request_id":  requestID,
		"span_id":     spanID,
		"method":      out.Method,
		"upstream":    out.URL.Host,
		"path":        out.URL.Path,
		"duration_ms": time.Since(start).Milliseconds(),
	}
	if err != nil {
		entry["error"] = err.Error()
		logger.ErrorWithFields("upstream call failed", entry)
		return nil, err
	}
	entry["status"] = resp.StatusCode
	entry["content_length"] = resp.ContentLength
	logger.DebugWithFields("upstream call", entry)
	return resp, nil
}

// New builds an http.Client with the logging transport.
// A zero Timeout means DefaultTimeout.
func New(cfg Config) *http.Client {
	timeout := cfg.Timeout
	switch {
	case timeout == 0:
		timeout = DefaultTimeout
	case timeout < 0:
		timeout = 0
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	if cfg.ResponseHeaderTimeout > 0 {
		transport.ResponseHeaderTimeout = cfg.ResponseHeaderTimeout
	}
	return &http.Client{
		Timeout:   timeout,
		Transport: &tracingTransport{next: transport},
	}
}

// NewDefault uses the shared defaults (10s timeout).
func NewDefault() *http.Client {
	return New(Config{})
}

// NewStreaming builds a client without an overall deadline for proxying large bodies.
func NewStreaming(responseHeaderTimeout time.Duration) *http.Client {
	return New(Config{Timeout: -1, ResponseHeaderTimeout: responseHeaderTimeout})
}
