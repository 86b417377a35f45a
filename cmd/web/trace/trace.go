// Package trace carries the request id and span counter of an inbound request through
// its context and onto outbound calls.
package trace

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/google/uuid"
)

const (
	HeaderRequestID = "X-Request-Id"
	HeaderSpanID    = "X-Span-Id"

	maxIncomingIDLen = 128
)

type ctxKey struct{}

// Span numbers the hops of one request: 0 is the inbound request, each outbound call
// takes the next number.
type Span struct {
	RequestID string
	seq       atomic.Int64
}

func GenerateID() string {
	return uuid.NewString()
}

// IncomingID returns the caller's X-Request-Id when it is usable, otherwise a new id.
func IncomingID(h http.Header) string {
	id := strings.TrimSpace(h.Get(HeaderRequestID))
	if id == "" || len(id) > maxIncomingIDLen {
		return GenerateID()
	}
	return id
}

// WithRequestAndSpan stores the request id and the initial span (usually 0) in ctx.
func WithRequestAndSpan(ctx context.Context, requestID string, initialSpan int64) context.Context {
	s := &Span{RequestID: requestID}
	s.seq.Store(initialSpan)
	return context.WithValue(ctx, ctxKey{}, s)
}

func spanFrom(ctx context.Context) *Span {
	if ctx == nil {
		return nil
	}
	s, _ := ctx.Value(ctxKey{}).(*Span)
	return s
}

func RequestIDFromContext(ctx context.Context) string {
	if s := spanFrom(ctx); s != nil {
		return s.RequestID
	}
	return ""
}

// CurrentSpanID returns the current span without advancing it.
func CurrentSpanID(ctx context.Context) string {
	s := spanFrom(ctx)
	if s == nil {
		return "0"
	}
	return strconv.FormatInt(max(s.seq.Load(), 0), 10)
}

// NextSpanID advances the span of the request and returns (requestID, spanID).
// Outside a traced request it returns a fresh id with span "1".
func NextSpanID(ctx context.Context) (string, string) {
	s := spanFrom(ctx)
	if s == nil {
		return GenerateID(), "1"
	}
	return s.RequestID, strconv.FormatInt(max(s.seq.Add(1), 1), 10)
}

// Inject advances the span and writes both ids into the headers of an outbound call.
func Inject(ctx context.Context, h http.Header) (requestID, spanID string) {
	requestID, spanID = NextSpanID(ctx)
	h.Set(HeaderRequestID, requestID)
	h.Set(HeaderSpanID, spanID)
	return requestID, spanID
}

// Fields returns the request_id/span_id pair for structured log lines.
func Fields(ctx context.Context) map[string]any {
	return map[string]any{
		"request_id": RequestIDFromContext(ctx),
		"span_id":    CurrentSpanID(ctx),
	}
}
