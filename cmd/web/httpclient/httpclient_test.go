package httpclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"batarikh-mirror/cmd/web/trace"
)

func TestClientPropagatesTrace(t *testing.T) {
	var gotID, gotSpan string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID = r.Header.Get("X-Request-Id")
		gotSpan = r.Header.Get("X-Span-Id")
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	ctx := trace.WithRequestAndSpan(context.Background(), "req-42", 0)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/rest/v1/posts", nil)
	require.NoError(t, err)

	resp, err := NewDefault().Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "req-42", gotID)
	assert.Equal(t, "1", gotSpan)
	assert.Empty(t, req.Header.Get("X-Request-Id"), "caller's request is not mutated")
}

func TestNewTimeouts(t *testing.T) {
	assert.Equal(t, DefaultTimeout, New(Config{}).Timeout)
	assert.Equal(t, 3*time.Second, New(Config{Timeout: 3 * time.Second}).Timeout)

	c := NewStreaming(30 * time.Second)
	assert.Zero(t, c.Timeout)
	tt, ok := c.Transport.(*tracingTransport)
	require.True(t, ok)
	assert.Equal(t, 30*time.Second, tt.next.(*http.Transport).ResponseHeaderTimeout)
}

func TestClientTransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewDefault().Get(url)
	assert.Error(t, err)
}
