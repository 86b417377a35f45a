package ratelimit

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClientIP(t *testing.T) {
	cases := []struct {
		name    string
		headers map[string]string
		want    string
	}{
		{"forwarded first entry", map[string]string{"X-Forwarded-For": " 10.0.0.1 , 10.0.0.2", "X-Real-IP": "10.0.0.9"}, "10.0.0.1"},
		{"forwarded single", map[string]string{"X-Forwarded-For": "203.0.113.5"}, "203.0.113.5"},
		{"empty forwarded falls back", map[string]string{"X-Forwarded-For": " ,10.0.0.2", "X-Real-IP": " 10.0.0.9 "}, "10.0.0.9"},
		{"real ip", map[string]string{"X-Real-IP": "10.0.0.9"}, "10.0.0.9"},
		{"nothing", nil, "unknown"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/download", nil)
			for k, v := range tc.headers {
				r.Header.Set(k, v)
			}
			assert.Equal(t, tc.want, ClientIP(r))
		})
	}
}

func TestResultTiming(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	res := Result{ResetTime: now.Add(1500 * time.Millisecond)}

	assert.Equal(t, 2, res.secondsUntilReset(now))
	assert.Equal(t, int64(1_700_000_002), res.ResetUnix())
	assert.Equal(t, 0, res.secondsUntilReset(now.Add(time.Hour)))

	exact := Result{ResetTime: now.Add(60 * time.Second)}
	assert.Equal(t, 60, exact.secondsUntilReset(now))
	assert.Equal(t, int64(1_700_000_060), exact.ResetUnix())
}
