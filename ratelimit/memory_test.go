package ratelimit

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

var testOpts = Options{MaxRequests: 3, Window: time.Minute}

func TestMemoryLimiterFixedWindow(t *testing.T) {
	clock := newFakeClock()
	l := NewMemoryLimiter(WithClock(clock.Now))
	ctx := context.Background()
	start := clock.Now()

	for i := 1; i <= 3; i++ {
		res, err := l.Check(ctx, "1.2.3.4", testOpts)
		require.NoError(t, err)
		assert.True(t, res.Allowed, "request %d", i)
		assert.Equal(t, 3-i, res.Remaining)
		assert.Equal(t, start.Add(time.Minute), res.ResetTime)
		assert.Equal(t, 3, res.Limit)
	}

	res, err := l.Check(ctx, "1.2.3.4", testOpts)
	require.NoError(t, err)
	assert.False(t, res.Allowed)
	assert.Equal(t, 0, res.Remaining)
	assert.Equal(t, start.Add(time.Minute), res.ResetTime)
	assert.Equal(t, 60, res.RetryAfter)

	other, err := l.Check(ctx, "5.6.7.8", testOpts)
	require.NoError(t, err)
	assert.True(t, other.Allowed)
}

func TestMemoryLimiterRejectDoesNotExtendWindow(t *testing.T) {
	clock := newFakeClock()
	l := NewMemoryLimiter(WithClock(clock.Now))
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, _ = l.Check(ctx, "id", testOpts)
	}
	first, _ := l.Check(ctx, "id", testOpts)

	clock.Advance(30 * time.Second)
	second, _ := l.Check(ctx, "id", testOpts)
	assert.False(t, second.Allowed)
	assert.Equal(t, first.ResetTime, second.ResetTime)
}

func TestMemoryLimiterWindowReset(t *testing.T) {
	clock := newFakeClock()
	l := NewMemoryLimiter(WithClock(clock.Now))
	ctx := context.Background()

	for i := 0; i < 4; i++ {
		_, _ = l.Check(ctx, "id", testOpts)
	}

	// At exactly resetTime the window is still active.
	clock.Advance(time.Minute)
	res, _ := l.Check(ctx, "id", testOpts)
	assert.False(t, res.Allowed)

	clock.Advance(time.Millisecond)
	res, _ = l.Check(ctx, "id", testOpts)
	assert.True(t, res.Allowed)
	assert.Equal(t, 2, res.Remaining)
	assert.Equal(t, clock.Now().Add(time.Minute), res.ResetTime)
}

func TestMemoryLimiterDefaults(t *testing.T) {
	l := NewMemoryLimiter()
	res, err := l.Check(context.Background(), "id", Options{})
	require.NoError(t, err)
	assert.Equal(t, DefaultMaxRequests, res.Limit)
	assert.Equal(t, DefaultMaxRequests-1, res.Remaining)
}

func TestMemoryLimiterConcurrent(t *testing.T) {
	l := NewMemoryLimiter()
	opts := Options{MaxRequests: 10, Window: time.Minute}

	var allowed atomic.Int64
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := l.Check(context.Background(), "shared", opts)
			if err == nil && res.Allowed {
				allowed.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(10), allowed.Load())
}

func TestMemoryLimiterSweep(t *testing.T) {
	clock := newFakeClock()
	l := NewMemoryLimiter(WithClock(clock.Now))
	ctx := context.Background()

	_, _ = l.Check(ctx, "a", testOpts)
	clock.Advance(30 * time.Second)
	_, _ = l.Check(ctx, "b", testOpts)
	assert.Equal(t, 2, l.Size())

	clock.Advance(31 * time.Second)
	assert.Equal(t, 1, l.Sweep())
	assert.Equal(t, 1, l.Size())

	clock.Advance(time.Minute)
	assert.Equal(t, 1, l.Sweep())
	assert.Equal(t, 0, l.Size())
}

func TestMemoryLimiterJanitorStops(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	var removed atomic.Int64
	l := NewMemoryLimiter(
		WithCleanupInterval(10*time.Millisecond),
		WithSweepHook(func(n, _ int) { removed.Add(int64(n)) }),
	)
	ctx, cancel := context.WithCancel(context.Background())
	l.StartJanitor(ctx)

	for i := 0; i < 5; i++ {
		_, _ = l.Check(ctx, "id", Options{MaxRequests: 2, Window: 5 * time.Millisecond})
	}
	time.Sleep(50 * time.Millisecond)

	cancel()
	l.Stop()
	l.Stop()

	assert.Equal(t, 0, l.Size())
	assert.Equal(t, int64(1), removed.Load())
}
