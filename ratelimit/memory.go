package ratelimit

import (
	"context"
	"sync"
	"time"
)

const DefaultCleanupInterval = 5 * time.Minute

type entry struct {
	count     int
	resetTime time.Time
}

// MemoryLimiter keeps counters in process memory. Each instance has its own map, so
// with N replicas the effective limit is N times the configured one.
type MemoryLimiter struct {
	mu      sync.Mutex
	entries map[string]*entry
	now     func() time.Time

	cleanupInterval time.Duration
	onSweep         func(removed, remaining int)
	stopCh          chan struct{}
	once            sync.Once
	wg              sync.WaitGroup
}

type MemoryOption func(*MemoryLimiter)

// WithClock replaces time.Now, used by tests.
func WithClock(now func() time.Time) MemoryOption {
	return func(l *MemoryLimiter) { l.now = now }
}

func WithCleanupInterval(d time.Duration) MemoryOption {
	return func(l *MemoryLimiter) {
		if d > 0 {
			l.cleanupInterval = d
		}
	}
}

// WithSweepHook is called after every janitor sweep.
func WithSweepHook(fn func(removed, remaining int)) MemoryOption {
	return func(l *MemoryLimiter) { l.onSweep = fn }
}

func NewMemoryLimiter(opts ...MemoryOption) *MemoryLimiter {
	l := &MemoryLimiter{
		entries:         make(map[string]*entry),
		now:             time.Now,
		cleanupInterval: DefaultCleanupInterval,
		stopCh:          make(chan struct{}),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *MemoryLimiter) Check(_ context.Context, identifier string, opts Options) (Result, error) {
	opts = opts.normalized()

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	e, ok := l.entries[identifier]
	if !ok || e.resetTime.Before(now) {
		e = &entry{resetTime: now.Add(opts.Window)}
		l.entries[identifier] = e
	}

	res := Result{Limit: opts.MaxRequests, ResetTime: e.resetTime}
	if e.count < opts.MaxRequests {
		e.count++
		res.Allowed = true
		res.Remaining = opts.MaxRequests - e.count
	}
	res.RetryAfter = res.secondsUntilReset(now)
	return res, nil
}

// Sweep deletes entries whose window has elapsed and returns how many were removed.
func (l *MemoryLimiter) Sweep() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	removed := 0
	for id, e := range l.entries {
		if e.resetTime.Before(now) {
			delete(l.entries, id)
			removed++
		}
	}
	return removed
}

// StartJanitor runs Sweep every cleanup interval until ctx is cancelled or Stop is
// called.
func (l *MemoryLimiter) StartJanitor(ctx context.Context) {
	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		ticker := time.NewTicker(l.cleanupInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-l.stopCh:
				return
			case <-ticker.C:
				n := l.Sweep()
				if l.onSweep != nil {
					l.onSweep(n, l.Size())
				}
			}
		}
	}()
}

// Stop ends the janitor and waits for it. Safe to call more than once.
func (l *MemoryLimiter) Stop() {
	l.once.Do(func() { close(l.stopCh) })
	l.wg.Wait()
}

// Size returns the number of tracked identifiers.
func (l *MemoryLimiter) Size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

var _ Limiter = (*MemoryLimiter)(nil)
