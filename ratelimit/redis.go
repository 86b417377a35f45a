package ratelimit

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const DefaultRedisPrefix = "ratelimit:download"

// fixedWindowScript rejects without touching the key when the counter is at the limit;
// otherwise it increments and starts the window expiry on the first hit.
// Returns {count, pttl_ms, allowed}.
var fixedWindowScript = redis.NewScript(`
local current = tonumber(redis.call('GET', KEYS[1]) or '0')
local max = tonumber(ARGV[1])
local window = tonumber(ARGV[2])

if current >= max then
  local ttl = redis.call('PTTL', KEYS[1])
  if ttl < 0 then ttl = window end
  return {current, ttl, 0}
end

current = redis.call('INCR', KEYS[1])
local ttl = redis.call('PTTL', KEYS[1])
if current == 1 or ttl < 0 then
  redis.call('PEXPIRE', KEYS[1], window)
  ttl = window
end
return {current, ttl, 1}
`)

// RedisLimiter shares counters between instances. The key value is the count and its
// PTTL is the time left in the window, so expired windows disappear on their own.
type RedisLimiter struct {
	rdb    redis.Scripter
	prefix string
	now    func() time.Time
}

type RedisOption func(*RedisLimiter)

func WithRedisPrefix(prefix string) RedisOption {
	return func(l *RedisLimiter) {
		if p := strings.Trim(prefix, ":"); p != "" {
			l.prefix = p
		}
	}
}

func WithRedisClock(now func() time.Time) RedisOption {
	return func(l *RedisLimiter) { l.now = now }
}

func NewRedisLimiter(rdb redis.Scripter, opts ...RedisOption) *RedisLimiter {
	l := &RedisLimiter{
		rdb:    rdb,
		prefix: DefaultRedisPrefix,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *RedisLimiter) key(identifier string) string {
	return l.prefix + ":" + identifier
}

func (l *RedisLimiter) Check(ctx context.Context, identifier string, opts Options) (Result, error) {
	opts = opts.normalized()

	vals, err := fixedWindowScript.Run(ctx, l.rdb,
		[]string{l.key(identifier)},
		opts.MaxRequests, opts.Window.Milliseconds(),
	).Int64Slice()
	if err != nil {
		return Result{}, fmt.Errorf("rate limit script: %w", err)
	}
	if len(vals) != 3 {
		return Result{}, fmt.Errorf("rate limit script: unexpected reply length %d", len(vals))
	}

	count, pttl, allowed := int(vals[0]), vals[1], vals[2] == 1
	now := l.now()
	res := Result{
		Allowed:   allowed,
		Limit:     opts.MaxRequests,
		ResetTime: now.Add(time.Duration(pttl) * time.Millisecond),
	}
	if allowed {
		res.Remaining = max(0, opts.MaxRequests-count)
	}
	res.RetryAfter = res.secondsUntilReset(now)
	return res, nil
}

var _ Limiter = (*RedisLimiter)(nil)
