// Package services contains the rate limiting, rendering, and email dispatch
// components behind the form-submission endpoints.
package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/bakedbyann/bakery-backend/logger"
	"github.com/redis/go-redis/v9"
)

// Limiter gates inbound form submissions per client identifier. Allow
// reports whether the request may proceed and, when it may not, how long
// the client should wait before retrying. Implementations never fail a
// request outright: backend trouble resolves to allow.
type Limiter interface {
	Allow(ctx context.Context, identifier string) (allowed bool, retryAfter time.Duration)
}

// MemoryLimiter is an in-process sliding-window limiter. Each identifier
// keeps the timestamps of its accepted requests within the trailing window;
// entries are pruned on every check. Identifiers themselves are never
// evicted; deployments that need bounded memory or shared state should use
// the Redis-backed limiter instead.
type MemoryLimiter struct {
	mu     sync.Mutex
	max    int
	window time.Duration
	seen   map[string][]time.Time
	now    func() time.Time
}

// NewMemoryLimiter creates a limiter allowing max requests per identifier
// within the trailing window.
func NewMemoryLimiter(max int, window time.Duration) *MemoryLimiter {
	return NewMemoryLimiterWithClock(max, window, time.Now)
}

// NewMemoryLimiterWithClock is NewMemoryLimiter with an injectable clock,
// so tests can advance time without sleeping.
func NewMemoryLimiterWithClock(max int, window time.Duration, now func() time.Time) *MemoryLimiter {
	return &MemoryLimiter{
		max:    max,
		window: window,
		seen:   make(map[string][]time.Time),
		now:    now,
	}
}

// Allow checks and records a request from identifier. An identifier with no
// recorded history is always allowed.
func (l *MemoryLimiter) Allow(_ context.Context, identifier string) (bool, time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	cutoff := now.Add(-l.window)

	recent := l.seen[identifier][:0]
	for _, ts := range l.seen[identifier] {
		if ts.After(cutoff) {
			recent = append(recent, ts)
		}
	}

	if len(recent) >= l.max {
		l.seen[identifier] = recent
		retryAfter := l.window - now.Sub(recent[0])
		if retryAfter < 0 {
			retryAfter = 0
		}
		return false, retryAfter
	}

	l.seen[identifier] = append(recent, now)
	return true, 0
}

// RedisLimiter is a fixed-window limiter backed by a shared Redis store,
// for deployments where submissions arrive through more than one process.
// It uses the INCR+EXPIRE pipeline pattern; when Redis is unreachable the
// request is allowed so the forms stay available.
type RedisLimiter struct {
	client *redis.Client
	max    int
	window time.Duration
}

// NewRedisLimiter creates a Redis-backed limiter allowing max requests per
// identifier within each window.
func NewRedisLimiter(client *redis.Client, max int, window time.Duration) *RedisLimiter {
	return &RedisLimiter{client: client, max: max, window: window}
}

func (l *RedisLimiter) key(identifier string) string {
	return fmt.Sprintf("ratelimit:forms:%s", identifier)
}

// Allow increments the identifier's window counter and checks it against
// the limit.
func (l *RedisLimiter) Allow(ctx context.Context, identifier string) (bool, time.Duration) {
	log := logger.GetLogger()
	key := l.key(identifier)

	pipe := l.client.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, l.window)

	if _, err := pipe.Exec(ctx); err != nil {
		// Don't block submissions on Redis failures.
		log.Warnw("Rate limit check failed, allowing request",
			"error", err,
			"identifier", identifier)
		return true, 0
	}

	if incr.Val() > int64(l.max) {
		retryAfter := l.window
		if ttl, err := l.client.TTL(ctx, key).Result(); err == nil && ttl > 0 {
			retryAfter = ttl
		}
		return false, retryAfter
	}

	return true, 0
}
