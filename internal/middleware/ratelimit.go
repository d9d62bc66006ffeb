package middleware

import (
	"context"
	"math"
	"strconv"
	"sync"
	"time"

	"buddylist/backend/pkg/response"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

const (
	sweepEvery = 5 * time.Minute
	idleAfter  = 10 * time.Minute
)

// KeyFunc picks the bucket a request is counted against.
type KeyFunc func(c *gin.Context) string

// ClientIP counts requests per client address.
func ClientIP(c *gin.Context) string { return c.ClientIP() }

type bucket struct {
	tokens *rate.Limiter
	seen   time.Time
}

// Limiter holds one token bucket per key.
type Limiter struct {
	limit rate.Limit
	burst int

	mu      sync.Mutex
	buckets map[string]*bucket
}

// NewLimiter allows limit requests per second per key, with bursts of up
// to burst requests.
func NewLimiter(limit rate.Limit, burst int) *Limiter {
	return &Limiter{limit: limit, burst: burst, buckets: make(map[string]*bucket)}
}

// wait reports how long key must wait before its next request. Zero means
// the request may proceed and has been counted.
func (l *Limiter) wait(key string, now time.Time) time.Duration {
	l.mu.Lock()
	b, ok := l.buckets[key]
	if !ok {
		b = &bucket{tokens: rate.NewLimiter(l.limit, l.burst)}
		l.buckets[key] = b
	}
	b.seen = now
	l.mu.Unlock()

	res := b.tokens.ReserveN(now, 1)
	if !res.OK() {
		return time.Duration(math.MaxInt64)
	}
	delay := res.DelayFrom(now)
	if delay > 0 {
		res.CancelAt(now)
	}
	return delay
}

// forget drops buckets not used since cutoff.
func (l *Limiter) forget(cutoff time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for key, b := range l.buckets {
		if b.seen.Before(cutoff) {
			delete(l.buckets, key)
		}
	}
}

// Run drops idle buckets until ctx is cancelled.
func (l *Limiter) Run(ctx context.Context) {
	ticker := time.NewTicker(sweepEvery)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			l.forget(now.Add(-idleAfter))
		}
	}
}

// Middleware rejects requests over the limit with 429 and a Retry-After
// header in whole seconds.
func (l *Limiter) Middleware(key KeyFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		if delay := l.wait(key(c), time.Now()); delay > 0 {
			secs := int64(math.Ceil(delay.Seconds()))
			if delay == time.Duration(math.MaxInt64) {
				secs = int64(idleAfter.Seconds())
			}
			c.Header("Retry-After", strconv.FormatInt(secs, 10))
			response.TooManyRequests(c, "too many requests, slow down")
			return
		}
		c.Next()
	}
}

// RateLimit limits each client address to r requests per second with
// bursts of b. Idle buckets are dropped until ctx is cancelled.
func RateLimit(ctx context.Context, r rate.Limit, b int) gin.HandlerFunc {
	l := NewLimiter(r, b)
	go l.Run(ctx)
	return l.Middleware(ClientIP)
}
