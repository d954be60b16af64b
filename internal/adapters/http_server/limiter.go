package httpserver

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"gastropath/internal/adapters/observability"
)

// Limiter admits or rejects one request for a client key. The Redis-backed
// implementation lives in adapters/redis.
type Limiter interface {
	Allow(ctx context.Context, key string) bool
}

// MemoryLimiter keeps one token bucket per client key.
type MemoryLimiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	rps     rate.Limit
	burst   int
	idle    time.Duration
}

type bucket struct {
	lim  *rate.Limiter
	seen time.Time
}

func NewMemoryLimiter(rps, burst int) *MemoryLimiter {
	return &MemoryLimiter{
		buckets: make(map[string]*bucket),
		rps:     rate.Limit(rps),
		burst:   burst,
		idle:    10 * time.Minute,
	}
}

func (l *MemoryLimiter) Allow(_ context.Context, key string) bool {
	now := time.Now()
	l.mu.Lock()
	b, ok := l.buckets[key]
	if !ok {
		b = &bucket{lim: rate.NewLimiter(l.rps, l.burst)}
		l.buckets[key] = b
	}
	b.seen = now
	l.mu.Unlock()

	allowed := b.lim.AllowN(now, 1)
	observability.ObserveLimiter("memory", event(allowed))
	return allowed
}

// Sweep drops buckets idle for longer than the idle window.
func (l *MemoryLimiter) Sweep(now time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for k, b := range l.buckets {
		if now.Sub(b.seen) > l.idle {
			delete(l.buckets, k)
		}
	}
}

// Run sweeps periodically until ctx is done.
func (l *MemoryLimiter) Run(ctx context.Context) {
	t := time.NewTicker(time.Minute)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			l.Sweep(now)
		}
	}
}

func (l *MemoryLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}

func event(allowed bool) string {
	if allowed {
		return "allow"
	}
	return "reject"
}
