package redisad

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"gastropath/internal/adapters/observability"
)

// Limiter counts requests per client in fixed one-second windows shared
// by every instance pointing at the same Redis. It admits rps+burst requests
// per window and fails open when Redis is unreachable.
type Limiter struct {
	c     *redis.Client
	limit int64
	now   func() time.Time
}

func Dial(addr, pass string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{Addr: addr, Password: pass, DB: db})
}

func New(c *redis.Client, rps, burst int) *Limiter {
	return &Limiter{c: c, limit: int64(rps + burst), now: time.Now}
}

// WithClock overrides the window clock.
func (l *Limiter) WithClock(now func() time.Time) *Limiter {
	l.now = now
	return l
}

func (l *Limiter) Allow(ctx context.Context, key string) bool {
	k := fmt.Sprintf("ratelimit:%s:%d", key, l.now().Unix())

	pipe := l.c.TxPipeline()
	incr := pipe.Incr(ctx, k)
	pipe.Expire(ctx, k, 2*time.Second)
	if _, err := pipe.Exec(ctx); err != nil {
		log.Warn().Err(err).Msg("redis rate limiter unavailable, admitting request")
		observability.ObserveLimiter("redis", "error")
		return true
	}

	if incr.Val() > l.limit {
		observability.ObserveLimiter("redis", "reject")
		return false
	}
	observability.ObserveLimiter("redis", "allow")
	return true
}
