// Package redislimiter holds redis backed limiters for deployments that
// run more than one instance behind a load balancer. The in-memory
// limiters are the reference single-process mechanism; these trade the
// per-call mutex for redis round trips and atomic pipelines.
package redislimiter

import (
	"context"
	"time"

	"github.com/pemba-dev/traffic-filter/internal/ratelimiter"
	"github.com/redis/go-redis/v9"
)

const (
	slidingWindowKeyPrefix = "rl:sw:"
	fixedWindowKeyPrefix   = "rl:fw:"
)

type redisLimiter struct {
	conf             ratelimiter.Config
	rdb              *redis.Client
	limiterKeyPrefix string
	allow            func(ctx context.Context, key string, l *redisLimiter) (bool, time.Duration)
}

func (l *redisLimiter) Config() ratelimiter.Config {
	return l.conf
}

func (l *redisLimiter) Allow(ctx context.Context, key string) (bool, time.Duration) {
	if !l.conf.Enabled {
		return true, 0
	}
	return l.allow(ctx, l.limiterKeyPrefix+l.conf.KeyPrefix+":"+key, l)
}
