package memlimiter

import (
	"context"
	"time"

	"github.com/pemba-dev/traffic-filter/internal/ratelimiter"
)

type memLimiter struct {
	conf  ratelimiter.Config
	allow func(ctx context.Context, key string) (bool, time.Duration)
}

func (l *memLimiter) Config() ratelimiter.Config {
	return l.conf
}

func (l *memLimiter) Allow(ctx context.Context, key string) (bool, time.Duration) {
	if l.conf.Enabled {
		return l.allow(ctx, l.conf.KeyPrefix+":"+key)
	}
	return true, 0
}
