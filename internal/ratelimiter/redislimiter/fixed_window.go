package redislimiter

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/pemba-dev/traffic-filter/internal/ratelimiter"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// NewFixedWindowLimiter counts admissions in clock-aligned buckets keyed by
// window number. Cheaper than the sliding window but a burst that straddles
// a bucket boundary can briefly see up to twice the quota.
func NewFixedWindowLimiter(ctx context.Context, rdb *redis.Client, conf ratelimiter.Config) ratelimiter.Limiter {
	return &redisLimiter{
		conf:             conf.WithDefaults(),
		rdb:              rdb,
		limiterKeyPrefix: fixedWindowKeyPrefix,
		allow:            fixedWindowAllow,
	}
}

func fixedWindowAllow(ctx context.Context, key string, l *redisLimiter) (bool, time.Duration) {
	maxRequests := l.conf.MaxRequests
	window := l.conf.Window
	rdb := l.rdb
	log := zerolog.Ctx(ctx).With().Str("limiter_type", "redis_fixed_window").Str("key", key).Int("max_requests", maxRequests).Dur("window", window).Logger()

	bucketKey := key + ":" + strconv.FormatInt(time.Now().UnixMilli()/window.Milliseconds(), 10)

	count, err := rdb.Get(ctx, bucketKey).Int()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Err(err).Msg("Can't rate limit, got an error from redis. Rejecting the request")
			return false, window
		}

		// first request in this bucket
		count = 0
		err = rdb.Set(ctx, bucketKey, count, window).Err()
		if err != nil {
			log.Err(err).Msg("Can't rate limit, got an error from redis while creating the bucket. Rejecting the request")
			return false, window
		}
	}

	if count >= maxRequests {
		remainingTime, err := rdb.TTL(ctx, bucketKey).Result()
		if err != nil {
			log.Err(err).Msg("Can't get the TTL for the bucket, sending the full window")
			remainingTime = window
		}
		return false, remainingTime
	}

	err = rdb.Incr(ctx, bucketKey).Err()
	if err != nil {
		log.Err(err).Msg("Can't rate limit, got an error from redis while incr the bucket. Rejecting the request")
		return false, window
	}

	return true, 0
}
