package redislimiter

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pemba-dev/traffic-filter/internal/ratelimiter"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// NewSlidingWindowLimiter keeps each key's admission timestamps in a redis
// sorted set scored by arrival time in microseconds. Expired members are
// trimmed and the cardinality checked in one transaction, so concurrent
// instances share a single log per key.
func NewSlidingWindowLimiter(ctx context.Context, rdb *redis.Client, conf ratelimiter.Config) ratelimiter.Limiter {
	return &redisLimiter{
		conf:             conf.WithDefaults(),
		rdb:              rdb,
		limiterKeyPrefix: slidingWindowKeyPrefix,
		allow:            slidingWindowAllow,
	}
}

func slidingWindowAllow(ctx context.Context, key string, l *redisLimiter) (bool, time.Duration) {
	maxRequests := l.conf.MaxRequests
	window := l.conf.Window
	rdb := l.rdb
	log := zerolog.Ctx(ctx).With().Str("limiter_type", "redis_sliding_window").Str("key", key).Int("max_requests", maxRequests).Dur("window", window).Logger()

	currentTimeMicro := time.Now().UnixMicro()
	windowStartTimeMicro := currentTimeMicro - window.Microseconds()

	pip := rdb.TxPipeline()
	pip.ZRemRangeByScore(ctx, key, "0", fmt.Sprint(windowStartTimeMicro))
	pip.ZCard(ctx, key)
	pipRes, err := pip.Exec(ctx)
	if err != nil {
		log.Err(err).Msg("Can't rate limit, got an error from redis while exec the TxPipeline. Rejecting the request")
		return false, window
	}

	cardCmd, ok := pipRes[len(pipRes)-1].(*redis.IntCmd)
	if !ok {
		log.Error().Msg("Can't cast the pipeline result Cmder to IntCmd. Rejecting the request")
		return false, window
	}

	count, err := cardCmd.Result()
	if err != nil {
		log.Err(err).Msg("Can't rate limit, unable to read the ZCard result. Rejecting the request")
		return false, window
	}

	if count >= int64(maxRequests) {
		oldest, err := rdb.ZRangeArgsWithScores(ctx, redis.ZRangeArgs{
			Key:     key,
			Start:   "-inf",
			Stop:    "+inf",
			ByScore: true,
			Offset:  0,
			Count:   1,
		}).Result()
		if err != nil || len(oldest) == 0 {
			if err != nil {
				log.Err(err).Msg("Can't calc the remaining time, sending the full window")
			}
			return false, window
		}

		remainingMicro := int64(oldest[0].Score) - windowStartTimeMicro
		return false, time.Microsecond * time.Duration(remainingMicro)
	}

	pip = rdb.TxPipeline()
	pip.ZAdd(ctx, key, redis.Z{Score: float64(currentTimeMicro), Member: slidingWindowMember(currentTimeMicro)})
	pip.Expire(ctx, key, window)
	_, err = pip.Exec(ctx)
	if err != nil {
		log.Err(err).Msg("Can't rate limit, got an error from redis while recording the admission. Rejecting the request")
		return false, window
	}

	return true, 0
}

// slidingWindowMember builds the sorted-set member for one admission. The
// score alone carries the time; the member gets a random suffix so two
// admissions landing in the same microsecond stay two distinct members and
// the log keeps the true count.
func slidingWindowMember(micro int64) string {
	return fmt.Sprint(micro) + ":" + uuid.NewString()
}
