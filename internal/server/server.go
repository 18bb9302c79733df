package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/pemba-dev/traffic-filter/internal/appenv"
	"github.com/pemba-dev/traffic-filter/internal/logger"
	"github.com/pemba-dev/traffic-filter/internal/ratelimiter"
	"github.com/pemba-dev/traffic-filter/internal/ratelimiter/memlimiter"
	"github.com/pemba-dev/traffic-filter/internal/ratelimiter/redislimiter"
	"github.com/pemba-dev/traffic-filter/internal/redisdb"
	"github.com/rs/zerolog"
)

type Server struct {
	port int
	log  zerolog.Logger

	// admission limiter backing the /check endpoint, keyed by the
	// caller-supplied key
	limiter ratelimiter.Limiter

	// per client IP limiter mounted on the whole route tree
	ipLimiter ratelimiter.Limiter
}

func NewServer(ctx context.Context) *http.Server {
	log := logger.NewLogger(appenv.IsLocal())

	port := 8080
	if portStr := os.Getenv("PORT"); portStr != "" {
		p, err := strconv.Atoi(portStr)
		if err != nil {
			log.Fatal().Err(err).Msg("Can not convert the PORT env var to int")
			return nil
		}
		port = p
	}

	server := &Server{
		port:      port,
		log:       log,
		limiter:   newAdmissionLimiter(ctx, log),
		ipLimiter: newIpLimiter(ctx),
	}

	return &http.Server{
		Addr:         fmt.Sprintf(":%d", server.port),
		Handler:      server.RegisterRoutes(ctx),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
}

func newAdmissionLimiter(ctx context.Context, log zerolog.Logger) ratelimiter.Limiter {
	conf := admissionConfFromEnv(log)

	switch backend := os.Getenv("RATE_LIMITER_BACKEND"); backend {
	case "redis", "redis-sliding":
		rdb := redisdb.NewRedisClient(ctx, log)
		return redislimiter.NewSlidingWindowLimiter(ctx, rdb, conf)
	case "redis-fixed":
		rdb := redisdb.NewRedisClient(ctx, log)
		return redislimiter.NewFixedWindowLimiter(ctx, rdb, conf)
	case "", "memory":
		return memlimiter.NewSlidingWindowLimiter(ctx, conf)
	default:
		log.Fatal().Str("backend", backend).Msg("Unknown RATE_LIMITER_BACKEND value")
		return nil
	}
}

func newIpLimiter(ctx context.Context) ratelimiter.Limiter {
	return memlimiter.NewTokenBucketLimiter(ctx, ratelimiter.Config{
		Enabled:     true,
		MaxRequests: 600,
		Window:      time.Minute,
		KeyPrefix:   "global",
	})
}

func admissionConfFromEnv(log zerolog.Logger) ratelimiter.Config {
	conf := ratelimiter.Config{
		Enabled:   true,
		KeyPrefix: "admission",
	}

	if v := os.Getenv("RATE_LIMIT_MAX_REQUESTS"); v != "" {
		maxRequests, err := strconv.Atoi(v)
		if err != nil {
			log.Fatal().Err(err).Msg("Can not convert the RATE_LIMIT_MAX_REQUESTS env var to int")
		}
		conf.MaxRequests = maxRequests
	}

	if v := os.Getenv("RATE_LIMIT_WINDOW_MS"); v != "" {
		windowMs, err := strconv.Atoi(v)
		if err != nil {
			log.Fatal().Err(err).Msg("Can not convert the RATE_LIMIT_WINDOW_MS env var to int")
		}
		conf.Window = time.Duration(windowMs) * time.Millisecond
	}

	return conf.WithDefaults()
}
