package memlimiter

import (
	"context"
	"sync"
	"time"

	"github.com/pemba-dev/traffic-filter/internal/ratelimiter"
	"golang.org/x/time/rate"
)

// NewTokenBucketLimiter returns an in-memory token-bucket limiter with a
// burst of MaxRequests refilled evenly over the window. Smoother than the
// sliding-window log but only approximates the per-window quota.
func NewTokenBucketLimiter(ctx context.Context, conf ratelimiter.Config) ratelimiter.Limiter {
	conf = conf.WithDefaults()
	tb := &tokenBucket{
		conf:    conf,
		clients: map[string]*client{},
	}
	tb.startVacuumProc(ctx)

	return &memLimiter{
		conf: conf,
		allow: func(ctx context.Context, key string) (bool, time.Duration) {
			return tb.allow(key)
		},
	}
}

type tokenBucket struct {
	conf    ratelimiter.Config
	clients map[string]*client
	mu      sync.Mutex
}

type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func (tb *tokenBucket) allow(key string) (bool, time.Duration) {
	refillEvery := tb.conf.Window / time.Duration(tb.conf.MaxRequests)

	tb.mu.Lock()
	c, ok := tb.clients[key]
	if !ok {
		c = &client{
			limiter: rate.NewLimiter(
				rate.Every(refillEvery),
				tb.conf.MaxRequests,
			),
		}
		tb.clients[key] = c
	}
	c.lastSeen = time.Now()
	isAllowed := c.limiter.Allow()
	tb.mu.Unlock()

	if isAllowed {
		return true, 0
	}
	return false, refillEvery
}

func (tb *tokenBucket) startVacuumProc(ctx context.Context) {
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-time.After(tb.conf.Window):
			}

			tb.mu.Lock()
			for k, c := range tb.clients {
				if time.Since(c.lastSeen) >= tb.conf.Window*3 {
					delete(tb.clients, k)
				}
			}
			tb.mu.Unlock()
		}
	}()
}
