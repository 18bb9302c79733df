package memlimiter

import (
	"context"
	"sync"
	"time"

	"github.com/pemba-dev/traffic-filter/internal/ratelimiter"
)

// NewSlidingWindowLimiter returns an in-memory sliding-window log limiter.
// Every admitted request leaves a timestamp in the key's log; a request is
// admitted while the log holds fewer than MaxRequests entries younger than
// the window. Cancel ctx to stop the background vacuum.
func NewSlidingWindowLimiter(ctx context.Context, conf ratelimiter.Config) ratelimiter.Limiter {
	return NewSlidingWindowLimiterWithClock(ctx, conf, ratelimiter.SystemClock())
}

func NewSlidingWindowLimiterWithClock(ctx context.Context, conf ratelimiter.Config, clock ratelimiter.Clock) ratelimiter.Limiter {
	conf = conf.WithDefaults()
	sw := &slidingWindow{
		conf:  conf,
		clock: clock,
		logs:  map[string]*requestLog{},
	}
	sw.startVacuumProc(ctx)

	return &memLimiter{
		conf: conf,
		allow: func(ctx context.Context, key string) (bool, time.Duration) {
			return sw.allow(key)
		},
	}
}

type slidingWindow struct {
	conf  ratelimiter.Config
	clock ratelimiter.Clock
	logs  map[string]*requestLog
	mu    sync.Mutex // guards logs and lastSeen
}

// requestLog is one key's admission history. stamps is append-only at the
// tail and trimmed at the head, so it stays in non-decreasing time order.
type requestLog struct {
	mu       sync.Mutex
	stamps   []time.Time
	lastSeen time.Time
}

func (sw *slidingWindow) allow(key string) (bool, time.Duration) {
	now := sw.clock.Now()
	l := sw.logFor(key, now)

	l.mu.Lock()
	defer l.mu.Unlock()

	// Evict everything at or past the window age. stamps is ordered, so
	// this is a prefix trim: stop at the first entry still inside.
	windowStart := now.Add(-sw.conf.Window)
	i := 0
	for i < len(l.stamps) && !l.stamps[i].After(windowStart) {
		i++
	}
	if i > 0 {
		l.stamps = append(l.stamps[:0], l.stamps[i:]...)
	}

	if len(l.stamps) < sw.conf.MaxRequests {
		l.stamps = append(l.stamps, now)
		return true, 0
	}

	// Full. The slot frees up when the oldest surviving entry ages out.
	return false, l.stamps[0].Sub(windowStart)
}

// logFor installs the key's log on first sight. Racing first-time callers
// all pass through sw.mu, so exactly one log ends up in the map.
func (sw *slidingWindow) logFor(key string, now time.Time) *requestLog {
	sw.mu.Lock()
	defer sw.mu.Unlock()

	l, ok := sw.logs[key]
	if !ok {
		l = &requestLog{}
		sw.logs[key] = l
	}
	l.lastSeen = now
	return l
}

// startVacuumProc drops keys that went three full windows without a call.
// lastSeen is refreshed under sw.mu before a call touches its log, so the
// vacuum can not race an in-flight call for the same key.
func (sw *slidingWindow) startVacuumProc(ctx context.Context) {
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-time.After(sw.conf.Window):
			}

			now := sw.clock.Now()
			sw.mu.Lock()
			for k, l := range sw.logs {
				if now.Sub(l.lastSeen) >= sw.conf.Window*3 {
					delete(sw.logs, k)
				}
			}
			sw.mu.Unlock()
		}
	}()
}
