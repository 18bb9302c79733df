package redislimiter

import (
	"context"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/pemba-dev/traffic-filter/internal/ratelimiter"
)

func TestConstructorsApplyDefaults(t *testing.T) {
	ctx := context.Background()

	for name, l := range map[string]ratelimiter.Limiter{
		"sliding_window": NewSlidingWindowLimiter(ctx, nil, ratelimiter.Config{Enabled: true}),
		"fixed_window":   NewFixedWindowLimiter(ctx, nil, ratelimiter.Config{Enabled: true}),
	} {
		conf := l.Config()
		if conf.MaxRequests != ratelimiter.DefaultMaxRequests {
			t.Fatalf("%s: expected default max requests got %d", name, conf.MaxRequests)
		}
		if conf.Window != ratelimiter.DefaultWindow {
			t.Fatalf("%s: expected default window got %s", name, conf.Window)
		}
	}
}

func TestDisabledLimitersAdmitWithoutTouchingRedis(t *testing.T) {
	ctx := context.Background()

	// rdb is nil on purpose: a disabled limiter must answer before ever
	// reaching for redis
	for name, l := range map[string]ratelimiter.Limiter{
		"sliding_window": NewSlidingWindowLimiter(ctx, nil, ratelimiter.Config{Enabled: false}),
		"fixed_window":   NewFixedWindowLimiter(ctx, nil, ratelimiter.Config{Enabled: false}),
	} {
		allowed, retryAfter := l.Allow(ctx, "k")
		if !allowed {
			t.Fatalf("%s: disabled limiter should admit", name)
		}
		if retryAfter != 0 {
			t.Fatalf("%s: disabled limiter should carry no backoff, got %s", name, retryAfter)
		}
	}
}

func TestSlidingWindowMemberIsUniquePerAdmission(t *testing.T) {
	micro := time.Now().UnixMicro()

	a := slidingWindowMember(micro)
	b := slidingWindowMember(micro)

	// same microsecond must not collapse into one sorted-set member
	if a == b {
		t.Fatalf("two admissions in the same microsecond produced the same member %q", a)
	}

	wantPrefix := strconv.FormatInt(micro, 10) + ":"
	if !strings.HasPrefix(a, wantPrefix) || !strings.HasPrefix(b, wantPrefix) {
		t.Fatalf("members should keep the timestamp prefix %q, got %q and %q", wantPrefix, a, b)
	}
}
