package memlimiter

import (
	"context"
	"testing"
	"time"

	"github.com/pemba-dev/traffic-filter/internal/ratelimiter"
)

func TestTokenBucketBurstThenReject(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	l := NewTokenBucketLimiter(ctx, ratelimiter.Config{
		Enabled:     true,
		MaxRequests: 5,
		Window:      time.Hour,
	})

	for i := range 5 {
		allowed, _ := l.Allow(ctx, "k")
		if !allowed {
			t.Fatalf("call %d inside the burst should be admitted", i)
		}
	}

	allowed, retryAfter := l.Allow(ctx, "k")
	if allowed {
		t.Fatalf("call past the burst should be rejected")
	}
	if retryAfter <= 0 {
		t.Fatalf("rejection should carry a positive backoff, got %s", retryAfter)
	}
}

func TestTokenBucketKeysAreIndependent(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	l := NewTokenBucketLimiter(ctx, ratelimiter.Config{
		Enabled:     true,
		MaxRequests: 1,
		Window:      time.Hour,
	})

	if allowed, _ := l.Allow(ctx, "a"); !allowed {
		t.Fatalf("first call for key a should be admitted")
	}
	if allowed, _ := l.Allow(ctx, "a"); allowed {
		t.Fatalf("second call for key a should be rejected")
	}
	if allowed, _ := l.Allow(ctx, "b"); !allowed {
		t.Fatalf("key b must not be affected by key a")
	}
}
