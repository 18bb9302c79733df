package ratelimiter

import (
	"testing"
	"time"
)

func TestConfigWithDefaults(t *testing.T) {
	conf := Config{}.WithDefaults()
	if conf.MaxRequests != DefaultMaxRequests {
		t.Fatalf("expected %d got %d", DefaultMaxRequests, conf.MaxRequests)
	}
	if conf.Window != DefaultWindow {
		t.Fatalf("expected %s got %s", DefaultWindow, conf.Window)
	}
}

func TestConfigWithDefaultsKeepsSetValues(t *testing.T) {
	conf := Config{MaxRequests: 7, Window: time.Second}.WithDefaults()
	if conf.MaxRequests != 7 {
		t.Fatalf("expected 7 got %d", conf.MaxRequests)
	}
	if conf.Window != time.Second {
		t.Fatalf("expected 1s got %s", conf.Window)
	}
}
