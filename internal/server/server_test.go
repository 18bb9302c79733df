package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/pemba-dev/traffic-filter/internal/ratelimiter"
	"github.com/pemba-dev/traffic-filter/internal/ratelimiter/memlimiter"
	"github.com/rs/zerolog"
)

func newTestServer(t *testing.T, maxRequests int) *Server {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	return &Server{
		log: zerolog.Nop(),
		limiter: memlimiter.NewSlidingWindowLimiter(ctx, ratelimiter.Config{
			Enabled:     true,
			MaxRequests: maxRequests,
			Window:      time.Minute,
			KeyPrefix:   "admission",
		}),
		ipLimiter: memlimiter.NewTokenBucketLimiter(ctx, ratelimiter.Config{
			Enabled:     true,
			MaxRequests: 10000,
			Window:      time.Minute,
			KeyPrefix:   "global",
		}),
	}
}

func postCheck(t *testing.T, h http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("POST", "/api/v1/check", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.RemoteAddr = "192.0.2.10:52814"
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeCheckRes(t *testing.T, rec *httptest.ResponseRecorder) checkRes {
	t.Helper()
	var res checkRes
	if err := json.NewDecoder(rec.Body).Decode(&res); err != nil {
		t.Fatalf("can not decode response body: %v", err)
	}
	return res
}

func TestCheckAdmitsUntilQuotaThenRejects(t *testing.T) {
	s := newTestServer(t, 2)
	h := s.RegisterRoutes(context.Background())

	for i := range 2 {
		rec := postCheck(t, h, `{"key":"api-key-1"}`)
		if rec.Code != http.StatusOK {
			t.Fatalf("call %d: expected 200 got %d", i, rec.Code)
		}
		if res := decodeCheckRes(t, rec); !res.Allowed {
			t.Fatalf("call %d inside the quota should be allowed", i)
		}
	}

	rec := postCheck(t, h, `{"key":"api-key-1"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	res := decodeCheckRes(t, rec)
	if res.Allowed {
		t.Fatalf("call past the quota should be rejected")
	}
	if res.RetryAfterMs <= 0 {
		t.Fatalf("rejection should carry a positive retry_after_ms, got %d", res.RetryAfterMs)
	}
}

func TestCheckKeysGetSeparateQuotas(t *testing.T) {
	s := newTestServer(t, 1)
	h := s.RegisterRoutes(context.Background())

	if res := decodeCheckRes(t, postCheck(t, h, `{"key":"a"}`)); !res.Allowed {
		t.Fatalf("first call for key a should be allowed")
	}
	if res := decodeCheckRes(t, postCheck(t, h, `{"key":"a"}`)); res.Allowed {
		t.Fatalf("second call for key a should be rejected")
	}
	if res := decodeCheckRes(t, postCheck(t, h, `{"key":"b"}`)); !res.Allowed {
		t.Fatalf("key b must not be affected by key a")
	}
}

func TestCheckRejectsMissingKey(t *testing.T) {
	s := newTestServer(t, 1)
	h := s.RegisterRoutes(context.Background())

	rec := postCheck(t, h, `{}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}

	rec = postCheck(t, h, `not json`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}

func TestPingHeartbeat(t *testing.T) {
	s := newTestServer(t, 1)
	h := s.RegisterRoutes(context.Background())

	req := httptest.NewRequest("GET", "/ping", nil)
	req.RemoteAddr = "192.0.2.10:52814"
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	if rec.Body.String() != "pong" {
		t.Fatalf("expected pong got %q", rec.Body.String())
	}
}
