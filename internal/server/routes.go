package server

import (
	"context"
	"net/http"

	"github.com/pemba-dev/traffic-filter/internal/middleware"
	"github.com/rs/cors"
)

func (s *Server) RegisterRoutes(ctx context.Context) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/api/", http.StripPrefix("/api", apiRouter(s)))

	rateLimitGlobal := middleware.RateLimiter(
		func(r *http.Request) string {
			// since we are using the RealIp() middleware
			// it should be safe to use r.RemoteAddr as limit key
			return r.RemoteAddr
		},
		s.ipLimiter,
	)

	return middleware.MiddlewareChain(
		mux.ServeHTTP,
		s.LoggerInjector,
		middleware.Recoverer,
		// required for the rate limiter to function correctly and for logging
		middleware.RealIp(),
		middleware.RequestUUIDMiddleware,
		middleware.RequestLogger,
		middleware.StripSlashes,
		middleware.Cors(cors.Options{AllowedMethods: []string{http.MethodGet, http.MethodPost}}),
		middleware.AllowContentType("application/json"),
		middleware.RequestSize(1<<12),
		rateLimitGlobal,
		middleware.Heartbeat,
	)
}

func apiRouter(s *Server) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/v1/", http.StripPrefix("/v1", v1Router(s)))

	return middleware.MiddlewareChain(
		mux.ServeHTTP,
	)
}

func v1Router(s *Server) http.Handler {
	mux := http.NewServeMux()

	mux.Handle("/check", checkRouter(s))

	return middleware.MiddlewareChain(
		mux.ServeHTTP,
	)
}

func (s *Server) LoggerInjector(h http.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.ServeHTTP(w, r.WithContext(s.log.WithContext(r.Context())))
	}
}
