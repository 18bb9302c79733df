package middleware

import (
	"net/http"
	"strings"
)

// StripSlashes removes a single trailing slash from the request path so
// "/api/v1/check/" and "/api/v1/check" hit the same route.
func StripSlashes(next http.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path
		if len(path) > 1 && strings.HasSuffix(path, "/") {
			r.URL.Path = strings.TrimSuffix(path, "/")
		}
		next.ServeHTTP(w, r)
	}
}
