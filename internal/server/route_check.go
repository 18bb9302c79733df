package server

import (
	"encoding/json"
	"errors"
	"net/http"
)

func checkRouter(s *Server) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /check", s.checkAdmission)
	return mux
}

// checkAdmission is the admission decision as a service: the caller posts
// an opaque key and gets back whether that key's request is inside its
// quota for the trailing window.
func (s *Server) checkAdmission(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req checkReq
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		WriteError(ctx, w, http.StatusBadRequest, errors.New("malformed json body"))
		return
	}
	if req.Key == "" {
		WriteError(ctx, w, http.StatusBadRequest, errors.New("key is required"))
		return
	}

	allowed, retryAfter := s.limiter.Allow(ctx, req.Key)

	WriteJson(ctx, w, http.StatusOK, checkRes{
		Allowed:      allowed,
		RetryAfterMs: retryAfter.Milliseconds(),
	})
}
