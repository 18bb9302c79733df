package utils

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/pemba-dev/traffic-filter/internal/tracker"
	"github.com/rs/zerolog"
)

type errorRes struct {
	Error error `json:"error"`
}

func (e errorRes) MarshalJSON() ([]byte, error) {
	m := make(map[string]any, 1)
	m["error"] = e.Error.Error()
	return json.Marshal(m)
}

func WriteError(ctx context.Context, w http.ResponseWriter, code int, err error) {
	if err == nil {
		zerolog.Ctx(ctx).Warn().Msg("WriteError: nil error")
		err = fmt.Errorf("unknown error")
	}
	writeJson(ctx, w, code, errorRes{Error: err})
}

func WriteJson(ctx context.Context, w http.ResponseWriter, code int, payload any) {
	writeJson(ctx, w, code, payload)
}

func writeJson(ctx context.Context, w http.ResponseWriter, code int, payload any) {
	zlog := *zerolog.Ctx(ctx)

	bytes, err := json.Marshal(payload)
	if err != nil {
		zlog.Error().Err(err).Any("payload", payload).Int("code", code).Msg("can not marshal payload in WriteJson")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Add("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(bytes)

	logEvent := zlog.Debug().Int("code", code)
	if reqId, ok := tracker.ReqUUIDFromContext(ctx); ok {
		logEvent.Str(tracker.ReqIdStrKey, reqId.String())
	}
	logEvent.CallerSkipFrame(99999999) // so it dose not print the file:line_num in the log. we do not need those
	logEvent.Msg("Res")
}
