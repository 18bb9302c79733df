package server

import (
	"context"
	"net/http"

	"github.com/pemba-dev/traffic-filter/internal/utils"
)

func WriteError(ctx context.Context, w http.ResponseWriter, code int, err error) {
	utils.WriteError(ctx, w, code, err)
}

func WriteJson(ctx context.Context, w http.ResponseWriter, code int, payload any) {
	utils.WriteJson(ctx, w, code, payload)
}
