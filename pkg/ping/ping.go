// Package ping serves the health endpoints of both HTTP services.
package ping

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"player-list/pkg/res"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

// NewHandler pings every dependency and answers 503 if any is down.
func NewHandler(log *slog.Logger, pingers map[string]Pinger, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		out := make(map[string]string, len(pingers))
		code := http.StatusOK

		for name, p := range pingers {
			if err := p.Ping(ctx); err != nil {
				log.Warn("dependency down", "dependency", name, "error", err)
				out[name] = "down"
				code = http.StatusServiceUnavailable
				continue
			}
			out[name] = "ok"
		}

		res.Json(w, map[string]any{"services": out}, code)
	}
}

// NewLivenessHandler answers as long as the process serves HTTP.
func NewLivenessHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		res.Text(w, "ok", http.StatusOK)
	}
}
