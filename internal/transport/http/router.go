package httpapi

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	redisplatform "claimbot/internal/platform/redis"
)

// NewRouter wires the operational endpoints. This surface is for operators
// only; the conversation path never touches it.
func NewRouter(logger *slog.Logger, rdb *redisplatform.Client) http.Handler {
	r := chi.NewRouter()
	r.Get("/healthz", handleHealth(logger, rdb))
	r.Handle("/metrics", promhttp.Handler())
	return r
}

func handleHealth(logger *slog.Logger, rdb *redisplatform.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := http.StatusOK
		body := map[string]string{"status": "ok"}

		if rdb != nil {
			if err := rdb.Health(r.Context()); err != nil {
				logger.WarnContext(r.Context(), "redis health check failed", "error", err.Error())
				status = http.StatusServiceUnavailable
				body = map[string]string{"status": "degraded", "redis": err.Error()}
			}
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(body)
	}
}
