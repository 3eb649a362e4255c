package api

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shaiso/Election/internal/telemetry"
)

// RegisterRoutes регистрирует все маршруты API.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	// Middleware chain
	chain := Chain(
		RequestID(h.logger),
		Recovery(),
		Logging(),
		Metrics(),
	)

	h.registerCandidateRoutes(mux, chain)
	h.registerPartyRoutes(mux, chain)
	h.registerVoterRoutes(mux, chain)
	h.registerVoteRoutes(mux, chain)

	// Health и metrics
	started := time.Now()
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		if h.health != nil {
			if err := h.health(r.Context()); err != nil {
				h.logger.Warn("health check failed", "error", err)
				Error(w, http.StatusServiceUnavailable, "unhealthy")
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "ok %s", time.Since(started).Round(time.Second))
	})
	mux.Handle("GET /metrics", promhttp.Handler())
}

// log возвращает логгер запроса (с request_id).
func (h *Handler) log(r *http.Request) *slog.Logger {
	if _, ok := r.Context().Value(telemetry.CtxLogger).(*slog.Logger); ok {
		return telemetry.FromContext(r.Context())
	}
	return h.logger
}
