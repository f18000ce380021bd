package handler

import (
	"net/http"

	"github.com/fundbridge/fundbridge/internal/response"
)

// MetricsExposer renders collected metrics.
type MetricsExposer interface {
	Handler() http.Handler
}

// MetricsHandler exposes metrics in Prometheus exposition format.
type MetricsHandler struct {
	exposer MetricsExposer
}

// NewMetricsHandler creates a new MetricsHandler.
func NewMetricsHandler(exposer MetricsExposer) *MetricsHandler {
	return &MetricsHandler{exposer: exposer}
}

// Metrics serves the exposition, or 503 when no registry is configured.
//
// GET /metrics
func (h *MetricsHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	if h.exposer == nil {
		response.JSON(w, http.StatusServiceUnavailable, HealthResponse{Status: "unavailable"})
		return
	}
	h.exposer.Handler().ServeHTTP(w, r)
}
