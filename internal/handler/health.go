package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/sony/gobreaker"

	"github.com/fundbridge/fundbridge/internal/response"
)

// readinessTimeout bounds all dependency pings of one /readyz call.
const readinessTimeout = 5 * time.Second

// HealthChecker defines an interface for checking service health.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// Check is a named dependency pinged by Readyz.
type Check struct {
	Name    string
	Checker HealthChecker
}

type guardedCheck struct {
	name    string
	checker HealthChecker
	breaker *gobreaker.CircuitBreaker
}

// HealthHandler manages the admin health check endpoints.
type HealthHandler struct {
	checks []guardedCheck
}

// NewHealthHandler creates a new HealthHandler. Checks with a nil Checker are
// reported as "not configured". Each check gets its own circuit breaker, so a
// dependency that keeps failing is reported without being dialed on every request.
func NewHealthHandler(checks ...Check) *HealthHandler {
	guarded := make([]guardedCheck, 0, len(checks))
	for _, c := range checks {
		guarded = append(guarded, guardedCheck{
			name:    c.Name,
			checker: c.Checker,
			breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
				Name:    c.Name,
				Timeout: 30 * time.Second,
			}),
		})
	}
	return &HealthHandler{checks: guarded}
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// Healthz is the liveness endpoint.
// It returns 200 if the server is running.
//
// GET /healthz
func (h *HealthHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}

// Readyz is the readiness endpoint.
// It checks all dependencies and returns 200 only if all are healthy.
//
// GET /readyz
func (h *HealthHandler) Readyz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
	defer cancel()

	checks := make(map[string]string, len(h.checks))
	healthy := true

	for _, p := range h.checks {
		if p.checker == nil {
			checks[p.name] = "not configured"
			continue
		}

		_, err := p.breaker.Execute(func() (interface{}, error) {
			return nil, p.checker.Ping(ctx)
		})
		switch {
		case err == nil:
			checks[p.name] = "ok"
		case errors.Is(err, gobreaker.ErrOpenState):
			checks[p.name] = "error: circuit open"
			healthy = false
		default:
			checks[p.name] = "error: " + err.Error()
			healthy = false
		}
	}

	status := "ok"
	statusCode := http.StatusOK
	if !healthy {
		status = "unhealthy"
		statusCode = http.StatusServiceUnavailable
	}

	response.JSON(w, statusCode, HealthResponse{Status: status, Checks: checks})
}
