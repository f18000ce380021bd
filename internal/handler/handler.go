// Package handler provides the core HTTP handlers: the root banner, the API
// health check, the not-found fallback and the admin health endpoints.
package handler

import (
	"fmt"
	"net/http"

	"github.com/fundbridge/fundbridge/internal/response"
)

// Messages returned by the core endpoints.
const (
	RootMessage   = "Server is running!"
	HealthMessage = "API is healthy"
)

// Handler serves the endpoints that belong to no route group.
type Handler struct{}

// New creates a new Handler instance.
func New() *Handler {
	return &Handler{}
}

// Root reports that the server is up.
// GET /
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, response.OK(RootMessage))
}

// APIHealth reports that the API is up. It does not touch the database.
// GET /api/health
func (h *Handler) APIHealth(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, response.OK(HealthMessage))
}

// NotFound answers any request no route matched, echoing the URL as received.
// It is also installed for method mismatches.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusNotFound, response.Fail(fmt.Sprintf("Route %s not found", originalURL(r))))
}

func originalURL(r *http.Request) string {
	if r.RequestURI != "" {
		return r.RequestURI
	}
	return r.URL.RequestURI()
}
