// Package response defines the JSON envelope shared by every endpoint.
package response

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"
)

// TimestampLayout is ISO-8601 in UTC with millisecond precision.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// Envelope is the uniform response body.
// Success and Message are always serialized.
type Envelope struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp,omitempty"`
	Stack     string `json:"stack,omitempty"`
}

// Now returns the current time formatted for the timestamp field.
func Now() string {
	return Timestamp(time.Now())
}

// Timestamp formats t for the timestamp field.
func Timestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// OK builds a success envelope stamped with the current time.
func OK(message string) Envelope {
	return Envelope{Success: true, Message: message, Timestamp: Now()}
}

// Fail builds a failure envelope.
func Fail(message string) Envelope {
	return Envelope{Success: false, Message: message}
}

// JSON writes data as a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Debug("failed to encode response", "error", err)
	}
}
