// Package metrics provides lightweight hooks for instrumentation.
package metrics

import "time"

// Recorder captures metric events for the application.
type Recorder interface {
	// HTTP metrics
	ObserveHTTPRequest(method, route string, status int, duration time.Duration)
	IncHandlerError(status int)

	// Rate limiting (group is the route group name, e.g. "auth")
	IncRateLimited(group string)

	// Startup metrics
	ObserveDatabaseConnect(driver string, duration time.Duration, err error)
}
