package metrics

import "time"

// NoopRecorder implements Recorder with no-op methods.
type NoopRecorder struct{}

// NewNoop returns a Recorder that discards all metrics.
func NewNoop() Recorder {
	return &NoopRecorder{}
}

// ObserveHTTPRequest is a no-op.
func (n *NoopRecorder) ObserveHTTPRequest(method, route string, status int, duration time.Duration) {}

// IncHandlerError is a no-op.
func (n *NoopRecorder) IncHandlerError(status int) {}

// IncRateLimited is a no-op.
func (n *NoopRecorder) IncRateLimited(group string) {}

// ObserveDatabaseConnect is a no-op.
func (n *NoopRecorder) ObserveDatabaseConnect(driver string, duration time.Duration, err error) {}
