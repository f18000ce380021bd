package middleware

import (
	"net/http"
	"time"

	"github.com/fundbridge/fundbridge/internal/metrics"
)

// Metrics records request count and latency labelled by chi route pattern,
// so path parameters do not explode label cardinality.
func Metrics(recorder metrics.Recorder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			wrapped := wrapResponseWriter(w, r)

			next.ServeHTTP(wrapped, r)

			recorder.ObserveHTTPRequest(r.Method, routePattern(r), statusOf(wrapped), time.Since(start))
		})
	}
}
