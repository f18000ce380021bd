package metrics

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "fundbridge"

// PrometheusRecorder implements Recorder on a dedicated registry.
type PrometheusRecorder struct {
	registry *prometheus.Registry

	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	HandlerErrors   *prometheus.CounterVec
	RateLimited     *prometheus.CounterVec
	DBConnect       *prometheus.HistogramVec
}

// NewPrometheus creates a recorder with its own registry, including Go
// runtime and process collectors.
func NewPrometheus() (*PrometheusRecorder, error) {
	reg := prometheus.NewRegistry()

	m := &PrometheusRecorder{
		registry: reg,
		RequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		}, []string{"method", "route", "status"}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		HandlerErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_handler_errors_total",
			Help:      "Errors handled by the global error handler",
		}, []string{"status"}),
		RateLimited: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rate_limited_total",
			Help:      "Requests rejected by rate limiting",
		}, []string{"group"}),
		DBConnect: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "database_connect_seconds",
			Help:      "Time taken to establish the startup database connection",
			Buckets:   prometheus.ExponentialBuckets(0.01, 2, 10),
		}, []string{"driver", "result"}),
	}

	for _, c := range []prometheus.Collector{
		m.RequestsTotal,
		m.RequestDuration,
		m.HandlerErrors,
		m.RateLimited,
		m.DBConnect,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("failed to register collector: %w", err)
		}
	}

	return m, nil
}

// Handler serves the registry in Prometheus exposition format.
func (m *PrometheusRecorder) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// ObserveHTTPRequest records one completed request.
func (m *PrometheusRecorder) ObserveHTTPRequest(method, route string, status int, duration time.Duration) {
	m.RequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.RequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// IncHandlerError counts an error response by status.
func (m *PrometheusRecorder) IncHandlerError(status int) {
	m.HandlerErrors.WithLabelValues(strconv.Itoa(status)).Inc()
}

// IncRateLimited counts a rate-limited request.
func (m *PrometheusRecorder) IncRateLimited(group string) {
	m.RateLimited.WithLabelValues(group).Inc()
}

// ObserveDatabaseConnect records the startup connection attempt.
func (m *PrometheusRecorder) ObserveDatabaseConnect(driver string, duration time.Duration, err error) {
	result := "success"
	if err != nil {
		result = "failure"
	}
	m.DBConnect.WithLabelValues(driver, result).Observe(duration.Seconds())
}
