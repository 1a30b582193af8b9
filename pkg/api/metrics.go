package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	statusSuccess = "success"
	statusError   = "error"
)

// Metrics holds all Prometheus metrics for the API
type Metrics struct {
	// HTTP request metrics
	httpRequestsTotal    *prometheus.CounterVec
	httpRequestDuration  *prometheus.HistogramVec
	httpRequestsInFlight *prometheus.GaugeVec

	// Codec operation metrics
	codecOperationsTotal   *prometheus.CounterVec
	codecOperationDuration *prometheus.HistogramVec

	// Archive metrics
	archiveRecordsTotal prometheus.Gauge

	// API key authentication metrics
	authRequestsTotal *prometheus.CounterVec

	// Health check metrics
	healthChecksTotal *prometheus.CounterVec
}

// NewMetrics creates all metrics on the default Prometheus registry
func NewMetrics() *Metrics {
	return NewMetricsWith(prometheus.DefaultRegisterer)
}

// NewMetricsWith creates all metrics on the given registry, so tests can use
// an isolated one
func NewMetricsWith(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	m := &Metrics{
		// HTTP request metrics
		httpRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fon_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "endpoint", "status_code"},
		),

		httpRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "fon_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "endpoint"},
		),

		httpRequestsInFlight: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "fon_http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed",
			},
			[]string{"method", "endpoint"},
		),

		// Codec operation metrics
		codecOperationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fon_codec_operations_total",
				Help: "Total number of parse and serialize operations",
			},
			[]string{"operation", "status"},
		),

		codecOperationDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "fon_codec_operation_duration_seconds",
				Help:    "Parse and serialize duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),

		archiveRecordsTotal: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "fon_archive_records_total",
				Help: "Total number of records in the archive",
			},
		),

		// Authentication metrics
		authRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fon_auth_requests_total",
				Help: "Total number of authentication requests",
			},
			[]string{"status"},
		),

		// Health check metrics
		healthChecksTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fon_health_checks_total",
				Help: "Total number of health checks",
			},
			[]string{"status"},
		),
	}

	return m
}

// RecordHTTPRequest records an HTTP request
func (m *Metrics) RecordHTTPRequest(method, endpoint string, statusCode int, duration time.Duration) {
	statusCodeStr := strconv.Itoa(statusCode)

	m.httpRequestsTotal.WithLabelValues(method, endpoint, statusCodeStr).Inc()
	m.httpRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// RecordCodecOperation records a parse or serialize operation
func (m *Metrics) RecordCodecOperation(operation string, success bool, duration time.Duration) {
	status := statusSuccess
	if !success {
		status = statusError
	}

	m.codecOperationsTotal.WithLabelValues(operation, status).Inc()
	m.codecOperationDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// UpdateArchiveStats updates the archive record gauge
func (m *Metrics) UpdateArchiveStats(records int) {
	m.archiveRecordsTotal.Set(float64(records))
}

// RecordAuthRequest records an authentication request
func (m *Metrics) RecordAuthRequest(success bool) {
	status := statusSuccess
	if !success {
		status = statusError
	}
	m.authRequestsTotal.WithLabelValues(status).Inc()
}

// RecordHealthCheck records a health check
func (m *Metrics) RecordHealthCheck(success bool) {
	status := statusSuccess
	if !success {
		status = statusError
	}
	m.healthChecksTotal.WithLabelValues(status).Inc()
}

// InstrumentHandler instruments an HTTP handler with metrics
func (m *Metrics) InstrumentHandler(method, endpoint string, handler http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Record request in flight
		gauge := m.httpRequestsInFlight.WithLabelValues(method, endpoint)
		gauge.Inc()
		defer gauge.Dec()

		// Create response writer wrapper to capture status code
		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		// Call the original handler
		handler(rw, r)

		// Record metrics
		duration := time.Since(start)
		m.RecordHTTPRequest(method, endpoint, rw.statusCode, duration)
	}
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
