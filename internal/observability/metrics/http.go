package metrics

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

// HTTPMetrics captures low-cardinality HTTP server metrics.
type HTTPMetrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	inFlight prometheus.Gauge
}

// NewHTTPMetrics registers the HTTP instruments. It returns nil when metrics are disabled.
func NewHTTPMetrics(cfg Config, registerer prometheus.Registerer) (*HTTPMetrics, error) {
	if !cfg.Enabled {
		return nil, nil
	}
	labels := constLabels(cfg)

	requests, err := register(registerer, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name:        "coopbilling_http_requests_total",
		Help:        "HTTP requests by route, method and status code.",
		ConstLabels: labels,
	}, []string{"endpoint", "method", "status_code"}))
	if err != nil {
		return nil, err
	}
	duration, err := register(registerer, prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:        "coopbilling_http_request_duration_seconds",
		Help:        "HTTP request latency by route.",
		Buckets:     []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		ConstLabels: labels,
	}, []string{"endpoint", "method"}))
	if err != nil {
		return nil, err
	}
	inFlight, err := register(registerer, prometheus.NewGauge(prometheus.GaugeOpts{
		Name:        "coopbilling_http_in_flight_requests",
		Help:        "HTTP requests currently being served.",
		ConstLabels: labels,
	}))
	if err != nil {
		return nil, err
	}

	return &HTTPMetrics{
		requests: requests,
		duration: duration,
		inFlight: inFlight,
	}, nil
}

// GinMiddleware records request counts, latency and in-flight requests.
func GinMiddleware(m *HTTPMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		if m == nil {
			c.Next()
			return
		}
		m.inFlight.Inc()
		start := time.Now()
		c.Next()
		m.inFlight.Dec()

		m.RecordRequest(c.FullPath(), c.Request.Method, c.Writer.Status(), time.Since(start))
	}
}

func (m *HTTPMetrics) RecordRequest(endpoint, method string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	endpoint = normalizeEndpoint(endpoint)
	m.requests.WithLabelValues(endpoint, method, strconv.Itoa(status)).Inc()
	m.duration.WithLabelValues(endpoint, method).Observe(elapsed.Seconds())
}

func normalizeEndpoint(endpoint string) string {
	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" {
		return "unmatched"
	}
	return endpoint
}
