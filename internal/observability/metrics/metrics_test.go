package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestGinMiddlewareRecordsRoute(t *testing.T) {
	gin.SetMode(gin.TestMode)
	registry := prometheus.NewRegistry()
	m, err := NewHTTPMetrics(Config{Enabled: true, ServiceName: "coopbilling", Environment: "test"}, registry)
	if err != nil {
		t.Fatalf("new http metrics: %v", err)
	}

	r := gin.New()
	r.Use(GinMiddleware(m))
	r.GET("/admin/:model", func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/members", nil))
	}

	got := testutil.ToFloat64(m.requests.WithLabelValues("/admin/:model", http.MethodGet, "200"))
	if got != 2 {
		t.Fatalf("expected 2 requests, got %v", got)
	}
	if inFlight := testutil.ToFloat64(m.inFlight); inFlight != 0 {
		t.Fatalf("expected no in-flight requests, got %v", inFlight)
	}
}

func TestNewHTTPMetricsReusesRegisteredCollectors(t *testing.T) {
	registry := prometheus.NewRegistry()
	cfg := Config{Enabled: true, Environment: "test"}

	first, err := NewHTTPMetrics(cfg, registry)
	if err != nil {
		t.Fatalf("first registration: %v", err)
	}
	second, err := NewHTTPMetrics(cfg, registry)
	if err != nil {
		t.Fatalf("second registration: %v", err)
	}

	second.RecordRequest("", http.MethodPost, http.StatusNotFound, 0)
	got := testutil.ToFloat64(first.requests.WithLabelValues("unmatched", http.MethodPost, "404"))
	if got != 1 {
		t.Fatalf("expected shared counter, got %v", got)
	}
}

func TestDisabledMetricsAreNilSafe(t *testing.T) {
	m, err := NewFormMetrics(Config{Enabled: false}, prometheus.NewRegistry())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m != nil {
		t.Fatalf("expected nil metrics when disabled")
	}
	m.RecordSubmission("members", FormOutcomeSaved)
}

func TestRecordSubmission(t *testing.T) {
	registry := prometheus.NewRegistry()
	m, err := NewFormMetrics(Config{Enabled: true}, registry)
	if err != nil {
		t.Fatalf("new form metrics: %v", err)
	}

	m.RecordSubmission("members", FormOutcomeInvalid)
	m.RecordSubmission("members", FormOutcomeSaved)
	m.RecordSubmission("members", FormOutcomeSaved)

	if got := testutil.ToFloat64(m.submissions.WithLabelValues("members", FormOutcomeSaved)); got != 2 {
		t.Fatalf("expected 2 saved submissions, got %v", got)
	}
}
