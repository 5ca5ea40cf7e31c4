package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCollector_ObserveAnalysis(t *testing.T) {
	c := NewCollector("krama")

	c.ObserveAnalysis(OutcomeValid, nil, time.Millisecond)
	c.ObserveAnalysis(OutcomeInvalid, []string{"self_subject", "self_subject"}, time.Millisecond)
	c.ObserveAnalysis(OutcomeSyntaxError, nil, time.Millisecond)

	if got := testutil.ToFloat64(c.Analyses.WithLabelValues(OutcomeValid)); got != 1 {
		t.Errorf("valid analyses = %v, want 1", got)
	}
	if got := testutil.ToFloat64(c.Violations.WithLabelValues("self_subject")); got != 2 {
		t.Errorf("self_subject violations = %v, want 2", got)
	}
	if got := testutil.CollectAndCount(c.AnalysisDuration); got != 1 {
		t.Errorf("duration series = %d, want 1", got)
	}
}

func TestCollector_Counters(t *testing.T) {
	c := NewCollector("krama")

	c.ObserveCache(true)
	c.ObserveCache(false)
	c.ObserveCache(false)
	c.ObserveReload(nil)
	c.ObserveReload(errors.New("bad file"))

	if got := testutil.ToFloat64(c.CacheHits); got != 1 {
		t.Errorf("cache hits = %v, want 1", got)
	}
	if got := testutil.ToFloat64(c.CacheMisses); got != 2 {
		t.Errorf("cache misses = %v, want 2", got)
	}
	if got := testutil.ToFloat64(c.LexiconReloads.WithLabelValues("failed")); got != 1 {
		t.Errorf("failed reloads = %v, want 1", got)
	}
}

func TestCollector_Handler(t *testing.T) {
	c := NewCollector("krama")
	c.ObserveHTTP(http.MethodPost, "/api/v1/analyze", http.StatusOK, 5*time.Millisecond)

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, `krama_http_requests_total{method="POST",route="/api/v1/analyze",status="OK"} 1`) {
		t.Errorf("metrics output missing request counter:\n%s", body)
	}
}

func TestNewCollector_Independent(t *testing.T) {
	a := NewCollector("krama")
	b := NewCollector("krama")
	a.ObserveCache(true)

	if got := testutil.ToFloat64(b.CacheHits); got != 0 {
		t.Errorf("second collector saw %v hits", got)
	}
}
