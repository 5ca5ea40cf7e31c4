// ============================================================================
// krama - Javanese speech-level analyzer
// ============================================================================
//
// Package:     metrics
// Description: Prometheus metrics for analyses, cache and HTTP traffic
// Author:      LearnWithSuryaa
// Created:     2026-10-12
// License:     MIT
// ============================================================================

package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Analysis outcomes used as the "outcome" label
const (
	OutcomeValid       = "valid"
	OutcomeInvalid     = "invalid"
	OutcomeSyntaxError = "syntax_error"
)

// Collector holds all Prometheus metrics of the application. Each collector
// owns its registry, so several may exist side by side in tests.
type Collector struct {
	registry *prometheus.Registry

	// Analysis metrics
	Analyses         *prometheus.CounterVec
	Violations       *prometheus.CounterVec
	AnalysisDuration prometheus.Histogram
	LexiconReloads   *prometheus.CounterVec

	// Cache metrics
	CacheHits   prometheus.Counter
	CacheMisses prometheus.Counter

	// HTTP metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec
}

// NewCollector creates a collector with the given namespace
func NewCollector(namespace string) *Collector {
	registry := prometheus.NewRegistry()

	c := &Collector{
		registry: registry,
		Analyses: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "analyses_total",
				Help:      "Total number of analyzed sentences by outcome",
			},
			[]string{"outcome"},
		),
		Violations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "violations_total",
				Help:      "Total number of register violations by rule",
			},
			[]string{"rule"},
		),
		AnalysisDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "analysis_duration_seconds",
				Help:      "Sentence analysis duration in seconds",
				Buckets:   []float64{.0001, .0005, .001, .005, .01, .05, .1, .5},
			},
		),
		LexiconReloads: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "lexicon_reloads_total",
				Help:      "Total number of lexicon reloads by status",
			},
			[]string{"status"},
		),
		CacheHits: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cache_hits_total",
				Help:      "Total number of result cache hits",
			},
		),
		CacheMisses: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cache_misses_total",
				Help:      "Total number of result cache misses",
			},
		),
		HTTPRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		HTTPDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
	}

	registry.MustRegister(
		c.Analyses,
		c.Violations,
		c.AnalysisDuration,
		c.LexiconReloads,
		c.CacheHits,
		c.CacheMisses,
		c.HTTPRequests,
		c.HTTPDuration,
	)

	return c
}

// Registry returns the registry holding the collector's metrics
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler serves the metrics in the Prometheus exposition format
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// ObserveAnalysis records one analysis with its outcome, the codes of the
// rules it violated and its duration
func (c *Collector) ObserveAnalysis(outcome string, rules []string, d time.Duration) {
	c.Analyses.WithLabelValues(outcome).Inc()
	for _, rule := range rules {
		c.Violations.WithLabelValues(rule).Inc()
	}
	c.AnalysisDuration.Observe(d.Seconds())
}

// ObserveCache counts a cache lookup
func (c *Collector) ObserveCache(hit bool) {
	if hit {
		c.CacheHits.Inc()
		return
	}
	c.CacheMisses.Inc()
}

// ObserveReload counts a lexicon reload attempt
func (c *Collector) ObserveReload(err error) {
	status := "ok"
	if err != nil {
		status = "failed"
	}
	c.LexiconReloads.WithLabelValues(status).Inc()
}

// ObserveHTTP records one HTTP request
func (c *Collector) ObserveHTTP(method, route string, status int, d time.Duration) {
	c.HTTPRequests.WithLabelValues(method, route, http.StatusText(status)).Inc()
	c.HTTPDuration.WithLabelValues(method, route).Observe(d.Seconds())
}
