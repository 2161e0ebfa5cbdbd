package service

import (
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsService encapsulates Prometheus instrumentation for the API and the
// matching engine.
type MetricsService struct {
	registry *prometheus.Registry
	handler  http.Handler

	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec

	matchSearchTotal    *prometheus.CounterVec
	matchSearchDuration *prometheus.HistogramVec
	matchResultCount    *prometheus.HistogramVec
}

// NewMetricsService registers core Prometheus collectors.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	matchSearchTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "match_search_total",
		Help: "Total candidate searches by search type",
	}, []string{"search_type"})

	matchSearchDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "match_search_duration_seconds",
		Help:    "Duration of candidate searches in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"search_type"})

	matchResultCount := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "match_search_results",
		Help:    "Result counts returned by candidate searches",
		Buckets: []float64{0, 1, 5, 10, 25, 50},
	}, []string{"search_type"})

	registry.MustRegister(requestDuration, requestTotal, matchSearchTotal, matchSearchDuration, matchResultCount)

	return &MetricsService{
		registry:            registry,
		handler:             promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration:     requestDuration,
		requestTotal:        requestTotal,
		matchSearchTotal:    matchSearchTotal,
		matchSearchDuration: matchSearchDuration,
		matchResultCount:    matchResultCount,
	}
}

// Handler exposes the Prometheus scrape endpoint.
func (s *MetricsService) Handler() http.Handler {
	return s.handler
}

// ObserveHTTPRequest records a completed HTTP request.
func (s *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	labels := []string{method, path, fmt.Sprintf("%d", status)}
	s.requestDuration.WithLabelValues(labels...).Observe(duration.Seconds())
	s.requestTotal.WithLabelValues(labels...).Inc()
}

// ObserveMatchSearch records a completed candidate search.
func (s *MetricsService) ObserveMatchSearch(searchType string, results int, duration time.Duration) {
	s.matchSearchTotal.WithLabelValues(searchType).Inc()
	s.matchSearchDuration.WithLabelValues(searchType).Observe(duration.Seconds())
	s.matchResultCount.WithLabelValues(searchType).Observe(float64(results))
}
