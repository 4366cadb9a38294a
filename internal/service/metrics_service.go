package service

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsService encapsulates Prometheus instrumentation for the timetable
// API: HTTP latency, cache behaviour and generation outcomes.
type MetricsService struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	cacheLatency    prometheus.Observer
	cacheHits       prometheus.Counter
	cacheMisses     prometheus.Counter

	generations     *prometheus.CounterVec
	slotsPlaced     prometheus.Counter
	slotsUnplaced   prometheus.Counter
	editConflicts   prometheus.Counter
	substitutionOps *prometheus.CounterVec
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

	cacheLatency := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "cache_latency_seconds",
		Help:    "Latency for cache operations",
		Buckets: prometheus.DefBuckets,
	})

	cacheHits := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "cache_hits_total",
		Help: "Total number of cache hits",
	})

	cacheMisses := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "cache_misses_total",
		Help: "Total number of cache misses",
	})

	generations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "timetable_generations_total",
		Help: "Timetable generation runs by outcome",
	}, []string{"outcome"})

	slotsPlaced := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "timetable_slots_placed_total",
		Help: "Slots placed by the generation engine",
	})

	slotsUnplaced := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "timetable_slots_unplaced_total",
		Help: "Requirement periods the generation engine could not place",
	})

	editConflicts := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "timetable_edit_conflicts_total",
		Help: "Manual slot edits rejected for conflicts",
	})

	substitutionOps := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "substitution_operations_total",
		Help: "Substitution advisor operations by result",
	}, []string{"operation", "result"})

	registry.MustRegister(
		requestDuration,
		requestTotal,
		cacheLatency,
		cacheHits,
		cacheMisses,
		generations,
		slotsPlaced,
		slotsUnplaced,
		editConflicts,
		substitutionOps,
	)

	return &MetricsService{
		registry:        registry,
		handler:         promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
		cacheLatency:    cacheLatency,
		cacheHits:       cacheHits,
		cacheMisses:     cacheMisses,
		generations:     generations,
		slotsPlaced:     slotsPlaced,
		slotsUnplaced:   slotsUnplaced,
		editConflicts:   editConflicts,
		substitutionOps: substitutionOps,
	}
}

// Handler exposes the Prometheus scrape endpoint.
func (s *MetricsService) Handler() http.Handler {
	return s.handler
}

// ObserveHTTPRequest records one served request.
func (s *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	labels := []string{method, path, strconv.Itoa(status)}
	s.requestDuration.WithLabelValues(labels...).Observe(duration.Seconds())
	s.requestTotal.WithLabelValues(labels...).Inc()
}

// RecordCacheOperation tracks a cache lookup.
func (s *MetricsService) RecordCacheOperation(hit bool, duration time.Duration) {
	s.cacheLatency.Observe(duration.Seconds())
	if hit {
		s.cacheHits.Inc()
	} else {
		s.cacheMisses.Inc()
	}
}

// RecordGeneration tracks one generation run outcome.
func (s *MetricsService) RecordGeneration(placed, unplaced int, incomplete bool) {
	outcome := "complete"
	if incomplete {
		outcome = "incomplete"
	}
	s.generations.WithLabelValues(outcome).Inc()
	s.slotsPlaced.Add(float64(placed))
	s.slotsUnplaced.Add(float64(unplaced))
}

// RecordEditConflict tracks a rejected manual edit.
func (s *MetricsService) RecordEditConflict() {
	s.editConflicts.Inc()
}

// RecordSubstitution tracks an advisor operation.
func (s *MetricsService) RecordSubstitution(operation, result string) {
	s.substitutionOps.WithLabelValues(operation, result).Inc()
}
