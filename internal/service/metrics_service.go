package service

import (
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Occurrence outcomes recorded by the scheduler.
const (
	OutcomeCreated         = "created"
	OutcomeUpdated         = "updated"
	OutcomeSkippedHoliday  = "skipped_holiday"
	OutcomeSkippedConflict = "skipped_conflict"
	OutcomeFailed          = "failed"
)

// MetricsService encapsulates Prometheus instrumentation for the scheduling API.
type MetricsService struct {
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	occurrences     *prometheus.CounterVec
	lockWait        prometheus.Histogram
	cacheLatency    *prometheus.HistogramVec
	cacheWrite      prometheus.Observer
	cacheLookups    *prometheus.CounterVec
}

// NewMetricsService registers the collectors on a private registry.
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

	occurrences := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "schedule_occurrences_total",
		Help: "Class occurrences processed by the scheduler, by outcome",
	}, []string{"outcome"})

	lockWait := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "schedule_venue_lock_wait_seconds",
		Help:    "Time spent acquiring the per venue/date advisory lock",
		Buckets: []float64{.001, .005, .01, .05, .1, .5, 1, 2.5, 5},
	})

	cacheLatency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "cache_latency_seconds",
		Help:    "Latency for cache lookups",
		Buckets: prometheus.DefBuckets,
	}, []string{"namespace"})

	cacheWrite := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "cache_write_seconds",
		Help:    "Latency for cache set operations",
		Buckets: prometheus.DefBuckets,
	})

	cacheLookups := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cache_lookups_total",
		Help: "Cache lookups by namespace and result",
	}, []string{"namespace", "result"})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, occurrences, lockWait, cacheLatency, cacheWrite, cacheLookups, goroutines)

	return &MetricsService{
		handler:         promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
		occurrences:     occurrences,
		lockWait:        lockWait,
		cacheLatency:    cacheLatency,
		cacheWrite:      cacheWrite,
		cacheLookups:    cacheLookups,
	}
}

// Handler exposes the Prometheus HTTP handler.
func (m *MetricsService) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// ObserveHTTPRequest records request metrics.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labelStatus := fmt.Sprintf("%d", status)
	m.requestDuration.WithLabelValues(method, path, labelStatus).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, labelStatus).Inc()
}

// RecordOccurrence counts one processed occurrence.
func (m *MetricsService) RecordOccurrence(outcome string) {
	if m == nil {
		return
	}
	m.occurrences.WithLabelValues(outcome).Inc()
}

// ObserveLockWait records how long a venue/date lock took to acquire.
func (m *MetricsService) ObserveLockWait(duration time.Duration) {
	if m == nil {
		return
	}
	m.lockWait.Observe(duration.Seconds())
}

// RecordCacheOperation records a cache lookup for namespace.
func (m *MetricsService) RecordCacheOperation(namespace string, hit bool, duration time.Duration) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.cacheLatency.WithLabelValues(namespace).Observe(duration.Seconds())
	m.cacheLookups.WithLabelValues(namespace, result).Inc()
}

// ObserveCacheWrite tracks the duration for cache write operations.
func (m *MetricsService) ObserveCacheWrite(duration time.Duration) {
	if m == nil {
		return
	}
	m.cacheWrite.Observe(duration.Seconds())
}
