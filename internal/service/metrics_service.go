package service

import (
	"net/http"
	"runtime"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Sources reported on the corrupt record counter.
const (
	corruptSourceLoad    = "load"
	corruptSourceHistory = "history"
	corruptSourceCounter = "counter"
)

// MetricsService encapsulates Prometheus instrumentation for the HTTP layer and the store.
type MetricsService struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	storeDuration   *prometheus.HistogramVec
	storeErrors     *prometheus.CounterVec
	corruptRecords  *prometheus.CounterVec
	toggles         *prometheus.CounterVec
	historyDays     prometheus.Gauge
}

// NewMetricsService registers core Prometheus collectors. driver labels store metrics.
func NewMetricsService(driver string) *MetricsService {
	registry := prometheus.NewRegistry()
	constLabels := prometheus.Labels{"driver": driver}

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	storeDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:        "store_operation_duration_seconds",
		Help:        "Latency of key-value store calls",
		Buckets:     prometheus.DefBuckets,
		ConstLabels: constLabels,
	}, []string{"op"})

	storeErrors := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name:        "store_operation_errors_total",
		Help:        "Key-value store calls that failed",
		ConstLabels: constLabels,
	}, []string{"op"})

	corruptRecords := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "corrupt_records_total",
		Help: "Stored values that could not be parsed",
	}, []string{"source"})

	toggles := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "activity_toggles_total",
		Help: "Activity toggles written to the store",
	}, []string{"activity"})

	historyDays := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "history_days",
		Help: "Number of days returned by the most recent history listing",
	})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, storeDuration, storeErrors, corruptRecords, toggles, historyDays, goroutines)

	return &MetricsService{
		registry:        registry,
		handler:         promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
		storeDuration:   storeDuration,
		storeErrors:     storeErrors,
		corruptRecords:  corruptRecords,
		toggles:         toggles,
		historyDays:     historyDays,
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
	labelStatus := strconv.Itoa(status)
	m.requestDuration.WithLabelValues(method, path, labelStatus).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, labelStatus).Inc()
}

// ObserveStoreOperation records latency and failure of a single store call.
func (m *MetricsService) ObserveStoreOperation(op string, duration time.Duration, err error) {
	if m == nil {
		return
	}
	m.storeDuration.WithLabelValues(op).Observe(duration.Seconds())
	if err != nil {
		m.storeErrors.WithLabelValues(op).Inc()
	}
}

// RecordCorruptRecord counts a value that failed to parse.
func (m *MetricsService) RecordCorruptRecord(source string) {
	if m == nil {
		return
	}
	m.corruptRecords.WithLabelValues(source).Inc()
}

// RecordToggle counts a persisted toggle.
func (m *MetricsService) RecordToggle(activity string) {
	if m == nil {
		return
	}
	m.toggles.WithLabelValues(activity).Inc()
}

// SetHistoryDays publishes the size of the latest history listing.
func (m *MetricsService) SetHistoryDays(n int) {
	if m == nil {
		return
	}
	m.historyDays.Set(float64(n))
}
