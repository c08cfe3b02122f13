package service

import (
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsService owns the Prometheus registry and the collectors the
// HTTP, database, and real-time layers report into.
type MetricsService struct {
	registry *prometheus.Registry
	handler  http.Handler

	requestDuration    *prometheus.HistogramVec
	requestTotal       *prometheus.CounterVec
	dbQueryDuration    *prometheus.HistogramVec
	notificationsTotal *prometheus.CounterVec
}

// NewMetricsService builds the registry and registers all collectors.
// listenerCount feeds the connected-dashboard gauge; it may be nil.
func NewMetricsService(listenerCount func() int) *MetricsService {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	dbQueryDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "db_query_duration_seconds",
		Help:    "Duration of database queries",
		Buckets: prometheus.DefBuckets,
	}, []string{"query"})

	notificationsTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "realtime_notifications_total",
		Help: "Dashboard notifications by outcome",
	}, []string{"event", "outcome"})

	listeners := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "realtime_listeners",
		Help: "Connected dashboard websocket clients",
	}, func() float64 {
		if listenerCount == nil {
			return 0
		}
		return float64(listenerCount())
	})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, dbQueryDuration, notificationsTotal, listeners, goroutines)

	return &MetricsService{
		registry:           registry,
		handler:            promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration:    requestDuration,
		requestTotal:       requestTotal,
		dbQueryDuration:    dbQueryDuration,
		notificationsTotal: notificationsTotal,
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

// ObserveHTTPRequest records one served request.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labelStatus := fmt.Sprintf("%d", status)
	m.requestDuration.WithLabelValues(method, path, labelStatus).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, labelStatus).Inc()
}

// ObserveDBQuery records database query timing.
func (m *MetricsService) ObserveDBQuery(label string, duration time.Duration) {
	if m == nil {
		return
	}
	m.dbQueryDuration.WithLabelValues(label).Observe(duration.Seconds())
}

// RecordNotification counts a dispatched or dropped dashboard event.
func (m *MetricsService) RecordNotification(event string, delivered bool) {
	if m == nil {
		return
	}
	outcome := "delivered"
	if !delivered {
		outcome = "dropped"
	}
	m.notificationsTotal.WithLabelValues(event, outcome).Inc()
}
