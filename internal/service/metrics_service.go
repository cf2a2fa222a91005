package service

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsService encapsulates Prometheus instrumentation for the timetable
// core. All methods are nil-receiver safe so instrumentation can be toggled
// off by passing a nil service.
type MetricsService struct {
	registry *prometheus.Registry
	handler  http.Handler

	entriesCreated  prometheus.Counter
	entriesRejected *prometheus.CounterVec
	conflictPairs   prometheus.Gauge
	exportsRendered *prometheus.CounterVec
}

// NewMetricsService registers the timetable collectors.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	entriesCreated := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "timetable_entries_created_total",
		Help: "Total number of timetable entries admitted",
	})

	entriesRejected := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "timetable_entries_rejected_total",
		Help: "Total number of rejected entry requests by reason code",
	}, []string{"reason"})

	conflictPairs := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "timetable_conflict_pairs",
		Help: "Conflicting entry pairs found by the most recent audit",
	})

	exportsRendered := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "timetable_exports_total",
		Help: "Total number of timetable exports by format",
	}, []string{"format"})

	registry.MustRegister(entriesCreated, entriesRejected, conflictPairs, exportsRendered)

	return &MetricsService{
		registry:        registry,
		handler:         promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		entriesCreated:  entriesCreated,
		entriesRejected: entriesRejected,
		conflictPairs:   conflictPairs,
		exportsRendered: exportsRendered,
	}
}

// Handler exposes the Prometheus scrape handler for embedding applications.
func (m *MetricsService) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// RecordEntryCreated counts an admitted entry.
func (m *MetricsService) RecordEntryCreated() {
	if m == nil {
		return
	}
	m.entriesCreated.Inc()
}

// RecordEntryRejected counts a rejected entry request by reason code.
func (m *MetricsService) RecordEntryRejected(reason string) {
	if m == nil {
		return
	}
	m.entriesRejected.WithLabelValues(reason).Inc()
}

// RecordConflictPairs records the size of the latest conflict audit.
func (m *MetricsService) RecordConflictPairs(count int) {
	if m == nil {
		return
	}
	m.conflictPairs.Set(float64(count))
}

// RecordExport counts a rendered export by format.
func (m *MetricsService) RecordExport(format string) {
	if m == nil {
		return
	}
	m.exportsRendered.WithLabelValues(format).Inc()
}
