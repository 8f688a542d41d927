package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Manager struct {
	// counters
	CounterUpstreamCalls *prometheus.CounterVec
	CounterPublishes     *prometheus.CounterVec

	// gauges
	GaugeLastSyncSuccess prometheus.Gauge
	GaugeSyncedDaysRange prometheus.Gauge

	// histograms
	HistUpstreamCallDuration *prometheus.HistogramVec
	HistSyncStageDuration    *prometheus.HistogramVec
}

func NewTestManager() *Manager {
	return NewManager("intervals", "sync", prometheus.NewRegistry())
}

func NewTestManagerAndRegistry() (*Manager, *prometheus.Registry) {
	reg := prometheus.NewRegistry()
	return NewManager("intervals", "sync", reg), reg
}

func NewManager(namespace, subsystem string, reg prometheus.Registerer) *Manager {
	factory := promauto.With(reg)

	counterUpstreamCalls := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "upstream_calls",
		Help:      "The total number of calls made to the intervals.icu API",
	}, []string{"resource", "status"})
	counterPublishes := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "publishes",
		Help:      "The total number of published documents",
	}, []string{"destination", "outcome"})

	gaugeLastSyncSuccess := factory.NewGauge(prometheus.GaugeOpts{
		Namespace:   namespace,
		Subsystem:   subsystem,
		Name:        "last_success_timestamp_seconds",
		Help:        "Unix timestamp of the last fully successful sync",
		ConstLabels: nil,
	})
	gaugeSyncedDaysRange := factory.NewGauge(prometheus.GaugeOpts{
		Namespace:   namespace,
		Subsystem:   subsystem,
		Name:        "synced_days_range",
		Help:        "Number of days covered by the last synced summary",
		ConstLabels: nil,
	})

	histUpstreamCallDuration := factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "upstream_call_duration_seconds",
		Help:      "Histogram of intervals.icu API call durations in seconds",
		Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
	}, []string{"resource"})
	histSyncStageDuration := factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "stage_duration_seconds",
		Help:      "Histogram of sync stage durations in seconds",
		Buckets:   []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60},
	}, []string{"stage"})

	return &Manager{
		CounterUpstreamCalls:     counterUpstreamCalls,
		CounterPublishes:         counterPublishes,
		GaugeLastSyncSuccess:     gaugeLastSyncSuccess,
		GaugeSyncedDaysRange:     gaugeSyncedDaysRange,
		HistUpstreamCallDuration: histUpstreamCallDuration,
		HistSyncStageDuration:    histSyncStageDuration,
	}
}
