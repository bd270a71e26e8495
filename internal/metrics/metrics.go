package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	EventsAppended = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inspector_events_appended_total",
		Help: "Total number of raw events appended to the history, labelled by category.",
	}, []string{"category"})

	EventsEvicted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "inspector_events_evicted_total",
		Help: "Total number of events dropped from the front of a full history.",
	})

	MergesRun = promauto.NewCounter(prometheus.CounterOpts{
		Name: "inspector_merges_total",
		Help: "Total number of correlation passes run.",
	})

	ResponsesPaired = promauto.NewCounter(prometheus.CounterOpts{
		Name: "inspector_responses_paired_total",
		Help: "Closing events absorbed into an earlier entry, summed over all passes.",
	})

	OrphanResponses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "inspector_orphan_responses_total",
		Help: "Closing events with no pending request, summed over all passes.",
	})

	PendingEntries = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "inspector_pending_entries",
		Help: "Unresolved pairable entries after the most recent history merge.",
	})

	HistorySize = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "inspector_history_events",
		Help: "Number of raw events currently held in the history.",
	})

	MergeDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "inspector_merge_duration_ms",
		Help:    "Correlation plus projection latency in milliseconds.",
		Buckets: []float64{0.1, 0.5, 1, 5, 10, 25, 50, 100, 250, 500},
	})

	TableReloads = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inspector_table_reloads_total",
		Help: "Classifier table reloads, labelled by outcome.",
	}, []string{"status"})
)
