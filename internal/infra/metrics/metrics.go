// Package metrics provides Prometheus metrics for forgeflow scheduling
// passes. The scheduler core stays pure; the daemon and API layer record
// these around each ComputeSchedule call.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ─── Scheduling Passes ──────────────────────────────────────────────────────

// SchedulePasses counts completed scheduling passes.
var SchedulePasses = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "forgeflow",
	Name:      "schedule_passes_total",
	Help:      "Total scheduling passes computed.",
})

// PassDuration tracks wall-clock time of a scheduling pass in seconds.
var PassDuration = promauto.NewHistogram(prometheus.HistogramOpts{
	Namespace: "forgeflow",
	Name:      "schedule_pass_duration_seconds",
	Help:      "Scheduling pass duration in seconds.",
	Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
})

// ─── Pass Outcomes ──────────────────────────────────────────────────────────

// TasksScheduled counts tasks placed into batches, across all passes.
var TasksScheduled = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "forgeflow",
	Name:      "tasks_scheduled_total",
	Help:      "Total tasks placed into execution batches.",
})

// TasksBlocked counts tasks excluded from batches, by reason.
var TasksBlocked = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "forgeflow",
	Name:      "tasks_blocked_total",
	Help:      "Total tasks excluded from scheduling.",
}, []string{"reason"})

// BatchesPerPass tracks how many batches each pass produced.
var BatchesPerPass = promauto.NewHistogram(prometheus.HistogramOpts{
	Namespace: "forgeflow",
	Name:      "batches_per_pass",
	Help:      "Number of batches produced by one scheduling pass.",
	Buckets:   []float64{0, 1, 2, 4, 8, 16, 32},
})

// BatchSize tracks produced batch sizes.
var BatchSize = promauto.NewHistogram(prometheus.HistogramOpts{
	Namespace: "forgeflow",
	Name:      "batch_size",
	Help:      "Size of produced execution batches.",
	Buckets:   []float64{1, 2, 3, 4, 6, 8},
})
