package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func gatheredNames(t *testing.T) map[string]bool {
	t.Helper()
	families, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		t.Fatalf("Gather() error: %v", err)
	}
	names := make(map[string]bool, len(families))
	for _, f := range families {
		names[f.GetName()] = true
	}
	return names
}

func TestMetrics_Registered(t *testing.T) {
	// promauto registers with the default registry; recording must not panic.
	SchedulePasses.Inc()
	PassDuration.Observe(0.002)
	TasksScheduled.Add(3)
	TasksBlocked.WithLabelValues("cycle").Inc()
	TasksBlocked.WithLabelValues("dependency").Inc()
	TasksBlocked.WithLabelValues("quota").Inc()
	BatchesPerPass.Observe(2)
	BatchSize.Observe(3)

	names := gatheredNames(t)
	for _, want := range []string{
		"forgeflow_schedule_passes_total",
		"forgeflow_schedule_pass_duration_seconds",
		"forgeflow_tasks_scheduled_total",
		"forgeflow_tasks_blocked_total",
		"forgeflow_batches_per_pass",
		"forgeflow_batch_size",
	} {
		if !names[want] {
			t.Errorf("metric %s not found in gathered metrics", want)
		}
	}
}
