package api

import (
	"net/http"
	"time"

	"github.com/forgeflow/forgeflow/internal/infra/metrics"
	"github.com/forgeflow/forgeflow/internal/scheduler"
)

// computePass loads the current snapshot and runs one scheduling pass,
// recording pass metrics. The store holds durable task rows; the schedule
// itself is recomputed per request and never persisted.
func (s *Server) computePass() (scheduler.Result, error) {
	tasks, err := s.store.ListTasks("")
	if err != nil {
		return scheduler.Result{}, err
	}

	start := time.Now()
	result := scheduler.ComputeSchedule(tasks, s.schedConfig)
	metrics.PassDuration.Observe(time.Since(start).Seconds())
	metrics.SchedulePasses.Inc()

	metrics.TasksScheduled.Add(float64(result.Report.ScheduledTasks))
	metrics.TasksBlocked.WithLabelValues("cycle").Add(float64(result.Report.CycleBlocked))
	metrics.TasksBlocked.WithLabelValues("dependency").Add(float64(result.Report.DependencyBlocked))
	metrics.TasksBlocked.WithLabelValues("quota").Add(float64(result.Report.QuotaStarved))
	metrics.BatchesPerPass.Observe(float64(len(result.Batches)))
	for _, batch := range result.Batches {
		metrics.BatchSize.Observe(float64(len(batch)))
	}

	return result, nil
}

// handleComputeSchedule runs a full scheduling pass and returns the complete
// result: ordered tasks, batches, blocked listings, and the report.
func (s *Server) handleComputeSchedule(w http.ResponseWriter, r *http.Request) {
	result, err := s.computePass()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// handleNextBatch answers "give me the next batch to run": the first batch
// of a fresh pass, with full task records for the executor's convenience.
func (s *Server) handleNextBatch(w http.ResponseWriter, r *http.Request) {
	result, err := s.computePass()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if len(result.Batches) == 0 {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"batch": []scheduler.ScheduledTask{},
		})
		return
	}

	first := result.Batches[0]
	byID := make(map[string]scheduler.ScheduledTask, len(result.Ordered))
	for _, st := range result.Ordered {
		byID[st.Task.ID] = st
	}
	batch := make([]scheduler.ScheduledTask, 0, len(first))
	for _, id := range first {
		batch = append(batch, byID[id])
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"batch": batch,
	})
}
