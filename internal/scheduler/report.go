package scheduler

import (
	"github.com/forgeflow/forgeflow/internal/domain"
)

// ─── Schedule Report ────────────────────────────────────────────────────────

// BatchSummary describes one parallel-execution batch for operators.
type BatchSummary struct {
	Index            int                                    `json:"index"`
	TaskIDs          []string                               `json:"task_ids"`
	Titles           []string                               `json:"titles"`
	Flags            map[string][]domain.ResourceCategory   `json:"flags,omitempty"`
	EstimatedMinutes int                                    `json:"estimated_minutes"`
}

// BlockedTaskInfo flattens one blocked task for operator visibility.
type BlockedTaskInfo struct {
	TaskID     string   `json:"task_id"`
	Title      string   `json:"title"`
	Reason     string   `json:"reason"`
	Unresolved []string `json:"unresolved,omitempty"`
}

// Report aggregates a computed schedule. Pure; safe to recompute repeatedly
// over the same schedule.
type Report struct {
	TotalTasks        int `json:"total_tasks"`
	PendingTasks      int `json:"pending_tasks"`
	CompletedTasks    int `json:"completed_tasks"`
	ScheduledTasks    int `json:"scheduled_tasks"`
	CycleBlocked      int `json:"cycle_blocked"`
	DependencyBlocked int `json:"dependency_blocked"`
	QuotaStarved      int `json:"quota_starved"`

	// TotalEstimatedMinutes is the longest path through sequential batches:
	// the sum over batches of each batch's longest task, not the flat sum
	// of all durations.
	TotalEstimatedMinutes int `json:"total_estimated_minutes"`

	Batches     []BatchSummary                       `json:"batches"`
	Utilization map[domain.ResourceCategory]float64  `json:"utilization"`
	Blocked     []BlockedTaskInfo                    `json:"blocked,omitempty"`
}

// buildReport aggregates the outputs of the scheduling pipeline.
func buildReport(tasks []domain.TaskRecord, result *Result, profiles map[string]domain.ResourceProfile) Report {
	byID := make(map[string]domain.TaskRecord, len(tasks))
	pending, completed := 0, 0
	for _, t := range tasks {
		byID[t.ID] = t
		switch t.Status {
		case domain.TaskPending:
			pending++
		case domain.TaskCompleted:
			completed++
		}
	}

	r := Report{
		TotalTasks:        len(tasks),
		PendingTasks:      pending,
		CompletedTasks:    completed,
		CycleBlocked:      len(result.BlockedByCycle),
		DependencyBlocked: len(result.BlockedByDependency),
		QuotaStarved:      len(result.QuotaStarved),
		Utilization:       make(map[domain.ResourceCategory]float64),
	}

	flagged := make(map[domain.ResourceCategory]int)
	scheduled := 0
	for _, batch := range result.Batches {
		summary := BatchSummary{
			Index:   len(r.Batches),
			TaskIDs: batch,
			Flags:   make(map[string][]domain.ResourceCategory),
		}
		for _, id := range batch {
			scheduled++
			summary.Titles = append(summary.Titles, byID[id].Title)
			p := profiles[id]
			cats := p.Categories()
			if len(cats) > 0 {
				summary.Flags[id] = cats
			}
			for _, c := range cats {
				flagged[c]++
			}
			if p.EstimatedMinutes > summary.EstimatedMinutes {
				summary.EstimatedMinutes = p.EstimatedMinutes
			}
		}
		r.TotalEstimatedMinutes += summary.EstimatedMinutes
		r.Batches = append(r.Batches, summary)
	}
	r.ScheduledTasks = scheduled

	for _, c := range domain.ResourceCategories {
		if scheduled > 0 {
			r.Utilization[c] = float64(flagged[c]) / float64(scheduled)
		} else {
			r.Utilization[c] = 0
		}
	}

	for _, cb := range result.BlockedByCycle {
		r.Blocked = append(r.Blocked, BlockedTaskInfo{
			TaskID:     cb.TaskID,
			Title:      byID[cb.TaskID].Title,
			Reason:     "cycle",
			Unresolved: cb.Members,
		})
	}
	for _, db := range result.BlockedByDependency {
		r.Blocked = append(r.Blocked, BlockedTaskInfo{
			TaskID:     db.TaskID,
			Title:      byID[db.TaskID].Title,
			Reason:     db.Reason,
			Unresolved: db.Unresolved,
		})
	}
	return r
}
