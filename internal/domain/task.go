// Package domain holds the pure task types shared by the scheduler core,
// the store, and the API. A TaskRecord is produced by the upstream issue
// analyzer, persisted by the store, and read-only for the scheduler:
// analyze → persist → schedule → execute.
package domain

import "time"

// TaskStatus tracks the task lifecycle as owned by the task store.
type TaskStatus string

const (
	TaskPending    TaskStatus = "pending"
	TaskInProgress TaskStatus = "in_progress"
	TaskCompleted  TaskStatus = "completed"
	TaskBlocked    TaskStatus = "blocked"
	TaskFailed     TaskStatus = "failed"
)

// Valid reports whether s is a known lifecycle status.
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskPending, TaskInProgress, TaskCompleted, TaskBlocked, TaskFailed:
		return true
	}
	return false
}

// TaskPriority classifies task urgency.
type TaskPriority string

const (
	PriorityCritical TaskPriority = "critical"
	PriorityHigh     TaskPriority = "high"
	PriorityMedium   TaskPriority = "medium"
	PriorityLow      TaskPriority = "low"
)

// Rank returns the numeric class of a priority, lower is more urgent.
// Unknown priorities sort last.
func (p TaskPriority) Rank() int {
	switch p {
	case PriorityCritical:
		return 0
	case PriorityHigh:
		return 1
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 3
	}
	return 4
}

// Valid reports whether p is a known priority class.
func (p TaskPriority) Valid() bool {
	return p.Rank() < 4
}

// TaskRecord is a unit of work produced by the upstream analyzer.
// The scheduler treats it as an immutable snapshot row.
type TaskRecord struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Priority    TaskPriority `json:"priority"`
	Status      TaskStatus   `json:"status"`
	CreatedAt   time.Time    `json:"created_at"`
}

// Schedulable reports whether the task is eligible for (re)scheduling.
// Only pending tasks receive an execution order; completed tasks satisfy
// dependents but are never emitted in batches.
func (t *TaskRecord) Schedulable() bool {
	return t.Status == TaskPending
}
