package domain

import "errors"

// ─── Sentinel Errors ────────────────────────────────────────────────────────
// Domain errors are pure — no infrastructure dependency.

var (
	// Task store errors
	ErrTaskNotFound = errors.New("task not found")
	ErrTaskExists   = errors.New("task already exists")

	// Validation errors
	ErrUnknownStatus   = errors.New("unknown task status")
	ErrUnknownPriority = errors.New("unknown task priority")
	ErrEmptyTitle      = errors.New("task title must not be empty")

	// Scheduler configuration errors
	ErrInvalidQuota = errors.New("resource quota must not be negative")
	ErrInvalidCap   = errors.New("global concurrency cap must be positive")
)
