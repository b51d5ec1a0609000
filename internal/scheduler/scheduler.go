package scheduler

import (
	"fmt"
	"sort"
	"time"

	"github.com/forgeflow/forgeflow/internal/domain"
)

// ─── Configuration ──────────────────────────────────────────────────────────

// Config configures one scheduling pass. All fields are optional; zero
// values fall back to defaults.
type Config struct {
	// GlobalCap limits the total size of any single batch (default 3).
	GlobalCap int
	// Quotas limits per-category membership of any batch (see DefaultQuotas).
	Quotas Quotas
	// Strategy infers dependency edges (default: keyword heuristic).
	Strategy Strategy
	// Clock seeds the simulated start time for batch timing estimates
	// (default time.Now). Pin it for reproducible output.
	Clock func() time.Time
}

// DefaultConfig returns production scheduling defaults.
func DefaultConfig() Config {
	return Config{
		GlobalCap: 3,
		Quotas:    DefaultQuotas(),
		Strategy:  NewKeywordStrategy(),
		Clock:     time.Now,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.GlobalCap < 1 {
		c.GlobalCap = d.GlobalCap
	}
	if c.Quotas == nil {
		c.Quotas = d.Quotas
	} else {
		quotas := make(Quotas, len(domain.ResourceCategories))
		for _, cat := range domain.ResourceCategories {
			q, ok := c.Quotas[cat]
			if !ok {
				q = d.Quotas[cat]
			}
			if q < 0 {
				q = 0
			}
			quotas[cat] = q
		}
		c.Quotas = quotas
	}
	if c.Strategy == nil {
		c.Strategy = d.Strategy
	}
	if c.Clock == nil {
		c.Clock = d.Clock
	}
	return c
}

// ─── Result Types ───────────────────────────────────────────────────────────

// ScheduleStatus is the scheduler's verdict on one task.
type ScheduleStatus string

const (
	StatusReady               ScheduleStatus = "ready"
	StatusBlockedByDependency ScheduleStatus = "blocked_by_dependency"
	StatusBlockedByCycle      ScheduleStatus = "blocked_by_cycle"
	StatusBlockedByResource   ScheduleStatus = "blocked_by_resource"
)

// ScheduledTask wraps a task record with scheduling annotations. The input
// record is copied, never written back.
type ScheduledTask struct {
	Task           domain.TaskRecord      `json:"task"`
	Profile        domain.ResourceProfile `json:"profile"`
	ExecutionOrder int                    `json:"execution_order"`
	EstimatedStart time.Time              `json:"estimated_start,omitempty"`
	EstimatedEnd   time.Time              `json:"estimated_end,omitempty"`
	CanParallelize bool                   `json:"can_parallelize"`
	Status         ScheduleStatus         `json:"schedule_status"`
}

// DependencyBlocked identifies a task excluded from scheduling because a
// prerequisite cannot be satisfied: a dependency on a failed or in-progress
// task, a malformed input, or a prerequisite that was never placed in a batch.
type DependencyBlocked struct {
	TaskID     string   `json:"task_id"`
	Unresolved []string `json:"unresolved,omitempty"`
	Reason     string   `json:"reason"`
}

// Result is the complete output of one scheduling pass. It carries no hidden
// state: identical snapshots yield identical results.
type Result struct {
	Ordered             []ScheduledTask         `json:"ordered_tasks"`
	Batches             [][]string              `json:"batches"`
	BlockedByCycle      []CycleBlocked          `json:"blocked_by_cycle"`
	BlockedByDependency []DependencyBlocked     `json:"blocked_by_dependency"`
	QuotaStarved        []string                `json:"quota_starved,omitempty"`
	Edges               []domain.DependencyEdge `json:"edges,omitempty"`
	Report              Report                  `json:"report"`
}

// ─── Compute ────────────────────────────────────────────────────────────────

// ComputeSchedule runs one full scheduling pass over a read-only snapshot of
// task records: validation, profiling, dependency inference, hard-graph
// construction, topological ordering with cycle containment, and
// resource-bounded batch partitioning. It never fails for a structurally
// valid task set — malformed tasks and cycles are reported, not fatal — and
// an empty snapshot yields an empty, well-formed result.
func ComputeSchedule(tasks []domain.TaskRecord, cfg Config) Result {
	cfg = cfg.withDefaults()
	result := Result{Batches: [][]string{}}

	// Validation: exclude malformed records, keep the rest of the pass alive.
	blocked := make(map[string]*DependencyBlocked)
	// Duplicates are reported separately: the blocked map is keyed by ID and
	// must not poison the record that legitimately owns it.
	var duplicates []DependencyBlocked
	valid := make([]domain.TaskRecord, 0, len(tasks))
	seen := make(map[string]bool, len(tasks))
	for _, t := range tasks {
		switch {
		case seen[t.ID]:
			duplicates = append(duplicates, DependencyBlocked{
				TaskID: t.ID,
				Reason: "duplicate task id",
			})
		case !t.Status.Valid():
			blocked[t.ID] = &DependencyBlocked{
				TaskID: t.ID,
				Reason: fmt.Sprintf("unknown status %q", t.Status),
			}
			seen[t.ID] = true
		default:
			valid = append(valid, t)
			seen[t.ID] = true
		}
	}

	profiles := make(map[string]domain.ResourceProfile, len(valid))
	byID := make(map[string]domain.TaskRecord, len(valid))
	for _, t := range valid {
		profiles[t.ID] = Profile(t)
		byID[t.ID] = t
	}

	// Inference is best-effort; edges referencing unknown tasks block the
	// referencing task, not the pass.
	edges := cfg.Strategy.Infer(valid)
	kept := edges[:0:0]
	for _, e := range edges {
		if _, ok := byID[e.To]; ok {
			kept = append(kept, e)
			continue
		}
		if e.Kind.IsHard() {
			if _, ok := byID[e.From]; ok {
				b := blocked[e.From]
				if b == nil {
					b = &DependencyBlocked{TaskID: e.From, Reason: "dependency on unknown task"}
					blocked[e.From] = b
				}
				b.Unresolved = append(b.Unresolved, e.To)
			}
		}
	}
	result.Edges = kept

	g := BuildGraph(valid, kept)

	completed := make(map[string]bool)
	for _, t := range valid {
		if t.Status == domain.TaskCompleted {
			completed[t.ID] = true
		}
	}
	satisfied := func(id string) bool { return completed[id] }

	// A pending task whose prerequisite is neither completed nor itself
	// schedulable (in_progress, blocked, failed, or excluded above) cannot
	// be ordered; the blockage propagates to its transitive dependents.
	markDependencyBlocked(valid, g, completed, blocked)

	nodes := make([]domain.TaskRecord, 0, len(valid))
	for _, t := range valid {
		if t.Schedulable() && blocked[t.ID] == nil {
			nodes = append(nodes, t)
		}
	}

	order, cycleBlocked := topoOrder(g, nodes, satisfied)
	result.BlockedByCycle = cycleBlocked

	grouped := groupBatches(order, g, profiles, satisfied, cfg.Quotas, cfg.GlobalCap)
	result.Batches = append(result.Batches, grouped.batches...)
	result.QuotaStarved = grouped.starved
	for id, unresolved := range grouped.deferred {
		blocked[id] = &DependencyBlocked{
			TaskID:     id,
			Unresolved: unresolved,
			Reason:     "prerequisite never scheduled",
		}
	}

	// Annotate the ordered tasks: rank, status, simulated timing.
	starvedSet := make(map[string]bool, len(grouped.starved))
	for _, id := range grouped.starved {
		starvedSet[id] = true
	}
	result.Ordered = make([]ScheduledTask, 0, len(order))
	for rank, id := range order {
		st := ScheduledTask{
			Task:           byID[id],
			Profile:        profiles[id],
			ExecutionOrder: rank,
			CanParallelize: profiles[id].CanParallelize(),
			Status:         StatusReady,
		}
		switch {
		case starvedSet[id]:
			st.Status = StatusBlockedByResource
		case blocked[id] != nil:
			st.Status = StatusBlockedByDependency
		}
		result.Ordered = append(result.Ordered, st)
	}
	applyTiming(result.Ordered, result.Batches, profiles, cfg.Clock())

	for _, b := range blocked {
		result.BlockedByDependency = append(result.BlockedByDependency, *b)
	}
	result.BlockedByDependency = append(result.BlockedByDependency, duplicates...)
	sort.Slice(result.BlockedByDependency, func(i, j int) bool {
		return result.BlockedByDependency[i].TaskID < result.BlockedByDependency[j].TaskID
	})

	result.Report = buildReport(tasks, &result, profiles)
	return result
}

// markDependencyBlocked records pending tasks with unsatisfiable
// prerequisites and propagates the blockage to transitive dependents.
func markDependencyBlocked(valid []domain.TaskRecord, g Graph, completed map[string]bool, blocked map[string]*DependencyBlocked) {
	status := make(map[string]domain.TaskStatus, len(valid))
	for _, t := range valid {
		status[t.ID] = t.Status
	}

	unsatisfiable := func(dep string) bool {
		if completed[dep] {
			return false
		}
		if blocked[dep] != nil {
			return true
		}
		return status[dep] != domain.TaskPending
	}

	// Iterate to a fixpoint: each round can unlock new transitive blockages.
	for changed := true; changed; {
		changed = false
		for _, t := range valid {
			if t.Status != domain.TaskPending || blocked[t.ID] != nil {
				continue
			}
			var unresolved []string
			for _, dep := range g.Deps(t.ID) {
				if unsatisfiable(dep) {
					unresolved = append(unresolved, dep)
				}
			}
			if len(unresolved) > 0 {
				blocked[t.ID] = &DependencyBlocked{
					TaskID:     t.ID,
					Unresolved: unresolved,
					Reason:     "unresolvable prerequisite",
				}
				changed = true
			}
		}
	}
}

// applyTiming walks the batches with a simulated clock: every task in a batch
// starts when the batch starts, and the next batch starts once the longest
// task of the current one finishes.
func applyTiming(ordered []ScheduledTask, batches [][]string, profiles map[string]domain.ResourceProfile, base time.Time) {
	idx := make(map[string]int, len(ordered))
	for i, st := range ordered {
		idx[st.Task.ID] = i
	}

	clock := base
	for _, batch := range batches {
		longest := 0
		for _, id := range batch {
			i, ok := idx[id]
			if !ok {
				continue
			}
			minutes := profiles[id].EstimatedMinutes
			ordered[i].EstimatedStart = clock
			ordered[i].EstimatedEnd = clock.Add(time.Duration(minutes) * time.Minute)
			if minutes > longest {
				longest = minutes
			}
		}
		clock = clock.Add(time.Duration(longest) * time.Minute)
	}
}
