package scheduler

import (
	"github.com/forgeflow/forgeflow/internal/domain"
)

// ─── Resource-Constrained Grouping ──────────────────────────────────────────

// Quotas maps a resource category to the number of tasks flagging that
// category allowed in one concurrent batch. Quotas model in-flight limits:
// every batch re-evaluates them from zero, since a batch completing releases
// its resources before the next one starts.
type Quotas map[domain.ResourceCategory]int

// DefaultQuotas returns the default per-category concurrency quotas.
func DefaultQuotas() Quotas {
	return Quotas{
		domain.ResourceCPU:     2,
		domain.ResourceMemory:  2,
		domain.ResourceIO:      4,
		domain.ResourceNetwork: 3,
	}
}

// groupResult partitions ordered ready tasks into parallel-execution batches.
type groupResult struct {
	batches [][]string
	// batchOf records the batch index each task was placed in.
	batchOf map[string]int
	// starved lists tasks whose category quota cannot admit them even into
	// an empty batch (quota misconfiguration, surfaced rather than silently
	// never scheduled).
	starved []string
	// deferred lists tasks skipped because a hard prerequisite was starved
	// or itself deferred, keyed to the unplaced prerequisites.
	deferred map[string][]string
}

// groupBatches makes a single left-to-right greedy pass over tasks already
// sorted by execution order. A task joins the current batch unless doing so
// would exceed a category quota or the global cap, or one of its hard
// prerequisites sits in the current batch; any of those closes the batch and
// opens a new one. A task may only ever land in a batch strictly after every
// batch holding one of its prerequisites: batches run sequentially even
// though tasks within one batch run in parallel.
func groupBatches(ordered []string, g Graph, profiles map[string]domain.ResourceProfile, satisfied func(id string) bool, quotas Quotas, globalCap int) groupResult {
	res := groupResult{
		batchOf:  make(map[string]int),
		deferred: make(map[string][]string),
	}

	var current []string
	counts := make(map[domain.ResourceCategory]int)

	closeBatch := func() {
		if len(current) > 0 {
			res.batches = append(res.batches, current)
			current = nil
			counts = make(map[domain.ResourceCategory]int)
		}
	}

	for _, id := range ordered {
		profile := profiles[id]

		// A task that overflows a quota alone in a fresh batch can never
		// be admitted.
		if isStarved(profile, quotas) {
			res.starved = append(res.starved, id)
			continue
		}

		// Prerequisites that were never placed (starved or deferred
		// themselves) keep this task out of every batch.
		if unplaced := unplacedPrereqs(g, id, res.batchOf, res.starved, res.deferred, satisfied); len(unplaced) > 0 {
			res.deferred[id] = unplaced
			continue
		}

		if !fits(id, profile, g, current, counts, quotas, globalCap, res.batchOf, len(res.batches)) {
			closeBatch()
		}
		current = append(current, id)
		res.batchOf[id] = len(res.batches)
		for _, c := range profile.Categories() {
			counts[c]++
		}
	}
	closeBatch()
	return res
}

// fits reports whether id can join the current batch.
func fits(id string, profile domain.ResourceProfile, g Graph, current []string, counts map[domain.ResourceCategory]int, quotas Quotas, globalCap int, batchOf map[string]int, batchIdx int) bool {
	if len(current) >= globalCap {
		return false
	}
	for _, c := range profile.Categories() {
		if counts[c]+1 > quotas[c] {
			return false
		}
	}
	// A hard prerequisite in the current batch forces a new batch.
	for dep := range g[id] {
		if placed, ok := batchOf[dep]; ok && placed == batchIdx {
			return false
		}
	}
	return true
}

// isStarved reports whether a task's profile exceeds some category quota
// even as the only member of a batch.
func isStarved(profile domain.ResourceProfile, quotas Quotas) bool {
	for _, c := range profile.Categories() {
		if quotas[c] < 1 {
			return true
		}
	}
	return false
}

// unplacedPrereqs returns the hard prerequisites of id that will never be
// placed in a batch: starved tasks and tasks deferred behind them.
func unplacedPrereqs(g Graph, id string, batchOf map[string]int, starved []string, deferred map[string][]string, satisfied func(id string) bool) []string {
	starvedSet := make(map[string]bool, len(starved))
	for _, s := range starved {
		starvedSet[s] = true
	}
	var unplaced []string
	for _, dep := range g.Deps(id) {
		if satisfied(dep) {
			continue
		}
		if _, placed := batchOf[dep]; placed {
			continue
		}
		if starvedSet[dep] || deferred[dep] != nil {
			unplaced = append(unplaced, dep)
		}
	}
	return unplaced
}
