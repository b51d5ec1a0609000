package scheduler

import (
	"sort"

	"github.com/forgeflow/forgeflow/internal/domain"
)

// ─── Execution Graph ────────────────────────────────────────────────────────

// Graph maps each task ID to the set of task IDs it hard-depends on.
// Every task appears as a key, even with no dependencies, so downstream
// algorithms never special-case an unknown node.
type Graph map[string]map[string]struct{}

// BuildGraph assembles the hard-dependency graph from the full edge set.
// Advisory (suggests) edges are excluded. Dependencies on completed tasks are
// retained here — graph construction is a pure structural transform; status
// is the ordering pass's concern. Edges referencing IDs absent from tasks are
// skipped; the caller validates those separately.
func BuildGraph(tasks []domain.TaskRecord, edges []domain.DependencyEdge) Graph {
	g := make(Graph, len(tasks))
	for _, t := range tasks {
		g[t.ID] = make(map[string]struct{})
	}
	for _, e := range edges {
		if !e.Kind.IsHard() {
			continue
		}
		deps, ok := g[e.From]
		if !ok {
			continue
		}
		if _, ok := g[e.To]; !ok {
			continue
		}
		deps[e.To] = struct{}{}
	}
	return g
}

// Dependents inverts the graph: task ID → IDs of tasks that depend on it.
func (g Graph) Dependents() map[string][]string {
	out := make(map[string][]string, len(g))
	for from, deps := range g {
		for to := range deps {
			out[to] = append(out[to], from)
		}
	}
	for _, ids := range out {
		sort.Strings(ids)
	}
	return out
}

// Deps returns a sorted slice of the IDs the given task hard-depends on.
func (g Graph) Deps(id string) []string {
	deps := g[id]
	if len(deps) == 0 {
		return nil
	}
	out := make([]string, 0, len(deps))
	for d := range deps {
		out = append(out, d)
	}
	sort.Strings(out)
	return out
}
