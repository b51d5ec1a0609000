package scheduler

import (
	"sort"

	"github.com/forgeflow/forgeflow/internal/domain"
)

// ─── Topological Ordering ───────────────────────────────────────────────────

// CycleBlocked identifies a task excluded from ordering because it
// participates in, or transitively depends on, a dependency cycle.
// Members lists the IDs forming the cycle the task is stuck behind.
type CycleBlocked struct {
	TaskID  string   `json:"task_id"`
	Members []string `json:"cycle_members"`
}

// topoOrder computes a linear execution order over nodes using Kahn's
// algorithm, prerequisites strictly before dependents. A node's in-degree is
// its count of unresolved hard prerequisites: dependencies on tasks outside
// the node set are pre-resolved iff satisfied(id) reports true (completed
// tasks), and the caller must have excluded nodes with unresolvable
// dependencies beforehand.
//
// The ready queue is FIFO: the initially ready set is sorted by priority
// class then task ID, and nodes unlocked by the same dequeue join the tail
// in that same order. Identical snapshots always yield identical orders, and
// a task that was already ready is never ordered behind a freshly unlocked
// dependent. Nodes that never reach in-degree zero — cycle members and
// everything stuck behind them — are returned as CycleBlocked entries instead
// of being silently dropped; the acyclic portion still receives a valid
// partial order.
func topoOrder(g Graph, nodes []domain.TaskRecord, satisfied func(id string) bool) ([]string, []CycleBlocked) {
	inSet := make(map[string]bool, len(nodes))
	byID := make(map[string]domain.TaskRecord, len(nodes))
	for _, n := range nodes {
		inSet[n.ID] = true
		byID[n.ID] = n
	}

	inDegree := make(map[string]int, len(nodes))
	for _, n := range nodes {
		inDegree[n.ID] = 0
		for dep := range g[n.ID] {
			if inSet[dep] {
				inDegree[n.ID]++
			} else if !satisfied(dep) {
				// Caller contract violated; keep the node unorderable
				// rather than ordering it past an unmet prerequisite.
				inDegree[n.ID]++
			}
		}
	}
	dependents := g.Dependents()

	sortReady := func(ids []string) {
		sort.Slice(ids, func(i, j int) bool {
			return readyLess(byID[ids[i]], byID[ids[j]])
		})
	}

	var queue []string
	for _, n := range nodes {
		if inDegree[n.ID] == 0 {
			queue = append(queue, n.ID)
		}
	}
	sortReady(queue)

	order := make([]string, 0, len(nodes))
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		order = append(order, id)

		var unlocked []string
		for _, dep := range dependents[id] {
			if !inSet[dep] {
				continue
			}
			inDegree[dep]--
			if inDegree[dep] == 0 {
				unlocked = append(unlocked, dep)
			}
		}
		sortReady(unlocked)
		queue = append(queue, unlocked...)
	}

	if len(order) == len(nodes) {
		return order, nil
	}

	// Residual nodes are cycle-blocked. Attribute each to the cycle its
	// dependency chain reaches.
	var residual []string
	for _, n := range nodes {
		if inDegree[n.ID] > 0 {
			residual = append(residual, n.ID)
		}
	}
	sort.Strings(residual)

	blocked := make([]CycleBlocked, 0, len(residual))
	for _, id := range residual {
		blocked = append(blocked, CycleBlocked{
			TaskID:  id,
			Members: findCycleMembers(g, id, inDegree),
		})
	}
	return order, blocked
}

func readyLess(a, b domain.TaskRecord) bool {
	if ra, rb := a.Priority.Rank(), b.Priority.Rank(); ra != rb {
		return ra < rb
	}
	return a.ID < b.ID
}

// findCycleMembers walks dependency edges from start through the residual
// subgraph until it revisits a node on the current path, then reports the
// nodes of that cycle in a deterministic order.
func findCycleMembers(g Graph, start string, inDegree map[string]int) []string {
	const (
		white = 0
		gray  = 1
		black = 2
	)
	color := make(map[string]int)

	var cycle []string
	var path []string

	var dfs func(id string) bool
	dfs = func(id string) bool {
		color[id] = gray
		path = append(path, id)
		for _, dep := range sortedDeps(g, id, inDegree) {
			if color[dep] == gray {
				// Reconstruct the cycle from the current path.
				for i := len(path) - 1; i >= 0; i-- {
					cycle = append(cycle, path[i])
					if path[i] == dep {
						break
					}
				}
				return true
			}
			if color[dep] == white && dfs(dep) {
				return true
			}
		}
		color[id] = black
		path = path[:len(path)-1]
		return false
	}

	if !dfs(start) {
		return nil
	}
	sort.Strings(cycle)
	return cycle
}

// sortedDeps returns start's residual dependencies in stable order.
func sortedDeps(g Graph, id string, inDegree map[string]int) []string {
	var deps []string
	for dep := range g[id] {
		if inDegree[dep] > 0 {
			deps = append(deps, dep)
		}
	}
	sort.Strings(deps)
	return deps
}
