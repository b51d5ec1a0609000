package scheduler

import (
	"reflect"
	"testing"

	"github.com/forgeflow/forgeflow/internal/domain"
)

func graphOf(t *testing.T, nodes []domain.TaskRecord, deps map[string][]string) Graph {
	t.Helper()
	var edges []domain.DependencyEdge
	for from, tos := range deps {
		for _, to := range tos {
			edges = append(edges, domain.DependencyEdge{From: from, To: to, Kind: domain.EdgeRequires, Weight: 1})
		}
	}
	return BuildGraph(nodes, edges)
}

func noneSatisfied(string) bool { return false }

func indexOf(order []string, id string) int {
	for i, v := range order {
		if v == id {
			return i
		}
	}
	return -1
}

func TestTopoOrder_LinearChain(t *testing.T) {
	nodes := []domain.TaskRecord{pendingTask("a"), pendingTask("b"), pendingTask("c")}
	g := graphOf(t, nodes, map[string][]string{"b": {"a"}, "c": {"b"}})

	order, cycles := topoOrder(g, nodes, noneSatisfied)
	if len(cycles) != 0 {
		t.Fatalf("unexpected cycles: %v", cycles)
	}
	if !reflect.DeepEqual(order, []string{"a", "b", "c"}) {
		t.Errorf("order = %v, want [a b c]", order)
	}
}

func TestTopoOrder_Diamond(t *testing.T) {
	nodes := []domain.TaskRecord{pendingTask("a"), pendingTask("b"), pendingTask("c"), pendingTask("d")}
	g := graphOf(t, nodes, map[string][]string{
		"b": {"a"},
		"c": {"a"},
		"d": {"b", "c"},
	})

	order, cycles := topoOrder(g, nodes, noneSatisfied)
	if len(cycles) != 0 {
		t.Fatalf("unexpected cycles: %v", cycles)
	}
	if len(order) != 4 {
		t.Fatalf("order has %d entries, want 4: %v", len(order), order)
	}
	for _, pair := range [][2]string{{"a", "b"}, {"a", "c"}, {"b", "d"}, {"c", "d"}} {
		if indexOf(order, pair[0]) >= indexOf(order, pair[1]) {
			t.Errorf("expected %s before %s in %v", pair[0], pair[1], order)
		}
	}
}

func TestTopoOrder_PriorityTieBreak(t *testing.T) {
	low := pendingTask("aaa")
	low.Priority = domain.PriorityLow
	crit := pendingTask("zzz")
	crit.Priority = domain.PriorityCritical
	nodes := []domain.TaskRecord{low, crit}

	order, _ := topoOrder(graphOf(t, nodes, nil), nodes, noneSatisfied)

	// Priority class outranks lexicographic ID among equally-ready tasks.
	if !reflect.DeepEqual(order, []string{"zzz", "aaa"}) {
		t.Errorf("order = %v, want [zzz aaa]", order)
	}
}

func TestTopoOrder_IDTieBreak(t *testing.T) {
	nodes := []domain.TaskRecord{pendingTask("b"), pendingTask("a"), pendingTask("c")}

	order, _ := topoOrder(graphOf(t, nodes, nil), nodes, noneSatisfied)

	if !reflect.DeepEqual(order, []string{"a", "b", "c"}) {
		t.Errorf("order = %v, want [a b c]", order)
	}
}

func TestTopoOrder_ReadyBeforeUnlocked(t *testing.T) {
	// b depends on a; c is independent. Dequeuing a unlocks b, but c was
	// ready from the start and must keep its place ahead of b even though
	// "b" sorts before "c".
	nodes := []domain.TaskRecord{pendingTask("a"), pendingTask("b"), pendingTask("c")}
	g := graphOf(t, nodes, map[string][]string{"b": {"a"}})

	order, cycles := topoOrder(g, nodes, noneSatisfied)
	if len(cycles) != 0 {
		t.Fatalf("unexpected cycles: %v", cycles)
	}
	if !reflect.DeepEqual(order, []string{"a", "c", "b"}) {
		t.Errorf("order = %v, want [a c b]", order)
	}
}

func TestTopoOrder_CompletedSatisfies(t *testing.T) {
	nodes := []domain.TaskRecord{pendingTask("b")}
	// b depends on "done", which is outside the node set but satisfied.
	g := Graph{"b": {"done": {}}, "done": {}}

	order, cycles := topoOrder(g, nodes, func(id string) bool { return id == "done" })
	if len(cycles) != 0 {
		t.Fatalf("unexpected cycles: %v", cycles)
	}
	if !reflect.DeepEqual(order, []string{"b"}) {
		t.Errorf("order = %v, want [b]", order)
	}
}

func TestTopoOrder_CycleContainment(t *testing.T) {
	nodes := []domain.TaskRecord{
		pendingTask("a"), pendingTask("b"), pendingTask("c"),
		pendingTask("x"), pendingTask("y"),
	}
	// a<->b form a cycle, c depends on the cycle; x,y are unaffected.
	g := graphOf(t, nodes, map[string][]string{
		"a": {"b"},
		"b": {"a"},
		"c": {"a"},
		"y": {"x"},
	})

	order, cycles := topoOrder(g, nodes, noneSatisfied)

	if !reflect.DeepEqual(order, []string{"x", "y"}) {
		t.Errorf("order = %v, want [x y]", order)
	}

	blockedIDs := make([]string, len(cycles))
	for i, cb := range cycles {
		blockedIDs[i] = cb.TaskID
	}
	if !reflect.DeepEqual(blockedIDs, []string{"a", "b", "c"}) {
		t.Fatalf("cycle-blocked = %v, want [a b c]", blockedIDs)
	}
	for _, cb := range cycles {
		if !reflect.DeepEqual(cb.Members, []string{"a", "b"}) {
			t.Errorf("cycle members for %s = %v, want [a b]", cb.TaskID, cb.Members)
		}
	}
}

func TestTopoOrder_SelfCycle(t *testing.T) {
	nodes := []domain.TaskRecord{pendingTask("a"), pendingTask("b")}
	g := graphOf(t, nodes, map[string][]string{"a": {"a"}})

	order, cycles := topoOrder(g, nodes, noneSatisfied)

	if !reflect.DeepEqual(order, []string{"b"}) {
		t.Errorf("order = %v, want [b]", order)
	}
	if len(cycles) != 1 || cycles[0].TaskID != "a" {
		t.Fatalf("cycles = %v, want a single entry for a", cycles)
	}
	if !reflect.DeepEqual(cycles[0].Members, []string{"a"}) {
		t.Errorf("members = %v, want [a]", cycles[0].Members)
	}
}

func TestTopoOrder_Empty(t *testing.T) {
	order, cycles := topoOrder(Graph{}, nil, noneSatisfied)
	if len(order) != 0 || len(cycles) != 0 {
		t.Errorf("expected empty results, got order=%v cycles=%v", order, cycles)
	}
}
