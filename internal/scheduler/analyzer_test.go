package scheduler

import (
	"reflect"
	"testing"

	"github.com/forgeflow/forgeflow/internal/domain"
)

func edgeSet(edges []domain.DependencyEdge) map[string]domain.EdgeKind {
	set := make(map[string]domain.EdgeKind, len(edges))
	for _, e := range edges {
		set[e.From+"->"+e.To] = e.Kind
	}
	return set
}

func TestKeywordStrategy_HardEdge(t *testing.T) {
	tasks := []domain.TaskRecord{
		{ID: "t1", Title: "Set up database schema", Status: domain.TaskPending},
		{ID: "t2", Title: "Migrate data", Description: "depends on Set up database schema", Status: domain.TaskPending},
	}

	edges := NewKeywordStrategy().Infer(tasks)
	set := edgeSet(edges)
	if kind, ok := set["t2->t1"]; !ok || kind != domain.EdgeRequires {
		t.Fatalf("expected requires edge t2->t1, got %v", edges)
	}
	if _, ok := set["t1->t2"]; ok {
		t.Errorf("unexpected reverse edge t1->t2")
	}
}

func TestKeywordStrategy_AdvisoryEdge(t *testing.T) {
	tasks := []domain.TaskRecord{
		{ID: "a", Title: "Publish release notes", Status: domain.TaskPending},
		{ID: "b", Title: "Announce launch", Description: "recommended after review of Publish release notes", Status: domain.TaskPending},
	}

	edges := NewKeywordStrategy().Infer(tasks)
	// "recommended" and "after" both match; both edges are recorded and the
	// hard one governs ordering downstream.
	kinds := make(map[domain.EdgeKind]bool)
	for _, e := range edges {
		if e.From != "b" || e.To != "a" {
			t.Fatalf("unexpected edge %+v", e)
		}
		kinds[e.Kind] = true
	}
	if !kinds[domain.EdgeRequires] || !kinds[domain.EdgeSuggests] {
		t.Errorf("expected requires and suggests edges, got %v", edges)
	}
}

func TestKeywordStrategy_SelfReferenceDiscarded(t *testing.T) {
	tasks := []domain.TaskRecord{
		{ID: "a", Title: "deploy service", Description: "requires deploy service config", Status: domain.TaskPending},
	}

	if edges := NewKeywordStrategy().Infer(tasks); len(edges) != 0 {
		t.Errorf("expected no edges for self-reference, got %v", edges)
	}
}

func TestKeywordStrategy_NoTriggers(t *testing.T) {
	tasks := []domain.TaskRecord{
		{ID: "a", Title: "Update documentation", Status: domain.TaskPending},
		{ID: "b", Title: "Fix typo", Status: domain.TaskPending},
	}

	if edges := NewKeywordStrategy().Infer(tasks); len(edges) != 0 {
		t.Errorf("expected empty edge list, got %v", edges)
	}
}

func TestKeywordStrategy_EmptyInput(t *testing.T) {
	if edges := NewKeywordStrategy().Infer(nil); len(edges) != 0 {
		t.Errorf("expected empty edge list for nil input, got %v", edges)
	}
}

func TestKeywordStrategy_Deterministic(t *testing.T) {
	tasks := []domain.TaskRecord{
		{ID: "t1", Title: "build images", Status: domain.TaskPending},
		{ID: "t2", Title: "push registry", Description: "requires build images", Status: domain.TaskPending},
		{ID: "t3", Title: "deploy cluster", Description: "blocked by push registry, needs build images", Status: domain.TaskPending},
	}

	s := NewKeywordStrategy()
	first := s.Infer(tasks)
	second := s.Infer(tasks)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("Infer not deterministic:\n%v\n%v", first, second)
	}
}

func TestStrategyFunc(t *testing.T) {
	want := []domain.DependencyEdge{{From: "a", To: "b", Kind: domain.EdgeRequires, Weight: 1}}
	s := StrategyFunc(func([]domain.TaskRecord) []domain.DependencyEdge { return want })
	if got := s.Infer(nil); !reflect.DeepEqual(got, want) {
		t.Errorf("StrategyFunc.Infer = %v, want %v", got, want)
	}
}
