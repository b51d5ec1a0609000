package scheduler

import (
	"sort"
	"strings"

	"github.com/forgeflow/forgeflow/internal/domain"
)

// ─── Dependency Analyzer ────────────────────────────────────────────────────

// Strategy infers dependency edges between tasks. The keyword heuristic is
// the default; a higher-fidelity backend (semantic similarity, explicit
// manifest fields) can be substituted without touching the rest of the
// scheduler. An inference pass that finds nothing returns an empty list.
type Strategy interface {
	Infer(tasks []domain.TaskRecord) []domain.DependencyEdge
}

// StrategyFunc adapts a plain function to the Strategy interface.
type StrategyFunc func(tasks []domain.TaskRecord) []domain.DependencyEdge

// Infer calls f.
func (f StrategyFunc) Infer(tasks []domain.TaskRecord) []domain.DependencyEdge {
	return f(tasks)
}

// Trigger maps a phrase to the edge kind and confidence it implies.
// Phrases are matched case-insensitively against task text.
type Trigger struct {
	Phrase string
	Kind   domain.EdgeKind
	Weight float64
}

// defaultTriggers is the reference trigger-phrase table. Hard phrases come
// first so a text matching both a hard and an advisory phrase records the
// hard edge.
var defaultTriggers = []Trigger{
	{"blocked by", domain.EdgeBlocks, 0.9},
	{"blocks", domain.EdgeBlocks, 0.8},
	{"depends on", domain.EdgeRequires, 0.9},
	{"requires", domain.EdgeRequires, 0.8},
	{"needs", domain.EdgeRequires, 0.6},
	{"after", domain.EdgeRequires, 0.5},
	{"should follow", domain.EdgeSuggests, 0.5},
	{"recommended", domain.EdgeSuggests, 0.4},
	{"prefer", domain.EdgeSuggests, 0.4},
}

// KeywordStrategy is the reference best-effort inference heuristic: scan each
// task's text for trigger phrases, then resolve a referenced task by checking
// whether another task's title appears as a substring of the text. False
// positives and negatives are expected; the scheduler stays correct either way.
type KeywordStrategy struct {
	Triggers []Trigger
}

// NewKeywordStrategy returns a KeywordStrategy with the reference triggers.
func NewKeywordStrategy() *KeywordStrategy {
	return &KeywordStrategy{Triggers: defaultTriggers}
}

// Infer scans every task against every other task's title. Self-references
// are discarded and duplicate (from, to, kind) edges are collapsed, keeping
// the highest weight.
func (s *KeywordStrategy) Infer(tasks []domain.TaskRecord) []domain.DependencyEdge {
	type edgeKey struct {
		from, to string
		kind     domain.EdgeKind
	}
	best := make(map[edgeKey]float64)

	for _, task := range tasks {
		text := strings.ToLower(task.Title + " " + task.Description)

		for _, tr := range s.Triggers {
			if !strings.Contains(text, tr.Phrase) {
				continue
			}
			for _, other := range tasks {
				if other.ID == task.ID || other.Title == "" {
					continue
				}
				if !strings.Contains(text, strings.ToLower(other.Title)) {
					continue
				}
				key := edgeKey{from: task.ID, to: other.ID, kind: tr.Kind}
				if tr.Weight > best[key] {
					best[key] = tr.Weight
				}
			}
		}
	}

	edges := make([]domain.DependencyEdge, 0, len(best))
	for key, w := range best {
		edges = append(edges, domain.DependencyEdge{
			From: key.from, To: key.to, Kind: key.kind, Weight: w,
		})
	}

	// Deterministic output order for identical snapshots.
	sort.Slice(edges, func(i, j int) bool {
		a, b := edges[i], edges[j]
		if a.From != b.From {
			return a.From < b.From
		}
		if a.To != b.To {
			return a.To < b.To
		}
		return a.Kind < b.Kind
	})
	return edges
}
