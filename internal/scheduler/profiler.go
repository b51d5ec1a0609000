// Package scheduler implements the forgeflow scheduling core.
// It is a pure, synchronous computation over a task snapshot:
// profile → infer dependencies → build graph → topological order →
// resource-bounded batches → report. It performs no I/O and never
// mutates the caller's task records.
package scheduler

import (
	"strings"
	"unicode"

	"github.com/forgeflow/forgeflow/internal/domain"
)

// ─── Resource Profiler ──────────────────────────────────────────────────────

// Keyword vocabularies for the four resource categories. Membership is
// checked case-insensitively against the task's title and description:
// single-word keywords match whole words only, so "rebuild" does not trip
// "build" and "login" does not trip "log"; multi-word phrases match as
// substrings.
var (
	cpuKeywords = []string{
		"compile", "build", "compute", "encode", "transcode", "render",
		"hash", "compress", "train", "benchmark", "simulation",
	}
	memoryKeywords = []string{
		"cache", "in-memory", "large dataset", "dataset", "aggregate",
		"dedupe", "sort large", "index rebuild", "memory",
	}
	ioKeywords = []string{
		"database", "schema", "migrate", "migration", "file", "disk",
		"storage", "backup", "import", "export", "log",
	}
	networkKeywords = []string{
		"api", "http", "request", "download", "upload", "webhook",
		"deploy", "sync", "fetch", "network", "endpoint",
	}
)

// durationBuckets are checked in order; the first match wins.
var durationBuckets = []struct {
	phrases []string
	minutes int
}{
	{[]string{"simple", "quick"}, 15},
	{[]string{"complex", "major"}, 120},
	{[]string{"refactor", "optimize"}, 90},
}

// defaultDurationMinutes applies when no bucket phrase matches.
const defaultDurationMinutes = 30

// Profile classifies a task's resource footprint and duration estimate from
// its text. Pure and deterministic; always returns a profile, even for empty
// text (all flags false, default duration).
func Profile(task domain.TaskRecord) domain.ResourceProfile {
	text := strings.ToLower(task.Title + " " + task.Description)
	words := tokenize(text)

	p := domain.ResourceProfile{
		CPUIntensive:     matchesAny(text, words, cpuKeywords),
		MemoryIntensive:  matchesAny(text, words, memoryKeywords),
		IOIntensive:      matchesAny(text, words, ioKeywords),
		NetworkIntensive: matchesAny(text, words, networkKeywords),
		EstimatedMinutes: defaultDurationMinutes,
	}

	for _, b := range durationBuckets {
		if matchesAny(text, words, b.phrases) {
			p.EstimatedMinutes = b.minutes
			break
		}
	}

	p.MaxParallel = maxParallelFor(p)
	return p
}

// maxParallelFor derives the advisory self-concurrency limit from the
// cpu/memory flags: 3 if neither, 2 if exactly one, 1 if both.
func maxParallelFor(p domain.ResourceProfile) int {
	switch {
	case p.CPUIntensive && p.MemoryIntensive:
		return 1
	case p.CPUIntensive || p.MemoryIntensive:
		return 2
	default:
		return 3
	}
}

// tokenize splits lowered text into a word set, breaking on any rune that is
// not a letter or digit.
func tokenize(text string) map[string]struct{} {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	words := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		words[f] = struct{}{}
	}
	return words
}

// matchesAny reports whether any keyword occurs in the text. Keywords
// containing a space or hyphen are phrases and match as substrings; all
// others must match a whole word.
func matchesAny(text string, words map[string]struct{}, keywords []string) bool {
	for _, kw := range keywords {
		if strings.ContainsAny(kw, " -") {
			if strings.Contains(text, kw) {
				return true
			}
			continue
		}
		if _, ok := words[kw]; ok {
			return true
		}
	}
	return false
}
