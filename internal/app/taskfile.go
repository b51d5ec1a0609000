// Package app provides application-layer orchestration services.
// It wires domain logic with infrastructure, never the reverse.
package app

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/forgeflow/forgeflow/internal/domain"
)

// TaskEntry is one task parsed from a Taskfile. IDs and timestamps are
// assigned at insert time, not by the parser.
type TaskEntry struct {
	Title       string
	Description string
	Priority    domain.TaskPriority
}

// ParseTaskfile parses a Taskfile from a reader.
// Supports directives: TASK, PRIORITY, DESC.
// Multi-line descriptions use triple-quote delimiters (""").
func ParseTaskfile(r io.Reader) ([]TaskEntry, error) {
	var entries []TaskEntry
	var current *TaskEntry

	scanner := bufio.NewScanner(r)
	var multiLine *string
	var inMultiLine bool

	for scanner.Scan() {
		line := scanner.Text()

		// Handle multi-line blocks (""" delimiters)
		if inMultiLine {
			trimmed := strings.TrimSpace(line)
			if trimmed == `"""` {
				inMultiLine = false
				if multiLine != nil {
					*multiLine = strings.TrimRight(*multiLine, "\n")
				}
				multiLine = nil
				continue
			}
			*multiLine += line + "\n"
			continue
		}

		line = strings.TrimSpace(line)

		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		// Parse directive
		parts := strings.SplitN(line, " ", 2)
		if len(parts) < 2 {
			continue // Ignore malformed lines
		}

		directive := strings.ToUpper(parts[0])
		value := strings.TrimSpace(parts[1])

		switch directive {
		case "TASK":
			entries = append(entries, TaskEntry{
				Title:    unquote(value),
				Priority: domain.PriorityMedium,
			})
			current = &entries[len(entries)-1]

		case "PRIORITY":
			if current == nil {
				return nil, fmt.Errorf("PRIORITY before any TASK directive")
			}
			p := domain.TaskPriority(strings.ToLower(value))
			if !p.Valid() {
				return nil, fmt.Errorf("%q: %w", value, domain.ErrUnknownPriority)
			}
			current.Priority = p

		case "DESC", "DESCRIPTION":
			if current == nil {
				return nil, fmt.Errorf("%s before any TASK directive", directive)
			}
			if strings.HasPrefix(value, `"""`) {
				current.Description = ""
				multiLine = &current.Description
				inMultiLine = true
			} else {
				current.Description = unquote(value)
			}

		default:
			// Unknown directives are silently ignored for forward compatibility
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read Taskfile: %w", err)
	}

	for _, e := range entries {
		if strings.TrimSpace(e.Title) == "" {
			return nil, domain.ErrEmptyTitle
		}
	}

	return entries, nil
}

// unquote removes surrounding double quotes if present.
func unquote(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}
