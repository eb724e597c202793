// Package pattern implements superlog's exclude and trigger pattern sets:
// ordered, bounded collections tested by plain substring containment,
// never regex, grounded on the original's ExcludeAdd/ExcludeTest pair.
package pattern

import (
	"bufio"
	"os"
	"strings"

	"github.com/efalk/superlog/internal/io/logger"
)

// Set is an ordered, bounded collection of substrings tested in insertion
// order. It is intentionally not a regex engine: spec.md calls for literal
// substring matching only.
type Set struct {
	limit    int
	label    string
	patterns []string
}

// NewSet returns an empty set that holds at most limit patterns. label
// names the set for the "too many patterns" warning (e.g. "exclude",
// "trigger").
func NewSet(limit int, label string) *Set {
	return &Set{limit: limit, label: label}
}

// Add appends pat to the set, unless the set is already at its limit, in
// which case the pattern is dropped and a warning logged.
func (s *Set) Add(pat string) {
	if len(s.patterns) >= s.limit {
		logger.Warn("too many", s.label, "patterns, limit", s.limit, "ignored", pat)
		return
	}
	s.patterns = append(s.patterns, pat)
}

// AddFile reads newline-separated patterns from path and adds each one,
// blank lines included, mirroring ExcludeAddFile. A failure to open path
// is logged; open and read errors are both returned to the caller.
func (s *Set) AddFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		logger.Warn("opening pattern file", path, err)
		return err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r\n")
		s.Add(line)
	}
	return scanner.Err()
}

// Match reports whether line contains any pattern in the set, scanning in
// insertion order and stopping at the first hit.
func (s *Set) Match(line string) bool {
	for _, pat := range s.patterns {
		if strings.Contains(line, pat) {
			return true
		}
	}
	return false
}

// MatchPattern is like Match but also returns the pattern that matched, for
// diagnostics (e.g. reporting which trigger pattern fired).
func (s *Set) MatchPattern(line string) (string, bool) {
	for _, pat := range s.patterns {
		if strings.Contains(line, pat) {
			return pat, true
		}
	}
	return "", false
}

// Len reports how many patterns are currently held.
func (s *Set) Len() int {
	return len(s.patterns)
}
