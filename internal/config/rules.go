package config

import (
	"strconv"
	"strings"
)

// DefaultWidth is the fallback line width when no DEFAULT= entry is present.
const DefaultWidth = 110

// WidthRule maps a file-name pattern to a maximum line width.
type WidthRule struct {
	// Pattern is a restricted glob: exact name, "*.ext", or "**/*.ext".
	Pattern string

	// Width is the maximum allowed line width (always positive).
	Width int
}

// WidthRules is the parsed width-check rule set. Built once per run and
// read-only thereafter.
//
// Pattern order is significant: the first pattern that matches a file's base
// name wins, so more specific entries must come first in the rule string
// (e.g. "CHANGELOG.md:40" before "*.md:50").
type WidthRules struct {
	// Patterns in declaration order.
	Patterns []WidthRule

	// Default applies when no pattern matches.
	Default int
}

// ParseWidthRules parses a rule string of the form
//
//	pattern:width;pattern:width;...;DEFAULT=width
//
// Malformed entries (missing pattern, missing or non-numeric or non-positive
// width) are dropped silently, never defaulted. A DEFAULT= entry updates the
// default width and is excluded from the pattern sequence; the last
// well-formed DEFAULT= wins. An empty string yields no patterns and a default
// of DefaultWidth.
func ParseWidthRules(s string) WidthRules {
	rs := WidthRules{Default: DefaultWidth}

	for tok := range strings.SplitSeq(s, ";") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}

		if rest, ok := strings.CutPrefix(tok, "DEFAULT="); ok {
			if n, err := strconv.Atoi(strings.TrimSpace(rest)); err == nil && n > 0 {
				rs.Default = n
			}
			continue
		}

		pattern, widthStr, ok := strings.Cut(tok, ":")
		if !ok {
			continue // no width: dropped
		}
		pattern = strings.TrimSpace(pattern)
		if pattern == "" {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(widthStr))
		if err != nil || n <= 0 {
			continue // non-numeric or non-positive width: dropped
		}
		rs.Patterns = append(rs.Patterns, WidthRule{Pattern: pattern, Width: n})
	}

	return rs
}

// WidthFor returns the maximum width for a file's base name: the first
// matching pattern wins, else Default.
func (r WidthRules) WidthFor(name string) int {
	for _, rule := range r.Patterns {
		if MatchPattern(name, rule.Pattern) {
			return rule.Width
		}
	}
	return r.Default
}
