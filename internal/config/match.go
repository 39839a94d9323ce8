package config

import "strings"

// MatchPattern reports whether a file name matches a width-rule pattern.
//
// The grammar is deliberately restricted to the three shapes the default rule
// sets use; it is not a general glob implementation:
//
//   - exact name (no "*"): string equality
//   - "**/*.ext": name ends with ".ext"
//   - "*.ext": name ends with ".ext"
//
// Any other pattern shape never matches. Character classes, brace expansion,
// and multi-extension patterns are out of scope; full glob matching (via
// doublestar) is reserved for walker exclude patterns.
func MatchPattern(name, pattern string) bool {
	switch {
	case !strings.Contains(pattern, "*"):
		return name == pattern
	case strings.HasPrefix(pattern, "**/*."):
		return strings.HasSuffix(name, pattern[len("**/*"):])
	case strings.HasPrefix(pattern, "*.") && !strings.Contains(pattern[1:], "*"):
		return strings.HasSuffix(name, pattern[1:])
	default:
		return false
	}
}
