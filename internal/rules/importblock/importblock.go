// Package importblock implements the multiline-import rule: a prohibition
// on bracketed multi-line use statements in Rust source files.
//
// The check is a textual heuristic, not a parser: it runs a two-state line
// scanner per file and targets only the multi-line bracketed form. Single
// line statements (brace opened and closed on one line, or no brace at all)
// never trigger it.
package importblock

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/linewatch/linewatch/internal/rules"
)

// RuleCode is the unique identifier of the multiline-import rule.
const RuleCode = "multiline-import"

// importKeyword opens a Rust use declaration.
const importKeyword = "use "

// Config is the configuration for the multiline-import rule.
type Config struct {
	// Extensions lists the file extensions the rule applies to.
	Extensions []string
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{Extensions: []string{".rs"}}
}

// scanner states. No state persists across files.
const (
	stateSeeking = iota
	stateCollecting
)

// Rule implements the multiline-import check.
type Rule struct{}

// New creates a multiline-import rule instance.
func New() *Rule {
	return &Rule{}
}

// Metadata returns the rule metadata.
func (r *Rule) Metadata() rules.RuleMetadata {
	return rules.RuleMetadata{
		Code:            RuleCode,
		Name:            "Multi-line Import Block",
		Description:     "Disallows bracketed multi-line use statements in Rust sources",
		DocURL:          "https://github.com/linewatch/linewatch/blob/main/docs/rules/multiline-import.md",
		DefaultSeverity: rules.SeverityError,
		Category:        "style",
	}
}

// Check scans the file for bracketed multi-line use blocks.
//
// In SEEKING, a trimmed line that begins with the import keyword, contains
// an opening brace, and has no closing brace on the same line starts a
// block. In COLLECTING, trimmed lines accumulate until a closing brace ends
// the block. With change scoping active a block is reported only when at
// least one of its lines was added. A file ending mid-block drops the
// incomplete block: accepted behavior for truncated input, not an error.
func (r *Rule) Check(in rules.FileInput) []rules.Violation {
	cfg, ok := in.Config.(Config)
	if !ok {
		cfg = DefaultConfig()
	}
	if !appliesTo(in.Path, cfg.Extensions) {
		return nil
	}

	var violations []rules.Violation
	state := stateSeeking
	blockStart := 0
	var block []string

	for i, raw := range strings.Split(string(in.Source), "\n") {
		line := strings.TrimSpace(raw)
		n := i + 1

		switch state {
		case stateSeeking:
			if strings.HasPrefix(line, importKeyword) &&
				strings.Contains(line, "{") && !strings.Contains(line, "}") {
				state = stateCollecting
				blockStart = n
				block = []string{line}
			}
		case stateCollecting:
			block = append(block, line)
			if strings.Contains(line, "}") {
				if blockInScope(in, blockStart, n) {
					violations = append(violations, rules.NewViolation(
						rules.NewRangeLocation(in.Path, blockStart, 0, n, 0),
						RuleCode,
						fmt.Sprintf("multi-line use block spans lines %d-%d; write imports on a single line", blockStart, n),
						rules.SeverityError,
					).WithSourceCode(strings.Join(block, "\n")))
				}
				state = stateSeeking
				block = nil
			}
		}
	}

	return violations
}

// blockInScope reports whether any line of [start, end] was added in the
// current change scope.
func blockInScope(in rules.FileInput, start, end int) bool {
	if in.Added == nil {
		return true
	}
	for n := start; n <= end; n++ {
		if _, ok := in.Added[n]; ok {
			return true
		}
	}
	return false
}

func appliesTo(path string, extensions []string) bool {
	ext := filepath.Ext(path)
	for _, want := range extensions {
		if ext == want {
			return true
		}
	}
	return false
}

func init() {
	rules.Register(New())
}
