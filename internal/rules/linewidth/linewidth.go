// Package linewidth implements the max-width rule: per-file-pattern maximum
// line width.
package linewidth

import (
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/linewatch/linewatch/internal/config"
	"github.com/linewatch/linewatch/internal/rules"
)

// RuleCode is the unique identifier of the max-width rule.
const RuleCode = "max-width"

// truncateAt is the reporting cut-off for captured line content. Truncation
// is a reporting convenience, not a correctness concern.
const truncateAt = 100

// Rule implements the max-width check.
type Rule struct{}

// New creates a max-width rule instance.
func New() *Rule {
	return &Rule{}
}

// Metadata returns the rule metadata.
func (r *Rule) Metadata() rules.RuleMetadata {
	return rules.RuleMetadata{
		Code:            RuleCode,
		Name:            "Maximum Line Width",
		Description:     "Limits line width per file-name pattern",
		DocURL:          "https://github.com/linewatch/linewatch/blob/main/docs/rules/max-width.md",
		DefaultSeverity: rules.SeverityError,
		Category:        "style",
	}
}

// Check measures every line of the file against the width limit selected by
// the file's base name. With change scoping active, only added lines are
// measured. A line of length exactly maxWidth never violates.
func (r *Rule) Check(in rules.FileInput) []rules.Violation {
	cfg, ok := in.Config.(config.WidthRules)
	if !ok {
		cfg = config.WidthRules{Default: config.DefaultWidth}
	}
	maxWidth := cfg.WidthFor(filepath.Base(in.Path))

	var violations []rules.Violation
	for i, line := range strings.Split(string(in.Source), "\n") {
		n := i + 1
		if !in.LineAdded(n) {
			continue
		}
		length := utf8.RuneCountInString(line)
		if length <= maxWidth {
			continue
		}

		violations = append(violations, rules.NewViolation(
			rules.NewLineLocation(in.Path, n),
			RuleCode,
			fmt.Sprintf("line is %d characters long (limit %d)", length, maxWidth),
			rules.SeverityError,
		).WithWidth(length, maxWidth).WithSourceCode(truncate(line)))
	}
	return violations
}

// truncate cuts content to the first truncateAt characters with an
// ellipsis marker.
func truncate(line string) string {
	if utf8.RuneCountInString(line) <= truncateAt {
		return line
	}
	return string([]rune(line)[:truncateAt]) + "..."
}

func init() {
	rules.Register(New())
}
