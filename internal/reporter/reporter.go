// Package reporter provides output formatters for check results.
//
// The package supports multiple output formats:
//   - text: Human-readable terminal output with colors
//   - json: Machine-readable JSON output
//   - sarif: Static Analysis Results Interchange Format for CI/CD integration
//   - github-actions: Native GitHub Actions workflow annotations
package reporter

import (
	"fmt"
	"io"
	"sort"

	"github.com/linewatch/linewatch/internal/rules"
)

// ReportMetadata contains contextual information about the run.
type ReportMetadata struct {
	// FilesScanned is the total number of files that were checked.
	FilesScanned int

	// Scoped is true when checking was restricted to changed lines.
	Scoped bool

	// Summaries are the per-engine summary strings.
	Summaries []string
}

// Reporter formats and outputs violations.
type Reporter interface {
	// Report writes violations to the configured output.
	// The metadata parameter provides context like files scanned.
	Report(violations []rules.Violation, sources map[string][]byte, metadata ReportMetadata) error
}

// SortViolations sorts violations by file, line, column, and rule code for
// stable output. Uses SliceStable so equal keys keep their incoming order.
func SortViolations(violations []rules.Violation) []rules.Violation {
	sorted := make([]rules.Violation, len(violations))
	copy(sorted, violations)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Location.File != sorted[j].Location.File {
			return sorted[i].Location.File < sorted[j].Location.File
		}
		if sorted[i].Location.Start.Line != sorted[j].Location.Start.Line {
			return sorted[i].Location.Start.Line < sorted[j].Location.Start.Line
		}
		if sorted[i].Location.Start.Column != sorted[j].Location.Start.Column {
			return sorted[i].Location.Start.Column < sorted[j].Location.Start.Column
		}
		return sorted[i].RuleCode < sorted[j].RuleCode
	})
	return sorted
}

// Format represents an output format type.
type Format string

const (
	// FormatText is human-readable terminal output.
	FormatText Format = "text"
	// FormatJSON is machine-readable JSON output.
	FormatJSON Format = "json"
	// FormatSARIF is Static Analysis Results Interchange Format.
	FormatSARIF Format = "sarif"
	// FormatGitHubActions is GitHub Actions workflow command output.
	FormatGitHubActions Format = "github-actions"
)

// ParseFormat parses a format string into a Format type.
// Returns an error if the format is unknown.
func ParseFormat(s string) (Format, error) {
	switch s {
	case "text", "":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	case "sarif":
		return FormatSARIF, nil
	case "github-actions", "gha":
		return FormatGitHubActions, nil
	default:
		return FormatText, fmt.Errorf("unknown output format: %q", s)
	}
}

// New creates a reporter for the given format writing to w.
func New(format Format, w io.Writer, opts TextOptions, toolVersion string) (Reporter, error) {
	switch format {
	case FormatText:
		return NewTextReporter(w, opts), nil
	case FormatJSON:
		return NewJSONReporter(w), nil
	case FormatSARIF:
		return NewSARIFReporter(w, "", toolVersion, ""), nil
	case FormatGitHubActions:
		return NewGitHubActionsReporter(w), nil
	default:
		return nil, fmt.Errorf("unknown output format: %q", format)
	}
}
