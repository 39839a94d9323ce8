package reporter

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/linewatch/linewatch/internal/rules"
)

// Styles for different parts of the output
var (
	// Color detection using termenv (respects NO_COLOR, CLICOLOR_FORCE, terminal detection)
	useColors = termenv.EnvColorProfile() != termenv.Ascii

	// Rule code style
	ruleCodeStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196")) // Red

	// File location style
	fileLocStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("252")) // Light gray

	// Snippet style
	snippetStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // Dark gray

	// Summary style
	summaryStyle = lipgloss.NewStyle().
			Bold(true)

	// Severity styles
	severityStyles = map[rules.Severity]lipgloss.Style{
		rules.SeverityError: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196")), // Red
		rules.SeverityWarning: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("214")), // Orange
		rules.SeverityInfo: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")), // Blue
	}
)

// TextOptions configures the text reporter output.
type TextOptions struct {
	// Color enables/disables colored output. Default: auto-detect.
	Color *bool

	// ShowSource shows the offending source text. Default: true.
	ShowSource bool
}

// DefaultTextOptions returns sensible defaults for text output.
func DefaultTextOptions() TextOptions {
	return TextOptions{
		Color:      nil, // auto-detect
		ShowSource: true,
	}
}

// TextReporter formats violations as styled text output.
type TextReporter struct {
	writer io.Writer
	opts   TextOptions
}

// NewTextReporter creates a new text reporter with the given options.
func NewTextReporter(w io.Writer, opts TextOptions) *TextReporter {
	return &TextReporter{writer: w, opts: opts}
}

func (r *TextReporter) colorEnabled() bool {
	if r.opts.Color != nil {
		return *r.opts.Color
	}
	return useColors
}

// Report implements Reporter.
func (r *TextReporter) Report(violations []rules.Violation, _ map[string][]byte, metadata ReportMetadata) error {
	for _, v := range SortViolations(violations) {
		if err := r.printViolation(v); err != nil {
			return err
		}
	}
	return r.printSummary(len(violations), metadata)
}

// printViolation formats a single violation:
//
//	SEVERITY: rule-code file:line[-endLine]
//	  message
//	  | source text
func (r *TextReporter) printViolation(v rules.Violation) error {
	location := v.Location.File
	if !v.Location.IsFileLevel() {
		location = fmt.Sprintf("%s:%d", v.Location.File, v.Location.Start.Line)
		if !v.Location.IsPointLocation() && v.Location.End.Line > v.Location.Start.Line {
			location = fmt.Sprintf("%s-%d", location, v.Location.End.Line)
		}
	}

	sevLabel := strings.ToUpper(v.Severity.String())
	var header string
	if r.colorEnabled() {
		sevStyle, ok := severityStyles[v.Severity]
		if !ok {
			sevStyle = severityStyles[rules.SeverityWarning]
		}
		header = fmt.Sprintf("%s %s %s",
			sevStyle.Render(sevLabel+":"),
			ruleCodeStyle.Render(v.RuleCode),
			fileLocStyle.Render(location))
	} else {
		header = fmt.Sprintf("%s: %s %s", sevLabel, v.RuleCode, location)
	}

	if _, err := fmt.Fprintf(r.writer, "%s\n  %s\n", header, v.Message); err != nil {
		return err
	}

	if r.opts.ShowSource && v.SourceCode != "" {
		for line := range strings.SplitSeq(v.SourceCode, "\n") {
			snippet := "  | " + line
			if r.colorEnabled() {
				snippet = snippetStyle.Render(snippet)
			}
			if _, err := fmt.Fprintln(r.writer, snippet); err != nil {
				return err
			}
		}
	}

	_, err := fmt.Fprintln(r.writer)
	return err
}

func (r *TextReporter) printSummary(total int, metadata ReportMetadata) error {
	scope := "whole tree"
	if metadata.Scoped {
		scope = "changed lines only"
	}
	line := fmt.Sprintf("%d violation(s) in %d file(s) checked (%s)",
		total, metadata.FilesScanned, scope)
	if r.colorEnabled() {
		line = summaryStyle.Render(line)
	}
	if _, err := fmt.Fprintln(r.writer, line); err != nil {
		return err
	}
	for _, s := range metadata.Summaries {
		if _, err := fmt.Fprintln(r.writer, "  "+s); err != nil {
			return err
		}
	}
	return nil
}
