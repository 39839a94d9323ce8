package rules

// Violation represents a single check violation.
type Violation struct {
	// Location specifies where the violation occurred.
	Location Location `json:"location"`

	// RuleCode is the unique identifier for the rule (e.g., "max-width").
	RuleCode string `json:"rule"`

	// Message is a human-readable description of the issue.
	Message string `json:"message"`

	// Detail provides additional context (optional).
	Detail string `json:"detail,omitempty"`

	// Severity indicates how critical this violation is.
	Severity Severity `json:"severity"`

	// DocURL links to documentation about this rule (optional).
	DocURL string `json:"docUrl,omitempty"`

	// SourceCode is the offending source text. For width violations this is
	// the line truncated to 100 characters; for import-block violations it is
	// the trimmed block lines joined by newlines.
	SourceCode string `json:"sourceCode,omitempty"`

	// Length is the measured line length for width violations (0 otherwise).
	Length int `json:"length,omitempty"`

	// MaxWidth is the limit that was exceeded for width violations (0 otherwise).
	MaxWidth int `json:"maxWidth,omitempty"`
}

// NewViolation creates a new violation with the minimum required fields.
func NewViolation(loc Location, ruleCode, message string, severity Severity) Violation {
	return Violation{
		Location: loc,
		RuleCode: ruleCode,
		Message:  message,
		Severity: severity,
	}
}

// WithDetail adds a detail message to the violation.
func (v Violation) WithDetail(detail string) Violation {
	v.Detail = detail
	return v
}

// WithDocURL adds a documentation URL to the violation.
func (v Violation) WithDocURL(url string) Violation {
	v.DocURL = url
	return v
}

// WithSourceCode adds the offending source text to the violation.
func (v Violation) WithSourceCode(code string) Violation {
	v.SourceCode = code
	return v
}

// WithWidth records the measured length and the exceeded limit.
func (v Violation) WithWidth(length, maxWidth int) Violation {
	v.Length = length
	v.MaxWidth = maxWidth
	return v
}

// File returns the file path from the location.
func (v Violation) File() string {
	return v.Location.File
}

// Line returns the starting line number.
func (v Violation) Line() int {
	return v.Location.Start.Line
}
