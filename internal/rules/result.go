package rules

import "fmt"

// CheckResult is the outcome of running one rule engine over a tree.
//
// A CheckResult is constructed once per engine invocation and never mutated
// after return; it is owned by the caller that formats or publishes it.
// Violations found is a normal outcome, not an error: translating
// Success=false into a process failure is the caller's policy decision.
type CheckResult struct {
	// Success is true iff Violations is empty.
	Success bool `json:"success"`

	// Violations in discovery order: files in walker order, ascending line
	// numbers within a file.
	Violations []Violation `json:"violations"`

	// Summary is a human-readable count of what was found.
	Summary string `json:"summary"`
}

// NewCheckResult builds a result for the named check.
func NewCheckResult(check string, violations []Violation, filesScanned int) CheckResult {
	summary := fmt.Sprintf("%s: no violations in %d file(s)", check, filesScanned)
	if len(violations) > 0 {
		summary = fmt.Sprintf("%s: %d violation(s) in %d file(s)", check, len(violations), filesScanned)
	}
	return CheckResult{
		Success:    len(violations) == 0,
		Violations: violations,
		Summary:    summary,
	}
}
