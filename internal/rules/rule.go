package rules

// FileInput contains all the information a rule needs to check one file.
//
// IMPORTANT: FileInput is read-only. Rules must not mutate any fields.
// If a rule needs to modify data, it must copy it first. This prevents
// hidden coupling between rules.
type FileInput struct {
	// Path is the path to the file being checked, as discovered by the walker.
	// Used for violation locations.
	Path string

	// RelPath is the root-relative, slash-separated form of Path.
	RelPath string

	// Source is the raw content of the file.
	Source []byte

	// Added is the set of 1-based line numbers added in the current change
	// scope. Nil means no scoping: every line is checked. A non-nil empty set
	// means the file is in the diff but contributed no added lines.
	Added map[int]struct{}

	// Config is the rule-specific configuration (type depends on rule).
	Config any
}

// LineAdded reports whether the given 1-based line is inside the change
// scope. With no scoping (Added == nil) every line is in scope.
func (in FileInput) LineAdded(line int) bool {
	if in.Added == nil {
		return true
	}
	_, ok := in.Added[line]
	return ok
}

// RuleMetadata contains static information about a rule.
type RuleMetadata struct {
	// Code is the unique identifier (e.g., "max-width").
	Code string

	// Name is the human-readable rule name.
	Name string

	// Description explains what the rule checks.
	Description string

	// DocURL links to detailed documentation.
	DocURL string

	// DefaultSeverity is the severity when not overridden.
	DefaultSeverity Severity

	// Category groups related rules (e.g., "style").
	Category string
}

// Rule is the interface that all checking rules must implement.
type Rule interface {
	// Metadata returns static information about the rule.
	Metadata() RuleMetadata

	// Check runs the rule against one file and returns any violations,
	// in ascending line order.
	Check(input FileInput) []Violation
}
