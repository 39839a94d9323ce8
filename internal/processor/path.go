package processor

import (
	"path/filepath"

	"github.com/linewatch/linewatch/internal/rules"
)

// PathNormalization converts file paths to forward slashes so output is
// identical across platforms.
type PathNormalization struct{}

// NewPathNormalization creates a new path normalization processor.
func NewPathNormalization() *PathNormalization {
	return &PathNormalization{}
}

// Name returns the processor's identifier.
func (p *PathNormalization) Name() string {
	return "path-normalization"
}

// Process normalizes the file path of every violation.
func (p *PathNormalization) Process(violations []rules.Violation) []rules.Violation {
	result := make([]rules.Violation, len(violations))
	for i, v := range violations {
		v.Location.File = filepath.ToSlash(v.Location.File)
		result[i] = v
	}
	return result
}
