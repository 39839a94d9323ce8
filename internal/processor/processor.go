// Package processor provides a composable violation processing pipeline.
//
// Violations flow through a sequence of processors, each transforming the
// slice (filtering, modifying, or augmenting).
//
// Standard pipeline order:
//  1. PathNormalization - Cross-platform path consistency
//  2. Deduplication - Remove duplicate violations
//  3. Sorting - Stable output ordering
package processor

import "github.com/linewatch/linewatch/internal/rules"

// Processor transforms a slice of violations.
// Implementations should be stateless.
type Processor interface {
	// Name returns the processor's identifier (for debugging/logging).
	Name() string

	// Process applies the processor's logic to violations.
	// Must not modify the input slice; return a new slice if filtering.
	Process(violations []rules.Violation) []rules.Violation
}

// Chain runs processors in sequence.
type Chain struct {
	processors []Processor
}

// NewChain creates a new processor chain.
func NewChain(processors ...Processor) *Chain {
	return &Chain{processors: processors}
}

// DefaultChain returns the standard CLI processor chain.
func DefaultChain() *Chain {
	return NewChain(
		NewPathNormalization(),
		NewDeduplication(),
		NewSorting(),
	)
}

// Process runs all processors in sequence.
func (c *Chain) Process(violations []rules.Violation) []rules.Violation {
	for _, p := range c.processors {
		violations = p.Process(violations)
	}
	return violations
}

// filterViolations is a helper for processors that filter violations.
// It returns a new slice containing only violations where keep() returns true.
func filterViolations(violations []rules.Violation, keep func(v rules.Violation) bool) []rules.Violation {
	result := make([]rules.Violation, 0, len(violations))
	for _, v := range violations {
		if keep(v) {
			result = append(result, v)
		}
	}
	return result
}
