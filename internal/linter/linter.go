// Package linter provides the shared check pipeline for linewatch.
//
// The pipeline: file discovery → change-scope filtering → per-file rule
// execution → one CheckResult per rule engine. Callers apply the processor
// chain to the collected violations and hand them to a reporter.
package linter

import (
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/linewatch/linewatch/internal/config"
	"github.com/linewatch/linewatch/internal/discovery"
	"github.com/linewatch/linewatch/internal/gitscope"
	"github.com/linewatch/linewatch/internal/rules"
	_ "github.com/linewatch/linewatch/internal/rules/all" // Register all rules.
	"github.com/linewatch/linewatch/internal/rules/importblock"
	"github.com/linewatch/linewatch/internal/rules/linewidth"
)

// Engine runs the rule engines over a tree.
//
// The width rules and the change map are built once and read-only for the
// remainder of the run; per-file work shares no mutable state beyond
// append-only violation accumulation.
type Engine struct {
	// Width is the parsed width rule set.
	Width config.WidthRules

	// Imports configures the import-block check.
	Imports importblock.Config

	// ImportsEnabled controls whether the import-block check runs.
	ImportsEnabled bool

	// Exclude lists walker exclusion patterns.
	Exclude []string

	// Changes restricts checking to changed lines. Nil means whole tree.
	Changes gitscope.ChangeMap
}

// NewEngine builds an Engine from resolved configuration and an optional
// change scope.
func NewEngine(cfg *config.Config, changes gitscope.ChangeMap) *Engine {
	return &Engine{
		Width:          config.ParseWidthRules(cfg.Width.Rules),
		Imports:        importblock.Config{Extensions: cfg.Imports.Extensions},
		ImportsEnabled: cfg.Imports.Enabled,
		Exclude:        cfg.Walk.Exclude,
		Changes:        changes,
	}
}

// RunResult contains the output of one Engine run.
type RunResult struct {
	// Width is the line-width engine's result.
	Width rules.CheckResult

	// Imports is the import-block engine's result.
	Imports rules.CheckResult

	// FilesScanned is the number of files actually read and checked.
	FilesScanned int

	// Sources maps checked file paths to their raw content, for reporters.
	Sources map[string][]byte
}

// Success reports whether both engines came back clean.
func (r *RunResult) Success() bool {
	return r.Width.Success && r.Imports.Success
}

// Violations returns both engines' violations, width first, preserving
// each engine's discovery order.
func (r *RunResult) Violations() []rules.Violation {
	out := make([]rules.Violation, 0, len(r.Width.Violations)+len(r.Imports.Violations))
	out = append(out, r.Width.Violations...)
	out = append(out, r.Imports.Violations...)
	return out
}

// Run checks every candidate file under root and returns one CheckResult
// per rule engine.
//
// It fails only when the root itself cannot be walked. Every other failure
// is contained: unreadable subtrees and files are logged as warnings and
// skipped, because CI feedback must stay useful under partial tool failure.
// Violations are collected in walker order, ascending line order per file.
func (e *Engine) Run(root string) (*RunResult, error) {
	paths, err := discovery.Walk(root, discovery.Options{ExcludePatterns: e.Exclude})
	if err != nil {
		if paths == nil {
			return nil, err
		}
		logrus.WithError(err).Warn("partial walk: some subtrees were unreadable")
	}

	byEngine := map[string][]rules.Violation{}
	sources := make(map[string][]byte)
	scanned := 0

	for _, path := range paths {
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			rel = path
		}
		rel = filepath.ToSlash(rel)

		var added map[int]struct{}
		if e.Changes != nil {
			fc, ok := e.Changes.Lookup(rel)
			if !ok {
				continue // not part of the diff at all
			}
			added = fc.Additions
		}

		content, readErr := os.ReadFile(path)
		if readErr != nil {
			logrus.WithError(readErr).WithField("path", path).Warn("skipping unreadable file")
			continue
		}
		scanned++
		sources[path] = content

		base := rules.FileInput{
			Path:    path,
			RelPath: rel,
			Source:  content,
			Added:   added,
		}

		for _, rule := range rules.All() {
			in := base
			switch rule.Metadata().Code {
			case linewidth.RuleCode:
				in.Config = e.Width
			case importblock.RuleCode:
				if !e.ImportsEnabled {
					continue
				}
				in.Config = e.Imports
			}
			code := rule.Metadata().Code
			byEngine[code] = append(byEngine[code], rule.Check(in)...)
		}
	}

	return &RunResult{
		Width:        rules.NewCheckResult(linewidth.RuleCode, byEngine[linewidth.RuleCode], scanned),
		Imports:      rules.NewCheckResult(importblock.RuleCode, byEngine[importblock.RuleCode], scanned),
		FilesScanned: scanned,
		Sources:      sources,
	}, nil
}
