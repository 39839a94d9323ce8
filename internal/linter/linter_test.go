package linter

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linewatch/linewatch/internal/config"
	"github.com/linewatch/linewatch/internal/gitscope"
	"github.com/linewatch/linewatch/internal/rules/importblock"
	"github.com/linewatch/linewatch/internal/rules/linewidth"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Width.Rules = "*.md:50;*.rs:60"
	return cfg
}

func TestRun(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "README.md", "short line\n"+strings.Repeat("m", 120)+"\n")
	writeFile(t, root, "src/main.rs", strings.Join([]string{
		"use std::collections::{",
		"    HashMap,",
		"};",
		"",
		"// " + strings.Repeat("r", 130),
		"fn main() {}",
	}, "\n"))
	writeFile(t, root, "src/ok.rs", "fn ok() {}\n")

	engine := NewEngine(testConfig(), nil)
	result, err := engine.Run(root)
	require.NoError(t, err)

	assert.False(t, result.Success())
	assert.Equal(t, 3, result.FilesScanned)

	require.Len(t, result.Width.Violations, 2)
	byFile := map[string]int{}
	for _, v := range result.Width.Violations {
		byFile[filepath.Base(v.File())] = v.MaxWidth
	}
	assert.Equal(t, 50, byFile["README.md"])
	assert.Equal(t, 60, byFile["main.rs"])

	require.Len(t, result.Imports.Violations, 1)
	iv := result.Imports.Violations[0]
	assert.Equal(t, importblock.RuleCode, iv.RuleCode)
	assert.Equal(t, 1, iv.Location.Start.Line)
	assert.Equal(t, 3, iv.Location.End.Line)

	// Combined view keeps width violations first.
	all := result.Violations()
	require.Len(t, all, 3)
	assert.Equal(t, linewidth.RuleCode, all[0].RuleCode)
	assert.Equal(t, importblock.RuleCode, all[2].RuleCode)

	// Sources captured for every scanned file.
	assert.Len(t, result.Sources, 3)
}

func TestRunCleanTree(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "README.md", "fits easily\n")
	writeFile(t, root, "src/main.rs", "use std::fmt;\nfn main() {}\n")

	result, err := NewEngine(testConfig(), nil).Run(root)
	require.NoError(t, err)

	assert.True(t, result.Success())
	assert.Empty(t, result.Violations())
	assert.Equal(t, 2, result.FilesScanned)
	assert.Contains(t, result.Width.Summary, "no violations")
}

func TestRunImportsDisabled(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "src/main.rs", "use a::{\n    B,\n};\n")

	cfg := testConfig()
	cfg.Imports.Enabled = false

	result, err := NewEngine(cfg, nil).Run(root)
	require.NoError(t, err)

	assert.True(t, result.Success())
	assert.Empty(t, result.Imports.Violations)
}

func TestRunChangeScope(t *testing.T) {
	root := t.TempDir()
	long := strings.Repeat("m", 120)
	writeFile(t, root, "touched.md", long+"\n"+long+"\n")
	writeFile(t, root, "untouched.md", long+"\n")

	changes := gitscope.ChangeMap{
		"touched.md": {
			Additions: map[int]struct{}{2: {}},
			Deletions: map[int]struct{}{},
		},
	}

	result, err := NewEngine(testConfig(), changes).Run(root)
	require.NoError(t, err)

	// Only the added line of the touched file violates; the untouched file
	// is skipped entirely and not counted as scanned.
	require.Len(t, result.Width.Violations, 1)
	v := result.Width.Violations[0]
	assert.Equal(t, 2, v.Line())
	assert.Equal(t, "touched.md", filepath.Base(v.File()))
	assert.Equal(t, 1, result.FilesScanned)
}

func TestRunChangeScopeEmptyAdditions(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "deleted-only.md", strings.Repeat("m", 120)+"\n")

	// In the diff but with no added lines (pure deletion): scanned, no
	// violations.
	changes := gitscope.ChangeMap{
		"deleted-only.md": {
			Additions: map[int]struct{}{},
			Deletions: map[int]struct{}{1: {}},
		},
	}

	result, err := NewEngine(testConfig(), changes).Run(root)
	require.NoError(t, err)

	assert.True(t, result.Success())
	assert.Equal(t, 1, result.FilesScanned)
}

func TestRunExcludePatterns(t *testing.T) {
	root := t.TempDir()
	long := strings.Repeat("m", 120)
	writeFile(t, root, "keep.md", long+"\n")
	writeFile(t, root, "gen/skip.md", long+"\n")

	cfg := testConfig()
	cfg.Walk.Exclude = []string{"gen/**"}

	result, err := NewEngine(cfg, nil).Run(root)
	require.NoError(t, err)

	require.Len(t, result.Width.Violations, 1)
	assert.Equal(t, "keep.md", filepath.Base(result.Width.Violations[0].File()))
}

func TestRunMissingRoot(t *testing.T) {
	_, err := NewEngine(testConfig(), nil).Run(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}

func TestRunViolationOrdering(t *testing.T) {
	root := t.TempDir()
	long := strings.Repeat("m", 120)
	writeFile(t, root, "a.md", long+"\nok\n"+long+"\n")
	writeFile(t, root, "b.md", long+"\n")

	result, err := NewEngine(testConfig(), nil).Run(root)
	require.NoError(t, err)

	require.Len(t, result.Width.Violations, 3)
	// Walker order (lexical), ascending lines within a file.
	assert.Equal(t, "a.md", filepath.Base(result.Width.Violations[0].File()))
	assert.Equal(t, 1, result.Width.Violations[0].Line())
	assert.Equal(t, "a.md", filepath.Base(result.Width.Violations[1].File()))
	assert.Equal(t, 3, result.Width.Violations[1].Line())
	assert.Equal(t, "b.md", filepath.Base(result.Width.Violations[2].File()))
}
