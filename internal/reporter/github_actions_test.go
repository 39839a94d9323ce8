package reporter

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linewatch/linewatch/internal/rules"
)

func TestGitHubActionsReporter(t *testing.T) {
	violations := []rules.Violation{
		rules.NewViolation(rules.NewRangeLocation("src/main.rs", 1, 0, 3, 0), "multiline-import",
			"multi-line use block spans lines 1-3; write imports on a single line", rules.SeverityError),
		rules.NewViolation(rules.NewLineLocation("README.md", 2), "max-width",
			"line is 55 characters long (limit 50)", rules.SeverityError),
	}

	var buf bytes.Buffer
	err := NewGitHubActionsReporter(&buf).Report(violations, nil, ReportMetadata{})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)

	// Sorted: README.md before src/main.rs.
	assert.Equal(t,
		"::error file=README.md,line=2,col=1,title=max-width::line is 55 characters long (limit 50)",
		lines[0])
	assert.Equal(t,
		"::error file=src/main.rs,line=1,col=1,endLine=3,title=multiline-import::multi-line use block spans lines 1-3; write imports on a single line",
		lines[1])
}

func TestGitHubActionsEscaping(t *testing.T) {
	v := rules.NewViolation(rules.NewLineLocation("dir/we,ird:name.md", 1), "max-width",
		"100% too long\nsecond line", rules.SeverityWarning)

	var buf bytes.Buffer
	err := NewGitHubActionsReporter(&buf).Report([]rules.Violation{v}, nil, ReportMetadata{})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "file=dir/we%2Cird%3Aname.md")
	assert.Contains(t, out, "::100%25 too long%0Asecond line")
	assert.True(t, strings.HasPrefix(out, "::warning "))
}

func TestGitHubActionsEmpty(t *testing.T) {
	var buf bytes.Buffer
	err := NewGitHubActionsReporter(&buf).Report(nil, nil, ReportMetadata{})
	require.NoError(t, err)
	assert.Empty(t, buf.String())
}
