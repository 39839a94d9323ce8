package reporter

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linewatch/linewatch/internal/rules"
)

func TestSARIFReporter(t *testing.T) {
	violations := []rules.Violation{
		rules.NewViolation(rules.NewLineLocation("README.md", 2), "max-width",
			"line is 55 characters long (limit 50)", rules.SeverityError).
			WithSourceCode("offending line"),
		rules.NewViolation(rules.NewRangeLocation("src/main.rs", 1, 0, 3, 0), "multiline-import",
			"multi-line use block spans lines 1-3; write imports on a single line", rules.SeverityError),
	}

	var buf bytes.Buffer
	err := NewSARIFReporter(&buf, "", "1.2.3", "").Report(violations, nil, ReportMetadata{})
	require.NoError(t, err)

	var doc struct {
		Version string `json:"version"`
		Runs    []struct {
			Tool struct {
				Driver struct {
					Name    string `json:"name"`
					Version string `json:"version"`
					Rules   []struct {
						ID string `json:"id"`
					} `json:"rules"`
				} `json:"driver"`
			} `json:"tool"`
			Artifacts []struct {
				Location struct {
					URI string `json:"uri"`
				} `json:"location"`
			} `json:"artifacts"`
			Results []struct {
				RuleID    string `json:"ruleId"`
				Level     string `json:"level"`
				Locations []struct {
					PhysicalLocation struct {
						Region struct {
							StartLine int `json:"startLine"`
							EndLine   int `json:"endLine"`
						} `json:"region"`
					} `json:"physicalLocation"`
				} `json:"locations"`
			} `json:"results"`
		} `json:"runs"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))

	assert.Equal(t, "2.1.0", doc.Version)
	require.Len(t, doc.Runs, 1)
	run := doc.Runs[0]

	assert.Equal(t, "linewatch", run.Tool.Driver.Name)
	assert.Equal(t, "1.2.3", run.Tool.Driver.Version)

	require.Len(t, run.Tool.Driver.Rules, 2)
	assert.Equal(t, "max-width", run.Tool.Driver.Rules[0].ID)
	assert.Equal(t, "multiline-import", run.Tool.Driver.Rules[1].ID)

	require.Len(t, run.Artifacts, 2)
	assert.Equal(t, "README.md", run.Artifacts[0].Location.URI)

	require.Len(t, run.Results, 2)
	assert.Equal(t, "max-width", run.Results[0].RuleID)
	assert.Equal(t, "error", run.Results[0].Level)
	assert.Equal(t, 2, run.Results[0].Locations[0].PhysicalLocation.Region.StartLine)
	assert.Equal(t, 3, run.Results[1].Locations[0].PhysicalLocation.Region.EndLine)
}

func TestSARIFReporterEmpty(t *testing.T) {
	var buf bytes.Buffer
	err := NewSARIFReporter(&buf, "", "", "").Report(nil, nil, ReportMetadata{})
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	assert.Contains(t, doc, "runs")
}
