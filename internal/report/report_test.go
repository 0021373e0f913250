package report

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ferrolint/internal/checker"
	"ferrolint/internal/config"
	"ferrolint/internal/engine"
)

func sampleReport() *Report {
	return New(&engine.Result{
		Violations: []checker.Violation{
			{
				Code:       "e1001",
				Name:       "Direct panic call",
				Severity:   checker.SeverityHigh,
				Message:    "panic! aborts the process instead of returning an error",
				File:       "src/main.rs",
				Line:       12,
				Column:     5,
				Suggestion: "Return a Result and propagate the error instead of panicking",
			},
			{
				Code:     "e1112",
				Name:     "Magic number",
				Severity: checker.SeverityLow,
				Message:  "magic number 37 has no named meaning",
				File:     "src/main.rs",
				Line:     20,
				Column:   13,
			},
		},
		ParseFailures: []engine.ParseFailure{
			{File: "src/broken.rs", Detail: "failed to read src/broken.rs"},
		},
	}, []config.Warning{
		{Kind: config.UnknownConfigKey, Key: "e9999", Detail: `config key "e9999" matches no registered checker`},
	})
}

func TestWriteText(t *testing.T) {
	var buf bytes.Buffer
	sampleReport().WriteText(&buf)
	out := buf.String()

	assert.Contains(t, out, "[e1001] Direct panic call (high)")
	assert.Contains(t, out, "src/main.rs:12:5")
	assert.Contains(t, out, "suggestion: Return a Result")
	assert.Contains(t, out, "found 2 violation(s): 1 high, 0 medium, 1 low")
	assert.Contains(t, out, "config warning:")
	assert.Contains(t, out, "skipped unparsable file: src/broken.rs")
}

func TestWriteText_Clean(t *testing.T) {
	var buf bytes.Buffer
	New(&engine.Result{}, nil).WriteText(&buf)
	assert.Contains(t, buf.String(), "no violations found")
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, sampleReport().WriteJSON(&buf))

	var decoded Report
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded.Violations, 2)
	assert.Equal(t, "e1001", decoded.Violations[0].Code)
	assert.Equal(t, checker.SeverityHigh, decoded.Violations[0].Severity)
	require.Len(t, decoded.Warnings, 1)
	assert.Equal(t, config.UnknownConfigKey, decoded.Warnings[0].Kind)

	// Empty sections are omitted from the payload.
	assert.NotContains(t, buf.String(), "checker_errors")
}

func TestWriteJSON_OmitsSuggestionWhenAbsent(t *testing.T) {
	var buf bytes.Buffer
	r := New(&engine.Result{Violations: []checker.Violation{{Code: "e1112"}}}, nil)
	require.NoError(t, r.WriteJSON(&buf))
	assert.NotContains(t, buf.String(), "suggestion")
}
