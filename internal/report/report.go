// Package report renders a run's aggregated outcome as text or JSON.
package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"

	"ferrolint/internal/checker"
	"ferrolint/internal/config"
	"ferrolint/internal/engine"
)

// Report is everything a run produced: the ordered violations plus the
// warning and error lists that must stay visible even when the run succeeds.
type Report struct {
	Violations    []checker.Violation    `json:"violations"`
	CheckerErrors []engine.CheckerError  `json:"checker_errors,omitempty"`
	ParseFailures []engine.ParseFailure  `json:"parse_failures,omitempty"`
	Warnings      []config.Warning       `json:"config_warnings,omitempty"`
}

// New assembles a report from the engine result and resolver warnings.
func New(result *engine.Result, warnings []config.Warning) *Report {
	return &Report{
		Violations:    result.Violations,
		CheckerErrors: result.CheckerErrors,
		ParseFailures: result.ParseFailures,
		Warnings:      warnings,
	}
}

// WriteJSON renders the report as indented JSON.
func (r *Report) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

var severityColors = map[checker.Severity]*color.Color{
	checker.SeverityHigh:   color.New(color.FgRed, color.Bold),
	checker.SeverityMedium: color.New(color.FgYellow),
	checker.SeverityLow:    color.New(color.FgCyan),
}

// WriteText renders the report for terminals: each violation with its
// location and suggestion, then a per-severity summary, then warnings.
func (r *Report) WriteText(w io.Writer) {
	for _, v := range r.Violations {
		c := severityColors[v.Severity]
		c.Fprintf(w, "[%s] %s (%s)\n", v.Code, v.Name, v.Severity)
		fmt.Fprintf(w, "  %s:%d:%d\n", v.File, v.Line, v.Column)
		fmt.Fprintf(w, "  %s\n", v.Message)
		if v.Suggestion != "" {
			fmt.Fprintf(w, "  suggestion: %s\n", v.Suggestion)
		}
		fmt.Fprintln(w)
	}

	if len(r.Violations) == 0 {
		color.New(color.FgGreen).Fprintln(w, "no violations found")
	} else {
		counts := map[checker.Severity]int{}
		for _, v := range r.Violations {
			counts[v.Severity]++
		}
		fmt.Fprintf(w, "found %d violation(s): %d high, %d medium, %d low\n",
			len(r.Violations),
			counts[checker.SeverityHigh],
			counts[checker.SeverityMedium],
			counts[checker.SeverityLow])
	}

	for _, warn := range r.Warnings {
		fmt.Fprintf(w, "config warning: %s\n", warn.Detail)
	}
	for _, fail := range r.ParseFailures {
		fmt.Fprintf(w, "skipped unparsable file: %s (%s)\n", fail.File, fail.Detail)
	}
	for _, cerr := range r.CheckerErrors {
		fmt.Fprintf(w, "checker %s failed on %s: %s\n", cerr.Code, cerr.File, cerr.Detail)
	}
}
