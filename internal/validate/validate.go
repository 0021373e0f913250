// Package validate cross-checks the checkers against a labeled fixture
// corpus.
//
// Fixture functions follow a naming convention: "<code>_bad_<desc>" must
// trigger that code inside the function's span, "<code>_good_<desc>" must
// never trigger it, and "<code>_entry" functions are exempt drivers. The
// harness runs the engine with every checker enabled and reports each
// mismatch individually, so a broken checker is identifiable by code and
// function name.
package validate

import (
	"context"
	"fmt"
	"io"
	"regexp"
	"strings"

	"ferrolint/internal/config"
	"ferrolint/internal/engine"
	"ferrolint/internal/registry"
	"ferrolint/internal/syntax"
)

var codePattern = regexp.MustCompile(`^(e\d{4})_`)

// FunctionResult is the validation outcome for one labeled fixture function.
type FunctionResult struct {
	File          string
	Function      string
	Line          int
	Code          string
	WantDetection bool
	Detected      []string
}

// Passed reports whether the function behaved as its name demands.
func (r FunctionResult) Passed() bool {
	found := false
	for _, code := range r.Detected {
		if code == r.Code {
			found = true
			break
		}
	}
	return found == r.WantDetection
}

// Summary aggregates a validation run.
type Summary struct {
	FilesProcessed int
	BadTotal       int
	BadPassed      int
	GoodTotal      int
	GoodPassed     int
	Failures       []FunctionResult
}

// AllPassed reports whether every labeled function behaved as expected.
func (s *Summary) AllPassed() bool {
	return len(s.Failures) == 0
}

// Run validates every fixture under root against the given checker set.
func Run(ctx context.Context, root string, reg *registry.Registry) (*Summary, error) {
	files, err := engine.CollectFiles([]string{root})
	if err != nil {
		return nil, fmt.Errorf("failed to collect fixtures: %w", err)
	}

	// Every checker on, defaults otherwise.
	eff, _ := config.Resolve(reg, &config.Document{}, config.RunRequest{All: true})
	eng := engine.New(reg, eff)

	summary := &Summary{}
	for _, file := range files {
		if err := validateFile(ctx, eng, file, summary); err != nil {
			return nil, err
		}
	}
	return summary, nil
}

func validateFile(ctx context.Context, eng *engine.Engine, path string, summary *Summary) error {
	f, err := syntax.ParseFile(ctx, path)
	if err != nil {
		return fmt.Errorf("failed to parse fixture %s: %w", path, err)
	}
	funcs := f.Functions()
	f.Close()
	if len(funcs) == 0 {
		return nil
	}

	result, err := eng.RunFiles(ctx, []string{path})
	if err != nil {
		return err
	}
	summary.FilesProcessed++

	// Violations outside every function span are module-level (e.g. a glob
	// import at the top of the file); a bad function may be demonstrating
	// exactly such a pattern, so its code also counts for it.
	inAnyFunction := func(line int) bool {
		for _, fn := range funcs {
			if line >= fn.StartLine && line <= fn.EndLine {
				return true
			}
		}
		return false
	}
	moduleCodes := make(map[string]bool)
	for _, v := range result.Violations {
		if !inAnyFunction(v.Line) {
			moduleCodes[v.Code] = true
		}
	}

	for _, fn := range funcs {
		code, wantDetection, labeled := classify(fn.Name)
		if !labeled {
			continue
		}

		var detected []string
		seen := make(map[string]bool)
		for _, v := range result.Violations {
			if v.Line >= fn.StartLine && v.Line <= fn.EndLine && !seen[v.Code] {
				seen[v.Code] = true
				detected = append(detected, v.Code)
			}
		}
		if wantDetection && moduleCodes[code] && !seen[code] {
			detected = append(detected, code)
		}

		fr := FunctionResult{
			File:          path,
			Function:      fn.Name,
			Line:          fn.StartLine,
			Code:          code,
			WantDetection: wantDetection,
			Detected:      detected,
		}

		if wantDetection {
			summary.BadTotal++
			if fr.Passed() {
				summary.BadPassed++
			} else {
				summary.Failures = append(summary.Failures, fr)
			}
		} else {
			summary.GoodTotal++
			if fr.Passed() {
				summary.GoodPassed++
			} else {
				summary.Failures = append(summary.Failures, fr)
			}
		}
	}
	return nil
}

// classify reads the naming convention off a function name. Entry points
// (`<code>_entry` or names ending in _entry) are exempt and never evaluated.
func classify(name string) (code string, wantDetection bool, labeled bool) {
	m := codePattern.FindStringSubmatch(name)
	if m == nil || strings.HasSuffix(name, "_entry") {
		return "", false, false
	}
	switch {
	case strings.Contains(name, "_bad_"):
		return m[1], true, true
	case strings.Contains(name, "_good_"):
		return m[1], false, true
	}
	return "", false, false
}

// Print writes a human-readable account of the summary, failures first.
func Print(w io.Writer, s *Summary) {
	for _, fr := range s.Failures {
		if fr.WantDetection {
			fmt.Fprintf(w, "FAIL %s:%d %s: expected %s, detected %s\n",
				fr.File, fr.Line, fr.Function, fr.Code, detectedList(fr.Detected))
		} else {
			fmt.Fprintf(w, "FAIL %s:%d %s: %s must not fire here\n",
				fr.File, fr.Line, fr.Function, fr.Code)
		}
	}
	fmt.Fprintf(w, "\nfixture files: %d\n", s.FilesProcessed)
	fmt.Fprintf(w, "bad functions:  %d/%d detected\n", s.BadPassed, s.BadTotal)
	fmt.Fprintf(w, "good functions: %d/%d clean\n", s.GoodPassed, s.GoodTotal)
}

func detectedList(codes []string) string {
	if len(codes) == 0 {
		return "nothing"
	}
	return strings.Join(codes, ", ")
}
