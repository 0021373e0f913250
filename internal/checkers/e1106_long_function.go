package checkers

import (
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"

	"ferrolint/internal/checker"
	"ferrolint/internal/registry"
	"ferrolint/internal/syntax"
)

// longFunction flags functions spanning more lines than the limit.
type longFunction struct {
	meta checker.Metadata
}

func newLongFunction() registry.Entry {
	meta := checker.Metadata{
		Code:       "e1106",
		Name:       "Long function",
		Suggestion: "Extract cohesive blocks into named helper functions",
		NodeKinds:  []string{"function_item"},
		ConfigKey:  "e1106_long_function",
	}
	return registry.Entry{
		Meta: meta,
		Default: checker.Config{
			Enabled:    true,
			Severity:   checker.SeverityLow,
			Categories: []string{checker.CategoryComplexity},
			Params: map[string]any{
				"max_lines": 100,
			},
		},
		New: func() checker.Checker { return &longFunction{meta: meta} },
	}
}

func (c *longFunction) Metadata() checker.Metadata { return c.meta }

func (c *longFunction) Check(n *sitter.Node, f *syntax.File, cfg *checker.Config) []checker.Violation {
	max := cfg.Int("max_lines")
	lines := syntax.EndLine(n) - syntax.Line(n) + 1
	if lines <= max {
		return nil
	}
	return []checker.Violation{
		checker.NewViolation(c.meta, n, f, fmt.Sprintf(
			"function '%s' spans %d lines, exceeding the limit of %d",
			f.FunctionName(n), lines, max)),
	}
}
