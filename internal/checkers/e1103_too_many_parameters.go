package checkers

import (
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"

	"ferrolint/internal/checker"
	"ferrolint/internal/registry"
	"ferrolint/internal/syntax"
)

// tooManyParameters flags functions with long parameter lists. self is not
// counted.
type tooManyParameters struct {
	meta checker.Metadata
}

func newTooManyParameters() registry.Entry {
	meta := checker.Metadata{
		Code:       "e1103",
		Name:       "Too many parameters",
		Suggestion: "Group related parameters into a struct or builder",
		NodeKinds:  []string{"function_item"},
		ConfigKey:  "e1103_too_many_parameters",
	}
	return registry.Entry{
		Meta: meta,
		Default: checker.Config{
			Enabled:    true,
			Severity:   checker.SeverityLow,
			Categories: []string{checker.CategoryComplexity},
			Params: map[string]any{
				"max_parameters": 5,
			},
		},
		New: func() checker.Checker { return &tooManyParameters{meta: meta} },
	}
}

func (c *tooManyParameters) Metadata() checker.Metadata { return c.meta }

func (c *tooManyParameters) Check(n *sitter.Node, f *syntax.File, cfg *checker.Config) []checker.Violation {
	max := cfg.Int("max_parameters")
	count := countParameters(n, "parameter")
	if count <= max {
		return nil
	}
	return []checker.Violation{
		checker.NewViolation(c.meta, n, f, fmt.Sprintf(
			"function '%s' takes %d parameters, exceeding the limit of %d",
			f.FunctionName(n), count, max)),
	}
}
