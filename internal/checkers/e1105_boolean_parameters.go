package checkers

import (
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"

	"ferrolint/internal/checker"
	"ferrolint/internal/registry"
	"ferrolint/internal/syntax"
)

// booleanParameters flags functions taking several bare bool parameters,
// which make call sites unreadable.
type booleanParameters struct {
	meta checker.Metadata
}

func newBooleanParameters() registry.Entry {
	meta := checker.Metadata{
		Code:       "e1105",
		Name:       "Boolean parameter overload",
		Suggestion: "Replace bool flags with a two-variant enum or an options struct",
		NodeKinds:  []string{"function_item"},
		ConfigKey:  "e1105_boolean_parameters",
	}
	return registry.Entry{
		Meta: meta,
		Default: checker.Config{
			Enabled:    true,
			Severity:   checker.SeverityLow,
			Categories: []string{checker.CategoryComplexity},
			Params: map[string]any{
				"max_bool_parameters": 1,
			},
		},
		New: func() checker.Checker { return &booleanParameters{meta: meta} },
	}
}

func (c *booleanParameters) Metadata() checker.Metadata { return c.meta }

func (c *booleanParameters) Check(n *sitter.Node, f *syntax.File, cfg *checker.Config) []checker.Violation {
	params := n.ChildByFieldName("parameters")
	if params == nil {
		return nil
	}

	bools := 0
	for i := 0; i < int(params.NamedChildCount()); i++ {
		p := params.NamedChild(i)
		if p.Type() != "parameter" {
			continue
		}
		if typ := p.ChildByFieldName("type"); typ != nil && f.Text(typ) == "bool" {
			bools++
		}
	}

	max := cfg.Int("max_bool_parameters")
	if bools <= max {
		return nil
	}
	return []checker.Violation{
		checker.NewViolation(c.meta, n, f, fmt.Sprintf(
			"function '%s' takes %d bool parameters; call sites cannot tell the flags apart",
			f.FunctionName(n), bools)),
	}
}
