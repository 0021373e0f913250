package checkers

import (
	sitter "github.com/smacker/go-tree-sitter"

	"ferrolint/internal/checker"
	"ferrolint/internal/registry"
	"ferrolint/internal/syntax"
)

// floatEquality flags == and != comparisons against float literals, which
// are unreliable under rounding.
type floatEquality struct {
	meta checker.Metadata
}

func newFloatEquality() registry.Entry {
	meta := checker.Metadata{
		Code:       "e1410",
		Name:       "Float equality comparison",
		Suggestion: "Compare floats with an epsilon tolerance instead of exact equality",
		NodeKinds:  []string{"binary_expression"},
		ConfigKey:  "e1410_float_equality",
	}
	return registry.Entry{
		Meta: meta,
		Default: checker.Config{
			Enabled:    true,
			Severity:   checker.SeverityMedium,
			Categories: []string{checker.CategoryOperations},
		},
		New: func() checker.Checker { return &floatEquality{meta: meta} },
	}
}

func (c *floatEquality) Metadata() checker.Metadata { return c.meta }

func (c *floatEquality) Check(n *sitter.Node, f *syntax.File, cfg *checker.Config) []checker.Violation {
	op := binaryOperator(n)
	if op != "==" && op != "!=" {
		return nil
	}
	if !isFloatOperand(n.ChildByFieldName("left")) && !isFloatOperand(n.ChildByFieldName("right")) {
		return nil
	}
	return []checker.Violation{
		checker.NewViolation(c.meta, n, f, "exact "+op+" comparison with a float literal is unreliable"),
	}
}

func isFloatOperand(n *sitter.Node) bool {
	if n == nil {
		return false
	}
	if n.Type() == "float_literal" {
		return true
	}
	// Negative literals parse as a unary expression around the literal.
	if n.Type() == "unary_expression" && n.NamedChildCount() == 1 {
		return n.NamedChild(0).Type() == "float_literal"
	}
	return false
}
