package checkers

import (
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"

	"ferrolint/internal/checker"
	"ferrolint/internal/registry"
	"ferrolint/internal/syntax"
)

// unwrapExpect flags .unwrap() and .expect() calls, which panic on Err/None.
type unwrapExpect struct {
	meta checker.Metadata
}

func newUnwrapExpect() registry.Entry {
	meta := checker.Metadata{
		Code:       "e1002",
		Name:       "Direct unwrap or expect",
		Suggestion: "Handle the error with match or the ? operator instead of unwrapping",
		NodeKinds:  []string{"call_expression"},
		ConfigKey:  "e1002_unwrap_expect",
	}
	return registry.Entry{
		Meta: meta,
		Default: checker.Config{
			Enabled:    true,
			Severity:   checker.SeverityHigh,
			Categories: []string{checker.CategoryOperations},
		},
		New: func() checker.Checker { return &unwrapExpect{meta: meta} },
	}
}

func (c *unwrapExpect) Metadata() checker.Metadata { return c.meta }

func (c *unwrapExpect) Check(n *sitter.Node, f *syntax.File, cfg *checker.Config) []checker.Violation {
	method, _, ok := methodCall(f, n)
	if !ok {
		return nil
	}
	if method != "unwrap" && method != "expect" {
		return nil
	}
	return []checker.Violation{
		checker.NewViolation(c.meta, n, f, fmt.Sprintf(".%s() panics when the value is an error or absent", method)),
	}
}
