package checkers

import (
	sitter "github.com/smacker/go-tree-sitter"

	"ferrolint/internal/checker"
	"ferrolint/internal/registry"
	"ferrolint/internal/syntax"
)

// discardedResult flags `let _ = call()` bindings that throw a call's result
// away, the usual way errors are silently ignored.
type discardedResult struct {
	meta checker.Metadata
}

func newDiscardedResult() registry.Entry {
	meta := checker.Metadata{
		Code:       "e1303",
		Name:       "Discarded call result",
		Suggestion: "Handle or propagate the result; discard it explicitly only with a comment saying why",
		NodeKinds:  []string{"let_declaration"},
		ConfigKey:  "e1303_discarded_result",
	}
	return registry.Entry{
		Meta: meta,
		Default: checker.Config{
			Enabled:    true,
			Severity:   checker.SeverityMedium,
			Categories: []string{checker.CategoryOperations},
		},
		New: func() checker.Checker { return &discardedResult{meta: meta} },
	}
}

func (c *discardedResult) Metadata() checker.Metadata { return c.meta }

func (c *discardedResult) Check(n *sitter.Node, f *syntax.File, cfg *checker.Config) []checker.Violation {
	pattern := n.ChildByFieldName("pattern")
	value := n.ChildByFieldName("value")
	if pattern == nil || value == nil {
		return nil
	}
	if f.Text(pattern) != "_" {
		return nil
	}
	switch value.Type() {
	case "call_expression", "await_expression", "try_expression":
		return []checker.Violation{
			checker.NewViolation(c.meta, n, f, "let _ = discards the call's result, hiding any error it carries"),
		}
	}
	return nil
}
