package checkers

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"ferrolint/internal/checker"
	"ferrolint/internal/registry"
	"ferrolint/internal/syntax"
)

// swallowedErrors flags match arms that catch Err and do nothing with it.
type swallowedErrors struct {
	meta checker.Metadata
}

func newSwallowedErrors() registry.Entry {
	meta := checker.Metadata{
		Code:       "e1306",
		Name:       "Swallowed error arm",
		Suggestion: "Log, propagate or convert the error; an empty Err arm erases the failure",
		NodeKinds:  []string{"match_arm"},
		ConfigKey:  "e1306_swallowed_errors",
	}
	return registry.Entry{
		Meta: meta,
		Default: checker.Config{
			Enabled:    true,
			Severity:   checker.SeverityMedium,
			Categories: []string{checker.CategoryOperations},
		},
		New: func() checker.Checker { return &swallowedErrors{meta: meta} },
	}
}

func (c *swallowedErrors) Metadata() checker.Metadata { return c.meta }

func (c *swallowedErrors) Check(n *sitter.Node, f *syntax.File, cfg *checker.Config) []checker.Violation {
	pattern := n.ChildByFieldName("pattern")
	value := n.ChildByFieldName("value")
	if pattern == nil || value == nil {
		return nil
	}
	if !strings.HasPrefix(strings.TrimSpace(f.Text(pattern)), "Err(") {
		return nil
	}
	if !isEmptyArmBody(value) {
		return nil
	}
	return []checker.Violation{
		checker.NewViolation(c.meta, n, f, "Err arm silently discards the error"),
	}
}

func isEmptyArmBody(value *sitter.Node) bool {
	switch value.Type() {
	case "unit_expression":
		return true
	case "block":
		return value.NamedChildCount() == 0
	}
	return false
}
