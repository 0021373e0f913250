package checkers

import (
	sitter "github.com/smacker/go-tree-sitter"

	"ferrolint/internal/checker"
	"ferrolint/internal/registry"
	"ferrolint/internal/syntax"
)

// directPanic flags panic-family macro invocations: panic!, unreachable!,
// todo! and unimplemented!.
type directPanic struct {
	meta checker.Metadata
}

func newDirectPanic() registry.Entry {
	meta := checker.Metadata{
		Code:       "e1001",
		Name:       "Direct panic call",
		Suggestion: "Return a Result and propagate the error instead of panicking",
		NodeKinds:  []string{"macro_invocation"},
		ConfigKey:  "e1001_direct_panic",
	}
	return registry.Entry{
		Meta: meta,
		Default: checker.Config{
			Enabled:    true,
			Severity:   checker.SeverityHigh,
			Categories: []string{checker.CategoryOperations},
		},
		New: func() checker.Checker { return &directPanic{meta: meta} },
	}
}

func (c *directPanic) Metadata() checker.Metadata { return c.meta }

func (c *directPanic) Check(n *sitter.Node, f *syntax.File, cfg *checker.Config) []checker.Violation {
	switch macroName(f, n) {
	case "panic", "unreachable", "todo", "unimplemented":
		return []checker.Violation{
			checker.NewViolation(c.meta, n, f, macroName(f, n)+"! aborts the process instead of returning an error"),
		}
	}
	return nil
}
