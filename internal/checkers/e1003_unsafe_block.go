package checkers

import (
	sitter "github.com/smacker/go-tree-sitter"

	"ferrolint/internal/checker"
	"ferrolint/internal/registry"
	"ferrolint/internal/syntax"
)

// unsafeBlock flags unsafe blocks.
type unsafeBlock struct {
	meta checker.Metadata
}

func newUnsafeBlock() registry.Entry {
	meta := checker.Metadata{
		Code:       "e1003",
		Name:       "Unsafe block",
		Suggestion: "Prefer a safe abstraction; if unsafe is unavoidable, isolate and document it",
		NodeKinds:  []string{"unsafe_block"},
		ConfigKey:  "e1003_unsafe_block",
	}
	return registry.Entry{
		Meta: meta,
		Default: checker.Config{
			Enabled:    true,
			Severity:   checker.SeverityHigh,
			Categories: []string{checker.CategoryOperations},
		},
		New: func() checker.Checker { return &unsafeBlock{meta: meta} },
	}
}

func (c *unsafeBlock) Metadata() checker.Metadata { return c.meta }

func (c *unsafeBlock) Check(n *sitter.Node, f *syntax.File, cfg *checker.Config) []checker.Violation {
	return []checker.Violation{
		checker.NewViolation(c.meta, n, f, "unsafe block bypasses the compiler's safety guarantees"),
	}
}
