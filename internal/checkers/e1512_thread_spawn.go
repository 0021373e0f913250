package checkers

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"ferrolint/internal/checker"
	"ferrolint/internal/registry"
	"ferrolint/internal/syntax"
)

// threadSpawn flags direct std::thread::spawn calls, which escape any
// structured runtime's supervision.
type threadSpawn struct {
	meta checker.Metadata
}

func newThreadSpawn() registry.Entry {
	meta := checker.Metadata{
		Code:       "e1512",
		Name:       "Direct thread spawn",
		Suggestion: "Use the project's task runtime or a scoped thread pool",
		NodeKinds:  []string{"call_expression"},
		ConfigKey:  "e1512_thread_spawn",
	}
	return registry.Entry{
		Meta: meta,
		Default: checker.Config{
			Enabled:    true,
			Severity:   checker.SeverityMedium,
			Categories: []string{checker.CategoryOperations},
		},
		New: func() checker.Checker { return &threadSpawn{meta: meta} },
	}
}

func (c *threadSpawn) Metadata() checker.Metadata { return c.meta }

func (c *threadSpawn) Check(n *sitter.Node, f *syntax.File, cfg *checker.Config) []checker.Violation {
	path := calleePath(f, n)
	if !strings.HasSuffix(path, "thread::spawn") {
		return nil
	}
	return []checker.Violation{
		checker.NewViolation(c.meta, n, f, "thread::spawn creates an unsupervised thread"),
	}
}
