package checkers

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"ferrolint/internal/checker"
	"ferrolint/internal/registry"
	"ferrolint/internal/syntax"
)

// sleepSync flags thread::sleep used as a synchronization primitive.
type sleepSync struct {
	meta checker.Metadata
}

func newSleepSync() registry.Entry {
	meta := checker.Metadata{
		Code:       "e1508",
		Name:       "Sleep-based synchronization",
		Suggestion: "Wait on a channel, condvar or join handle instead of sleeping",
		NodeKinds:  []string{"call_expression"},
		ConfigKey:  "e1508_sleep_sync",
	}
	return registry.Entry{
		Meta: meta,
		Default: checker.Config{
			Enabled:    true,
			Severity:   checker.SeverityMedium,
			Categories: []string{checker.CategoryOperations},
		},
		New: func() checker.Checker { return &sleepSync{meta: meta} },
	}
}

func (c *sleepSync) Metadata() checker.Metadata { return c.meta }

func (c *sleepSync) Check(n *sitter.Node, f *syntax.File, cfg *checker.Config) []checker.Violation {
	path := calleePath(f, n)
	if !strings.HasSuffix(path, "thread::sleep") {
		return nil
	}
	return []checker.Violation{
		checker.NewViolation(c.meta, n, f, "thread::sleep does not synchronize; it only makes the race rarer"),
	}
}
