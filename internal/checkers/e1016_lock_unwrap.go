package checkers

import (
	sitter "github.com/smacker/go-tree-sitter"

	"ferrolint/internal/checker"
	"ferrolint/internal/registry"
	"ferrolint/internal/syntax"
)

// lockUnwrap flags .lock().unwrap() and the rwlock variants. A poisoned lock
// turns into a process abort at every call site written this way.
type lockUnwrap struct {
	meta checker.Metadata
}

func newLockUnwrap() registry.Entry {
	meta := checker.Metadata{
		Code:       "e1016",
		Name:       "Unwrap of a lock result",
		Suggestion: "Handle lock poisoning explicitly or use a lock type that cannot poison",
		NodeKinds:  []string{"call_expression"},
		ConfigKey:  "e1016_lock_unwrap",
	}
	return registry.Entry{
		Meta: meta,
		Default: checker.Config{
			Enabled:    true,
			Severity:   checker.SeverityMedium,
			Categories: []string{checker.CategoryOperations},
		},
		New: func() checker.Checker { return &lockUnwrap{meta: meta} },
	}
}

func (c *lockUnwrap) Metadata() checker.Metadata { return c.meta }

func (c *lockUnwrap) Check(n *sitter.Node, f *syntax.File, cfg *checker.Config) []checker.Violation {
	method, receiver, ok := methodCall(f, n)
	if !ok || method != "unwrap" || receiver.Type() != "call_expression" {
		return nil
	}
	inner, _, ok := methodCall(f, receiver)
	if !ok {
		return nil
	}
	switch inner {
	case "lock", "try_lock", "read", "write":
		return []checker.Violation{
			checker.NewViolation(c.meta, n, f, "."+inner+"().unwrap() panics when the lock is poisoned"),
		}
	}
	return nil
}
