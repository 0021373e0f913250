package checkers

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"ferrolint/internal/checker"
	"ferrolint/internal/registry"
	"ferrolint/internal/syntax"
)

// globImports flags `use path::*` declarations. Prelude globs can be allowed
// via config, since preludes exist to be glob-imported.
type globImports struct {
	meta checker.Metadata
}

func newGlobImports() registry.Entry {
	meta := checker.Metadata{
		Code:       "e1801",
		Name:       "Glob import",
		Suggestion: "Import the names you use explicitly",
		NodeKinds:  []string{"use_wildcard"},
		ConfigKey:  "e1801_glob_imports",
	}
	return registry.Entry{
		Meta: meta,
		Default: checker.Config{
			Enabled:    true,
			Severity:   checker.SeverityLow,
			Categories: []string{checker.CategoryCompliance},
			Params: map[string]any{
				"allow_prelude": false,
			},
		},
		New: func() checker.Checker { return &globImports{meta: meta} },
	}
}

func (c *globImports) Metadata() checker.Metadata { return c.meta }

func (c *globImports) Check(n *sitter.Node, f *syntax.File, cfg *checker.Config) []checker.Violation {
	if cfg.Bool("allow_prelude") && strings.Contains(f.Text(n), "prelude") {
		return nil
	}
	at := n
	if decl := ancestorOfKind(n, "use_declaration"); decl != nil {
		at = decl
	}
	return []checker.Violation{
		checker.NewViolation(c.meta, at, f, "glob import obscures where names come from"),
	}
}
