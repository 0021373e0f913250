package checkers

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"ferrolint/internal/checker"
	"ferrolint/internal/registry"
	"ferrolint/internal/syntax"
)

// suspiciousMarkers flags TODO/FIXME/HACK/XXX comments left in the code.
// The marker list is a comma-separated config param.
type suspiciousMarkers struct {
	meta checker.Metadata
}

func newSuspiciousMarkers() registry.Entry {
	meta := checker.Metadata{
		Code:       "e1905",
		Name:       "Suspicious code marker",
		Suggestion: "Resolve the marker or track it in the issue tracker",
		NodeKinds:  []string{"line_comment", "block_comment"},
		ConfigKey:  "e1905_suspicious_markers",
	}
	return registry.Entry{
		Meta: meta,
		Default: checker.Config{
			Enabled:    true,
			Severity:   checker.SeverityLow,
			Categories: []string{checker.CategoryCompliance},
			Params: map[string]any{
				"markers": "TODO,FIXME,HACK,XXX",
			},
		},
		New: func() checker.Checker { return &suspiciousMarkers{meta: meta} },
	}
}

func (c *suspiciousMarkers) Metadata() checker.Metadata { return c.meta }

func (c *suspiciousMarkers) Check(n *sitter.Node, f *syntax.File, cfg *checker.Config) []checker.Violation {
	text := f.Text(n)
	for _, marker := range strings.Split(cfg.String("markers"), ",") {
		marker = strings.TrimSpace(marker)
		if marker != "" && strings.Contains(text, marker) {
			return []checker.Violation{
				checker.NewViolation(c.meta, n, f, marker+" comment marks unfinished or fragile code"),
			}
		}
	}
	return nil
}
