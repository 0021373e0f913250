package checkers

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"ferrolint/internal/checker"
	"ferrolint/internal/registry"
	"ferrolint/internal/syntax"
)

// magicNumbers flags unexplained integer literals inside function bodies.
// Literals in const/static items and a small allow-list of common values are
// exempt.
type magicNumbers struct {
	meta checker.Metadata
}

var allowedLiterals = map[string]bool{
	"0": true, "1": true, "2": true, "10": true, "100": true,
}

func newMagicNumbers() registry.Entry {
	meta := checker.Metadata{
		Code:       "e1112",
		Name:       "Magic number",
		Suggestion: "Name the value as a const so its meaning is explicit",
		NodeKinds:  []string{"integer_literal"},
		ConfigKey:  "e1112_magic_numbers",
	}
	return registry.Entry{
		Meta: meta,
		Default: checker.Config{
			Enabled:    true,
			Severity:   checker.SeverityLow,
			Categories: []string{checker.CategoryComplexity},
		},
		New: func() checker.Checker { return &magicNumbers{meta: meta} },
	}
}

func (c *magicNumbers) Metadata() checker.Metadata { return c.meta }

func (c *magicNumbers) Check(n *sitter.Node, f *syntax.File, cfg *checker.Config) []checker.Violation {
	if ancestorOfKind(n, "function_item") == nil {
		return nil
	}
	if ancestorOfKind(n, "const_item", "static_item") != nil {
		return nil
	}
	// Range bounds (0..len) are idiomatic, not magic.
	if p := n.Parent(); p != nil && p.Type() == "range_expression" {
		return nil
	}

	text := normalizeLiteral(f.Text(n))
	if allowedLiterals[text] {
		return nil
	}
	return []checker.Violation{
		checker.NewViolation(c.meta, n, f, "magic number "+text+" has no named meaning"),
	}
}

// normalizeLiteral strips digit separators and type suffixes, so 1_000u32
// compares as 1000.
func normalizeLiteral(text string) string {
	text = strings.ReplaceAll(text, "_", "")
	for i, r := range text {
		if i > 0 && (r == 'u' || r == 'i') {
			return text[:i]
		}
	}
	return text
}
