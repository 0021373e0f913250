package checker

import (
	sitter "github.com/smacker/go-tree-sitter"

	"ferrolint/internal/syntax"
)

// Violation is one reported instance of a rule being broken. Violations are
// immutable after creation; the engine only overwrites Severity with the
// checker's effective severity before aggregation.
type Violation struct {
	Code       string   `json:"code"`
	Name       string   `json:"name"`
	Severity   Severity `json:"severity"`
	Message    string   `json:"message"`
	File       string   `json:"file"`
	Line       int      `json:"line"`
	Column     int      `json:"column"`
	Suggestion string   `json:"suggestion,omitempty"`
}

// NewViolation builds a violation at a node's position, carrying the
// checker's metadata and suggestion.
func NewViolation(meta Metadata, n *sitter.Node, file *syntax.File, message string) Violation {
	return Violation{
		Code:       meta.Code,
		Name:       meta.Name,
		Message:    message,
		File:       file.Path,
		Line:       syntax.Line(n),
		Column:     syntax.Column(n),
		Suggestion: meta.Suggestion,
	}
}
