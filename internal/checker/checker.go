// Package checker defines the rule abstraction shared by the registry, the
// configuration resolver and the analysis engine.
package checker

import (
	sitter "github.com/smacker/go-tree-sitter"

	"ferrolint/internal/syntax"
)

// Metadata is the static description of one checker. It is created once at
// registration time and never mutated.
type Metadata struct {
	// Code is the unique identifier, e.g. "e1101".
	Code string
	// Name is the human-readable display name.
	Name string
	// Suggestion is the fix advice attached to violations.
	Suggestion string
	// NodeKinds lists the tree-sitter node kinds the checker wants to visit.
	NodeKinds []string
	// ConfigKey is the key used for configuration lookup, e.g.
	// "e1101_high_cyclomatic_complexity".
	ConfigKey string
}

// Checker inspects one node at a time and reports violations. Implementations
// are stateless across invocations within a run unless they also implement
// RunChecker.
type Checker interface {
	Metadata() Metadata

	// Check inspects a node of one of the checker's NodeKinds. The config is a
	// read-only snapshot the checker does not own.
	Check(node *sitter.Node, file *syntax.File, cfg *Config) []Violation
}

// RunChecker is implemented by checkers that accumulate state across the
// whole run. Finish is called exactly once, single-threaded, after every file
// has been processed.
type RunChecker interface {
	Checker
	Finish() []Violation
}
