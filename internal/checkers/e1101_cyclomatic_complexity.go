package checkers

import (
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"

	"ferrolint/internal/checker"
	"ferrolint/internal/registry"
	"ferrolint/internal/syntax"
)

// cyclomaticComplexity measures each function's decision-point count and the
// maximum nesting depth of its branching constructs. At most one violation is
// raised per function, however many thresholds it exceeds.
type cyclomaticComplexity struct {
	meta checker.Metadata
}

func newCyclomaticComplexity() registry.Entry {
	meta := checker.Metadata{
		Code:       "e1101",
		Name:       "High cyclomatic complexity",
		Suggestion: "Break the function into smaller, focused functions; use early returns to flatten nesting",
		NodeKinds:  []string{"function_item"},
		ConfigKey:  "e1101_high_cyclomatic_complexity",
	}
	return registry.Entry{
		Meta: meta,
		Default: checker.Config{
			Enabled:    true,
			Severity:   checker.SeverityMedium,
			Categories: []string{checker.CategoryComplexity},
			Params: map[string]any{
				"max_complexity": 10,
				"max_nesting":    4,
			},
		},
		New: func() checker.Checker { return &cyclomaticComplexity{meta: meta} },
	}
}

func (c *cyclomaticComplexity) Metadata() checker.Metadata { return c.meta }

func (c *cyclomaticComplexity) Check(n *sitter.Node, f *syntax.File, cfg *checker.Config) []checker.Violation {
	body := n.ChildByFieldName("body")
	if body == nil {
		return nil
	}

	m := measureComplexity(body, f)
	maxComplexity := cfg.Int("max_complexity")
	maxNesting := cfg.Int("max_nesting")

	tooComplex := m.score > maxComplexity
	tooDeep := m.maxDepth > maxNesting
	if !tooComplex && !tooDeep {
		return nil
	}

	name := f.FunctionName(n)
	var msg string
	switch {
	case tooComplex && tooDeep:
		msg = fmt.Sprintf("function '%s' has cyclomatic complexity %d (limit %d) and nesting depth %d (limit %d)",
			name, m.score, maxComplexity, m.maxDepth, maxNesting)
	case tooComplex:
		msg = fmt.Sprintf("function '%s' has cyclomatic complexity %d, exceeding the limit of %d",
			name, m.score, maxComplexity)
	default:
		msg = fmt.Sprintf("function '%s' has nesting depth %d, exceeding the limit of %d",
			name, m.maxDepth, maxNesting)
	}

	return []checker.Violation{checker.NewViolation(c.meta, n, f, msg)}
}

// metrics holds one function body's measurements. The cyclomatic score is
// 1 + the number of decision points.
type metrics struct {
	score    int
	maxDepth int
}

// measureComplexity walks one function body counting decision points and
// tracking nesting depth. Nested function items are scored on their own, so
// their subtrees are skipped here.
func measureComplexity(body *sitter.Node, f *syntax.File) metrics {
	m := metrics{score: 1}
	walkDepth(body, f, 0, &m)
	return m
}

func walkDepth(n *sitter.Node, f *syntax.File, depth int, m *metrics) {
	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		childDepth := depth

		switch child.Type() {
		case "function_item":
			continue
		case "if_expression", "while_expression", "for_expression", "loop_expression":
			m.score++
			childDepth++
		case "match_expression":
			// Each arm beyond the first is an extra path.
			if arms := child.ChildByFieldName("body"); arms != nil {
				count := 0
				for j := 0; j < int(arms.NamedChildCount()); j++ {
					if arms.NamedChild(j).Type() == "match_arm" {
						count++
					}
				}
				if count > 1 {
					m.score += count - 1
				}
			}
			childDepth++
		case "binary_expression":
			switch binaryOperator(child) {
			case "&&", "||":
				m.score++
			}
		case "try_expression":
			// The ? operator is an Ok-vs-Err decision point.
			m.score++
		}

		if childDepth > m.maxDepth {
			m.maxDepth = childDepth
		}
		walkDepth(child, f, childDepth, m)
	}
}
