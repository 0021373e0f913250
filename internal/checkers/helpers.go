package checkers

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"ferrolint/internal/syntax"
)

// methodCall decomposes a call_expression of the form recv.method(...).
// Returns ok=false for plain and path calls.
func methodCall(f *syntax.File, call *sitter.Node) (method string, receiver *sitter.Node, ok bool) {
	fn := call.ChildByFieldName("function")
	if fn == nil || fn.Type() != "field_expression" {
		return "", nil, false
	}
	field := fn.ChildByFieldName("field")
	receiver = fn.ChildByFieldName("value")
	if field == nil || receiver == nil {
		return "", nil, false
	}
	return f.Text(field), receiver, true
}

// calleePath returns the full path text of a call_expression's callee, e.g.
// "std::thread::spawn". Empty for method calls.
func calleePath(f *syntax.File, call *sitter.Node) string {
	fn := call.ChildByFieldName("function")
	if fn == nil {
		return ""
	}
	switch fn.Type() {
	case "identifier", "scoped_identifier":
		return f.Text(fn)
	}
	return ""
}

// macroName returns the last path segment of a macro_invocation's name, so
// both panic! and std::panic! resolve to "panic".
func macroName(f *syntax.File, n *sitter.Node) string {
	m := n.ChildByFieldName("macro")
	if m == nil {
		return ""
	}
	name := f.Text(m)
	if i := strings.LastIndex(name, "::"); i >= 0 {
		name = name[i+2:]
	}
	return name
}

// binaryOperator returns the operator token text of a binary_expression.
func binaryOperator(n *sitter.Node) string {
	if op := n.ChildByFieldName("operator"); op != nil {
		return op.Type()
	}
	// Older grammars leave the operator as an anonymous child.
	for i := 0; i < int(n.ChildCount()); i++ {
		c := n.Child(i)
		if !c.IsNamed() {
			return c.Type()
		}
	}
	return ""
}

// ancestorOfKind walks up from a node looking for an ancestor of one of the
// given kinds.
func ancestorOfKind(n *sitter.Node, kinds ...string) *sitter.Node {
	for p := n.Parent(); p != nil; p = p.Parent() {
		for _, kind := range kinds {
			if p.Type() == kind {
				return p
			}
		}
	}
	return nil
}

// countParameters counts the declared parameters of a function_item,
// excluding self.
func countParameters(fn *sitter.Node, kind string) int {
	params := fn.ChildByFieldName("parameters")
	if params == nil {
		return 0
	}
	count := 0
	for i := 0; i < int(params.NamedChildCount()); i++ {
		if params.NamedChild(i).Type() == kind {
			count++
		}
	}
	return count
}
