// Package syntax wraps tree-sitter parsing of Rust source files.
//
// The rest of the analyzer treats the tree as opaque: checkers only rely on
// node kinds, field lookups, source positions and node text, all of which are
// exposed here.
package syntax

import (
	"context"
	"fmt"
	"os"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/rust"
)

// File is one parsed source file.
type File struct {
	Path   string
	Source []byte

	tree  *sitter.Tree
	kinds map[string][]*sitter.Node
}

// Parse parses raw source into a File.
func Parse(ctx context.Context, path string, source []byte) (*File, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(rust.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, source)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	return &File{Path: path, Source: source, tree: tree}, nil
}

// ParseFile reads and parses a file from disk.
func ParseFile(ctx context.Context, path string) (*File, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return Parse(ctx, path, source)
}

// Root returns the root node of the parsed tree.
func (f *File) Root() *sitter.Node {
	return f.tree.RootNode()
}

// Close releases the underlying tree.
func (f *File) Close() {
	f.tree.Close()
}

// Text returns the source text covered by a node.
func (f *File) Text(n *sitter.Node) string {
	return n.Content(f.Source)
}

// NodesOfKind returns every node of the given kind in document order.
func (f *File) NodesOfKind(kind string) []*sitter.Node {
	return f.kindIndex()[kind]
}

// HasKind reports whether any node of the given kind is present in the tree.
func (f *File) HasKind(kind string) bool {
	_, ok := f.kindIndex()[kind]
	return ok
}

// kindIndex lazily builds the kind -> nodes index with one preorder walk.
func (f *File) kindIndex() map[string][]*sitter.Node {
	if f.kinds == nil {
		f.kinds = make(map[string][]*sitter.Node)
		Walk(f.Root(), func(n *sitter.Node) bool {
			f.kinds[n.Type()] = append(f.kinds[n.Type()], n)
			return true
		})
	}
	return f.kinds
}

// Walk visits named nodes in preorder. Returning false from visit skips the
// node's subtree.
func Walk(n *sitter.Node, visit func(*sitter.Node) bool) {
	if !visit(n) {
		return
	}
	for i := 0; i < int(n.NamedChildCount()); i++ {
		Walk(n.NamedChild(i), visit)
	}
}

// Line returns the 1-indexed start line of a node.
func Line(n *sitter.Node) int {
	return int(n.StartPoint().Row) + 1
}

// Column returns the 1-indexed start column of a node.
func Column(n *sitter.Node) int {
	return int(n.StartPoint().Column) + 1
}

// EndLine returns the 1-indexed end line of a node.
func EndLine(n *sitter.Node) int {
	return int(n.EndPoint().Row) + 1
}

// Function is a named function together with its line span.
type Function struct {
	Node      *sitter.Node
	Name      string
	StartLine int
	EndLine   int
}

// Functions returns every function in the file, including methods inside
// impl blocks, in document order.
func (f *File) Functions() []Function {
	var funcs []Function
	for _, n := range f.NodesOfKind("function_item") {
		name := n.ChildByFieldName("name")
		if name == nil {
			continue
		}
		funcs = append(funcs, Function{
			Node:      n,
			Name:      f.Text(name),
			StartLine: Line(n),
			EndLine:   EndLine(n),
		})
	}
	return funcs
}

// FunctionName returns the name of a function_item node, or "" when the node
// has no name field.
func (f *File) FunctionName(n *sitter.Node) string {
	name := n.ChildByFieldName("name")
	if name == nil {
		return ""
	}
	return f.Text(name)
}
