package skeleton

import (
	"fmt"

	sitter "github.com/tree-sitter/go-tree-sitter"
	python "github.com/tree-sitter/tree-sitter-python/bindings/go"
)

// pythonLanguage is shared by every parse; tree-sitter languages are immutable.
var pythonLanguage = sitter.NewLanguage(python.Language())

// ParseError reports a syntax error found while parsing a source file.
// Positions are 1-indexed.
type ParseError struct {
	Line   int
	Column int
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("syntax error at line %d, column %d", e.Line, e.Column)
}

// File is one parsed Python source file. It owns the tree-sitter tree and the
// original source bytes, and can render the exact source span of any node.
// A File is exclusively owned by the caller that parsed it and must not be
// shared across goroutines.
type File struct {
	source []byte
	tree   *sitter.Tree
}

// ParseFile parses Python source text. Files whose tree contains syntax
// errors are rejected with a *ParseError identifying the first error node.
func ParseFile(source []byte) (*File, error) {
	parser := sitter.NewParser()
	defer parser.Close()

	parser.SetLanguage(pythonLanguage)

	tree := parser.Parse(source, nil)
	if tree == nil {
		return nil, &ParseError{Line: 1, Column: 1}
	}

	root := tree.RootNode()
	if root.HasError() {
		err := firstErrorPosition(root)
		tree.Close()
		return nil, err
	}

	return &File{source: source, tree: tree}, nil
}

// Close releases the underlying tree. The File must not be used afterwards.
func (f *File) Close() {
	if f.tree != nil {
		f.tree.Close()
		f.tree = nil
	}
}

// Root returns the module node of the parsed file.
func (f *File) Root() *sitter.Node {
	return f.tree.RootNode()
}

// Source returns the original source bytes.
func (f *File) Source() []byte {
	return f.source
}

// NodeText returns the exact original source text spanning the node.
func (f *File) NodeText(node *sitter.Node) string {
	text, err := f.nodeText(node)
	if err != nil {
		return ""
	}
	return text
}

// nodeText is the fallible variant of NodeText. A node whose span does not
// fit the source buffer cannot be rendered.
func (f *File) nodeText(node *sitter.Node) (string, error) {
	if node == nil {
		return "", fmt.Errorf("cannot render nil node")
	}
	start, end := node.StartByte(), node.EndByte()
	if start > end || end > uint(len(f.source)) {
		return "", fmt.Errorf("node span [%d:%d] outside source of %d bytes", start, end, len(f.source))
	}
	return string(f.source[start:end]), nil
}

// firstErrorPosition walks the tree for the first ERROR or MISSING node and
// reports its position.
func firstErrorPosition(root *sitter.Node) *ParseError {
	perr := &ParseError{
		Line:   int(root.StartPosition().Row) + 1,
		Column: int(root.StartPosition().Column) + 1,
	}
	found := false
	Walk(root, func(n *sitter.Node) bool {
		if found {
			return false
		}
		if n.IsError() || n.IsMissing() {
			perr.Line = int(n.StartPosition().Row) + 1
			perr.Column = int(n.StartPosition().Column) + 1
			found = true
			return false
		}
		return true
	})
	return perr
}

// Walk recursively visits node and its children in pre-order. Returning
// false from the visitor skips the node's children; this skip signal is
// load-bearing for the call-collection and analysis traversals, which must
// not descend past certain nodes.
func Walk(node *sitter.Node, visitor func(*sitter.Node) bool) {
	if node == nil {
		return
	}

	if !visitor(node) {
		return
	}

	for i := uint(0); i < node.ChildCount(); i++ {
		Walk(node.Child(i), visitor)
	}
}
