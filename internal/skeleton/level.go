package skeleton

import (
	"strconv"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

const (
	// LevelMarker is the decorator name carrying a function's importance
	// level, e.g. @code_level(2).
	LevelMarker = "code_level"

	// FileLevelName is the reserved module-scope identifier whose integer
	// assignment sets the file-wide default level.
	FileLevelName = "__code_level__"
)

// ResolveLevel returns the importance level governing a function definition.
// Precedence: first matching @code_level(N) decorator, then the file-level
// default. Malformed marker usage (no arguments, non-integer argument) is
// treated as a non-match, not an error.
func ResolveLevel(f *File, fn *sitter.Node, fileDefault int) int {
	parent := fn.Parent()
	if parent == nil || parent.Kind() != "decorated_definition" {
		return fileDefault
	}

	for i := uint(0); i < parent.ChildCount(); i++ {
		child := parent.Child(i)
		if child.Kind() != "decorator" {
			continue
		}
		if level, ok := decoratorLevel(f, child); ok {
			return level
		}
	}
	return fileDefault
}

// decoratorLevel extracts the level from a single decorator if it has the
// shape code_level(<integer literal>).
func decoratorLevel(f *File, decorator *sitter.Node) (int, bool) {
	expr := decorator.NamedChild(0)
	if expr == nil || expr.Kind() != "call" {
		return 0, false
	}

	callee := expr.ChildByFieldName("function")
	if callee == nil || callee.Kind() != "identifier" || f.NodeText(callee) != LevelMarker {
		return 0, false
	}

	args := expr.ChildByFieldName("arguments")
	if args == nil {
		return 0, false
	}
	arg := args.NamedChild(0)
	if arg == nil || arg.Kind() != "integer" {
		return 0, false
	}

	level, err := strconv.Atoi(f.NodeText(arg))
	if err != nil {
		return 0, false
	}
	return level, true
}

// FileLevelDefault scans the module's top-level statements for the first
// __code_level__ = N assignment and returns N, or 0 when absent. Nested
// blocks are not searched.
func FileLevelDefault(f *File) int {
	root := f.Root()
	for i := uint(0); i < root.NamedChildCount(); i++ {
		stmt := root.NamedChild(i)
		if stmt.Kind() != "expression_statement" {
			continue
		}
		assign := stmt.NamedChild(0)
		if assign == nil || assign.Kind() != "assignment" {
			continue
		}
		left := assign.ChildByFieldName("left")
		right := assign.ChildByFieldName("right")
		if left == nil || right == nil {
			continue
		}
		if left.Kind() != "identifier" || f.NodeText(left) != FileLevelName {
			continue
		}
		if right.Kind() != "integer" {
			continue
		}
		if level, err := strconv.Atoi(f.NodeText(right)); err == nil {
			return level
		}
	}
	return 0
}
