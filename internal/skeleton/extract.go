package skeleton

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

const (
	callHeaderComment = "# Important calls:"
	callCommentPrefix = "# → "
	placeholderStmt   = "pass"
)

// skeletonBody builds the replacement statement lines for an elided
// function's body. The input is the original (pre-rewrite) body block; the
// result is never empty because it always ends with a pass statement.
func (f *File) skeletonBody(body *sitter.Node, preserveCalls bool) []string {
	var lines []string

	if doc := docstringStatement(body); doc != nil {
		lines = append(lines, f.NodeText(doc))
	}

	callsEmitted := false
	if preserveCalls {
		var callLines []string
		for _, call := range collectCalls(body) {
			if f.isErrorConstruction(call) {
				continue
			}
			text, err := f.nodeText(call)
			if err != nil {
				// A single unrenderable call must not abort the
				// rest of the summary.
				continue
			}
			callLines = append(callLines, callCommentPrefix+flattenSpan(text))
		}
		if len(callLines) > 0 {
			lines = append(lines, callHeaderComment)
			lines = append(lines, callLines...)
			callsEmitted = true
		}
	}

	if comments := collectComments(body); len(comments) > 0 {
		if callsEmitted {
			lines = append(lines, "")
		}
		for _, comment := range comments {
			lines = append(lines, f.NodeText(comment))
		}
	}

	return append(lines, placeholderStmt)
}

// docstringStatement returns the body's leading string-literal expression
// statement, or nil when the body has no docstring.
func docstringStatement(body *sitter.Node) *sitter.Node {
	first := body.NamedChild(0)
	if first == nil || first.Kind() != "expression_statement" {
		return nil
	}
	if first.NamedChildCount() != 1 {
		return nil
	}
	switch first.NamedChild(0).Kind() {
	case "string", "concatenated_string":
		return first
	}
	return nil
}

// collectCalls gathers call expressions in pre-order, stopping at each call
// so that calls nested inside another call's callee or arguments are folded
// into the outermost one.
func collectCalls(body *sitter.Node) []*sitter.Node {
	var calls []*sitter.Node
	Walk(body, func(n *sitter.Node) bool {
		if n.Kind() == "call" {
			calls = append(calls, n)
			return false
		}
		return true
	})
	return calls
}

// isErrorConstruction reports whether a call's callee is a bare name ending
// in "Error", e.g. ValueError(...). These are excluded from call summaries.
func (f *File) isErrorConstruction(call *sitter.Node) bool {
	callee := call.ChildByFieldName("function")
	if callee == nil || callee.Kind() != "identifier" {
		return false
	}
	return strings.HasSuffix(f.NodeText(callee), "Error")
}

// collectComments gathers every comment token in the body, deduplicated by
// position. Two lexically identical comments at different offsets are both
// kept.
func collectComments(body *sitter.Node) []*sitter.Node {
	var comments []*sitter.Node
	seen := make(map[uint]bool)
	Walk(body, func(n *sitter.Node) bool {
		if n.Kind() == "comment" {
			if !seen[n.StartByte()] {
				comments = append(comments, n)
				seen[n.StartByte()] = true
			}
		}
		return true
	})
	return comments
}

// flattenSpan collapses a multi-line source span onto one line so it stays
// valid inside a single comment. Single-line spans pass through untouched.
func flattenSpan(text string) string {
	if !strings.ContainsAny(text, "\r\n") {
		return text
	}
	fields := strings.Fields(text)
	return strings.Join(fields, " ")
}
