package skeleton

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

// DefaultMinLevel is the elision threshold used when neither configuration
// nor flags override it.
const DefaultMinLevel = 1

// Options controls a skeleton transform.
type Options struct {
	// MinLevel is the elision threshold: a function is elided iff its
	// resolved level is strictly below it.
	MinLevel int

	// PreserveCalls enables the "Important calls:" summary in elided
	// bodies.
	PreserveCalls bool
}

// edit replaces one byte span of the original source with synthesized text.
// Edits are collected in traversal order and never overlap, because the
// traversal does not descend into an elided function.
type edit struct {
	start, end uint
	text       string
}

// Transform rewrites the parsed file into its skeleton and returns the new
// source text. The parsed tree is never mutated; untouched regions of the
// output are byte-identical to the input. When an outer function is elided,
// its replacement body is synthesized from the original source span, so no
// trace of nested definitions (elided or not) survives inside it.
func Transform(f *File, opts Options) string {
	fileDefault := FileLevelDefault(f)

	var edits []edit
	Walk(f.Root(), func(n *sitter.Node) bool {
		if n.Kind() != "function_definition" {
			// Classes and all other statements pass through; their
			// members are visited unconditionally.
			return true
		}

		if ResolveLevel(f, n, fileDefault) >= opts.MinLevel {
			// Kept function. Nested definitions inside it are still
			// visited and rewritten independently.
			return true
		}

		body := n.ChildByFieldName("body")
		if body == nil {
			return true
		}
		edits = append(edits, f.elideBody(n, body, opts.PreserveCalls))
		return false
	})

	if len(edits) == 0 {
		return string(f.source)
	}

	var out strings.Builder
	out.Grow(len(f.source))
	last := uint(0)
	for _, e := range edits {
		out.Write(f.source[last:e.start])
		out.WriteString(e.text)
		last = e.end
	}
	out.Write(f.source[last:])
	return out.String()
}

// CreateSkeleton parses source text and returns its skeleton. This is the
// whole per-file pipeline: text in, text out, no I/O.
func CreateSkeleton(source []byte, opts Options) (string, error) {
	f, err := ParseFile(source)
	if err != nil {
		return "", err
	}
	defer f.Close()
	return Transform(f, opts), nil
}

// elideBody produces the edit replacing an elided function's body span,
// indented to match the original block.
func (f *File) elideBody(fn, body *sitter.Node, preserveCalls bool) edit {
	lines := f.skeletonBody(body, preserveCalls)
	indent, inline := f.blockIndent(fn, body)

	start := body.StartByte()
	if inline {
		// Swallow the padding between the colon and the inline body so
		// the def line does not keep a trailing space.
		for start > 0 && (f.source[start-1] == ' ' || f.source[start-1] == '\t') {
			start--
		}
	}

	var b strings.Builder
	for i, line := range lines {
		if i == 0 && !inline {
			// The splice starts at the block's first statement, which
			// is already indented in the surrounding text.
			b.WriteString(line)
			continue
		}
		b.WriteString("\n")
		if line != "" {
			b.WriteString(indent)
			b.WriteString(line)
		}
	}
	return edit{start: start, end: body.EndByte(), text: b.String()}
}

// blockIndent determines the indentation prefix for the replacement body. A
// body that starts on its own line reuses the exact whitespace preceding its
// first statement (preserving tabs); an inline body ("def f(): return 1")
// gets the def line's indentation plus one level, and the replacement opens
// with a newline.
func (f *File) blockIndent(fn, body *sitter.Node) (indent string, inline bool) {
	prefix := f.linePrefix(body.StartByte())
	if isWhitespace(prefix) {
		return prefix, false
	}

	defPrefix := f.linePrefix(fn.StartByte())
	if !isWhitespace(defPrefix) {
		defPrefix = strings.Repeat(" ", int(fn.StartPosition().Column))
	}
	return defPrefix + "    ", true
}

// linePrefix returns the text between the start of a byte offset's line and
// the offset itself.
func (f *File) linePrefix(offset uint) string {
	start := strings.LastIndexByte(string(f.source[:offset]), '\n') + 1
	return string(f.source[start:offset])
}

func isWhitespace(s string) bool {
	for _, r := range s {
		if r != ' ' && r != '\t' {
			return false
		}
	}
	return true
}
