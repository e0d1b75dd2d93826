package skeleton

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for the Skeleton Transformer:
// - Function below threshold gets docstring + call summary + pass
// - Function at or above threshold is preserved byte-identical
// - Classes are never elided; their methods are processed individually
// - *Error constructor calls are filtered from the call summary
// - Nested calls are folded into the outermost call
// - Comments survive elision, deduplicated by position
// - Blank separator appears only between call block and comment block
// - Outer elision leaves no trace of nested function definitions
// - Raising the threshold never un-elides a function (monotonicity)
// - Output always re-parses (round-trip validity)
// - Re-transforming a skeleton is stable (idempotence)
// - PreserveCalls=false drops the call summary
// - File-level default drives elision of undecorated functions
// - Inline single-line bodies are rewritten onto indented lines
// - Module-level statements pass through unchanged

func transformSource(t *testing.T, source string, opts Options) string {
	t.Helper()
	out, err := CreateSkeleton([]byte(source), opts)
	require.NoError(t, err)
	return out
}

var defaultOpts = Options{MinLevel: 1, PreserveCalls: true}

func TestTransform_ElidesLowLevelFunction(t *testing.T) {
	source := `@code_level(0)
def fetch():
    """Fetch remote data."""
    fetch_data()
`
	want := `@code_level(0)
def fetch():
    """Fetch remote data."""
    # Important calls:
    # → fetch_data()
    pass
`
	assert.Equal(t, want, transformSource(t, source, defaultOpts))
}

func TestTransform_KeepsFunctionAtThreshold(t *testing.T) {
	source := `@code_level(1)
def important():
    x = compute()
    return x + 1
`
	assert.Equal(t, source, transformSource(t, source, defaultOpts))
}

func TestTransform_UndecoratedFunctionUsesFileDefault(t *testing.T) {
	source := `__code_level__ = 2

def keep_me():
    return do_work()
`
	// File default 2 >= threshold 1, so nothing changes.
	assert.Equal(t, source, transformSource(t, source, defaultOpts))

	// A threshold above the file default elides the body.
	out := transformSource(t, source, Options{MinLevel: 3, PreserveCalls: true})
	assert.NotContains(t, out, "return do_work()")
	assert.Contains(t, out, "# → do_work()")
}

func TestTransform_FiltersErrorConstructors(t *testing.T) {
	source := `def handle(event):
    if not event:
        raise ValueError("empty event")
    log_event(event)
`
	out := transformSource(t, source, defaultOpts)
	assert.Contains(t, out, "# → log_event(event)")
	assert.NotContains(t, out, "ValueError")
}

func TestTransform_NoHeaderWhenAllCallsFiltered(t *testing.T) {
	source := `def fail():
    raise RuntimeError("nope")
`
	out := transformSource(t, source, defaultOpts)
	assert.NotContains(t, out, "# Important calls:")
	assert.Contains(t, out, "pass")
}

func TestTransform_OutermostCallOnly(t *testing.T) {
	source := `def chain():
    outer(inner(x), other())
`
	out := transformSource(t, source, defaultOpts)
	assert.Contains(t, out, "# → outer(inner(x), other())")
	assert.NotContains(t, out, "# → inner(x)")
	assert.NotContains(t, out, "# → other()\n")
}

func TestTransform_PreservesBodyComments(t *testing.T) {
	source := `def noisy():
    # first step
    setup()
    # second step
    run()
`
	out := transformSource(t, source, defaultOpts)
	assert.Contains(t, out, "# first step")
	assert.Contains(t, out, "# second step")

	// Separator blank line sits between the call block and the comments.
	want := `def noisy():
    # Important calls:
    # → setup()
    # → run()

    # first step
    # second step
    pass
`
	assert.Equal(t, want, out)
}

func TestTransform_DuplicateCommentTextKeptPerPosition(t *testing.T) {
	source := `def repeated():
    # retry
    attempt()
    # retry
    attempt()
`
	out := transformSource(t, source, defaultOpts)
	assert.Equal(t, 2, strings.Count(out, "# retry"))
}

func TestTransform_NoSeparatorWithoutCallBlock(t *testing.T) {
	source := `def quiet():
    # just a note
    x = 1
`
	want := `def quiet():
    # just a note
    pass
`
	assert.Equal(t, want, transformSource(t, source, defaultOpts))
}

func TestTransform_PreserveCallsDisabled(t *testing.T) {
	source := `def fetch():
    """Doc."""
    fetch_data()
`
	out := transformSource(t, source, Options{MinLevel: 1, PreserveCalls: false})
	want := `def fetch():
    """Doc."""
    pass
`
	assert.Equal(t, want, out)
}

func TestTransform_OuterElisionWinsOverInner(t *testing.T) {
	source := `def outer():
    @code_level(5)
    def inner():
        process()
    return inner()
`
	out := transformSource(t, source, defaultOpts)
	assert.NotContains(t, out, "def inner")
	assert.NotContains(t, out, "@code_level(5)")
	assert.Contains(t, out, "# → process()")
	assert.Contains(t, out, "# → inner()")
	assert.Contains(t, out, "pass")
}

func TestTransform_NestedFunctionInsideKeptFunction(t *testing.T) {
	source := `@code_level(2)
def outer():
    def helper():
        do_stuff()
    return helper()
`
	out := transformSource(t, source, defaultOpts)
	// The kept outer survives; the level-0 inner is rewritten on its own.
	assert.Contains(t, out, "def outer():")
	assert.Contains(t, out, "def helper():")
	assert.Contains(t, out, "# → do_stuff()")
	assert.NotContains(t, out, "        do_stuff()\n")
	assert.Contains(t, out, "    return helper()")
}

func TestTransform_ClassesNeverElided(t *testing.T) {
	source := `class Widget:
    """A widget."""

    @code_level(2)
    def keep(self):
        return self.x

    def drop(self):
        self.render()
`
	out := transformSource(t, source, defaultOpts)
	assert.Contains(t, out, "class Widget:")
	assert.Contains(t, out, `"""A widget."""`)
	assert.Contains(t, out, "return self.x")
	assert.NotContains(t, out, "        self.render()\n")
	assert.Contains(t, out, "# → self.render()")
}

func TestTransform_ModuleStatementsPassThrough(t *testing.T) {
	source := `import os

CONSTANT = 42

def low():
    work()

print(CONSTANT)
`
	out := transformSource(t, source, defaultOpts)
	assert.Contains(t, out, "import os")
	assert.Contains(t, out, "CONSTANT = 42")
	assert.Contains(t, out, "print(CONSTANT)")
}

func TestTransform_InlineBody(t *testing.T) {
	source := "def tiny(): return compute()\n"
	out := transformSource(t, source, defaultOpts)
	want := `def tiny():
    # Important calls:
    # → compute()
    pass
`
	assert.Equal(t, want, out)
	assertReparses(t, out)
}

func TestTransform_ThresholdMonotonicity(t *testing.T) {
	source := `@code_level(0)
def zero():
    marker_zero = 1

@code_level(1)
def one():
    marker_one = 1

@code_level(2)
def two():
    marker_two = 1
`
	markers := []string{"marker_zero", "marker_one", "marker_two"}
	prevElided := -1
	for minLevel := 0; minLevel <= 3; minLevel++ {
		out := transformSource(t, source, Options{MinLevel: minLevel, PreserveCalls: true})
		elided := 0
		for _, marker := range markers {
			if !strings.Contains(out, marker) {
				elided++
			}
		}
		assert.GreaterOrEqual(t, elided, prevElided, "min_level=%d elided fewer functions than a lower threshold", minLevel)
		prevElided = elided
	}
	assert.Equal(t, 3, prevElided, "highest threshold should elide everything")
}

func assertReparses(t *testing.T, source string) {
	t.Helper()
	f, err := ParseFile([]byte(source))
	require.NoError(t, err, "transformer output must re-parse:\n%s", source)
	f.Close()
}

func TestTransform_RoundTripValidity(t *testing.T) {
	sources := []string{
		"@code_level(0)\ndef a():\n    \"\"\"Doc.\"\"\"\n    b()\n",
		"def outer():\n    def inner():\n        x()\n    return inner\n",
		"class C:\n    def m(self):\n        # note\n        self.go()\n",
		"def tiny(): go()\n",
	}
	for _, source := range sources {
		assertReparses(t, transformSource(t, source, defaultOpts))
	}
}

func TestTransform_Idempotence(t *testing.T) {
	source := `@code_level(0)
def fetch():
    """Doc."""
    fetch_data()
`
	once := transformSource(t, source, defaultOpts)
	twice := transformSource(t, once, defaultOpts)
	assert.Equal(t, once, twice)
}

func TestTransform_IdempotenceWithComments(t *testing.T) {
	source := `def noisy():
    # a comment
    run()
`
	once := transformSource(t, source, defaultOpts)
	twice := transformSource(t, once, defaultOpts)

	// The second pass re-derives the summary from what are now comment
	// lines; the substance (non-blank lines) must be stable.
	assert.Equal(t, nonBlankLines(once), nonBlankLines(twice))
	assertReparses(t, twice)
}

func nonBlankLines(s string) []string {
	var lines []string
	for _, line := range strings.Split(s, "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

func TestTransform_MultiLineCallFlattenedInComment(t *testing.T) {
	source := `def spread():
    configure(
        alpha=1,
        beta=2,
    )
`
	out := transformSource(t, source, defaultOpts)
	assert.Contains(t, out, "# → configure( alpha=1, beta=2, )")
	assertReparses(t, out)
}

func TestTransform_EmptyModule(t *testing.T) {
	assert.Equal(t, "", transformSource(t, "", defaultOpts))
}

func TestParseFile_RejectsInvalidSyntax(t *testing.T) {
	_, err := ParseFile([]byte("def broken(:\n    pass\n"))
	require.Error(t, err)
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Greater(t, perr.Line, 0)
}

func TestTransform_TabIndentationPreserved(t *testing.T) {
	source := "def tabbed():\n\twork()\n"
	out := transformSource(t, source, defaultOpts)
	assert.Contains(t, out, "\t# Important calls:")
	assert.Contains(t, out, "\tpass")
	assertReparses(t, out)
}
