package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for Ignore Matching:
// - Missing .skelignore ignores nothing
// - Blank lines and comment lines are skipped
// - Directory patterns (trailing slash) match everything underneath
// - Bare-name patterns match at any depth
// - Star patterns match by extension
// - Negation (!) re-includes a previously excluded path
// - Later lines override earlier ones

func TestLoadIgnore_MissingFile(t *testing.T) {
	m := LoadIgnore(t.TempDir())
	assert.False(t, m.ShouldIgnore("anything.py"))
	assert.False(t, m.ShouldIgnore("deep/nested/file.py"))
}

func TestLoadIgnore_ReadsFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, IgnoreFileName), []byte("*.pyc\n"), 0644))

	m := LoadIgnore(dir)
	assert.True(t, m.ShouldIgnore("cache.pyc"))
	assert.False(t, m.ShouldIgnore("main.py"))
}

func TestParseIgnore_SkipsCommentsAndBlanks(t *testing.T) {
	m := ParseIgnore("# a comment\n\n*.pyc\n")
	assert.True(t, m.ShouldIgnore("x.pyc"))
	assert.False(t, m.ShouldIgnore("# a comment"))
}

func TestShouldIgnore_DirectoryPattern(t *testing.T) {
	m := ParseIgnore("__pycache__/\ntests/\n")

	assert.True(t, m.ShouldIgnore("__pycache__/mod.cpython-312.pyc"))
	assert.True(t, m.ShouldIgnore("pkg/__pycache__/mod.pyc"))
	assert.True(t, m.ShouldIgnore("tests/test_app.py"))
	assert.True(t, m.ShouldIgnore("tests"))
	assert.False(t, m.ShouldIgnore("app/main.py"))
}

func TestShouldIgnore_BareNameMatchesAnyDepth(t *testing.T) {
	m := ParseIgnore("conftest.py\n")
	assert.True(t, m.ShouldIgnore("conftest.py"))
	assert.True(t, m.ShouldIgnore("pkg/sub/conftest.py"))
	assert.False(t, m.ShouldIgnore("pkg/conftest_extra.py"))
}

func TestShouldIgnore_ExtensionPattern(t *testing.T) {
	m := ParseIgnore("test_*.py\n")
	assert.True(t, m.ShouldIgnore("test_app.py"))
	assert.True(t, m.ShouldIgnore("pkg/test_util.py"))
	assert.False(t, m.ShouldIgnore("app_test_helpers.py"))
}

func TestShouldIgnore_Negation(t *testing.T) {
	m := ParseIgnore("*.pyc\n!keep.pyc\n")
	assert.True(t, m.ShouldIgnore("drop.pyc"))
	assert.False(t, m.ShouldIgnore("keep.pyc"))
}

func TestShouldIgnore_LastMatchWins(t *testing.T) {
	m := ParseIgnore("!generated.py\ngenerated.py\n")
	assert.True(t, m.ShouldIgnore("generated.py"))
}
