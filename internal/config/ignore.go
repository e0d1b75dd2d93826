package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// IgnoreFileName is the project-local ignore file, one gitignore-style
// pattern per line.
const IgnoreFileName = ".skelignore"

// ignorePattern is one compiled-ish ignore line. Patterns are matched as-is;
// directory patterns (trailing slash) and bare names get widened variants at
// match time.
type ignorePattern struct {
	pattern string
	negate  bool
}

// IgnoreMatcher decides which relative paths are excluded from processing.
// With no patterns, nothing is ignored.
type IgnoreMatcher struct {
	patterns []ignorePattern
}

// LoadIgnore reads the project's .skelignore. A missing file yields an empty
// matcher.
func LoadIgnore(rootDir string) *IgnoreMatcher {
	data, err := os.ReadFile(filepath.Join(rootDir, IgnoreFileName))
	if err != nil {
		return &IgnoreMatcher{}
	}
	return ParseIgnore(string(data))
}

// ParseIgnore builds a matcher from ignore-file content.
func ParseIgnore(content string) *IgnoreMatcher {
	m := &IgnoreMatcher{}
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		negate := false
		if strings.HasPrefix(line, "!") {
			negate = true
			line = strings.TrimPrefix(line, "!")
		}
		m.patterns = append(m.patterns, ignorePattern{pattern: line, negate: negate})
	}
	return m
}

// ShouldIgnore reports whether a slash-separated path relative to the
// project root matches the ignore rules. Later lines override earlier ones,
// so a negated pattern can re-include a path a previous line excluded.
func (m *IgnoreMatcher) ShouldIgnore(relPath string) bool {
	relPath = filepath.ToSlash(relPath)
	ignored := false
	for _, p := range m.patterns {
		if matchIgnorePattern(p.pattern, relPath) {
			ignored = !p.negate
		}
	}
	return ignored
}

// matchIgnorePattern applies one pattern with gitignore-ish widening: a
// trailing-slash pattern matches everything under the directory, and a
// pattern with no slash matches at any depth.
func matchIgnorePattern(pattern, path string) bool {
	if strings.HasSuffix(pattern, "/") {
		pattern = strings.TrimSuffix(pattern, "/")
		if match(pattern, path) || match(pattern+"/**", path) || match("**/"+pattern, path) || match("**/"+pattern+"/**", path) {
			return true
		}
		return false
	}

	if match(pattern, path) {
		return true
	}
	if !strings.Contains(pattern, "/") && match("**/"+pattern, path) {
		return true
	}
	return false
}

func match(pattern, path string) bool {
	ok, err := doublestar.Match(pattern, path)
	return err == nil && ok
}
