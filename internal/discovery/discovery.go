// Package discovery enumerates the Python files a run will process.
package discovery

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/mvp-joe/pyskel/internal/config"
)

// PythonFiles walks rootDir and returns the absolute paths of every
// non-ignored .py file, in walk order. Ignored directories are pruned so
// their contents are never visited.
func PythonFiles(rootDir string, ignore *config.IgnoreMatcher) ([]string, error) {
	files := []string{}

	err := filepath.Walk(rootDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		relPath, err := filepath.Rel(rootDir, path)
		if err != nil {
			return err
		}
		relPath = filepath.ToSlash(relPath)
		if relPath == "." {
			return nil
		}

		if info.IsDir() {
			if ignore.ShouldIgnore(relPath) || ignore.ShouldIgnore(relPath+"/") {
				return filepath.SkipDir
			}
			return nil
		}

		if !strings.HasSuffix(path, ".py") {
			return nil
		}
		if ignore.ShouldIgnore(relPath) {
			return nil
		}

		files = append(files, path)
		return nil
	})

	return files, err
}
