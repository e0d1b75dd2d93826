package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mvp-joe/pyskel/internal/config"
)

const defaultConfigContent = `# pyskel configuration file

[pyskel]
# The minimum importance level for a function to have its full
# implementation preserved. Functions with a level below this will be
# skeletonized. Default is 1.
min_level = 1

# Keep an "Important calls:" summary inside skeletonized bodies.
smart_calls = true
`

const defaultIgnoreContent = `# Patterns for files and directories to ignore during skeleton extraction.
# Uses .gitignore syntax.

# Python cache
__pycache__/
*.pyc

# Virtual environment
.venv/
virtualenv/
env/

# Test files
tests/
test_*.py
*_test.py
`

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create default pyskel.toml and .skelignore files",
	Long: `Init scaffolds the two project-local files pyskel reads: pyskel.toml with
the default settings and .skelignore with common Python exclusions. Existing
files are left untouched.`,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	rootDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get working directory: %w", err)
	}

	if err := scaffold(filepath.Join(rootDir, config.ConfigFileName), defaultConfigContent); err != nil {
		return err
	}
	return scaffold(filepath.Join(rootDir, config.IgnoreFileName), defaultIgnoreContent)
}

// scaffold writes a default file unless it already exists.
func scaffold(path, content string) error {
	name := filepath.Base(path)
	if _, err := os.Stat(path); err == nil {
		fmt.Printf("%s already exists.\n", name)
		return nil
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to create %s: %w", name, err)
	}
	fmt.Printf("Created %s\n", name)
	return nil
}
