package cli

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mvp-joe/pyskel/internal/config"
	"github.com/mvp-joe/pyskel/internal/discovery"
	"github.com/mvp-joe/pyskel/internal/pipeline"
)

// previewCmd represents the preview command
var previewCmd = &cobra.Command{
	Use:   "preview SOURCE_DIR",
	Short: "Print skeletons to the console without writing files",
	Long: `Preview runs the same transform as extract but prints each skeleton to
stdout, separated by file headers. Nothing is written to disk.`,
	Args: cobra.ExactArgs(1),
	RunE: runPreview,
}

func init() {
	rootCmd.AddCommand(previewCmd)
	previewCmd.Flags().IntVar(&minLevelFlag, "min-level", 0, "Minimum code level to preserve full implementation (overrides config)")
	previewCmd.Flags().IntVar(&jobsFlag, "jobs", 0, "Number of parallel workers (default: number of CPUs)")
}

func runPreview(cmd *cobra.Command, args []string) error {
	ctx, cancel := signalContext()
	defer cancel()

	sourceDir, err := filepath.Abs(args[0])
	if err != nil {
		return err
	}
	if info, err := os.Stat(sourceDir); err != nil || !info.IsDir() {
		return fmt.Errorf("source path %s is not a directory", sourceDir)
	}

	settings := config.Load(sourceDir)
	opts := transformOptions(cmd, settings)

	files, err := discovery.PythonFiles(sourceDir, config.LoadIgnore(sourceDir))
	if err != nil {
		return fmt.Errorf("failed to scan %s: %w", sourceDir, err)
	}

	fmt.Printf("Previewing skeleton for %s using min-level %d...\n", sourceDir, opts.MinLevel)

	results := pipeline.ExtractFiles(ctx, files, opts, jobsFlag, nil)
	for _, r := range results {
		relPath, relErr := filepath.Rel(sourceDir, r.Path)
		if relErr != nil {
			relPath = r.Path
		}
		if r.Err != nil {
			log.Printf("error processing %s: %v", relPath, r.Err)
			continue
		}
		fmt.Printf("--- %s ---\n", relPath)
		fmt.Println(r.Output)
	}

	if ctx.Err() != nil {
		return fmt.Errorf("preview cancelled")
	}
	return nil
}
