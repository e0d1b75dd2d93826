package cli

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"github.com/mvp-joe/pyskel/internal/config"
	"github.com/mvp-joe/pyskel/internal/discovery"
	"github.com/mvp-joe/pyskel/internal/pipeline"
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze SOURCE_DIR",
	Short: "Report level-annotation statistics for a project",
	Long: `Analyze counts functions, classes and @code_level annotations across every
non-ignored .py file under SOURCE_DIR, and prints the aggregated totals with
a level histogram. No files are modified.`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().IntVar(&jobsFlag, "jobs", 0, "Number of parallel workers (default: number of CPUs)")
	analyzeCmd.Flags().BoolVarP(&quietFlag, "quiet", "q", false, "Disable progress output")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	ctx, cancel := signalContext()
	defer cancel()

	sourceDir, err := filepath.Abs(args[0])
	if err != nil {
		return err
	}
	if info, err := os.Stat(sourceDir); err != nil || !info.IsDir() {
		return fmt.Errorf("source path %s is not a directory", sourceDir)
	}

	files, err := discovery.PythonFiles(sourceDir, config.LoadIgnore(sourceDir))
	if err != nil {
		return fmt.Errorf("failed to scan %s: %w", sourceDir, err)
	}

	if !quietFlag {
		log.Printf("Analyzing %s (%d files)...", sourceDir, len(files))
	}

	bar := newFileBar(len(files), "Analyzing files", quietFlag)
	stats, failures := pipeline.AnalyzeFiles(ctx, files, jobsFlag, func(string) {
		barAdd(bar)
	})

	for _, f := range failures {
		log.Printf("could not analyze %s: %v", f.Path, f.Err)
	}

	if ctx.Err() != nil {
		return fmt.Errorf("analysis cancelled")
	}

	fmt.Println("\n--- Project Analysis ---")
	fmt.Printf("Total Files Scanned: %d\n", stats.TotalFiles)
	fmt.Printf("Total Classes Found: %d\n", stats.TotalClasses)
	fmt.Printf("Total Functions Found: %d\n", stats.TotalFunctions)
	fmt.Printf("- Functions with @code_level: %d\n", stats.FunctionsWithLevel)
	fmt.Printf("- Coverage: %.2f%%\n", stats.LevelCoverage())

	fmt.Println("\n--- Level Distribution ---")
	levels := make([]int, 0, len(stats.LevelDistribution))
	for level := range stats.LevelDistribution {
		levels = append(levels, level)
	}
	sort.Ints(levels)
	for _, level := range levels {
		if count := stats.LevelDistribution[level]; count > 0 {
			fmt.Printf("  Level %d: %d function(s)\n", level, count)
		}
	}

	return nil
}
