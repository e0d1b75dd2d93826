package cli

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mvp-joe/pyskel/internal/config"
	"github.com/mvp-joe/pyskel/internal/discovery"
	"github.com/mvp-joe/pyskel/internal/pipeline"
	"github.com/mvp-joe/pyskel/internal/skeleton"
)

var (
	outputDir    string
	minLevelFlag int
	jobsFlag     int
	quietFlag    bool
)

// extractCmd represents the extract command
var extractCmd = &cobra.Command{
	Use:   "extract SOURCE_DIR",
	Short: "Extract skeletons for a whole directory tree",
	Long: `Extract processes every non-ignored .py file under SOURCE_DIR and writes
its skeleton to a mirrored tree under the output directory.

Configuration is read from pyskel.toml and .skelignore in SOURCE_DIR; the
--min-level flag overrides the configured threshold.

Examples:
  # Skeletonize src/ into skeletons/
  pyskel extract src -o skeletons

  # Keep every function at level 2 or above intact
  pyskel extract src -o skeletons --min-level 2
`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)
	extractCmd.Flags().StringVarP(&outputDir, "output", "o", "", "Directory to write skeleton files to (required)")
	extractCmd.MarkFlagRequired("output")
	extractCmd.Flags().IntVar(&minLevelFlag, "min-level", 0, "Minimum code level to preserve full implementation (overrides config)")
	extractCmd.Flags().IntVar(&jobsFlag, "jobs", 0, "Number of parallel workers (default: number of CPUs)")
	extractCmd.Flags().BoolVarP(&quietFlag, "quiet", "q", false, "Disable progress output")
}

func runExtract(cmd *cobra.Command, args []string) error {
	ctx, cancel := signalContext()
	defer cancel()

	sourceDir, err := filepath.Abs(args[0])
	if err != nil {
		return err
	}
	if info, err := os.Stat(sourceDir); err != nil || !info.IsDir() {
		return fmt.Errorf("source path %s is not a directory", sourceDir)
	}

	// Destination conflicts are fatal before any file is processed.
	if info, err := os.Stat(outputDir); err == nil && !info.IsDir() {
		return fmt.Errorf("output path %s exists and is not a directory", outputDir)
	}
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	settings := config.Load(sourceDir)
	opts := transformOptions(cmd, settings)

	files, err := discovery.PythonFiles(sourceDir, config.LoadIgnore(sourceDir))
	if err != nil {
		return fmt.Errorf("failed to scan %s: %w", sourceDir, err)
	}

	if !quietFlag {
		log.Printf("Scanning %s using min-level %d (%d files)", sourceDir, opts.MinLevel, len(files))
	}

	bar := newFileBar(len(files), "Extracting skeletons", quietFlag)
	results := pipeline.ExtractFiles(ctx, files, opts, jobsFlag, func(string) {
		barAdd(bar)
	})

	written := 0
	for _, r := range results {
		if r.Err != nil {
			log.Printf("error processing %s: %v", r.Path, r.Err)
			continue
		}

		relPath, err := filepath.Rel(sourceDir, r.Path)
		if err != nil {
			log.Printf("error processing %s: %v", r.Path, err)
			continue
		}
		dest := filepath.Join(outputDir, relPath)
		if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
			log.Printf("error writing %s: %v", dest, err)
			continue
		}
		if err := os.WriteFile(dest, []byte(r.Output), 0644); err != nil {
			log.Printf("error writing %s: %v", dest, err)
			continue
		}
		written++
	}

	if ctx.Err() != nil {
		return fmt.Errorf("extraction cancelled")
	}

	if !quietFlag {
		fmt.Printf("\nSuccessfully processed %d file(s).\n", written)
	}
	return nil
}

// transformOptions merges the configured threshold with the --min-level
// flag; an explicitly set flag wins.
func transformOptions(cmd *cobra.Command, settings *config.Settings) skeleton.Options {
	minLevel := settings.MinLevel()
	if cmd.Flags().Changed("min-level") {
		minLevel = minLevelFlag
	}
	return skeleton.Options{
		MinLevel:      minLevel,
		PreserveCalls: settings.SmartCalls(),
	}
}

// signalContext returns a context cancelled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Println("\nInterrupted! Cancelling...")
		cancel()
	}()

	return ctx, cancel
}
