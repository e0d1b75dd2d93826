// Package pipeline fans per-file work out over a bounded worker pool. Each
// file's computation is pure and self-contained (text in, text or stats
// out), so the only coordination is handing out paths and collecting
// results.
package pipeline

import (
	"context"
	"os"
	"runtime"
	"sync"

	"github.com/mvp-joe/pyskel/internal/analyzer"
	"github.com/mvp-joe/pyskel/internal/skeleton"
)

// FileResult is the outcome of processing one file. Err is per-file: a
// failed file never aborts the batch.
type FileResult struct {
	Path   string
	Output string
	Err    error
}

// ExtractFiles produces the skeleton of every file, in input order. onDone
// is invoked once per finished file (from worker goroutines) and may be nil.
// Cancelling the context stops unstarted files; their results carry the
// context error.
func ExtractFiles(ctx context.Context, paths []string, opts skeleton.Options, workers int, onDone func(path string)) []FileResult {
	return run(ctx, paths, workers, onDone, func(source []byte) (string, error) {
		return skeleton.CreateSkeleton(source, opts)
	})
}

// StatsResult is the outcome of analyzing one file.
type StatsResult struct {
	Path  string
	Stats analyzer.ProjectStats
	Err   error
}

// AnalyzeFiles analyzes every file and merges the per-file statistics. The
// merge is commutative and associative, so completion order does not affect
// the totals. Per-file failures are returned alongside the merged stats.
func AnalyzeFiles(ctx context.Context, paths []string, workers int, onDone func(path string)) (analyzer.ProjectStats, []StatsResult) {
	results := make([]StatsResult, len(paths))

	process(ctx, paths, workers, func(i int, path string) {
		results[i].Path = path
		source, err := os.ReadFile(path)
		if err == nil {
			results[i].Stats, err = analyzer.AnalyzeSource(source)
		}
		results[i].Err = err
		if onDone != nil {
			onDone(path)
		}
	})

	for i := range results {
		if results[i].Path == "" {
			results[i].Path = paths[i]
			results[i].Err = ctx.Err()
		}
	}

	total := analyzer.NewProjectStats()
	var failures []StatsResult
	for _, r := range results {
		if r.Err != nil {
			failures = append(failures, r)
			continue
		}
		total = total.Add(r.Stats)
	}
	return total, failures
}

// run executes a text-to-text transform across all paths.
func run(ctx context.Context, paths []string, workers int, onDone func(path string), fn func(source []byte) (string, error)) []FileResult {
	results := make([]FileResult, len(paths))

	process(ctx, paths, workers, func(i int, path string) {
		results[i].Path = path
		source, err := os.ReadFile(path)
		if err == nil {
			results[i].Output, err = fn(source)
		}
		results[i].Err = err
		if onDone != nil {
			onDone(path)
		}
	})

	for i := range results {
		if results[i].Path == "" {
			results[i].Path = paths[i]
			results[i].Err = ctx.Err()
		}
	}
	return results
}

// process hands each path index to one of the pool workers. Each result slot
// is written by exactly one goroutine, so no locking is needed beyond the
// jobs channel.
func process(ctx context.Context, paths []string, workers int, fn func(i int, path string)) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(paths) {
		workers = len(paths)
	}
	if workers == 0 {
		return
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				fn(i, paths[i])
			}
		}()
	}

	for i := range paths {
		select {
		case <-ctx.Done():
			close(jobs)
			wg.Wait()
			return
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()
}
