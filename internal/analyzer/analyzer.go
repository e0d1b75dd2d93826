// Package analyzer collects per-file statistics about level annotations.
// It shares the level-resolution rules with the skeleton transformer but
// never rewrites anything.
package analyzer

import (
	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/mvp-joe/pyskel/internal/skeleton"
)

// trackedLevels are the histogram buckets always present, even at zero.
// Other exact integer levels are inserted as new keys when encountered.
const trackedLevels = 5

// ProjectStats aggregates annotation statistics across one or more files.
// Add is commutative and associative, so per-file results can be merged in
// any order.
type ProjectStats struct {
	TotalFiles         int
	TotalFunctions     int
	TotalClasses       int
	FunctionsWithLevel int
	LevelDistribution  map[int]int
}

// NewProjectStats returns an empty ProjectStats with histogram buckets 0-4
// pre-seeded.
func NewProjectStats() ProjectStats {
	dist := make(map[int]int, trackedLevels)
	for level := 0; level < trackedLevels; level++ {
		dist[level] = 0
	}
	return ProjectStats{LevelDistribution: dist}
}

// Add returns the field-by-field sum of two ProjectStats. Histogram keys are
// unioned, overlapping keys summed.
func (s ProjectStats) Add(other ProjectStats) ProjectStats {
	sum := NewProjectStats()
	sum.TotalFiles = s.TotalFiles + other.TotalFiles
	sum.TotalFunctions = s.TotalFunctions + other.TotalFunctions
	sum.TotalClasses = s.TotalClasses + other.TotalClasses
	sum.FunctionsWithLevel = s.FunctionsWithLevel + other.FunctionsWithLevel
	for level, count := range s.LevelDistribution {
		sum.LevelDistribution[level] += count
	}
	for level, count := range other.LevelDistribution {
		sum.LevelDistribution[level] += count
	}
	return sum
}

// LevelCoverage returns the percentage of functions carrying a level above
// zero. A project with no functions has 0.0 coverage.
func (s ProjectStats) LevelCoverage() float64 {
	if s.TotalFunctions == 0 {
		return 0.0
	}
	return float64(s.FunctionsWithLevel) / float64(s.TotalFunctions) * 100
}

// Analyze tallies one parsed file. Classes are counted and descended into;
// functions are counted and NOT descended into, so function definitions
// nested inside another function are invisible to analysis. That blind spot
// matches the tool's established behavior and keeps the counts stable.
func Analyze(f *skeleton.File) ProjectStats {
	stats := NewProjectStats()
	stats.TotalFiles = 1

	fileDefault := skeleton.FileLevelDefault(f)

	skeleton.Walk(f.Root(), func(n *sitter.Node) bool {
		switch n.Kind() {
		case "class_definition":
			stats.TotalClasses++
			return true
		case "function_definition":
			stats.TotalFunctions++
			level := skeleton.ResolveLevel(f, n, fileDefault)
			if level > 0 {
				stats.FunctionsWithLevel++
			}
			stats.LevelDistribution[level]++
			return false
		}
		return true
	})

	return stats
}

// AnalyzeSource parses source text and tallies it.
func AnalyzeSource(source []byte) (ProjectStats, error) {
	f, err := skeleton.ParseFile(source)
	if err != nil {
		return ProjectStats{}, err
	}
	defer f.Close()
	return Analyze(f), nil
}
