package command

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gnomegl/passmeter/internal/flags"
	"github.com/gnomegl/passmeter/pkg/batch"
	"github.com/gnomegl/passmeter/pkg/fileutil"
	"github.com/gnomegl/passmeter/pkg/lexicon"
	"github.com/gnomegl/passmeter/pkg/strength"
)

type BaseCommand struct {
	Flags flags.CommonFlags
}

func (b *BaseCommand) ValidateInput(inputPath string) error {
	if !fileutil.FileExists(inputPath) {
		return fmt.Errorf("input file or directory '%s' not found", inputPath)
	}
	return nil
}

// BuildAnalyzer returns the analyzer for this run. With an empty path
// the built-in lexicons are used; otherwise the file is loaded and its
// lists replace the built-ins, or extend them when extend is true.
func (b *BaseCommand) BuildAnalyzer(lexiconPath string, extend bool) (strength.Analyzer, *lexicon.FileInfo, error) {
	if lexiconPath == "" {
		return strength.NewDefaultAnalyzer(), nil, nil
	}

	loader := lexicon.NewDefaultLoader()
	set, info, err := loader.LoadFromFile(lexiconPath)
	if err != nil {
		return nil, nil, fmt.Errorf("error loading lexicon: %w", err)
	}

	config := strength.DefaultConfig()
	set.Apply(config, extend)

	return strength.NewAnalyzerWithConfig(config), info, nil
}

func (b *BaseCommand) ReportStats(stats batch.ScanStats) {
	fmt.Fprintf(os.Stderr, "Processed %d total lines\n", stats.TotalLines)
	fmt.Fprintf(os.Stderr, "Passwords analyzed: %d\n", stats.Analyzed)
	if stats.LinesIgnored > 0 {
		fmt.Fprintf(os.Stderr, "Lines ignored: %d\n", stats.LinesIgnored)
	}
	if stats.Duplicates > 0 {
		fmt.Fprintf(os.Stderr, "Duplicates skipped: %d\n", stats.Duplicates)
		if stats.Analyzed > 0 {
			reusePercentage := float64(stats.Duplicates) / float64(stats.Analyzed+stats.Duplicates) * 100
			fmt.Fprintf(os.Stderr, "Reuse percentage: %.1f%%\n", reusePercentage)
		}
	}
	if stats.Analyzed > 0 {
		fmt.Fprintf(os.Stderr, "Mean score: %.1f bits\n", stats.MeanScore)
		for _, tier := range []strength.Tier{
			strength.TierExcellent,
			strength.TierStrong,
			strength.TierModerate,
			strength.TierWeak,
			strength.TierTooWeak,
		} {
			if count := stats.TierCounts[tier]; count > 0 {
				fmt.Fprintf(os.Stderr, "  %s: %d\n", tier, count)
			}
		}
	}
}

func (b *BaseCommand) GenerateOutputPath(inputPath, outputPath, suffix string) string {
	if outputPath != "" {
		return outputPath
	}

	dir := filepath.Dir(inputPath)
	base := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))

	if b.Flags.OutputDir != "" {
		dir = b.Flags.OutputDir
	}

	return filepath.Join(dir, base+suffix)
}

func (b *BaseCommand) GetRelativeOutputPath(inputPath, relPath, suffix string) string {
	base := strings.TrimSuffix(filepath.Base(relPath), filepath.Ext(relPath))
	outputRelPath := filepath.Join(filepath.Dir(relPath), base+suffix)

	if b.Flags.OutputDir != "" {
		return filepath.Join(b.Flags.OutputDir, outputRelPath)
	}

	return filepath.Join(filepath.Dir(inputPath), outputRelPath)
}
