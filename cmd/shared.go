package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/viper"

	"github.com/gnomegl/passmeter/internal/command"
	"github.com/gnomegl/passmeter/internal/flags"
	"github.com/gnomegl/passmeter/internal/logging"
	"github.com/gnomegl/passmeter/pkg/batch"
	"github.com/gnomegl/passmeter/pkg/fileutil"
	"github.com/gnomegl/passmeter/pkg/lexicon"
	"github.com/gnomegl/passmeter/pkg/output"
	"github.com/gnomegl/passmeter/pkg/strength"
)

const maxOutputFileSize = 100 * 1024 * 1024

// buildAnalyzer resolves the lexicon settings from the flag, the
// environment, and the config file, in that order, and returns the
// analyzer shared by every command in this run.
func buildAnalyzer() (strength.Analyzer, error) {
	path := viper.GetString("lexicon")
	extend := viper.GetBool("extend_lexicon")

	if path != "" {
		base := &command.BaseCommand{}
		analyzer, info, err := base.BuildAnalyzer(path, extend)
		if err != nil {
			return nil, err
		}
		if info != nil {
			logging.Debugf("loaded %d lexicon entries from %s (%s)", info.Entries, info.Path, info.Format)
		}
		return analyzer, nil
	}

	if set := lexiconSetFromConfig(); set != nil {
		config := strength.DefaultConfig()
		set.Apply(config, extend)
		logging.Debugf("applied %d lexicon entries from the config file", set.Len())
		return strength.NewAnalyzerWithConfig(config), nil
	}

	return strength.NewDefaultAnalyzer(), nil
}

// lexiconSetFromConfig reads the lexicons section of the config file,
// if present. The section holds the same four lists a standalone
// lexicon file does.
func lexiconSetFromConfig() *lexicon.Set {
	sub := viper.Sub("lexicons")
	if sub == nil {
		return nil
	}

	set := &lexicon.Set{
		WeakWords:        sub.GetStringSlice("weak_words"),
		CompositeWords:   sub.GetStringSlice("composite_words"),
		KeyboardPatterns: sub.GetStringSlice("keyboard_patterns"),
		SimpleSequences:  sub.GetStringSlice("simple_sequences"),
	}
	if set.Len() == 0 {
		return nil
	}
	return set
}

// newBatchProcessor returns the concurrent scanner when workers were
// requested and the sequential one otherwise.
func newBatchProcessor(analyzer strength.Analyzer) batch.Processor {
	if n := viper.GetInt("workers"); n > 0 {
		return batch.NewConcurrentProcessorWithAnalyzer(n, analyzer)
	}
	return batch.NewProcessorWithAnalyzer(analyzer)
}

// newScanMetadata stamps a fresh run ID so report rows can be traced
// back to the scan that produced them.
func newScanMetadata() *output.ScanMetadata {
	return &output.ScanMetadata{
		RunID:     uuid.NewString(),
		StartedAt: time.Now(),
	}
}

func ValidateInputFile(inputPath string) error {
	if !fileutil.FileExists(inputPath) {
		return fmt.Errorf("input file or directory '%s' not found", inputPath)
	}
	return nil
}

func EnsureOutputDirectory(outputPath string) error {
	if err := fileutil.EnsureDirectoryExists(outputPath); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	return nil
}

func CreateWriterOptions(baseName string, meta *output.ScanMetadata, f *flags.CommonFlags) output.WriterOptions {
	return output.WriterOptions{
		MaxFileSize:    maxOutputFileSize,
		OutputBaseName: baseName,
		Metadata:       meta,
		ShowPasswords:  f.ShowPasswords,
		IncludeStats:   !f.NoSummary,
		NoSplit:        !f.Split,
	}
}

func CreateScanOptions(f *flags.CommonFlags) batch.ScanOptions {
	return batch.ScanOptions{
		EnableDeduplication: !f.NoDedupe,
		SaveReused:          f.ReusedFile != "",
		ReusedFile:          f.ReusedFile,
		Quiet:               quiet,
	}
}

func PrintDirectoryWarning() {
	fmt.Fprintf(os.Stderr, "Warning: --reused-file option ignored when processing directories (individual reused files created per input file)\n")
}

func PrintProcessingStatus(inputPath, outputPath string) {
	if quiet {
		return
	}
	fmt.Fprintf(os.Stderr, "Scanning: %s -> %s\n", inputPath, outputPath)
}

func PrintCompletionStatus(outputPath string) {
	if quiet {
		return
	}
	fmt.Fprintf(os.Stderr, "Completed: %s\n", outputPath)
}

func PrintIgnoredLinesWarning(stats batch.ScanStats) {
	if quiet || stats.LinesIgnored == 0 {
		return
	}
	fmt.Fprintf(os.Stderr, "%d lines did not parse as passwords and were ignored\n", stats.LinesIgnored)
}

func GetOutputBaseName(inputPath string) string {
	baseName := filepath.Base(inputPath)
	if ext := filepath.Ext(baseName); ext != "" {
		baseName = baseName[:len(baseName)-len(ext)]
	}
	return baseName
}

func ParseArguments(args []string, defaultSuffix string) (inputPath, outputPath string) {
	inputPath = args[0]

	if len(args) > 1 {
		outputPath = args[1]
	} else {
		outputPath = fileutil.GetDefaultOutputPath(inputPath, defaultSuffix)
	}

	return inputPath, outputPath
}

func processToStdout(inputPath, format string, f *flags.CommonFlags) error {
	analyzer, err := buildAnalyzer()
	if err != nil {
		return err
	}

	processor := newBatchProcessor(analyzer)
	opts := CreateScanOptions(f)
	meta := newScanMetadata()

	writer := output.NewStdoutWriter(format)
	defer writer.Close()

	if fileutil.IsDirectory(inputPath) {
		results, err := processor.ProcessDirectory(inputPath, opts)
		if err != nil {
			return fmt.Errorf("failed to process directory: %w", err)
		}

		for filePath, result := range results {
			writerOpts := CreateWriterOptions(GetOutputBaseName(filePath), meta, f)

			if err := writer.WriteEntries(result.Entries, result.Stats, writerOpts); err != nil {
				return fmt.Errorf("failed to write to stdout: %w", err)
			}
		}
	} else {
		result, err := processor.ProcessFile(inputPath, opts)
		if err != nil {
			return fmt.Errorf("failed to process file: %w", err)
		}

		writerOpts := CreateWriterOptions(GetOutputBaseName(inputPath), meta, f)

		if err := writer.WriteEntries(result.Entries, result.Stats, writerOpts); err != nil {
			return fmt.Errorf("failed to write to stdout: %w", err)
		}
	}

	return nil
}
