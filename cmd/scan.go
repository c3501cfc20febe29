package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/gnomegl/passmeter/internal/command"
	"github.com/gnomegl/passmeter/internal/flags"
	"github.com/gnomegl/passmeter/pkg/batch"
	"github.com/gnomegl/passmeter/pkg/fileutil"
	"github.com/gnomegl/passmeter/pkg/output"
)

var (
	scanCmdFlags flags.CommonFlags
	scanBaseCmd  command.BaseCommand
	scanStdout   bool
)

var scanCmd = &cobra.Command{
	Use:   "scan [input-file-or-directory] [output-file]",
	Short: "Scan a password file or directory and write a text report",
	Long: `Scan a password file or directory and write a text report.
Each line of the report carries source location, password (masked by
default), score in bits, strength tier, and estimated crack time.

Input files hold one candidate password per line; url:user:password
credential dump rows are also accepted and the password field is
extracted. Directories are processed recursively and binary files are
skipped.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runScan,
}

func init() {
	flags.AddAllFlags(scanCmd, &scanCmdFlags)
	scanCmd.Flags().BoolVar(&scanStdout, "stdout", false, "Write the report to stdout instead of a file")

	rootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	inputPath, outputPath := ParseArguments(args, "_report")

	scanBaseCmd.Flags = scanCmdFlags
	if err := scanBaseCmd.ValidateInput(inputPath); err != nil {
		return err
	}

	if scanStdout {
		return processToStdout(inputPath, "txt", &scanCmdFlags)
	}

	analyzer, err := buildAnalyzer()
	if err != nil {
		return err
	}

	processor := newBatchProcessor(analyzer)
	opts := CreateScanOptions(&scanCmdFlags)
	meta := newScanMetadata()

	if fileutil.IsDirectory(inputPath) {
		if scanCmdFlags.ReusedFile != "" {
			PrintDirectoryWarning()
		}
		return scanDirectory(processor, inputPath, outputPath, opts, meta)
	}
	return scanFile(processor, inputPath, outputPath, opts, meta)
}

func scanFile(processor batch.Processor, inputPath, outputPath string, opts batch.ScanOptions, meta *output.ScanMetadata) error {
	PrintProcessingStatus(inputPath, outputPath)

	result, err := processor.ProcessFile(inputPath, opts)
	if err != nil {
		return fmt.Errorf("failed to process file: %w", err)
	}

	writer, err := output.NewTextWriter(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create text writer: %w", err)
	}
	defer writer.Close()

	writerOpts := CreateWriterOptions(GetOutputBaseName(inputPath), meta, &scanCmdFlags)

	if err := writer.WriteEntries(result.Entries, result.Stats, writerOpts); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	PrintCompletionStatus(outputPath)
	PrintIgnoredLinesWarning(result.Stats)
	if !quiet {
		scanBaseCmd.ReportStats(result.Stats)
	}

	return nil
}

func scanDirectory(processor batch.Processor, inputPath, outputPath string, opts batch.ScanOptions, meta *output.ScanMetadata) error {
	PrintProcessingStatus(inputPath, outputPath)

	if err := EnsureOutputDirectory(outputPath); err != nil {
		return err
	}

	results, err := processor.ProcessDirectory(inputPath, opts)
	if err != nil {
		return fmt.Errorf("failed to process directory: %w", err)
	}

	for filePath, result := range results {
		relPath := fileutil.GetRelativePath(inputPath, filePath)
		reportPath := fileutil.GetDefaultOutputPath(filepath.Join(outputPath, relPath), "_report")

		if err := EnsureOutputDirectory(filepath.Dir(reportPath)); err != nil {
			return err
		}

		writer, err := output.NewTextWriter(reportPath)
		if err != nil {
			return fmt.Errorf("failed to create text writer for %s: %w", filePath, err)
		}

		writerOpts := CreateWriterOptions(GetOutputBaseName(filePath), meta, &scanCmdFlags)

		if err := writer.WriteEntries(result.Entries, result.Stats, writerOpts); err != nil {
			writer.Close()
			return fmt.Errorf("failed to write report for %s: %w", filePath, err)
		}
		writer.Close()
	}

	PrintCompletionStatus(outputPath)
	combined := batch.CombinedStats(results)
	PrintIgnoredLinesWarning(combined)
	if !quiet {
		scanBaseCmd.ReportStats(combined)
	}

	return nil
}
