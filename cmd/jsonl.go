package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/gnomegl/passmeter/internal/command"
	"github.com/gnomegl/passmeter/internal/flags"
	"github.com/gnomegl/passmeter/pkg/batch"
	"github.com/gnomegl/passmeter/pkg/fileutil"
	"github.com/gnomegl/passmeter/pkg/output"
)

var (
	jsonlCmdFlags flags.CommonFlags
	jsonlBaseCmd  command.BaseCommand
	jsonlStdout   bool
)

var jsonlCmd = &cobra.Command{
	Use:   "jsonl [input-file-or-directory]",
	Short: "Write password analysis results as NDJSON for search indexing",
	Long: `Write password analysis results as NDJSON (one JSON object per line).
Each row carries the full analysis result plus scan-run metadata (run
ID, source file, timestamp) so reports can be ingested into a search
index and traced back to the run that produced them. A trailing summary
row is appended unless --no-summary is set.

Large outputs can be split into numbered 100MB files with --split.`,
	Args: cobra.ExactArgs(1),
	RunE: runJSONL,
}

func init() {
	flags.AddAllFlags(jsonlCmd, &jsonlCmdFlags)
	jsonlCmd.Flags().BoolVar(&jsonlStdout, "stdout", false, "Write NDJSON to stdout instead of a file")

	rootCmd.AddCommand(jsonlCmd)
}

func runJSONL(cmd *cobra.Command, args []string) error {
	inputPath := args[0]

	jsonlBaseCmd.Flags = jsonlCmdFlags
	if err := jsonlBaseCmd.ValidateInput(inputPath); err != nil {
		return err
	}

	if jsonlStdout {
		return processToStdout(inputPath, "jsonl", &jsonlCmdFlags)
	}

	analyzer, err := buildAnalyzer()
	if err != nil {
		return err
	}

	processor := newBatchProcessor(analyzer)
	opts := CreateScanOptions(&jsonlCmdFlags)
	meta := newScanMetadata()

	if fileutil.IsDirectory(inputPath) {
		return writeDirectoryNDJSON(processor, inputPath, opts, meta)
	}
	return writeFileNDJSON(processor, inputPath, opts, meta)
}

func writeFileNDJSON(processor batch.Processor, inputPath string, opts batch.ScanOptions, meta *output.ScanMetadata) error {
	if !quiet {
		fmt.Fprintf(os.Stderr, "Processing file: %s\n", inputPath)
	}

	result, err := processor.ProcessFile(inputPath, opts)
	if err != nil {
		return fmt.Errorf("failed to process file: %w", err)
	}

	outputBaseName := fileutil.GetReportBaseName(inputPath)
	if jsonlCmdFlags.OutputDir != "" {
		if err := EnsureOutputDirectory(jsonlCmdFlags.OutputDir); err != nil {
			return err
		}
		outputBaseName = filepath.Join(jsonlCmdFlags.OutputDir, outputBaseName)
	} else {
		outputBaseName = filepath.Join(filepath.Dir(inputPath), outputBaseName)
	}

	writer := output.NewNDJSONWriter()
	defer writer.Close()

	writerOpts := CreateWriterOptions(outputBaseName, meta, &jsonlCmdFlags)

	if err := writer.WriteEntries(result.Entries, result.Stats, writerOpts); err != nil {
		return fmt.Errorf("failed to write NDJSON: %w", err)
	}

	PrintIgnoredLinesWarning(result.Stats)

	return nil
}

func writeDirectoryNDJSON(processor batch.Processor, inputPath string, opts batch.ScanOptions, meta *output.ScanMetadata) error {
	if !quiet {
		fmt.Fprintf(os.Stderr, "Processing directory: %s\n", inputPath)
	}

	results, err := processor.ProcessDirectory(inputPath, opts)
	if err != nil {
		return fmt.Errorf("failed to process directory: %w", err)
	}

	fileCount := 0
	totalCount := len(results)

	for filePath, result := range results {
		fileCount++
		if !quiet {
			fmt.Fprintf(os.Stderr, "[%d/%d] Writing NDJSON for: %s", fileCount, totalCount, filepath.Base(filePath))
		}

		outputBaseName := fileutil.GetReportBaseName(filePath)
		if jsonlCmdFlags.OutputDir != "" {
			relPath := fileutil.GetRelativePath(inputPath, filePath)
			outputDir := filepath.Join(jsonlCmdFlags.OutputDir, filepath.Dir(relPath))

			if err := EnsureOutputDirectory(outputDir); err != nil {
				return err
			}

			outputBaseName = filepath.Join(outputDir, outputBaseName)
		} else {
			outputBaseName = filepath.Join(filepath.Dir(filePath), outputBaseName)
		}

		writer := output.NewNDJSONWriter()

		writerOpts := CreateWriterOptions(outputBaseName, meta, &jsonlCmdFlags)

		if err := writer.WriteEntries(result.Entries, result.Stats, writerOpts); err != nil {
			writer.Close()
			return fmt.Errorf("failed to write NDJSON for %s: %w", filePath, err)
		}

		writer.Close()
		if !quiet {
			fmt.Fprintf(os.Stderr, " - done\n")
		}
	}

	if !quiet {
		fmt.Fprintf(os.Stderr, "Successfully processed %d files from: %s\n", totalCount, inputPath)
	}

	return nil
}
