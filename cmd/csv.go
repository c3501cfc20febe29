package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/gnomegl/passmeter/internal/flags"
	"github.com/gnomegl/passmeter/pkg/batch"
	"github.com/gnomegl/passmeter/pkg/fileutil"
	"github.com/gnomegl/passmeter/pkg/output"
)

var (
	csvCmdFlags flags.CommonFlags
	csvGlob     bool
	csvStdout   bool
)

var csvCmd = &cobra.Command{
	Use:   "csv [input-file-or-directory]",
	Short: "Write password analysis results as CSV",
	Long: `Write password analysis results as CSV with columns:
doc_id, source, line, password, length, entropy_bits, score, strength,
crack_time, penalties

When processing directories:
- Without --glob: a separate CSV file is created per input file
- With --glob: all files are combined into a single CSV file`,
	Args: cobra.ExactArgs(1),
	RunE: runCSV,
}

func init() {
	flags.AddAllFlags(csvCmd, &csvCmdFlags)
	csvCmd.Flags().BoolVarP(&csvGlob, "glob", "g", false, "Combine all files from a directory into a single CSV file")
	csvCmd.Flags().BoolVar(&csvStdout, "stdout", false, "Write CSV to stdout instead of a file")

	rootCmd.AddCommand(csvCmd)
}

func runCSV(cmd *cobra.Command, args []string) error {
	inputPath := args[0]

	if err := ValidateInputFile(inputPath); err != nil {
		return err
	}

	if csvStdout {
		return processToStdout(inputPath, "csv", &csvCmdFlags)
	}

	outputDir := csvCmdFlags.OutputDir
	if outputDir == "" {
		outputDir = "."
	}
	if err := EnsureOutputDirectory(outputDir); err != nil {
		return err
	}

	analyzer, err := buildAnalyzer()
	if err != nil {
		return err
	}

	processor := newBatchProcessor(analyzer)
	opts := CreateScanOptions(&csvCmdFlags)
	meta := newScanMetadata()

	if fileutil.IsDirectory(inputPath) {
		if csvGlob {
			return writeDirectoryGlobCSV(processor, inputPath, outputDir, opts, meta)
		}
		return writeDirectoryCSV(processor, inputPath, outputDir, opts, meta)
	}
	return writeFileCSV(processor, inputPath, outputDir, opts, meta)
}

func writeFileCSV(processor batch.Processor, inputPath, outputDir string, opts batch.ScanOptions, meta *output.ScanMetadata) error {
	result, err := processor.ProcessFile(inputPath, opts)
	if err != nil {
		return fmt.Errorf("failed to process file: %w", err)
	}

	baseName := fileutil.GetReportBaseName(inputPath)
	csvFilename := filepath.Join(outputDir, baseName+".csv")

	writer, err := output.NewCSVWriter(csvFilename)
	if err != nil {
		return fmt.Errorf("failed to create CSV writer: %w", err)
	}
	defer writer.Close()

	writerOpts := CreateWriterOptions(baseName, meta, &csvCmdFlags)

	if err := writer.WriteEntries(result.Entries, result.Stats, writerOpts); err != nil {
		return fmt.Errorf("failed to write CSV: %w", err)
	}

	if !quiet {
		fmt.Fprintf(os.Stderr, "Created CSV file: %s\n", csvFilename)
		fmt.Fprintf(os.Stderr, "Passwords analyzed: %d\n", result.Stats.Analyzed)
	}
	PrintIgnoredLinesWarning(result.Stats)

	return nil
}

func writeDirectoryCSV(processor batch.Processor, inputPath, outputDir string, opts batch.ScanOptions, meta *output.ScanMetadata) error {
	if !quiet {
		fmt.Fprintf(os.Stderr, "Processing directory: %s\n", inputPath)
	}

	results, err := processor.ProcessDirectory(inputPath, opts)
	if err != nil {
		return fmt.Errorf("failed to process directory: %w", err)
	}

	totalAnalyzed := 0
	for filePath, result := range results {
		baseName := fileutil.GetReportBaseName(filePath)
		csvFilename := filepath.Join(outputDir, baseName+".csv")

		writer, err := output.NewCSVWriter(csvFilename)
		if err != nil {
			return fmt.Errorf("failed to create CSV writer for %s: %w", filePath, err)
		}

		writerOpts := CreateWriterOptions(baseName, meta, &csvCmdFlags)

		if err := writer.WriteEntries(result.Entries, result.Stats, writerOpts); err != nil {
			writer.Close()
			return fmt.Errorf("failed to write CSV for %s: %w", filePath, err)
		}

		writer.Close()
		if !quiet {
			fmt.Fprintf(os.Stderr, "Created CSV file: %s\n", csvFilename)
		}
		totalAnalyzed += result.Stats.Analyzed
	}

	if !quiet {
		fmt.Fprintf(os.Stderr, "Total files processed: %d\n", len(results))
		fmt.Fprintf(os.Stderr, "Total passwords analyzed: %d\n", totalAnalyzed)
	}

	return nil
}

func writeDirectoryGlobCSV(processor batch.Processor, inputPath, outputDir string, opts batch.ScanOptions, meta *output.ScanMetadata) error {
	if !quiet {
		fmt.Fprintf(os.Stderr, "Processing directory with glob: %s\n", inputPath)
	}

	dirName := filepath.Base(inputPath)
	csvFilename := filepath.Join(outputDir, dirName+"_combined.csv")

	writer, err := output.NewCSVWriter(csvFilename)
	if err != nil {
		return fmt.Errorf("failed to create CSV writer: %w", err)
	}
	defer writer.Close()

	results, err := processor.ProcessDirectory(inputPath, opts)
	if err != nil {
		return fmt.Errorf("failed to process directory: %w", err)
	}

	totalAnalyzed := 0
	filesProcessed := 0

	for filePath, result := range results {
		writerOpts := CreateWriterOptions(filepath.Base(filePath), meta, &csvCmdFlags)

		if err := writer.WriteEntries(result.Entries, result.Stats, writerOpts); err != nil {
			return fmt.Errorf("failed to write results from %s: %w", filePath, err)
		}

		totalAnalyzed += result.Stats.Analyzed
		filesProcessed++
		if !quiet {
			fmt.Fprintf(os.Stderr, "Processed: %s (%d passwords)\n", filePath, result.Stats.Analyzed)
		}
	}

	if !quiet {
		fmt.Fprintf(os.Stderr, "Created combined CSV file: %s\n", csvFilename)
		fmt.Fprintf(os.Stderr, "Total files processed: %d\n", filesProcessed)
		fmt.Fprintf(os.Stderr, "Total passwords analyzed: %d\n", totalAnalyzed)
	}

	return nil
}
