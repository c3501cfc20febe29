package batch

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gnomegl/passmeter/pkg/fileutil"
	"github.com/gnomegl/passmeter/pkg/strength"
)

type DefaultProcessor struct {
	parser   LineParser
	analyzer strength.Analyzer
}

func NewDefaultProcessor() *DefaultProcessor {
	return NewProcessorWithAnalyzer(strength.NewDefaultAnalyzer())
}

func NewProcessorWithAnalyzer(analyzer strength.Analyzer) *DefaultProcessor {
	return &DefaultProcessor{
		parser:   NewDefaultLineParser(),
		analyzer: analyzer,
	}
}

func (p *DefaultProcessor) AnalyzeLine(line string) (*Entry, error) {
	password, err := p.parser.ParseLine(line)
	if err != nil {
		return nil, err
	}

	return &Entry{
		Password: password,
		Result:   p.analyzer.Analyze(password),
	}, nil
}

func (p *DefaultProcessor) ProcessFile(filename string, opts ScanOptions) (*ScanResult, error) {
	isBinary, err := fileutil.IsBinaryFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to check if file is binary %s: %w", filename, err)
	}
	if isBinary {
		return nil, fmt.Errorf("file %s appears to be a binary file, skipping", filename)
	}

	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file %s: %w", filename, err)
	}
	defer file.Close()

	var entries []Entry
	var reused []string
	stats := newScanStats()
	scoreSum := 0
	seenPasswords := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	lineCount := 0

	for scanner.Scan() {
		line := scanner.Text()
		stats.TotalLines++
		lineCount++

		if !opts.Quiet && lineCount%1000 == 0 {
			fmt.Fprintf(os.Stderr, ".")
		}

		password, err := p.parser.ParseLine(line)
		if err != nil {
			stats.LinesIgnored++
			continue
		}

		if opts.EnableDeduplication {
			if seenPasswords[password] {
				stats.Duplicates++
				if opts.SaveReused {
					reused = append(reused, password)
				}
				continue
			}
			seenPasswords[password] = true
		}

		result := p.analyzer.Analyze(password)
		entries = append(entries, Entry{
			Password: password,
			Line:     lineCount,
			Source:   filename,
			Result:   result,
		})
		stats.Analyzed++
		stats.TierCounts[result.Tier]++
		scoreSum += result.Score
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading file %s: %w", filename, err)
	}

	if stats.Analyzed > 0 {
		stats.MeanScore = float64(scoreSum) / float64(stats.Analyzed)
	}

	if opts.SaveReused && opts.ReusedFile != "" && len(reused) > 0 {
		if err := fileutil.WriteLinesToFile(opts.ReusedFile, reused); err != nil {
			return nil, fmt.Errorf("failed to save reused passwords: %w", err)
		}
	}

	return &ScanResult{
		Entries: entries,
		Stats:   stats,
	}, nil
}

func (p *DefaultProcessor) ProcessDirectory(dirname string, opts ScanOptions) (map[string]*ScanResult, error) {
	results := make(map[string]*ScanResult)

	var totalFiles, processedFiles, skippedFiles int
	err := filepath.Walk(dirname, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			totalFiles++
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to count files in directory %s: %w", dirname, err)
	}

	if !opts.Quiet {
		fmt.Fprintf(os.Stderr, "Found %d files to scan in %s\n", totalFiles, dirname)
	}

	err = filepath.Walk(dirname, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if info.IsDir() {
			return nil
		}

		isBinary, err := fileutil.IsBinaryFile(path)
		if err != nil {
			skippedFiles++
			if !opts.Quiet {
				fmt.Fprintf(os.Stderr, "[%d/%d] Warning: failed to check if file is binary %s: %v\n",
					processedFiles+skippedFiles, totalFiles, path, err)
			}
			return nil
		}
		if isBinary {
			skippedFiles++
			if !opts.Quiet {
				fmt.Fprintf(os.Stderr, "[%d/%d] Skipping binary file: %s\n",
					processedFiles+skippedFiles, totalFiles, filepath.Base(path))
			}
			return nil
		}

		if !opts.Quiet {
			fmt.Fprintf(os.Stderr, "[%d/%d] Scanning: %s",
				processedFiles+skippedFiles+1, totalFiles, filepath.Base(path))
		}

		result, err := p.ProcessFile(path, opts)
		if err != nil {
			skippedFiles++
			if !opts.Quiet {
				fmt.Fprintf(os.Stderr, " - Error: %v\n", err)
			}
			return nil
		}

		processedFiles++
		if !opts.Quiet {
			fmt.Fprintf(os.Stderr, " - Done (%d passwords analyzed)\n", result.Stats.Analyzed)
		}
		results[path] = result
		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("failed to scan directory %s: %w", dirname, err)
	}

	if !opts.Quiet {
		fmt.Fprintf(os.Stderr, "\nDirectory scan complete: %d files processed, %d skipped\n",
			processedFiles, skippedFiles)
	}

	return results, nil
}
