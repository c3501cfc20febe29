package batch

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/gnomegl/passmeter/pkg/fileutil"
	"github.com/gnomegl/passmeter/pkg/strength"
)

type ConcurrentProcessor struct {
	parser   LineParser
	analyzer strength.Analyzer
	workers  int
}

func NewConcurrentProcessor(workers int) *ConcurrentProcessor {
	return NewConcurrentProcessorWithAnalyzer(workers, strength.NewDefaultAnalyzer())
}

func NewConcurrentProcessorWithAnalyzer(workers int, analyzer strength.Analyzer) *ConcurrentProcessor {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &ConcurrentProcessor{
		parser:   NewDefaultLineParser(),
		analyzer: analyzer,
		workers:  workers,
	}
}

type lineResult struct {
	lineNum int
	entry   *Entry
	err     error
}

type fileJob struct {
	path string
	info os.FileInfo
}

func (p *ConcurrentProcessor) AnalyzeLine(line string) (*Entry, error) {
	password, err := p.parser.ParseLine(line)
	if err != nil {
		return nil, err
	}

	return &Entry{
		Password: password,
		Result:   p.analyzer.Analyze(password),
	}, nil
}

func (p *ConcurrentProcessor) ProcessFile(filename string, opts ScanOptions) (*ScanResult, error) {
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

	fileInfo, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat file %s: %w", filename, err)
	}

	if fileInfo.Size() < 1*1024*1024 && p.workers <= 1 {
		return p.processFileSequential(file, filename, opts)
	}

	return p.processFileConcurrent(file, filename, opts)
}

func (p *ConcurrentProcessor) processFileSequential(file *os.File, filename string, opts ScanOptions) (*ScanResult, error) {
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

func (p *ConcurrentProcessor) processFileConcurrent(file *os.File, filename string, opts ScanOptions) (*ScanResult, error) {
	scanner := bufio.NewScanner(file)
	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading file %s: %w", filename, err)
	}

	totalLines := len(lines)
	if !opts.Quiet {
		fmt.Fprintf(os.Stderr, "Analyzing %d lines with %d workers...\n", totalLines, p.workers)
	}

	lineChan := make(chan struct {
		lineNum int
		line    string
	}, 100)
	resultChan := make(chan lineResult, 100)

	var wg sync.WaitGroup
	for i := 0; i < p.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for work := range lineChan {
				password, err := p.parser.ParseLine(work.line)
				if err != nil {
					resultChan <- lineResult{lineNum: work.lineNum, err: err}
					continue
				}
				resultChan <- lineResult{
					lineNum: work.lineNum,
					entry: &Entry{
						Password: password,
						Line:     work.lineNum + 1,
						Source:   filename,
						Result:   p.analyzer.Analyze(password),
					},
				}
			}
		}()
	}

	results := make([]lineResult, totalLines)
	var resultWg sync.WaitGroup
	resultWg.Add(1)
	go func() {
		defer resultWg.Done()
		processedCount := 0
		for result := range resultChan {
			results[result.lineNum] = result
			processedCount++
			if !opts.Quiet && processedCount%1000 == 0 {
				fmt.Fprintf(os.Stderr, ".")
			}
		}
	}()

	for i, line := range lines {
		lineChan <- struct {
			lineNum int
			line    string
		}{lineNum: i, line: line}
	}
	close(lineChan)

	wg.Wait()
	close(resultChan)
	resultWg.Wait()

	// Merge in line order so deduplication keeps the first occurrence,
	// matching the sequential path.
	var entries []Entry
	var reused []string
	stats := newScanStats()
	stats.TotalLines = totalLines
	scoreSum := 0
	seenPasswords := make(map[string]bool)

	for _, result := range results {
		if result.err != nil {
			stats.LinesIgnored++
			continue
		}

		if result.entry == nil {
			continue
		}

		if opts.EnableDeduplication {
			if seenPasswords[result.entry.Password] {
				stats.Duplicates++
				if opts.SaveReused {
					reused = append(reused, result.entry.Password)
				}
				continue
			}
			seenPasswords[result.entry.Password] = true
		}

		entries = append(entries, *result.entry)
		stats.Analyzed++
		stats.TierCounts[result.entry.Result.Tier]++
		scoreSum += result.entry.Result.Score
	}

	if !opts.Quiet {
		fmt.Fprintf(os.Stderr, "\n")
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

func (p *ConcurrentProcessor) ProcessDirectory(dirname string, opts ScanOptions) (map[string]*ScanResult, error) {
	var files []fileJob
	err := filepath.Walk(dirname, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			files = append(files, fileJob{path: path, info: info})
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk directory %s: %w", dirname, err)
	}

	totalFiles := len(files)
	if !opts.Quiet {
		fmt.Fprintf(os.Stderr, "Found %d files to scan in %s\n", totalFiles, dirname)
	}

	jobChan := make(chan fileJob, p.workers)
	resultChan := make(chan struct {
		path   string
		result *ScanResult
		err    error
	}, p.workers)

	var processedFiles int32
	var skippedFiles int32

	var wg sync.WaitGroup
	for i := 0; i < p.workers; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			for job := range jobChan {
				isBinary, err := fileutil.IsBinaryFile(job.path)
				if err != nil {
					atomic.AddInt32(&skippedFiles, 1)
					current := atomic.AddInt32(&processedFiles, 1)
					if !opts.Quiet {
						fmt.Fprintf(os.Stderr, "[%d/%d] Worker %d: Warning: failed to check if file is binary %s: %v\n",
							current, totalFiles, workerID, job.path, err)
					}
					resultChan <- struct {
						path   string
						result *ScanResult
						err    error
					}{path: job.path, result: nil, err: err}
					continue
				}
				if isBinary {
					atomic.AddInt32(&skippedFiles, 1)
					current := atomic.AddInt32(&processedFiles, 1)
					if !opts.Quiet {
						fmt.Fprintf(os.Stderr, "[%d/%d] Worker %d: Skipping binary file: %s\n",
							current, totalFiles, workerID, filepath.Base(job.path))
					}
					continue
				}

				current := atomic.LoadInt32(&processedFiles)
				if !opts.Quiet {
					fmt.Fprintf(os.Stderr, "[%d/%d] Worker %d: Scanning: %s",
						current+1, totalFiles, workerID, filepath.Base(job.path))
				}

				result, err := p.ProcessFile(job.path, opts)
				if err != nil {
					atomic.AddInt32(&skippedFiles, 1)
					atomic.AddInt32(&processedFiles, 1)
					if !opts.Quiet {
						fmt.Fprintf(os.Stderr, " - Error: %v\n", err)
					}
					resultChan <- struct {
						path   string
						result *ScanResult
						err    error
					}{path: job.path, result: nil, err: err}
					continue
				}

				atomic.AddInt32(&processedFiles, 1)
				if !opts.Quiet {
					fmt.Fprintf(os.Stderr, " - Done (%d passwords analyzed)\n", result.Stats.Analyzed)
				}
				resultChan <- struct {
					path   string
					result *ScanResult
					err    error
				}{path: job.path, result: result, err: nil}
			}
		}(i)
	}

	results := make(map[string]*ScanResult)
	var resultWg sync.WaitGroup
	resultWg.Add(1)
	go func() {
		defer resultWg.Done()
		for i := 0; i < totalFiles; i++ {
			res := <-resultChan
			if res.err == nil && res.result != nil {
				results[res.path] = res.result
			}
		}
	}()

	for _, job := range files {
		jobChan <- job
	}
	close(jobChan)

	wg.Wait()
	close(resultChan)
	resultWg.Wait()

	if !opts.Quiet {
		fmt.Fprintf(os.Stderr, "\nDirectory scan complete: %d files processed, %d skipped\n",
			int(processedFiles)-int(skippedFiles), int(skippedFiles))
	}

	return results, nil
}
