package output

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"

	"github.com/gnomegl/passmeter/pkg/batch"
)

type NDJSONWriter struct {
	fileManager   *NDJSONFileManager
	currentWriter *bufio.Writer
	currentFile   *os.File
}

type NDJSONFileManager struct {
	baseName    string
	fileCounter int
	currentSize int64
	maxSize     int64
	currentFile *os.File
	noSplit     bool
}

func NewNDJSONWriter() *NDJSONWriter {
	return &NDJSONWriter{}
}

func (w *NDJSONWriter) WriteEntries(entries []batch.Entry, stats batch.ScanStats, opts WriterOptions) error {
	w.fileManager = &NDJSONFileManager{
		baseName:    opts.OutputBaseName,
		fileCounter: 1,
		maxSize:     opts.MaxFileSize,
		noSplit:     opts.NoSplit,
	}

	if err := w.fileManager.CreateNewFile(); err != nil {
		return fmt.Errorf("failed to create initial file: %w", err)
	}

	w.currentFile = w.fileManager.currentFile
	w.currentWriter = bufio.NewWriter(w.currentFile)

	for _, entry := range entries {
		jsonBytes, err := json.Marshal(ndjsonRow(entry, opts))
		if err != nil {
			return fmt.Errorf("failed to marshal document: %w", err)
		}

		if err := w.writeLine(jsonBytes, opts); err != nil {
			return err
		}
	}

	if opts.IncludeStats {
		jsonBytes, err := json.Marshal(map[string]interface{}{
			"summary":  NewScanSummary(stats),
			"metadata": rowMetadata(opts),
		})
		if err != nil {
			return fmt.Errorf("failed to marshal summary: %w", err)
		}

		if err := w.writeLine(jsonBytes, opts); err != nil {
			return err
		}
	}

	if w.currentWriter != nil {
		if err := w.currentWriter.Flush(); err != nil {
			return fmt.Errorf("failed to flush writer: %w", err)
		}
	}

	return nil
}

// writeLine appends one NDJSON line, rolling over to a fresh numbered
// file first when the size cap would be exceeded.
func (w *NDJSONWriter) writeLine(jsonBytes []byte, opts WriterOptions) error {
	jsonLine := string(jsonBytes) + "\n"
	lineSize := int64(len(jsonLine))

	if !opts.NoSplit && w.fileManager.currentSize+lineSize > w.fileManager.maxSize && w.fileManager.currentSize > 0 {
		if w.currentWriter != nil {
			w.currentWriter.Flush()
		}

		if err := w.fileManager.CreateNewFile(); err != nil {
			return fmt.Errorf("failed to create new file: %w", err)
		}

		w.currentFile = w.fileManager.currentFile
		w.currentWriter = bufio.NewWriter(w.currentFile)
	}

	if _, err := w.currentWriter.WriteString(jsonLine); err != nil {
		return fmt.Errorf("failed to write line: %w", err)
	}

	w.fileManager.currentSize += lineSize
	return nil
}

func (w *NDJSONWriter) Close() error {
	if w.currentWriter != nil {
		if err := w.currentWriter.Flush(); err != nil {
			return err
		}
	}
	if w.fileManager != nil {
		return w.fileManager.Close()
	}
	return nil
}

func ndjsonRow(entry batch.Entry, opts WriterOptions) map[string]interface{} {
	row := map[string]interface{}{
		"doc_id":   generateDocID(entry.Password),
		"password": displayPassword(entry.Password, opts.ShowPasswords),
		"result":   entry.Result,
		"metadata": rowMetadata(opts),
	}

	if entry.Source != "" {
		row["source"] = entry.Source
	}
	if entry.Line > 0 {
		row["line"] = entry.Line
	}

	return row
}

func (fm *NDJSONFileManager) CreateNewFile() error {
	if fm.currentFile != nil {
		fm.currentFile.Close()
	}

	var filename string
	if fm.noSplit {
		filename = fmt.Sprintf("%s.jsonl", fm.baseName)
	} else {
		filename = fmt.Sprintf("%s_%03d.jsonl", fm.baseName, fm.fileCounter)
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file %s: %w", filename, err)
	}

	fm.currentFile = file
	fm.currentSize = 0
	fm.fileCounter++

	fmt.Fprintf(os.Stderr, "Created NDJSON file: %s\n", filename)
	return nil
}

func (fm *NDJSONFileManager) GetCurrentFile() string {
	if fm.currentFile != nil {
		return fm.currentFile.Name()
	}
	return ""
}

func (fm *NDJSONFileManager) GetCurrentSize() int64 {
	return fm.currentSize
}

func (fm *NDJSONFileManager) AddToCurrentSize(size int64) {
	fm.currentSize += size
}

func (fm *NDJSONFileManager) Close() error {
	if fm.currentFile != nil {
		return fm.currentFile.Close()
	}
	return nil
}
