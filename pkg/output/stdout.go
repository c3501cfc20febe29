package output

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"os"

	"github.com/gnomegl/passmeter/pkg/batch"
)

type StdoutWriter struct {
	format string
	writer *bufio.Writer
}

func NewStdoutWriter(format string) *StdoutWriter {
	return &StdoutWriter{
		format: format,
		writer: bufio.NewWriter(os.Stdout),
	}
}

func (w *StdoutWriter) WriteEntries(entries []batch.Entry, stats batch.ScanStats, opts WriterOptions) error {
	switch w.format {
	case "csv":
		return w.writeCSV(entries, opts)
	case "jsonl":
		return w.writeJSONL(entries, stats, opts)
	default: // txt
		return w.writeText(entries, opts)
	}
}

func (w *StdoutWriter) writeText(entries []batch.Entry, opts WriterOptions) error {
	for _, entry := range entries {
		if _, err := w.writer.WriteString(formatEntryLine(entry, opts.ShowPasswords)); err != nil {
			return err
		}
	}
	return w.writer.Flush()
}

func (w *StdoutWriter) writeCSV(entries []batch.Entry, opts WriterOptions) error {
	csvWriter := csv.NewWriter(w.writer)

	if err := csvWriter.Write(csvHeader); err != nil {
		return err
	}

	for _, entry := range entries {
		if err := csvWriter.Write(csvRecord(entry, opts)); err != nil {
			return err
		}
	}

	csvWriter.Flush()
	if err := csvWriter.Error(); err != nil {
		return err
	}
	return w.writer.Flush()
}

func (w *StdoutWriter) writeJSONL(entries []batch.Entry, stats batch.ScanStats, opts WriterOptions) error {
	encoder := json.NewEncoder(w.writer)

	for _, entry := range entries {
		if err := encoder.Encode(ndjsonRow(entry, opts)); err != nil {
			return err
		}
	}

	if opts.IncludeStats {
		summary := map[string]interface{}{
			"summary":  NewScanSummary(stats),
			"metadata": rowMetadata(opts),
		}
		if err := encoder.Encode(summary); err != nil {
			return err
		}
	}

	return w.writer.Flush()
}

func (w *StdoutWriter) Close() error {
	return w.writer.Flush()
}
