package output

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/gnomegl/passmeter/pkg/batch"
	"github.com/gnomegl/passmeter/pkg/strength"
)

var csvHeader = []string{
	"doc_id", "source", "line", "password", "length",
	"entropy_bits", "score", "strength", "crack_time", "penalties",
}

type CSVWriter struct {
	writer *csv.Writer
	file   *os.File
}

func NewCSVWriter(filename string) (*CSVWriter, error) {
	file, err := os.Create(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to create CSV file: %w", err)
	}

	writer := csv.NewWriter(file)

	if err := writer.Write(csvHeader); err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to write CSV header: %w", err)
	}

	return &CSVWriter{
		writer: writer,
		file:   file,
	}, nil
}

func (w *CSVWriter) WriteEntries(entries []batch.Entry, stats batch.ScanStats, opts WriterOptions) error {
	for _, entry := range entries {
		if err := w.writer.Write(csvRecord(entry, opts)); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	w.writer.Flush()
	return w.writer.Error()
}

func (w *CSVWriter) Close() error {
	w.writer.Flush()
	if err := w.writer.Error(); err != nil {
		return err
	}
	return w.file.Close()
}

func csvRecord(entry batch.Entry, opts WriterOptions) []string {
	return []string{
		generateDocID(entry.Password),
		entry.Source,
		strconv.Itoa(entry.Line),
		displayPassword(entry.Password, opts.ShowPasswords),
		strconv.Itoa(entry.Result.Length),
		strconv.FormatFloat(entry.Result.RawEntropy, 'f', 2, 64),
		strconv.Itoa(entry.Result.Score),
		entry.Result.Tier.String(),
		entry.Result.CrackTime,
		penaltySummary(entry.Result.Penalties),
	}
}

func penaltySummary(penalties []strength.Penalty) string {
	reasons := make([]string, 0, len(penalties))
	for _, penalty := range penalties {
		reasons = append(reasons, penalty.Reason)
	}
	return strings.Join(reasons, "; ")
}
