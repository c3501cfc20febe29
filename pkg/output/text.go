package output

import (
	"bufio"
	"fmt"
	"os"

	"github.com/gnomegl/passmeter/pkg/batch"
)

type TextWriter struct {
	writer *bufio.Writer
	file   *os.File
}

func NewTextWriter(filename string) (*TextWriter, error) {
	file, err := os.Create(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to create text file: %w", err)
	}

	writer := bufio.NewWriter(file)

	return &TextWriter{
		writer: writer,
		file:   file,
	}, nil
}

func (w *TextWriter) WriteEntries(entries []batch.Entry, stats batch.ScanStats, opts WriterOptions) error {
	for _, entry := range entries {
		if _, err := w.writer.WriteString(formatEntryLine(entry, opts.ShowPasswords)); err != nil {
			return fmt.Errorf("failed to write text record: %w", err)
		}
	}

	return w.writer.Flush()
}

func (w *TextWriter) Close() error {
	if err := w.writer.Flush(); err != nil {
		return err
	}
	return w.file.Close()
}

// formatEntryLine renders one tab-separated report line:
// source:line, password, score, tier, crack time.
func formatEntryLine(entry batch.Entry, showPasswords bool) string {
	location := entry.Source
	if entry.Line > 0 {
		location = fmt.Sprintf("%s:%d", entry.Source, entry.Line)
	}

	return fmt.Sprintf("%s\t%s\t%d\t%s\t%s\n",
		location,
		displayPassword(entry.Password, showPasswords),
		entry.Result.Score,
		entry.Result.Tier,
		entry.Result.CrackTime)
}
