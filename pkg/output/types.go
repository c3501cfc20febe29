package output

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gnomegl/passmeter/pkg/batch"
	"github.com/gnomegl/passmeter/pkg/strength"
)

// ScanMetadata identifies one scan run. Writers stamp it into report
// rows so output files can be traced back to the run that made them.
type ScanMetadata struct {
	RunID     string
	StartedAt time.Time
}

type Metadata struct {
	OriginalFilename string `json:"original_filename,omitempty"`
	RunID            string `json:"run_id,omitempty"`
	ScannedAt        string `json:"scanned_at,omitempty"`
}

type ScanSummary struct {
	TotalLines   int                   `json:"total_lines"`
	Analyzed     int                   `json:"analyzed"`
	LinesIgnored int                   `json:"lines_ignored"`
	Duplicates   int                   `json:"duplicates"`
	MeanScore    float64               `json:"mean_score"`
	TierCounts   map[strength.Tier]int `json:"tier_counts,omitempty"`
}

func NewScanSummary(stats batch.ScanStats) ScanSummary {
	return ScanSummary{
		TotalLines:   stats.TotalLines,
		Analyzed:     stats.Analyzed,
		LinesIgnored: stats.LinesIgnored,
		Duplicates:   stats.Duplicates,
		MeanScore:    stats.MeanScore,
		TierCounts:   stats.TierCounts,
	}
}

type WriterOptions struct {
	MaxFileSize    int64
	OutputBaseName string
	Metadata       *ScanMetadata
	ShowPasswords  bool
	IncludeStats   bool
	NoSplit        bool
}

type Writer interface {
	WriteEntries(entries []batch.Entry, stats batch.ScanStats, opts WriterOptions) error
	Close() error
}

type FileManager interface {
	CreateNewFile() error
	GetCurrentFile() string
	GetCurrentSize() int64
	AddToCurrentSize(size int64)
	Close() error
}

// generateDocID derives a stable row identifier from the password
// itself, so masked reports can still be correlated across runs.
func generateDocID(password string) string {
	hash := sha256.Sum256([]byte(password))
	return hex.EncodeToString(hash[:])
}

func displayPassword(password string, show bool) string {
	if show {
		return password
	}
	return strings.Repeat("*", utf8.RuneCountInString(password))
}

func rowMetadata(opts WriterOptions) Metadata {
	meta := Metadata{OriginalFilename: opts.OutputBaseName}
	if opts.Metadata != nil {
		meta.RunID = opts.Metadata.RunID
		if !opts.Metadata.StartedAt.IsZero() {
			meta.ScannedAt = opts.Metadata.StartedAt.Format(time.RFC3339)
		}
	}
	return meta
}
