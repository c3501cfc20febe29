package batch

import "github.com/gnomegl/passmeter/pkg/strength"

// Entry pairs one candidate password with its analysis and where it
// was found.
type Entry struct {
	Password string           `json:"password"`
	Line     int              `json:"line"`
	Source   string           `json:"source,omitempty"`
	Result   *strength.Result `json:"result"`
}

type ScanStats struct {
	TotalLines   int
	Analyzed     int
	Duplicates   int
	LinesIgnored int
	TierCounts   map[strength.Tier]int
	MeanScore    float64
}

func newScanStats() ScanStats {
	return ScanStats{TierCounts: make(map[strength.Tier]int)}
}

type ScanOptions struct {
	EnableDeduplication bool
	SaveReused          bool
	ReusedFile          string
	Quiet               bool
}

type ScanResult struct {
	Entries []Entry
	Stats   ScanStats
}

type LineParser interface {
	ParseLine(line string) (string, error)
}

type Processor interface {
	AnalyzeLine(line string) (*Entry, error)
	ProcessFile(filename string, opts ScanOptions) (*ScanResult, error)
	ProcessDirectory(dirname string, opts ScanOptions) (map[string]*ScanResult, error)
}

// CombinedStats folds per-file stats from a directory scan into one
// summary. The mean score is weighted by each file's analyzed count.
func CombinedStats(results map[string]*ScanResult) ScanStats {
	combined := newScanStats()
	scoreSum := 0.0

	for _, result := range results {
		if result == nil {
			continue
		}
		combined.TotalLines += result.Stats.TotalLines
		combined.Analyzed += result.Stats.Analyzed
		combined.Duplicates += result.Stats.Duplicates
		combined.LinesIgnored += result.Stats.LinesIgnored
		for tier, count := range result.Stats.TierCounts {
			combined.TierCounts[tier] += count
		}
		scoreSum += result.Stats.MeanScore * float64(result.Stats.Analyzed)
	}

	if combined.Analyzed > 0 {
		combined.MeanScore = scoreSum / float64(combined.Analyzed)
	}

	return combined
}
