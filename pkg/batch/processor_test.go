package batch

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gnomegl/passmeter/pkg/strength"
)

func writeScanFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}
	return path
}

func TestProcessFilePlainList(t *testing.T) {
	dir := t.TempDir()
	path := writeScanFile(t, dir, "plain.txt", "password\nTr0ub4dor&9Zk#mQ7pL\n\npassword\n")

	processor := NewDefaultProcessor()
	result, err := processor.ProcessFile(path, ScanOptions{EnableDeduplication: true, Quiet: true})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if result.Stats.TotalLines != 4 {
		t.Errorf("Expected 4 total lines, got %d", result.Stats.TotalLines)
	}
	if result.Stats.Analyzed != 2 {
		t.Errorf("Expected 2 analyzed, got %d", result.Stats.Analyzed)
	}
	if result.Stats.Duplicates != 1 {
		t.Errorf("Expected 1 duplicate, got %d", result.Stats.Duplicates)
	}
	if result.Stats.LinesIgnored != 1 {
		t.Errorf("Expected 1 ignored line, got %d", result.Stats.LinesIgnored)
	}

	if len(result.Entries) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(result.Entries))
	}

	first := result.Entries[0]
	if first.Password != "password" {
		t.Errorf("Expected first password %q, got %q", "password", first.Password)
	}
	if first.Line != 1 {
		t.Errorf("Expected first entry on line 1, got %d", first.Line)
	}
	if first.Source != path {
		t.Errorf("Expected source %s, got %s", path, first.Source)
	}
	if first.Result.Score != 18 {
		t.Errorf("Expected score 18 for %q, got %d", first.Password, first.Result.Score)
	}
	if first.Result.Tier != strength.TierWeak {
		t.Errorf("Expected tier %v, got %v", strength.TierWeak, first.Result.Tier)
	}

	second := result.Entries[1]
	if second.Line != 2 {
		t.Errorf("Expected second entry on line 2, got %d", second.Line)
	}
	if second.Result.Score != 125 {
		t.Errorf("Expected score 125 for %q, got %d", second.Password, second.Result.Score)
	}

	if result.Stats.TierCounts[strength.TierWeak] != 1 {
		t.Errorf("Expected 1 weak password, got %d", result.Stats.TierCounts[strength.TierWeak])
	}
	if result.Stats.TierCounts[strength.TierExcellent] != 1 {
		t.Errorf("Expected 1 excellent password, got %d", result.Stats.TierCounts[strength.TierExcellent])
	}
	if result.Stats.MeanScore != 71.5 {
		t.Errorf("Expected mean score 71.5, got %v", result.Stats.MeanScore)
	}
}

func TestProcessFileDumpRows(t *testing.T) {
	dir := t.TempDir()
	content := "example.com:alice:password\nexample.com:bob:Tr0ub4dor&9Zk#mQ7pL\nonlyone:field\n"
	path := writeScanFile(t, dir, "dump.txt", content)

	processor := NewDefaultProcessor()
	result, err := processor.ProcessFile(path, ScanOptions{EnableDeduplication: true, Quiet: true})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if result.Stats.TotalLines != 3 {
		t.Errorf("Expected 3 total lines, got %d", result.Stats.TotalLines)
	}
	if result.Stats.Analyzed != 2 {
		t.Errorf("Expected 2 analyzed, got %d", result.Stats.Analyzed)
	}
	if result.Stats.LinesIgnored != 1 {
		t.Errorf("Expected 1 ignored line, got %d", result.Stats.LinesIgnored)
	}
	if len(result.Entries) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(result.Entries))
	}
	if result.Entries[0].Password != "password" {
		t.Errorf("Expected extracted password %q, got %q", "password", result.Entries[0].Password)
	}
}

func TestProcessFileDedupeDisabled(t *testing.T) {
	dir := t.TempDir()
	path := writeScanFile(t, dir, "repeat.txt", "password\npassword\n")

	processor := NewDefaultProcessor()
	result, err := processor.ProcessFile(path, ScanOptions{Quiet: true})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if result.Stats.Analyzed != 2 {
		t.Errorf("Expected 2 analyzed without deduplication, got %d", result.Stats.Analyzed)
	}
	if result.Stats.Duplicates != 0 {
		t.Errorf("Expected 0 duplicates without deduplication, got %d", result.Stats.Duplicates)
	}
}

func TestProcessFileSavesReused(t *testing.T) {
	dir := t.TempDir()
	path := writeScanFile(t, dir, "reused.txt", "password\nhunter2\npassword\npassword\n")
	reusedPath := filepath.Join(dir, "reused_out.txt")

	processor := NewDefaultProcessor()
	result, err := processor.ProcessFile(path, ScanOptions{
		EnableDeduplication: true,
		SaveReused:          true,
		ReusedFile:          reusedPath,
		Quiet:               true,
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if result.Stats.Duplicates != 2 {
		t.Errorf("Expected 2 duplicates, got %d", result.Stats.Duplicates)
	}

	data, err := os.ReadFile(reusedPath)
	if err != nil {
		t.Fatalf("Failed to read reused passwords file: %v", err)
	}
	if string(data) != "password\npassword\n" {
		t.Errorf("Unexpected reused file content: %q", string(data))
	}
}

func TestProcessFileSkipsBinary(t *testing.T) {
	dir := t.TempDir()
	path := writeScanFile(t, dir, "blob.bin", strings.Repeat("\x00", 100))

	processor := NewDefaultProcessor()
	_, err := processor.ProcessFile(path, ScanOptions{Quiet: true})
	if err == nil {
		t.Fatal("Expected error for binary file but got none")
	}
	if !strings.Contains(err.Error(), "binary") {
		t.Errorf("Expected binary file error, got: %v", err)
	}
}

func TestProcessFileMissing(t *testing.T) {
	processor := NewDefaultProcessor()
	_, err := processor.ProcessFile(filepath.Join(t.TempDir(), "missing.txt"), ScanOptions{Quiet: true})
	if err == nil {
		t.Fatal("Expected error for missing file but got none")
	}
}

func TestProcessDirectory(t *testing.T) {
	dir := t.TempDir()
	pathA := writeScanFile(t, dir, "a.txt", "password\n123456\n")
	pathB := writeScanFile(t, dir, "b.txt", "dragon1995\n")
	writeScanFile(t, dir, "blob.bin", strings.Repeat("\x00", 100))

	processor := NewDefaultProcessor()
	results, err := processor.ProcessDirectory(dir, ScanOptions{EnableDeduplication: true, Quiet: true})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if len(results) != 2 {
		t.Fatalf("Expected 2 scanned files, got %d", len(results))
	}
	if results[pathA].Stats.Analyzed != 2 {
		t.Errorf("Expected 2 analyzed in a.txt, got %d", results[pathA].Stats.Analyzed)
	}
	if results[pathB].Stats.Analyzed != 1 {
		t.Errorf("Expected 1 analyzed in b.txt, got %d", results[pathB].Stats.Analyzed)
	}

	combined := CombinedStats(results)
	if combined.TotalLines != 3 {
		t.Errorf("Expected 3 combined total lines, got %d", combined.TotalLines)
	}
	if combined.Analyzed != 3 {
		t.Errorf("Expected 3 combined analyzed, got %d", combined.Analyzed)
	}
	if combined.TierCounts[strength.TierWeak] != 2 {
		t.Errorf("Expected 2 weak passwords, got %d", combined.TierCounts[strength.TierWeak])
	}
	if combined.TierCounts[strength.TierTooWeak] != 1 {
		t.Errorf("Expected 1 too-weak password, got %d", combined.TierCounts[strength.TierTooWeak])
	}
	if math.Abs(combined.MeanScore-50.0/3.0) > 1e-9 {
		t.Errorf("Expected combined mean score %v, got %v", 50.0/3.0, combined.MeanScore)
	}
}

func TestAnalyzeLine(t *testing.T) {
	processor := NewDefaultProcessor()

	entry, err := processor.AnalyzeLine("example.com:carol:qwerty123")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if entry.Password != "qwerty123" {
		t.Errorf("Expected password %q, got %q", "qwerty123", entry.Password)
	}
	if entry.Result.Score != 7 {
		t.Errorf("Expected score 7, got %d", entry.Result.Score)
	}
	if entry.Result.Tier != strength.TierTooWeak {
		t.Errorf("Expected tier %v, got %v", strength.TierTooWeak, entry.Result.Tier)
	}

	if _, err := processor.AnalyzeLine(""); err == nil {
		t.Error("Expected error for empty line but got none")
	}
}

func TestCombinedStatsEmpty(t *testing.T) {
	combined := CombinedStats(map[string]*ScanResult{})
	if combined.TotalLines != 0 || combined.Analyzed != 0 || combined.MeanScore != 0 {
		t.Errorf("Expected zero stats for empty results, got %+v", combined)
	}

	combined = CombinedStats(map[string]*ScanResult{"skipped.txt": nil})
	if combined.Analyzed != 0 {
		t.Errorf("Expected nil results to be skipped, got %+v", combined)
	}
}
