package fileutil

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

func IsDirectory(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}

func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// GetDefaultOutputPath derives an output path next to the input,
// inserting the suffix before the extension. Directories get the
// suffix appended directly.
func GetDefaultOutputPath(inputPath string, suffix string) string {
	if IsDirectory(inputPath) {
		return inputPath + suffix
	}

	dir := filepath.Dir(inputPath)
	base := filepath.Base(inputPath)
	ext := filepath.Ext(base)
	nameWithoutExt := strings.TrimSuffix(base, ext)

	return filepath.Join(dir, nameWithoutExt+suffix+ext)
}

// GetReportBaseName returns the stem used for generated report files
func GetReportBaseName(inputPath string) string {
	base := filepath.Base(inputPath)
	ext := filepath.Ext(base)
	nameWithoutExt := strings.TrimSuffix(base, ext)

	return nameWithoutExt + "_pm"
}

func WriteLinesToFile(filename string, lines []string) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file %s: %w", filename, err)
	}
	defer file.Close()

	writer := bufio.NewWriter(file)
	defer writer.Flush()

	for _, line := range lines {
		if _, err := writer.WriteString(line + "\n"); err != nil {
			return fmt.Errorf("failed to write line: %w", err)
		}
	}

	return nil
}

func EnsureDirectoryExists(path string) error {
	return os.MkdirAll(path, 0755)
}

func GetRelativePath(basePath, fullPath string) string {
	if !strings.HasPrefix(fullPath, basePath) {
		return fullPath
	}

	relPath := strings.TrimPrefix(fullPath, basePath)
	relPath = strings.TrimPrefix(relPath, "/")

	return relPath
}

// IsBinaryFile sniffs the first 512 bytes for null bytes or a high
// share of non-printable content. Candidate password files are plain
// text; anything that fails the sniff is skipped by the scanners.
func IsBinaryFile(path string) (bool, error) {
	file, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer file.Close()

	buffer := make([]byte, 512)
	n, err := file.Read(buffer)
	if err != nil && err != io.EOF {
		return false, err
	}

	// Skip a UTF-8 BOM if present
	start := 0
	if n >= 3 && buffer[0] == 0xEF && buffer[1] == 0xBB && buffer[2] == 0xBF {
		start = 3
	}

	for i := start; i < n; i++ {
		if buffer[i] == 0 {
			return true, nil
		}
	}

	return nonPrintableRatio(buffer[start:n]) > 0.3, nil
}

func IsTextFile(path string) (bool, error) {
	isBinary, err := IsBinaryFile(path)
	if err != nil {
		return false, err
	}
	return !isBinary, nil
}

// nonPrintableRatio treats control characters outside tab/newline/CR
// as non-printable; bytes above 127 count only when they cannot open
// or continue a UTF-8 sequence.
func nonPrintableRatio(data []byte) float64 {
	if len(data) == 0 {
		return 0
	}

	nonPrintable := 0
	for _, b := range data {
		if b < 32 && b != '\t' && b != '\n' && b != '\r' {
			nonPrintable++
			continue
		}
		if b > 127 && (b&0xC0) != 0x80 {
			if (b&0xE0) != 0xC0 && (b&0xF0) != 0xE0 && (b&0xF8) != 0xF0 {
				nonPrintable++
			}
		}
	}

	return float64(nonPrintable) / float64(len(data))
}
