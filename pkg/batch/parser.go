package batch

import (
	"fmt"
	"strings"
)

// DefaultLineParser extracts one candidate password per input line.
// Bare lines are taken whole; lines with ":" or "|" separators are
// treated as url:username:password dump rows and yield the password
// field.
type DefaultLineParser struct{}

func NewDefaultLineParser() *DefaultLineParser {
	return &DefaultLineParser{}
}

func (p *DefaultLineParser) ParseLine(line string) (string, error) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return "", fmt.Errorf("empty line")
	}

	if !strings.Contains(trimmed, ":") && !strings.Contains(trimmed, "|") {
		return trimmed, nil
	}

	return parseDumpRow(trimmed)
}

func parseDumpRow(row string) (string, error) {
	normalized := strings.ReplaceAll(row, "|", ":")

	if strings.HasPrefix(normalized, "android://") {
		idx := strings.Index(normalized, "/:")
		if idx == -1 {
			return "", fmt.Errorf("invalid Android row: missing /: separator")
		}
		remaining := normalized[idx+2:]

		colonIdx := strings.Index(remaining, ":")
		if colonIdx == -1 {
			return "", fmt.Errorf("invalid Android row: missing password field")
		}
		password := remaining[colonIdx+1:]
		if strings.TrimSpace(password) == "" {
			return "", fmt.Errorf("password field is empty")
		}
		return password, nil
	}

	parts := strings.SplitN(stripScheme(normalized), ":", 3)
	if len(parts) < 3 {
		return "", fmt.Errorf("row has too few fields (need url, username, password)")
	}

	if strings.TrimSpace(parts[0]) == "" {
		return "", fmt.Errorf("url field is empty")
	}
	if strings.TrimSpace(parts[1]) == "" || strings.TrimSpace(parts[2]) == "" {
		return "", fmt.Errorf("username or password field is empty")
	}

	return parts[2], nil
}

func stripScheme(row string) string {
	row = strings.TrimPrefix(row, "https://")
	row = strings.TrimPrefix(row, "http://")
	return strings.TrimPrefix(row, "www.")
}
