package lexicon

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/gnomegl/passmeter/pkg/strength"
)

type DefaultLoader struct{}

func NewDefaultLoader() *DefaultLoader {
	return &DefaultLoader{}
}

// LoadFromFile reads a lexicon file. Files ending in .yaml or .yml are
// parsed as a mapping over the four list names; any other file is
// treated as a plain newline-separated weak-word list with # comments
// and blank lines skipped.
func (l *DefaultLoader) LoadFromFile(path string) (*Set, *FileInfo, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read lexicon file: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".yaml" || ext == ".yml" {
		var set Set
		if err := yaml.Unmarshal(data, &set); err != nil {
			return nil, nil, fmt.Errorf("failed to parse lexicon file %s: %w", path, err)
		}
		return &set, &FileInfo{Path: path, Format: "yaml", Entries: set.Len()}, nil
	}

	set := &Set{WeakWords: splitWords(string(data))}
	if len(set.WeakWords) == 0 {
		return nil, nil, fmt.Errorf("lexicon file %s contains no entries", path)
	}
	return set, &FileInfo{Path: path, Format: "plain", Entries: set.Len()}, nil
}

// Apply overrides the analyzer configuration with every non-empty list
// in the set. With extend true the entries are appended to the
// built-ins instead of replacing them.
func (s *Set) Apply(config *strength.Config, extend bool) {
	config.WeakWords = applyList(config.WeakWords, s.WeakWords, extend)
	config.CompositeWords = applyList(config.CompositeWords, s.CompositeWords, extend)
	config.KeyboardPatterns = applyList(config.KeyboardPatterns, s.KeyboardPatterns, extend)
	config.SimpleSequences = applyList(config.SimpleSequences, s.SimpleSequences, extend)
}

func applyList(current, override []string, extend bool) []string {
	if len(override) == 0 {
		return current
	}
	if extend {
		return append(current, override...)
	}
	return override
}

func splitWords(data string) []string {
	var words []string
	for _, line := range strings.Split(data, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		words = append(words, line)
	}
	return words
}
