package lexicon

// Set carries replacement or extension word lists for the analyzer.
// Fields left empty keep the corresponding built-in list.
type Set struct {
	WeakWords        []string `yaml:"weak_words" json:"weak_words"`
	CompositeWords   []string `yaml:"composite_words" json:"composite_words"`
	KeyboardPatterns []string `yaml:"keyboard_patterns" json:"keyboard_patterns"`
	SimpleSequences  []string `yaml:"simple_sequences" json:"simple_sequences"`
}

// Len returns the total number of entries across all lists
func (s *Set) Len() int {
	return len(s.WeakWords) + len(s.CompositeWords) + len(s.KeyboardPatterns) + len(s.SimpleSequences)
}

// FileInfo describes where a loaded lexicon came from
type FileInfo struct {
	Path    string
	Format  string
	Entries int
}

// Loader interface for reading lexicon files
type Loader interface {
	LoadFromFile(path string) (*Set, *FileInfo, error)
}
