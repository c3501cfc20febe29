package strength

// Config holds the lexicons and tunables used by the analyzer. Lexicon
// entries are matched case-insensitively; they are normalized to lower
// case when the analyzer is constructed.
type Config struct {
	WeakWords        []string
	CompositeWords   []string
	KeyboardPatterns []string
	SimpleSequences  []string
	GuessesPerSecond float64
	MinLength        int
	FullBarBits      float64
}

func DefaultConfig() *Config {
	return &Config{
		WeakWords:        append([]string(nil), defaultWeakWords...),
		CompositeWords:   append([]string(nil), defaultCompositeWords...),
		KeyboardPatterns: append([]string(nil), defaultKeyboardPatterns...),
		SimpleSequences:  append([]string(nil), defaultSimpleSequences...),
		GuessesPerSecond: 1e10,   // assumed offline GPU rig, 10 billion guesses/s
		MinLength:        10,     // length the feedback checklist asks for
		FullBarBits:      75,     // bits that count as a 100% full strength bar
	}
}
