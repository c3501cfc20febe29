package strength

import (
	"math"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Character pool contributions per detected class
const (
	poolLower  = 26
	poolUpper  = 26
	poolDigit  = 10
	poolSymbol = 33
)

type DefaultAnalyzer struct {
	config *Config
}

func NewDefaultAnalyzer() *DefaultAnalyzer {
	return NewAnalyzerWithConfig(DefaultConfig())
}

func NewAnalyzerWithConfig(config *Config) *DefaultAnalyzer {
	normalizeLexicons(config)
	return &DefaultAnalyzer{
		config: config,
	}
}

// Analyze runs the full scoring pipeline on a single password: pool
// sizing, raw entropy, heuristic penalties, crack-time estimation, and
// the feedback checklist. It is a total function; every string,
// including the empty one, yields a well-formed result.
func (a *DefaultAnalyzer) Analyze(password string) *Result {
	if password == "" {
		return &Result{
			Tier:      TierNone,
			Color:     TierNone.Color(),
			CrackTime: "N/A",
			Feedback:  []string{feedbackEmpty},
		}
	}

	classes := detectClasses(password)
	pool := poolSize(classes)
	length := utf8.RuneCountInString(password)
	raw := rawEntropy(length, pool)

	// Apply deductions to get the effective entropy
	penalties := a.penalize(password, classes)
	deducted := 0
	for _, p := range penalties {
		deducted += p.Points
	}

	score := int(math.Round(raw - float64(deducted)))
	if score < 0 {
		score = 0
	}

	tier := a.TierFor(score)
	percent := float64(score) * 100 / a.config.FullBarBits
	if percent > 100 {
		percent = 100
	}

	return &Result{
		Score:      score,
		RawEntropy: raw,
		PoolSize:   pool,
		Length:     length,
		Classes:    classes,
		Tier:       tier,
		Color:      tier.Color(),
		Percent:    percent,
		CrackTime:  a.crackTime(score),
		Penalties:  penalties,
		Feedback:   a.buildFeedback(password, classes, score, raw),
	}
}

// TierFor maps an effective entropy score to its strength tier
func (a *DefaultAnalyzer) TierFor(score int) Tier {
	if score >= 65 {
		return TierExcellent
	} else if score >= 51 {
		return TierStrong
	} else if score >= 35 {
		return TierModerate
	} else if score >= 15 {
		return TierWeak
	} else {
		return TierTooWeak
	}
}

// detectClasses reports which character classes occur anywhere in the
// password. Detection is presence-only; counts do not matter. A symbol
// is any rune that is not an ASCII letter, digit, or whitespace.
func detectClasses(password string) CharacterClasses {
	var classes CharacterClasses
	for _, r := range password {
		switch {
		case r >= 'a' && r <= 'z':
			classes.Lower = true
		case r >= 'A' && r <= 'Z':
			classes.Upper = true
		case r >= '0' && r <= '9':
			classes.Digit = true
		case !unicode.IsSpace(r):
			classes.Symbol = true
		}
	}
	return classes
}

func poolSize(classes CharacterClasses) int {
	size := 0
	if classes.Lower {
		size += poolLower
	}
	if classes.Upper {
		size += poolUpper
	}
	if classes.Digit {
		size += poolDigit
	}
	if classes.Symbol {
		size += poolSymbol
	}
	// Must be at least 1 so the entropy log stays defined
	if size == 0 {
		size = 1
	}
	return size
}

// rawEntropy is the theoretical maximum entropy in bits assuming each
// position is drawn uniformly from the detected pool. Length counts
// code points, not bytes.
func rawEntropy(length, pool int) float64 {
	if length == 0 {
		return 0
	}
	return float64(length) * math.Log2(float64(pool))
}

func normalizeLexicons(config *Config) {
	config.WeakWords = lowerAll(config.WeakWords)
	config.CompositeWords = lowerAll(config.CompositeWords)
	config.KeyboardPatterns = lowerAll(config.KeyboardPatterns)
	config.SimpleSequences = lowerAll(config.SimpleSequences)
}

func lowerAll(words []string) []string {
	out := make([]string, 0, len(words))
	for _, w := range words {
		if w == "" {
			continue
		}
		out = append(out, strings.ToLower(w))
	}
	return out
}
