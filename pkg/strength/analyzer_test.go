package strength

import (
	"math"
	"reflect"
	"strings"
	"testing"
)

func TestAnalyzeScenarios(t *testing.T) {
	analyzer := NewDefaultAnalyzer()

	tests := []struct {
		name          string
		password      string
		expectedScore int
		expectedTier  Tier
		expectedCrack string // empty means not checked
	}{
		{
			name:          "empty input",
			password:      "",
			expectedScore: 0,
			expectedTier:  TierNone,
			expectedCrack: "N/A",
		},
		{
			name:          "common word", // dictionary hit only
			password:      "password",
			expectedScore: 18,
			expectedTier:  TierWeak,
			expectedCrack: "Instantly (< 1 ms)",
		},
		{
			name:          "block repeat plus sequence",
			password:      "abcabc123",
			expectedScore: 22,
			expectedTier:  TierWeak,
		},
		{
			name:          "concatenated composite words",
			password:      "shadowmaster",
			expectedScore: 6,
			expectedTier:  TierTooWeak,
			expectedCrack: "Instantly (< 1 ms)",
		},
		{
			name:          "long mixed class with no hits",
			password:      "Tr0ub4dor&9Zk#mQ7pL",
			expectedScore: 125,
			expectedTier:  TierExcellent,
		},
		{
			name:          "repeated run",
			password:      "aaaa",
			expectedScore: 0,
			expectedTier:  TierTooWeak,
			expectedCrack: "Instantly",
		},
		{
			name:          "composite word with trailing year",
			password:      "dragon1995",
			expectedScore: 32,
			expectedTier:  TierWeak,
		},
		{
			name:          "weak word with year and symbol",
			password:      "secure@2019",
			expectedScore: 22,
			expectedTier:  TierWeak,
		},
		{
			name:          "dictionary keyboard and sequence stack",
			password:      "qwerty123",
			expectedScore: 7,
			expectedTier:  TierTooWeak,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := analyzer.Analyze(tt.password)

			if result.Score != tt.expectedScore {
				t.Errorf("Expected score %d, got %d", tt.expectedScore, result.Score)
			}
			if result.Tier != tt.expectedTier {
				t.Errorf("Expected tier %s, got %s", tt.expectedTier, result.Tier)
			}
			if tt.expectedCrack != "" && result.CrackTime != tt.expectedCrack {
				t.Errorf("Expected crack time %q, got %q", tt.expectedCrack, result.CrackTime)
			}
			if result.Color != result.Tier.Color() {
				t.Errorf("Expected color %s for tier %s, got %s", result.Tier.Color(), result.Tier, result.Color)
			}
		})
	}
}

func TestPoolSize(t *testing.T) {
	tests := []struct {
		name     string
		password string
		expected int
	}{
		{"empty", "", 1},
		{"whitespace only", " \t ", 1},
		{"lowercase", "a", 26},
		{"lower and digit", "a1", 36},
		{"all four classes", "Aa1!", 95},
		{"lower and upper", "aA", 52},
		{"lower and symbol", "a!", 59},
		{"non-ascii counts as symbol", "é", 33},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := poolSize(detectClasses(tt.password))
			if got != tt.expected {
				t.Errorf("Expected pool size %d for %q, got %d", tt.expected, tt.password, got)
			}
		})
	}
}

func TestRawEntropy(t *testing.T) {
	if got := rawEntropy(0, 1); got != 0 {
		t.Errorf("Expected zero entropy for empty input, got %f", got)
	}

	// Strictly increasing in length for a fixed pool
	previous := 0.0
	for length := 1; length <= 32; length++ {
		e := rawEntropy(length, 26)
		if e <= previous {
			t.Errorf("Expected entropy to grow with length, got %f after %f at length %d", e, previous, length)
		}
		previous = e
	}

	expected := 8 * math.Log2(26)
	if got := rawEntropy(8, 26); got != expected {
		t.Errorf("Expected entropy %f, got %f", expected, got)
	}
}

func TestScoreBounds(t *testing.T) {
	analyzer := NewDefaultAnalyzer()

	passwords := []string{
		"", "a", "password", "qwerty123", "shadowmaster", "abcabc123",
		"aaaa", "dragon1995", "secure@2019", "Tr0ub4dor&9Zk#mQ7pL",
		"correct horse battery staple", "P@ssw0rd2024!", "   ", "ééé",
	}

	for _, password := range passwords {
		result := analyzer.Analyze(password)

		if result.Score < 0 {
			t.Errorf("Expected non-negative score for %q, got %d", password, result.Score)
		}
		// Rounding aside, penalties never raise the score above raw
		if result.Score > int(math.Round(result.RawEntropy)) {
			t.Errorf("Expected score <= rounded raw entropy for %q, got %d > %f", password, result.Score, result.RawEntropy)
		}
		if result.Percent < 0 || result.Percent > 100 {
			t.Errorf("Expected percent in [0,100] for %q, got %f", password, result.Percent)
		}
	}
}

func TestAnalyzeIdempotent(t *testing.T) {
	analyzer := NewDefaultAnalyzer()

	for _, password := range []string{"", "password", "Tr0ub4dor&9Zk#mQ7pL", "shadow1990!"} {
		first := analyzer.Analyze(password)
		second := analyzer.Analyze(password)
		if !reflect.DeepEqual(first, second) {
			t.Errorf("Expected identical results for repeated analysis of %q", password)
		}
	}
}

func TestTierFor(t *testing.T) {
	analyzer := NewDefaultAnalyzer()

	tests := []struct {
		score    int
		expected Tier
	}{
		{0, TierTooWeak},
		{14, TierTooWeak},
		{15, TierWeak},
		{34, TierWeak},
		{35, TierModerate},
		{50, TierModerate},
		{51, TierStrong},
		{64, TierStrong},
		{65, TierExcellent},
		{120, TierExcellent},
	}

	for _, tt := range tests {
		if got := analyzer.TierFor(tt.score); got != tt.expected {
			t.Errorf("Expected tier %s for score %d, got %s", tt.expected, tt.score, got)
		}
	}
}

func TestParseTier(t *testing.T) {
	tests := []struct {
		input    string
		expected Tier
	}{
		{"weak", TierWeak},
		{"Weak", TierWeak},
		{"too weak", TierTooWeak},
		{"MODERATE", TierModerate},
		{"strong", TierStrong},
		{"excellent", TierExcellent},
	}

	for _, tt := range tests {
		got, err := ParseTier(tt.input)
		if err != nil {
			t.Errorf("Unexpected error for %q: %v", tt.input, err)
		}
		if got != tt.expected {
			t.Errorf("Expected %s for %q, got %s", tt.expected, tt.input, got)
		}
	}

	if _, err := ParseTier("bulletproof"); err == nil {
		t.Error("Expected error for unknown tier name")
	}
}

func TestFeedbackEmptyInput(t *testing.T) {
	analyzer := NewDefaultAnalyzer()

	result := analyzer.Analyze("")
	if len(result.Feedback) != 1 {
		t.Fatalf("Expected exactly one feedback line for empty input, got %d", len(result.Feedback))
	}
	if result.Feedback[0] != "Please enter a password to check its strength." {
		t.Errorf("Unexpected feedback line: %q", result.Feedback[0])
	}
	if result.Percent != 0 || result.CrackTime != "N/A" {
		t.Errorf("Expected zero-state result, got percent %f crack %q", result.Percent, result.CrackTime)
	}
	if result.Tier.String() != "No Password" {
		t.Errorf("Expected No Password tier, got %s", result.Tier)
	}
}

func TestFeedbackOrdering(t *testing.T) {
	analyzer := NewDefaultAnalyzer()

	result := analyzer.Analyze("password")
	if len(result.Feedback) < 5 {
		t.Fatalf("Expected length and class lines at minimum, got %d lines", len(result.Feedback))
	}
	if result.Feedback[0] != "❌ Length: Must be at least 10 characters. Currently 8." {
		t.Errorf("Unexpected length line: %q", result.Feedback[0])
	}
	if result.Feedback[1] != "✅ Complexity: Includes Lowercase letters (a-z)." {
		t.Errorf("Unexpected lowercase line: %q", result.Feedback[1])
	}
	if result.Feedback[2] != "❌ Complexity: Include at least one Uppercase letters (A-Z)." {
		t.Errorf("Unexpected uppercase line: %q", result.Feedback[2])
	}
}

func TestFeedbackDetectorMessages(t *testing.T) {
	analyzer := NewDefaultAnalyzer()

	tests := []struct {
		name        string
		password    string
		wantLines   []string
		absentLines []string
	}{
		{
			name:     "breach word reported by name",
			password: "password",
			wantLines: []string{
				"❌ Breach Risk: Contains 'password' which is a common dictionary word or breached password.",
			},
			absentLines: []string{feedbackGuessable},
		},
		{
			name:     "concatenation message",
			password: "shadowmaster",
			wantLines: []string{
				feedbackConcat,
				"❌ Breach Risk: Contains 'shadow' which is a common dictionary word or breached password.",
			},
			absentLines: []string{feedbackGuessable},
		},
		{
			name:        "word digit message without breach hit",
			password:    "dragon1995",
			wantLines:   []string{feedbackWordDigits},
			absentLines: []string{feedbackConcat, feedbackGuessable},
		},
		{
			name:        "anonymous penalties trigger generic warning",
			password:    "abcabc123",
			wantLines:   []string{feedbackGuessable, feedbackBlocks, feedbackSequence},
			absentLines: []string{feedbackRuns},
		},
		{
			name:        "run message",
			password:    "aaaa",
			wantLines:   []string{feedbackBlocks, feedbackRuns},
			absentLines: []string{feedbackSequence},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := analyzer.Analyze(tt.password)
			for _, want := range tt.wantLines {
				if !hasLine(result.Feedback, want) {
					t.Errorf("Expected feedback to contain %q, got %v", want, result.Feedback)
				}
			}
			for _, absent := range tt.absentLines {
				if hasLine(result.Feedback, absent) {
					t.Errorf("Expected feedback to omit %q, got %v", absent, result.Feedback)
				}
			}
		})
	}
}

func TestAnalyzeUnicode(t *testing.T) {
	analyzer := NewDefaultAnalyzer()

	// Non-ASCII runes land in the symbol class and are counted as
	// single characters
	result := analyzer.Analyze("ééé")
	if result.Length != 3 {
		t.Errorf("Expected rune length 3, got %d", result.Length)
	}
	if result.PoolSize != 33 {
		t.Errorf("Expected symbol-only pool 33, got %d", result.PoolSize)
	}
	if result.Score != 5 {
		t.Errorf("Expected score 5 after run penalty, got %d", result.Score)
	}
}

func TestAnalyzerWithCustomLexicon(t *testing.T) {
	config := DefaultConfig()
	config.WeakWords = []string{"Hunter2"}
	analyzer := NewAnalyzerWithConfig(config)

	// Entries are normalized to lower case on construction
	result := analyzer.Analyze("xHUNTER2x")
	found := false
	for _, p := range result.Penalties {
		if strings.Contains(p.Reason, "hunter2") {
			found = true
		}
	}
	if !found {
		t.Errorf("Expected custom weak word to fire, got penalties %v", result.Penalties)
	}
}

func hasLine(lines []string, want string) bool {
	for _, line := range lines {
		if line == want {
			return true
		}
	}
	return false
}
