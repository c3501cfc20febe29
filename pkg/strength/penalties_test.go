package strength

import "testing"

func TestPenalizeDeductions(t *testing.T) {
	analyzer := NewDefaultAnalyzer()

	tests := []struct {
		name           string
		password       string
		expectedTotal  int
		expectedCount  int
	}{
		{"dictionary word only", "password", 20, 1},
		{"dictionary keyboard and sequence", "qwerty123", 40, 3},
		{"dictionary plus concatenation", "shadowmaster", 50, 2},
		{"three char block plus sequence", "abcabc123", 25, 2},
		{"two char block plus run", "aaaa", 25, 2},
		{"two runs one penalty entry", "aaabbb", 20, 1},
		{"composite trailing digits", "dragon1995", 20, 1},
		{"weak word with year and symbol", "secure@2019", 45, 2},
		{"no hits", "Tr0ub4dor&9Zk#mQ7pL", 0, 0},
		{"alternating block", "abab", 15, 1},
		{"block and sequence", "xyzxyz", 25, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			penalties := analyzer.penalize(tt.password, detectClasses(tt.password))

			total := 0
			for _, p := range penalties {
				total += p.Points
			}
			if total != tt.expectedTotal {
				t.Errorf("Expected total deduction %d, got %d (%v)", tt.expectedTotal, total, penalties)
			}
			if len(penalties) != tt.expectedCount {
				t.Errorf("Expected %d penalties, got %d (%v)", tt.expectedCount, len(penalties), penalties)
			}
		})
	}
}

func TestCompositeFirstMatchWins(t *testing.T) {
	analyzer := NewDefaultAnalyzer()

	// "master" precedes "shadow" in the lexicon, so the trailing-digits
	// rule on "master" fires before the shadow+master concatenation is
	// ever considered
	match, ok := analyzer.findCompositePattern("shadowmaster123")
	if !ok {
		t.Fatal("Expected composite pattern to fire")
	}
	if match.kind != compositeWordTrailingDigits {
		t.Errorf("Expected trailing-digits rule, got kind %d", match.kind)
	}
	if match.first != "master" {
		t.Errorf("Expected match on %q, got %q", "master", match.first)
	}

	// Without the digits the concatenation rule is reached instead
	match, ok = analyzer.findCompositePattern("shadowmaster")
	if !ok {
		t.Fatal("Expected composite pattern to fire")
	}
	if match.kind != compositeConcat {
		t.Errorf("Expected concatenation rule, got kind %d", match.kind)
	}
	if match.first != "shadow" || match.second != "master" {
		t.Errorf("Expected shadow+master, got %q+%q", match.first, match.second)
	}
}

func TestWordDigitScans(t *testing.T) {
	tests := []struct {
		text     string
		word     string
		expected bool
	}{
		{"shadow123abc", "shadow", true},
		{"shadow123", "shadow", false},
		{"shadowabc", "shadow", false},
		{"xshadow9y", "shadow", true},
		{"shadowxshadow7abc", "shadow", true}, // later occurrence matches
	}
	for _, tt := range tests {
		if got := wordThenDigitsThenLetters(tt.text, tt.word); got != tt.expected {
			t.Errorf("wordThenDigitsThenLetters(%q, %q): expected %v, got %v", tt.text, tt.word, tt.expected, got)
		}
	}

	trailing := []struct {
		text     string
		word     string
		expected bool
	}{
		{"dragon1995", "dragon", true},
		{"dragon199", "dragon", true},
		{"dragon19", "dragon", false},
		{"dragon12345", "dragon", false},
		{"xdragon123", "dragon", true},
		{"dragon123x", "dragon", false},
	}
	for _, tt := range trailing {
		if got := wordThenTrailingDigits(tt.text, tt.word); got != tt.expected {
			t.Errorf("wordThenTrailingDigits(%q, %q): expected %v, got %v", tt.text, tt.word, tt.expected, got)
		}
	}
}

func TestRepeatedBlocks(t *testing.T) {
	tests := []struct {
		text     string
		size     int
		expected bool
	}{
		{"abab", 2, true},
		{"aabb", 2, false},
		{"aaaa", 2, true},
		{"xabab", 2, true},
		{"ab", 2, false},
		{"abcabc", 3, true},
		{"abcabd", 3, false},
		{"xyabcabc", 3, true},
		{"abcab", 3, false},
	}

	for _, tt := range tests {
		if got := hasRepeatedBlock([]rune(tt.text), tt.size); got != tt.expected {
			t.Errorf("hasRepeatedBlock(%q, %d): expected %v, got %v", tt.text, tt.size, tt.expected, got)
		}
	}
}

func TestRepeatRuns(t *testing.T) {
	tests := []struct {
		text     string
		expected int
	}{
		{"", 0},
		{"abc", 0},
		{"aabb", 0},
		{"aaa", 1},
		{"aaaa", 1},
		{"aaabbb", 2},
		{"aaabaaa", 2},
		{"xaaax", 1},
	}

	for _, tt := range tests {
		if got := countRepeatRuns([]rune(tt.text)); got != tt.expected {
			t.Errorf("countRepeatRuns(%q): expected %d, got %d", tt.text, tt.expected, got)
		}
	}
}

func TestYearCombo(t *testing.T) {
	analyzer := NewDefaultAnalyzer()

	tests := []struct {
		name      string
		text      string
		hasSymbol bool
		word      string
		expected  bool
	}{
		{"word before year", "secure@2019", true, "secure", true},
		{"word after year", "2019!test", true, "test", true},
		{"missing symbol", "secure2019", false, "", false},
		{"missing year", "secure!", true, "", false},
		{"year without weak word", "zq@2019", true, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			word, ok := analyzer.findYearCombo(tt.text, tt.hasSymbol)
			if ok != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, ok)
			}
			if word != tt.word {
				t.Errorf("Expected word %q, got %q", tt.word, word)
			}
		})
	}
}

func TestKeyboardPatterns(t *testing.T) {
	analyzer := NewDefaultAnalyzer()

	if pattern, ok := analyzer.findKeyboardPattern("xqazx"); !ok || pattern != "qaz" {
		t.Errorf("Expected qaz pattern, got %q %v", pattern, ok)
	}
	if _, ok := analyzer.findKeyboardPattern("plain"); ok {
		t.Error("Expected no keyboard pattern in plain text")
	}
}
